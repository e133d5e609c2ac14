package routes

import (
	"hostelhub/internal/adapters/http/handlers"
	"hostelhub/internal/adapters/http/middleware"
	"hostelhub/internal/adapters/persistence/repositories"
	"hostelhub/internal/config"
	"hostelhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and returns the
// scheduler so main can manage its lifecycle.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.CronService {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	roomRepo := repositories.NewRoomRepository(db)
	complaintRepo := repositories.NewComplaintRepository(db)
	feeRepo := repositories.NewFeeRepository(db)
	leaveRepo := repositories.NewLeaveRepository(db)
	announcementRepo := repositories.NewAnnouncementRepository(db)

	// Initialize services
	mailerService := services.NewMailerService(cfg)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, mailerService, cfg)
	studentService := services.NewStudentService(userRepo, roomRepo, mailerService)
	roomService := services.NewRoomService(roomRepo, userRepo)
	complaintService := services.NewComplaintService(complaintRepo, userRepo, mailerService)
	feeService := services.NewFeeService(feeRepo, userRepo, mailerService)
	leaveService := services.NewLeaveService(leaveRepo, userRepo, mailerService)
	announcementService := services.NewAnnouncementService(announcementRepo, userRepo, mailerService)
	dashboardService := services.NewDashboardService(
		userRepo,
		roomService,
		complaintService,
		feeService,
		leaveService,
		feeRepo,
		complaintRepo,
		leaveRepo,
	)
	reportService := services.NewReportService(feeRepo, complaintRepo, leaveRepo, roomRepo, cfg)
	cronService := services.NewCronService(feeService, announcementService, refreshTokenRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(studentService)
	roomHandler := handlers.NewRoomHandler(roomService)
	complaintHandler := handlers.NewComplaintHandler(complaintService)
	feeHandler := handlers.NewFeeHandler(feeService)
	leaveHandler := handlers.NewLeaveHandler(leaveService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Generated report files
	app.Static(cfg.Reports.BaseURL, cfg.Reports.Dir)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public + protected)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg, userRepo)

	// Profile routes (authenticated users)
	profileRoutes := apiV1.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg, userRepo))
	profileRoutes.Get("/", authHandler.Me)
	profileRoutes.Put("/", userHandler.UpdateProfile)

	// Admin routes (user management)
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg, userRepo))
	setupAdminRoutes(adminRoutes, userHandler)

	// Room routes
	roomRoutes := apiV1.Group("/rooms")
	roomRoutes.Use(middleware.AuthMiddleware(cfg, userRepo))
	setupRoomRoutes(roomRoutes, roomHandler)

	// Complaint routes
	complaintRoutes := apiV1.Group("/complaints")
	complaintRoutes.Use(middleware.AuthMiddleware(cfg, userRepo))
	setupComplaintRoutes(complaintRoutes, complaintHandler)

	// Fee routes
	feeRoutes := apiV1.Group("/fees")
	feeRoutes.Use(middleware.AuthMiddleware(cfg, userRepo))
	setupFeeRoutes(feeRoutes, feeHandler)

	// Leave routes
	leaveRoutes := apiV1.Group("/leaves")
	leaveRoutes.Use(middleware.AuthMiddleware(cfg, userRepo))
	setupLeaveRoutes(leaveRoutes, leaveHandler)

	// Announcement routes
	announcementRoutes := apiV1.Group("/announcements")
	announcementRoutes.Use(middleware.AuthMiddleware(cfg, userRepo))
	setupAnnouncementRoutes(announcementRoutes, announcementHandler)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg, userRepo))
	dashboardRoutes.Get("/admin", middleware.StaffOnly(), dashboardHandler.AdminDashboard)
	dashboardRoutes.Get("/student", dashboardHandler.StudentDashboard)

	// Report routes (staff only)
	reportRoutes := apiV1.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(cfg, userRepo))
	reportRoutes.Use(middleware.StaffOnly())
	setupReportRoutes(reportRoutes, reportHandler)

	return cronService
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config, userRepo repositories.UserRepository) {
	// Public routes (rate limited against brute force)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)
	router.Post("/forgot-password", middleware.StrictRateLimiter(), handler.ForgotPassword)
	router.Post("/reset-password", middleware.StrictRateLimiter(), handler.ResetPassword)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg, userRepo), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg, userRepo), handler.LogoutAll)
	router.Put("/change-password", middleware.AuthMiddleware(cfg, userRepo), handler.ChangePassword)
}

// setupAdminRoutes configures staff-side user management
func setupAdminRoutes(router fiber.Router, handler *handlers.UserHandler) {
	// Warden management is admin only
	adminOnly := router.Group("/wardens")
	adminOnly.Use(middleware.AdminOnly())
	adminOnly.Post("/", handler.CreateWarden)
	adminOnly.Get("/", handler.ListWardens)

	// Student management is open to wardens and admins
	staff := router.Group("")
	staff.Use(middleware.StaffOnly())

	staff.Post("/students", handler.CreateStudent)
	staff.Get("/students", handler.ListStudents)
	staff.Post("/students/:id/assign-room", handler.AssignRoom)
	staff.Post("/students/:id/unassign-room", handler.UnassignRoom)

	staff.Get("/users/:id", handler.GetUser)
	staff.Put("/users/:id", handler.UpdateUser)
	staff.Delete("/users/:id", middleware.AdminOnly(), handler.DeactivateUser)
}

// setupRoomRoutes configures room inventory routes
func setupRoomRoutes(router fiber.Router, handler *handlers.RoomHandler) {
	// Read access for all authenticated users
	router.Get("/", handler.ListRooms)
	router.Get("/available", handler.ListAvailableRooms)
	router.Get("/stats", middleware.StaffOnly(), handler.RoomStats)
	router.Get("/:id", handler.GetRoom)

	// Writes are staff only
	staff := router.Group("")
	staff.Use(middleware.StaffOnly())

	staff.Post("/", handler.CreateRoom)
	staff.Put("/:id", handler.UpdateRoom)
	staff.Delete("/:id", middleware.AdminOnly(), handler.DeleteRoom)
	staff.Post("/:id/maintenance", handler.LogMaintenance)
}

// setupComplaintRoutes configures complaint lifecycle routes
func setupComplaintRoutes(router fiber.Router, handler *handlers.ComplaintHandler) {
	router.Post("/", handler.CreateComplaint)
	router.Get("/", handler.ListComplaints)
	router.Get("/stats", middleware.StaffOnly(), handler.ComplaintStats)
	router.Get("/:id", handler.GetComplaint)
	router.Post("/:id/feedback", handler.SubmitFeedback)
	router.Delete("/:id", handler.DeleteComplaint)

	// Lifecycle transitions are staff only
	staff := router.Group("")
	staff.Use(middleware.StaffOnly())

	staff.Patch("/:id/status", handler.UpdateComplaintStatus)
	staff.Patch("/:id/assign", handler.AssignComplaint)
	staff.Patch("/:id/resolve", handler.ResolveComplaint)
}

// setupFeeRoutes configures billing routes
func setupFeeRoutes(router fiber.Router, handler *handlers.FeeHandler) {
	// Students see their own fees through the same list and get routes
	router.Get("/", handler.ListFees)
	router.Get("/defaulters", middleware.StaffOnly(), handler.ListDefaulters)
	router.Get("/stats", middleware.StaffOnly(), handler.FeeStats)
	router.Get("/:id", handler.GetFee)

	// Billing operations are staff only
	staff := router.Group("")
	staff.Use(middleware.StaffOnly())

	staff.Post("/", handler.CreateFee)
	staff.Post("/reminders", handler.SendReminders)
	staff.Put("/:id", handler.UpdateFee)
	staff.Post("/:id/pay", handler.RecordPayment)
	staff.Post("/:id/remind", handler.RemindFee)
	staff.Patch("/:id/waive", middleware.AdminOnly(), handler.WaiveFee)
}

// setupLeaveRoutes configures leave application routes
func setupLeaveRoutes(router fiber.Router, handler *handlers.LeaveHandler) {
	router.Post("/", handler.ApplyLeave)
	router.Get("/", handler.ListLeaves)
	router.Get("/stats", middleware.StaffOnly(), handler.LeaveStats)
	router.Get("/:id", handler.GetLeave)
	router.Put("/:id", handler.UpdateLeave)
	router.Patch("/:id/cancel", handler.CancelLeave)
	router.Post("/:id/extend", handler.RequestExtension)

	// Approvals are staff only
	staff := router.Group("")
	staff.Use(middleware.StaffOnly())

	staff.Patch("/:id/decide", handler.DecideLeave)
	staff.Patch("/:id/extensions/:extensionId/decide", handler.DecideExtension)
	staff.Patch("/:id/return", handler.RecordReturn)
}

// setupAnnouncementRoutes configures notice board routes
func setupAnnouncementRoutes(router fiber.Router, handler *handlers.AnnouncementHandler) {
	router.Get("/", handler.ListAnnouncements)
	router.Get("/stats", middleware.StaffOnly(), handler.AnnouncementStats)
	router.Get("/:id", handler.GetAnnouncement)
	router.Post("/:id/like", handler.ToggleLike)
	router.Post("/:id/comments", handler.AddComment)

	// Authoring is staff only
	staff := router.Group("")
	staff.Use(middleware.StaffOnly())

	staff.Post("/", handler.CreateAnnouncement)
	staff.Put("/:id", handler.UpdateAnnouncement)
	staff.Patch("/:id/publish", handler.PublishAnnouncement)
	staff.Patch("/:id/archive", handler.ArchiveAnnouncement)
	staff.Delete("/:id", middleware.AdminOnly(), handler.DeleteAnnouncement)
}

// setupReportRoutes configures report generation routes
func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	router.Get("/fees", handler.FeeReport)
	router.Get("/complaints", handler.ComplaintReport)
	router.Get("/leaves", handler.LeaveReport)
	router.Get("/occupancy", handler.OccupancyReport)
}
