package services

import (
	"context"

	"hostelhub/internal/adapters/persistence/models"
	"hostelhub/internal/adapters/persistence/repositories"
	"hostelhub/internal/core/domain"
)

// DashboardService aggregates summary figures across the other
// services.
type DashboardService struct {
	userRepo         repositories.UserRepository
	roomService      *RoomService
	complaintService *ComplaintService
	feeService       *FeeService
	leaveService     *LeaveService
	feeRepo          *repositories.FeeRepository
	complaintRepo    *repositories.ComplaintRepository
	leaveRepo        *repositories.LeaveRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo repositories.UserRepository,
	roomService *RoomService,
	complaintService *ComplaintService,
	feeService *FeeService,
	leaveService *LeaveService,
	feeRepo *repositories.FeeRepository,
	complaintRepo *repositories.ComplaintRepository,
	leaveRepo *repositories.LeaveRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:         userRepo,
		roomService:      roomService,
		complaintService: complaintService,
		feeService:       feeService,
		leaveService:     leaveService,
		feeRepo:          feeRepo,
		complaintRepo:    complaintRepo,
		leaveRepo:        leaveRepo,
	}
}

// AdminDashboard is the staff-side overview
type AdminDashboard struct {
	TotalStudents int64            `json:"total_students"`
	TotalWardens  int64            `json:"total_wardens"`
	Rooms         *RoomStats       `json:"rooms"`
	Complaints    *ComplaintStats  `json:"complaints"`
	Fees          *FeeStats        `json:"fees"`
	Leaves        map[string]int64 `json:"leaves"`
}

// StudentDashboard is the self-scoped overview for one student
type StudentDashboard struct {
	Profile           *models.UserResponse `json:"profile"`
	PendingFees       []*models.Fee        `json:"pending_fees"`
	OutstandingAmount float64              `json:"outstanding_amount"`
	OpenComplaints    []*models.Complaint  `json:"open_complaints"`
	ActiveLeaves      []*LeaveResponse     `json:"active_leaves"`
}

// GetAdminDashboard builds the staff overview
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	students, err := s.userRepo.CountByRole(ctx, "student")
	if err != nil {
		return nil, err
	}
	wardens, err := s.userRepo.CountByRole(ctx, "warden")
	if err != nil {
		return nil, err
	}

	rooms, err := s.roomService.Stats(ctx)
	if err != nil {
		return nil, err
	}
	complaints, err := s.complaintService.Stats(ctx)
	if err != nil {
		return nil, err
	}
	fees, err := s.feeService.Stats(ctx)
	if err != nil {
		return nil, err
	}
	leaves, err := s.leaveService.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalStudents: students,
		TotalWardens:  wardens,
		Rooms:         rooms,
		Complaints:    complaints,
		Fees:          fees,
		Leaves:        leaves,
	}, nil
}

// GetStudentDashboard builds the self-scoped overview
func (s *DashboardService) GetStudentDashboard(ctx context.Context, actor domain.Actor) (*StudentDashboard, error) {
	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	// Unsettled fees
	fees, _, err := s.feeRepo.List(ctx, repositories.FeeFilter{
		StudentID: &actor.ID,
		Limit:     50,
	})
	if err != nil {
		return nil, err
	}
	var pending []*models.Fee
	var outstanding float64
	for _, f := range fees {
		if f.Status == models.FeeStatusPaid || f.Status == models.FeeStatusWaived {
			continue
		}
		pending = append(pending, f)
		outstanding += f.BalanceAmount
	}

	// Open complaints
	allComplaints, _, err := s.complaintRepo.List(ctx, repositories.ComplaintFilter{
		ReportedBy: &actor.ID,
		Limit:      50,
	})
	if err != nil {
		return nil, err
	}
	var open []*models.Complaint
	for _, cp := range allComplaints {
		if cp.IsTerminal() {
			continue
		}
		open = append(open, cp)
	}

	// Pending and approved leaves
	leaves, _, err := s.leaveService.List(ctx, actor, repositories.LeaveFilter{Limit: 50})
	if err != nil {
		return nil, err
	}
	var active []*LeaveResponse
	for _, l := range leaves {
		if l.Status == models.LeaveStatusPending || l.Status == models.LeaveStatusApproved {
			active = append(active, l)
		}
	}

	return &StudentDashboard{
		Profile:           user.ToResponse(),
		PendingFees:       pending,
		OutstandingAmount: outstanding,
		OpenComplaints:    open,
		ActiveLeaves:      active,
	}, nil
}
