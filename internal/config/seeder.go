package config

import (
	"log"
	"time"

	"hostelhub/internal/adapters/persistence/models"
	"hostelhub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedRooms(); err != nil {
		log.Printf("⚠️ Room seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	// Check if admin already exists
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	employeeID := "EMP0001"
	joinDate := time.Now()
	admin := &models.User{
		FirstName:  "System",
		LastName:   "Admin",
		Email:      "admin@hostelhub.local",
		Password:   hashedPassword,
		Role:       "admin",
		Phone:      "0000000000",
		EmployeeID: &employeeID,
		Department: "Administration",
		JoinDate:   &joinDate,
		IsActive:   true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedRooms seeds a starter block of rooms for development
func (s *Seeder) seedRooms() error {
	var count int64
	s.db.Model(&models.Room{}).Count(&count)
	if count > 0 {
		return nil // Rooms already exist
	}

	rooms := []models.Room{
		{RoomNumber: "A-101", Block: "A", Floor: 1, Type: models.RoomTypeDouble, Capacity: 2, Status: models.RoomStatusAvailable, MonthlyRent: 5000, SecurityDeposit: 10000, IsActive: true},
		{RoomNumber: "A-102", Block: "A", Floor: 1, Type: models.RoomTypeDouble, Capacity: 2, Status: models.RoomStatusAvailable, MonthlyRent: 5000, SecurityDeposit: 10000, IsActive: true},
		{RoomNumber: "A-201", Block: "A", Floor: 2, Type: models.RoomTypeTriple, Capacity: 3, Status: models.RoomStatusAvailable, MonthlyRent: 4000, SecurityDeposit: 8000, IsActive: true},
		{RoomNumber: "B-101", Block: "B", Floor: 1, Type: models.RoomTypeSingle, Capacity: 1, Status: models.RoomStatusAvailable, MonthlyRent: 7500, SecurityDeposit: 15000, IsActive: true},
	}

	if err := s.db.Create(&rooms).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d rooms", len(rooms))
	return nil
}
