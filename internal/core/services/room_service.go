package services

import (
	"context"
	"errors"
	"log"
	"time"

	"hostelhub/internal/adapters/persistence/models"
	"hostelhub/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Room errors
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNumberTaken  = errors.New("room number already exists")
	ErrRoomHasOccupants = errors.New("room still has occupants")
	ErrInvalidCapacity  = errors.New("capacity cannot be below current occupancy")
)

// RoomService handles room inventory and the occupancy ledger
type RoomService struct {
	roomRepo *repositories.RoomRepository
	userRepo repositories.UserRepository
}

// NewRoomService creates a new room service
func NewRoomService(roomRepo *repositories.RoomRepository, userRepo repositories.UserRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo, userRepo: userRepo}
}

// CreateRoomInput represents room creation
type CreateRoomInput struct {
	RoomNumber      string  `json:"room_number" validate:"required,max=20"`
	Block           string  `json:"block" validate:"required,max=10"`
	Floor           int     `json:"floor" validate:"min=0"`
	Type            string  `json:"type" validate:"required,oneof=single double triple"`
	Capacity        int     `json:"capacity" validate:"required,min=1,max=6"`
	MonthlyRent     float64 `json:"monthly_rent" validate:"required,gt=0"`
	SecurityDeposit float64 `json:"security_deposit" validate:"min=0"`
	Amenities       string  `json:"amenities" validate:"omitempty,max=255"`
	Description     string  `json:"description"`
}

// UpdateRoomInput represents room edits. Nil fields are untouched.
type UpdateRoomInput struct {
	Floor           *int     `json:"floor" validate:"omitempty,min=0"`
	Type            *string  `json:"type" validate:"omitempty,oneof=single double triple"`
	Capacity        *int     `json:"capacity" validate:"omitempty,min=1,max=6"`
	Status          *string  `json:"status" validate:"omitempty,oneof=available occupied maintenance reserved"`
	MonthlyRent     *float64 `json:"monthly_rent" validate:"omitempty,gt=0"`
	SecurityDeposit *float64 `json:"security_deposit" validate:"omitempty,min=0"`
	Amenities       *string  `json:"amenities" validate:"omitempty,max=255"`
	Description     *string  `json:"description"`
	IsActive        *bool    `json:"is_active"`
}

// MaintenanceInput logs one maintenance issue against a room
type MaintenanceInput struct {
	Issue       string  `json:"issue" validate:"required,max=200"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost" validate:"min=0"`
}

// RoomStats summarizes the room inventory
type RoomStats struct {
	TotalRooms    int64            `json:"total_rooms"`
	ByStatus      map[string]int64 `json:"by_status"`
	TotalCapacity int64            `json:"total_capacity"`
	OccupiedBeds  int64            `json:"occupied_beds"`
	AvailableBeds int64            `json:"available_beds"`
	OccupancyRate int              `json:"occupancy_rate"`
}

// Create creates a new room
func (s *RoomService) Create(ctx context.Context, input *CreateRoomInput) (*models.Room, error) {
	// 1. Room numbers are unique across blocks
	if _, err := s.roomRepo.GetByNumber(ctx, input.RoomNumber); err == nil {
		return nil, ErrRoomNumberTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. Build and persist
	room := &models.Room{
		RoomNumber:      input.RoomNumber,
		Block:           input.Block,
		Floor:           input.Floor,
		Type:            input.Type,
		Capacity:        input.Capacity,
		Status:          models.RoomStatusAvailable,
		MonthlyRent:     input.MonthlyRent,
		SecurityDeposit: input.SecurityDeposit,
		Amenities:       input.Amenities,
		Description:     input.Description,
		IsActive:        true,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	log.Printf("✅ Room created: %s (block %s, capacity %d)", room.RoomNumber, room.Block, room.Capacity)
	return room, nil
}

// GetByID fetches one room with its occupants
func (s *RoomService) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// List lists rooms matching the filter
func (s *RoomService) List(ctx context.Context, f repositories.RoomFilter) ([]*models.Room, int64, error) {
	return s.roomRepo.List(ctx, f)
}

// ListAvailable lists rooms with free beds
func (s *RoomService) ListAvailable(ctx context.Context) ([]*models.Room, error) {
	return s.roomRepo.ListAvailable(ctx)
}

// Update applies room edits and re-syncs the derived occupancy state
func (s *RoomService) Update(ctx context.Context, id uint, input *UpdateRoomInput) (*models.Room, error) {
	room, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Capacity != nil {
		if *input.Capacity < room.CurrentOccupancy {
			return nil, ErrInvalidCapacity
		}
		room.Capacity = *input.Capacity
	}
	if input.Floor != nil {
		room.Floor = *input.Floor
	}
	if input.Type != nil {
		room.Type = *input.Type
	}
	if input.Status != nil {
		room.Status = *input.Status
	}
	if input.MonthlyRent != nil {
		room.MonthlyRent = *input.MonthlyRent
	}
	if input.SecurityDeposit != nil {
		room.SecurityDeposit = *input.SecurityDeposit
	}
	if input.Amenities != nil {
		room.Amenities = *input.Amenities
	}
	if input.Description != nil {
		room.Description = *input.Description
	}
	if input.IsActive != nil {
		room.IsActive = *input.IsActive
	}

	room.SyncOccupancy()

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}

	log.Printf("✅ Room updated: %s", room.RoomNumber)
	return room, nil
}

// Delete removes an empty room from the inventory
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	room, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if room.CurrentOccupancy > 0 {
		return ErrRoomHasOccupants
	}

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Room deleted: %s", room.RoomNumber)
	return nil
}

// LogMaintenance records a maintenance issue and flips the room into
// maintenance status.
func (s *RoomService) LogMaintenance(ctx context.Context, roomID uint, reportedBy uint, input *MaintenanceInput) (*models.Room, error) {
	room, err := s.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	rec := &models.MaintenanceRecord{
		RoomID:       room.ID,
		Issue:        input.Issue,
		Description:  input.Description,
		Cost:         input.Cost,
		ReportedBy:   &reportedBy,
		ReportedDate: time.Now(),
	}
	if err := s.roomRepo.AddMaintenanceRecord(ctx, rec); err != nil {
		return nil, err
	}

	room.Status = models.RoomStatusMaintenance
	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}

	log.Printf("⚠️ Room %s moved to maintenance: %s", room.RoomNumber, input.Issue)
	return s.GetByID(ctx, roomID)
}

// Stats summarizes the inventory for dashboards
func (s *RoomService) Stats(ctx context.Context) (*RoomStats, error) {
	byStatus, err := s.roomRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	capacity, occupied, err := s.roomRepo.OccupancySummary(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range byStatus {
		total += c
	}

	stats := &RoomStats{
		TotalRooms:    total,
		ByStatus:      byStatus,
		TotalCapacity: capacity,
		OccupiedBeds:  occupied,
		AvailableBeds: capacity - occupied,
	}
	if capacity > 0 {
		stats.OccupancyRate = int(float64(occupied)/float64(capacity)*100 + 0.5)
	}
	return stats, nil
}
