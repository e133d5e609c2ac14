package repositories

import (
	"context"

	"hostelhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// RoomRepository handles room data access
type RoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// RoomFilter narrows room listings
type RoomFilter struct {
	Block  string
	Type   string
	Status string
	Floor  *int
	Offset int
	Limit  int
}

// Create creates a new room
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// GetByID gets a room by ID with occupants preloaded
func (r *RoomRepository) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("Occupants").
		Preload("Occupants.Student").
		Preload("MaintenanceHistory").
		First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByNumber gets a room by its room number
func (r *RoomRepository) GetByNumber(ctx context.Context, roomNumber string) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("Occupants").
		Where("room_number = ?", roomNumber).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Update saves the room row only
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Omit("Occupants", "MaintenanceHistory").Save(room).Error
}

// Delete soft deletes a room
func (r *RoomRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Room{}, id).Error
}

// List lists rooms with filters and pagination
func (r *RoomRepository) List(ctx context.Context, f RoomFilter) ([]*models.Room, int64, error) {
	var rooms []*models.Room
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Room{})
	if f.Block != "" {
		q = q.Where("block = ?", f.Block)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Floor != nil {
		q = q.Where("floor = ?", *f.Floor)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Occupants").
		Order("block, floor, room_number").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&rooms).Error

	return rooms, total, err
}

// ListAvailable lists rooms with at least one free bed
func (r *RoomRepository) ListAvailable(ctx context.Context) ([]*models.Room, error) {
	var rooms []*models.Room
	err := r.db.WithContext(ctx).
		Where("status = ? AND current_occupancy < capacity AND is_active = ?", models.RoomStatusAvailable, true).
		Order("block, floor, room_number").
		Find(&rooms).Error
	return rooms, err
}

// AddOccupantRow inserts one occupant row
func (r *RoomRepository) AddOccupantRow(ctx context.Context, occ *models.RoomOccupant) error {
	return r.db.WithContext(ctx).Create(occ).Error
}

// RemoveOccupantRow deletes the occupant row for a student in a room
func (r *RoomRepository) RemoveOccupantRow(ctx context.Context, roomID, studentID uint) error {
	return r.db.WithContext(ctx).
		Where("room_id = ? AND student_id = ?", roomID, studentID).
		Delete(&models.RoomOccupant{}).Error
}

// AddMaintenanceRecord inserts one maintenance history row
func (r *RoomRepository) AddMaintenanceRecord(ctx context.Context, rec *models.MaintenanceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// CountByStatus returns room counts grouped by status
func (r *RoomRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Room{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

// OccupancySummary returns total capacity and occupied beds
func (r *RoomRepository) OccupancySummary(ctx context.Context) (capacity int64, occupied int64, err error) {
	type row struct {
		Capacity int64
		Occupied int64
	}
	var rw row
	err = r.db.WithContext(ctx).Model(&models.Room{}).
		Select("COALESCE(SUM(capacity),0) as capacity, COALESCE(SUM(current_occupancy),0) as occupied").
		Where("is_active = ?", true).
		Scan(&rw).Error
	return rw.Capacity, rw.Occupied, err
}
