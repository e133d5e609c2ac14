package models

import "gorm.io/gorm"

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth & users
		&User{},
		&RefreshToken{},
		// Rooms
		&Room{},
		&RoomOccupant{},
		&MaintenanceRecord{},
		// Complaints
		&Complaint{},
		&ComplaintStatusLog{},
		// Fees
		&Fee{},
		&FeePayment{},
		&FeeReminder{},
		// Leaves
		&Leave{},
		&LeaveStatusLog{},
		&LeaveExtension{},
		// Announcements
		&Announcement{},
		&AnnouncementTarget{},
		&AnnouncementAttachment{},
		&AnnouncementRead{},
		&AnnouncementLike{},
		&AnnouncementComment{},
	)
}
