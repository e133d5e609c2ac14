package models

import (
	"time"

	"gorm.io/gorm"
)

// Address holds a postal address as a nested value type.
type Address struct {
	Street  string `gorm:"size:100" json:"street,omitempty"`
	City    string `gorm:"size:50" json:"city,omitempty"`
	State   string `gorm:"size:50" json:"state,omitempty"`
	ZipCode string `gorm:"size:10" json:"zip_code,omitempty"`
	Country string `gorm:"size:50;default:'India'" json:"country,omitempty"`
}

// EmergencyContact holds the person to reach when a student is
// unreachable.
type EmergencyContact struct {
	Name     string `gorm:"size:100" json:"name,omitempty"`
	Phone    string `gorm:"size:15" json:"phone,omitempty"`
	Relation string `gorm:"size:50" json:"relation,omitempty"`
}

// User represents users table (students, wardens and admins)
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"size:50;not null" json:"first_name"`
	LastName  string `gorm:"size:50;not null" json:"last_name"`
	Email     string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"`
	Role      string `gorm:"size:20;default:'student';index" json:"role"`
	Phone     string `gorm:"size:15;not null" json:"phone"`

	Address          Address          `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	DateOfBirth      time.Time        `json:"date_of_birth"`
	Gender           string           `gorm:"size:10" json:"gender"`
	EmergencyContact EmergencyContact `gorm:"embedded;embeddedPrefix:emergency_" json:"emergency_contact"`

	// Student specific fields
	StudentID *string `gorm:"uniqueIndex;size:20" json:"student_id,omitempty"`
	Course    string  `gorm:"size:100" json:"course,omitempty"`
	Year      int     `json:"year,omitempty"`
	RoomID    *uint   `gorm:"index" json:"room_id,omitempty"`
	Room      *Room   `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	// Staff specific fields
	EmployeeID *string    `gorm:"uniqueIndex;size:20" json:"employee_id,omitempty"`
	Department string     `gorm:"size:100" json:"department,omitempty"`
	JoinDate   *time.Time `json:"join_date,omitempty"`

	IsActive     bool       `gorm:"default:true" json:"is_active"`
	ProfileImage string     `gorm:"size:255" json:"profile_image,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty"`

	EmailVerified          bool       `gorm:"default:false" json:"email_verified"`
	EmailVerificationToken string     `gorm:"size:255" json:"-"`
	PasswordResetToken     string     `gorm:"size:255;index" json:"-"`
	PasswordResetExpires   *time.Time `json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// FullName returns the display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsStudent reports whether the user holds the student role
func (u *User) IsStudent() bool {
	return u.Role == "student"
}

// UserResponse DTO
type UserResponse struct {
	ID           uint       `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	Phone        string     `json:"phone"`
	Gender       string     `json:"gender"`
	StudentID    *string    `json:"student_id,omitempty"`
	Course       string     `json:"course,omitempty"`
	Year         int        `json:"year,omitempty"`
	RoomID       *uint      `json:"room_id,omitempty"`
	RoomNumber   string     `json:"room_number,omitempty"`
	EmployeeID   *string    `json:"employee_id,omitempty"`
	Department   string     `json:"department,omitempty"`
	IsActive     bool       `json:"is_active"`
	ProfileImage string     `json:"profile_image,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		FullName:     u.FullName(),
		Email:        u.Email,
		Role:         u.Role,
		Phone:        u.Phone,
		Gender:       u.Gender,
		StudentID:    u.StudentID,
		Course:       u.Course,
		Year:         u.Year,
		RoomID:       u.RoomID,
		EmployeeID:   u.EmployeeID,
		Department:   u.Department,
		IsActive:     u.IsActive,
		ProfileImage: u.ProfileImage,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
	}
	if u.Room != nil {
		resp.RoomNumber = u.Room.RoomNumber
	}
	return resp
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}
