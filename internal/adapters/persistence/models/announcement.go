package models

import (
	"time"

	"gorm.io/gorm"
)

// Announcement status
const (
	AnnouncementStatusDraft     = "draft"
	AnnouncementStatusPublished = "published"
	AnnouncementStatusArchived  = "archived"
	AnnouncementStatusExpired   = "expired"
)

// Announcement target audiences
const (
	AudienceAll           = "all"
	AudienceStudents      = "students"
	AudienceWardens       = "wardens"
	AudienceAdmins        = "admins"
	AudienceSpecificUsers = "specific_users"
)

// Announcement represents announcements table
type Announcement struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Title          string `gorm:"size:200;not null" json:"title"`
	Content        string `gorm:"type:text;not null" json:"content"`
	Type           string `gorm:"size:20;default:'general';index" json:"type"`
	Priority       string `gorm:"size:10;default:'medium';index" json:"priority"`
	TargetAudience string `gorm:"size:20;default:'all';index" json:"target_audience"`

	CreatedBy   uint       `gorm:"not null;index" json:"created_by"`
	PublishDate time.Time  `json:"publish_date"`
	ExpiryDate  *time.Time `gorm:"index" json:"expiry_date,omitempty"`
	Status      string     `gorm:"size:10;default:'draft';index" json:"status"`

	Tags      string `gorm:"size:255" json:"tags,omitempty"`
	IsSticky  bool   `gorm:"default:false" json:"is_sticky"`
	EmailSent bool   `gorm:"default:false" json:"email_sent"`
	ViewCount int    `gorm:"default:0" json:"view_count"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Creator     *User                    `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	TargetUsers []AnnouncementTarget     `gorm:"foreignKey:AnnouncementID" json:"target_users,omitempty"`
	Attachments []AnnouncementAttachment `gorm:"foreignKey:AnnouncementID" json:"attachments,omitempty"`
	ReadBy      []AnnouncementRead       `gorm:"foreignKey:AnnouncementID" json:"read_by,omitempty"`
	Likes       []AnnouncementLike       `gorm:"foreignKey:AnnouncementID" json:"likes,omitempty"`
	Comments    []AnnouncementComment    `gorm:"foreignKey:AnnouncementID" json:"comments,omitempty"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// AnnouncementTarget names one user addressed by a specific_users
// announcement
type AnnouncementTarget struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	AnnouncementID uint `gorm:"not null;index" json:"announcement_id"`
	UserID         uint `gorm:"not null;index" json:"user_id"`
}

func (AnnouncementTarget) TableName() string {
	return "announcement_targets"
}

// AnnouncementAttachment is one uploaded file on an announcement
type AnnouncementAttachment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AnnouncementID uint      `gorm:"not null;index" json:"announcement_id"`
	FileName       string    `gorm:"size:255" json:"file_name"`
	FilePath       string    `gorm:"size:255" json:"file_path"`
	FileSize       int64     `json:"file_size"`
	UploadDate     time.Time `json:"upload_date"`
}

func (AnnouncementAttachment) TableName() string {
	return "announcement_attachments"
}

// AnnouncementRead records one user having read the announcement
type AnnouncementRead struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AnnouncementID uint      `gorm:"not null;index" json:"announcement_id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	ReadAt         time.Time `json:"read_at"`
}

func (AnnouncementRead) TableName() string {
	return "announcement_reads"
}

// AnnouncementLike records one user's like
type AnnouncementLike struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AnnouncementID uint      `gorm:"not null;index" json:"announcement_id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	LikedAt        time.Time `json:"liked_at"`
}

func (AnnouncementLike) TableName() string {
	return "announcement_likes"
}

// AnnouncementComment is one append-only comment
type AnnouncementComment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AnnouncementID uint      `gorm:"not null;index" json:"announcement_id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	Comment        string    `gorm:"size:500;not null" json:"comment"`
	CommentedAt    time.Time `json:"commented_at"`
	User           *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AnnouncementComment) TableName() string {
	return "announcement_comments"
}

// RefreshExpiry flips a published announcement to expired once its
// expiry date has passed.
func (a *Announcement) RefreshExpiry(now time.Time) {
	if a.Status == AnnouncementStatusPublished && a.ExpiryDate != nil && now.After(*a.ExpiryDate) {
		a.Status = AnnouncementStatusExpired
	}
}

// IsLive reports whether the announcement is published and not past
// its expiry date.
func (a *Announcement) IsLive(now time.Time) bool {
	return a.Status == AnnouncementStatusPublished &&
		(a.ExpiryDate == nil || !now.After(*a.ExpiryDate))
}

// IsVisibleTo applies the read-filtering rule for a non-staff viewer.
func (a *Announcement) IsVisibleTo(role string, userID uint, now time.Time) bool {
	if !a.IsLive(now) {
		return false
	}
	switch a.TargetAudience {
	case AudienceAll:
		return true
	case AudienceStudents:
		return role == "student"
	case AudienceWardens:
		return role == "warden"
	case AudienceAdmins:
		return role == "admin"
	case AudienceSpecificUsers:
		for _, t := range a.TargetUsers {
			if t.UserID == userID {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// MarkAsRead records the reader once; repeated calls are no-ops.
// Returns true when a new read entry was added.
func (a *Announcement) MarkAsRead(userID uint, now time.Time) bool {
	for _, r := range a.ReadBy {
		if r.UserID == userID {
			return false
		}
	}
	a.ReadBy = append(a.ReadBy, AnnouncementRead{
		AnnouncementID: a.ID,
		UserID:         userID,
		ReadAt:         now,
	})
	a.ViewCount++
	return true
}

// ToggleLike adds the user's like, or removes it if already present.
// Returns true when the announcement is liked after the call.
func (a *Announcement) ToggleLike(userID uint, now time.Time) bool {
	for i, l := range a.Likes {
		if l.UserID == userID {
			a.Likes = append(a.Likes[:i], a.Likes[i+1:]...)
			return false
		}
	}
	a.Likes = append(a.Likes, AnnouncementLike{
		AnnouncementID: a.ID,
		UserID:         userID,
		LikedAt:        now,
	})
	return true
}

// AddComment appends one comment
func (a *Announcement) AddComment(userID uint, text string, now time.Time) *AnnouncementComment {
	a.Comments = append(a.Comments, AnnouncementComment{
		AnnouncementID: a.ID,
		UserID:         userID,
		Comment:        text,
		CommentedAt:    now,
	})
	return &a.Comments[len(a.Comments)-1]
}

// LikeCount returns the number of likes loaded on the record
func (a *Announcement) LikeCount() int {
	return len(a.Likes)
}

// CommentCount returns the number of comments loaded on the record
func (a *Announcement) CommentCount() int {
	return len(a.Comments)
}
