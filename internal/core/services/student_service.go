package services

import (
	"context"
	"errors"
	"log"
	"time"

	"hostelhub/internal/adapters/persistence/models"
	"hostelhub/internal/adapters/persistence/repositories"
	"hostelhub/internal/pkg/idgen"
	"hostelhub/internal/pkg/password"

	"gorm.io/gorm"
)

// User management errors
var (
	ErrEmailTaken       = errors.New("email is already registered")
	ErrNotAStudent      = errors.New("user is not a student")
	ErrStudentHasRoom   = errors.New("student already has a room assigned")
	ErrStudentNoRoom    = errors.New("student has no room assigned")
	ErrRoomNotAvailable = errors.New("room is not available for allocation")
)

// StudentService handles student and warden account management
type StudentService struct {
	userRepo repositories.UserRepository
	roomRepo *repositories.RoomRepository
	mailer   *MailerService
}

// NewStudentService creates a new student service
func NewStudentService(
	userRepo repositories.UserRepository,
	roomRepo *repositories.RoomRepository,
	mailer *MailerService,
) *StudentService {
	return &StudentService{
		userRepo: userRepo,
		roomRepo: roomRepo,
		mailer:   mailer,
	}
}

// CreateStudentInput represents admin-side student creation
type CreateStudentInput struct {
	FirstName   string `json:"first_name" validate:"required,max=50"`
	LastName    string `json:"last_name" validate:"required,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Phone       string `json:"phone" validate:"required,min=10,max=15"`
	Gender      string `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Course      string `json:"course" validate:"omitempty,max=100"`
	Year        int    `json:"year" validate:"omitempty,min=1,max=6"`

	Address          models.Address          `json:"address"`
	EmergencyContact models.EmergencyContact `json:"emergency_contact"`
}

// CreateWardenInput represents admin-side warden creation
type CreateWardenInput struct {
	FirstName  string `json:"first_name" validate:"required,max=50"`
	LastName   string `json:"last_name" validate:"required,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Phone      string `json:"phone" validate:"required,min=10,max=15"`
	Gender     string `json:"gender" validate:"omitempty,oneof=male female other"`
	Department string `json:"department" validate:"omitempty,max=100"`
}

// UpdateUserInput represents staff-side profile updates. Nil fields
// are left untouched.
type UpdateUserInput struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,max=50"`
	Phone     *string `json:"phone" validate:"omitempty,min=10,max=15"`
	Course    *string `json:"course" validate:"omitempty,max=100"`
	Year      *int    `json:"year" validate:"omitempty,min=1,max=6"`
	IsActive  *bool   `json:"is_active"`

	Address          *models.Address          `json:"address"`
	EmergencyContact *models.EmergencyContact `json:"emergency_contact"`
}

// UpdateProfileInput represents self-service profile updates. Only
// contact details are editable by the owner.
type UpdateProfileInput struct {
	Phone            *string                  `json:"phone" validate:"omitempty,min=10,max=15"`
	ProfileImage     *string                  `json:"profile_image" validate:"omitempty,max=255"`
	Address          *models.Address          `json:"address"`
	EmergencyContact *models.EmergencyContact `json:"emergency_contact"`
}

// AssignRoomInput assigns a student to a room
type AssignRoomInput struct {
	RoomID    uint `json:"room_id" validate:"required"`
	BedNumber int  `json:"bed_number" validate:"omitempty,min=1"`
}

// CreateStudent creates a student account with a generated student id
func (s *StudentService) CreateStudent(ctx context.Context, input *CreateStudentInput) (*models.User, error) {
	// 1. Check email uniqueness
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	// 2. Hash password
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 3. Build user
	studentID := idgen.StudentID(time.Now())
	user := &models.User{
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		Password:         hashed,
		Role:             "student",
		Phone:            input.Phone,
		Gender:           input.Gender,
		Address:          input.Address,
		EmergencyContact: input.EmergencyContact,
		StudentID:        &studentID,
		Course:           input.Course,
		Year:             input.Year,
		IsActive:         true,
	}
	if input.DateOfBirth != "" {
		if dob, err := time.Parse("2006-01-02", input.DateOfBirth); err == nil {
			user.DateOfBirth = dob
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.mailer.SendWelcome(user)

	log.Printf("✅ Student created: %s (%s)", user.Email, studentID)
	return user, nil
}

// CreateWarden creates a warden account with a generated employee id
func (s *StudentService) CreateWarden(ctx context.Context, input *CreateWardenInput) (*models.User, error) {
	// 1. Check email uniqueness
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	// 2. Hash password
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 3. Build user
	employeeID := idgen.EmployeeID()
	joinDate := time.Now()
	user := &models.User{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Password:   hashed,
		Role:       "warden",
		Phone:      input.Phone,
		Gender:     input.Gender,
		EmployeeID: &employeeID,
		Department: input.Department,
		JoinDate:   &joinDate,
		IsActive:   true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Warden created: %s (%s)", user.Email, employeeID)
	return user, nil
}

// GetByID fetches one user
func (s *StudentService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List lists users matching the filter
func (s *StudentService) List(ctx context.Context, f repositories.UserFilter) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, f)
}

// Update applies staff-side edits to a user
func (s *StudentService) Update(ctx context.Context, id uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Course != nil {
		user.Course = *input.Course
	}
	if input.Year != nil {
		user.Year = *input.Year
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.EmergencyContact != nil {
		user.EmergencyContact = *input.EmergencyContact
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User updated: %s", user.Email)
	return user, nil
}

// UpdateProfile applies self-service edits for the owner
func (s *StudentService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.ProfileImage != nil {
		user.ProfileImage = *input.ProfileImage
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.EmergencyContact != nil {
		user.EmergencyContact = *input.EmergencyContact
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate disables an account. The row survives for audit history.
func (s *StudentService) Deactivate(ctx context.Context, id uint) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user.IsActive = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ User deactivated: %s", user.Email)
	return nil
}

// AssignRoom allocates a bed to the student and links both sides of
// the relationship. The room and user writes are separate statements;
// the occupancy invariants are enforced on the room before either
// write happens.
func (s *StudentService) AssignRoom(ctx context.Context, studentID uint, input *AssignRoomInput) (*models.User, error) {
	// 1. Load and validate the student
	user, err := s.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !user.IsStudent() {
		return nil, ErrNotAStudent
	}
	if user.RoomID != nil {
		return nil, ErrStudentHasRoom
	}

	// 2. Load and validate the room
	room, err := s.roomRepo.GetByID(ctx, input.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.IsAvailable() {
		return nil, ErrRoomNotAvailable
	}

	// 3. Allocate the bed (capacity and duplicate checks live here)
	now := time.Now()
	if err := room.AddOccupant(studentID, input.BedNumber, now); err != nil {
		return nil, err
	}
	occ := room.Occupants[len(room.Occupants)-1]

	// 4. Persist: occupant row, room counters, then the user side
	if err := s.roomRepo.AddOccupantRow(ctx, &occ); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}

	user.RoomID = &room.ID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Room %s assigned to student %s (bed %d)", room.RoomNumber, user.Email, occ.BedNumber)

	return s.GetByID(ctx, studentID)
}

// UnassignRoom releases the student's bed and clears both references
func (s *StudentService) UnassignRoom(ctx context.Context, studentID uint) (*models.User, error) {
	// 1. Load and validate the student
	user, err := s.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if user.RoomID == nil {
		return nil, ErrStudentNoRoom
	}

	// 2. Load the room and drop the occupant
	room, err := s.roomRepo.GetByID(ctx, *user.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if err := room.RemoveOccupant(studentID); err != nil {
		return nil, err
	}

	// 3. Persist both sides
	if err := s.roomRepo.RemoveOccupantRow(ctx, room.ID, studentID); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}

	user.RoomID = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Room %s released by student %s", room.RoomNumber, user.Email)

	return s.GetByID(ctx, studentID)
}
