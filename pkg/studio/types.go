package studio

import (
	"time"

	"github.com/eshaffer321/studio-go/internal/auth"
	internalTypes "github.com/eshaffer321/studio-go/internal/types"
)

// Role is a studio role: customer, admin or trainer
type Role = internalTypes.Role

const (
	// NoRoleRequired lets any authenticated user through the guard
	NoRoleRequired = internalTypes.RoleNone
	RoleCustomer   = internalTypes.RoleCustomer
	RoleAdmin      = internalTypes.RoleAdmin
	RoleTrainer    = internalTypes.RoleTrainer
)

// ParseRole parses "customer", "admin" or "trainer"
func ParseRole(s string) (Role, error) {
	return internalTypes.ParseRole(s)
}

// User is the identity of a signed-in member, trainer or admin
type User = internalTypes.User

// Session is the client's authentication state
type Session = internalTypes.Session

// RegisterParams is the sign-up payload
type RegisterParams = auth.RegisterParams

// CreateUserParams creates a user from the admin dashboard
type CreateUserParams struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Pin   string `json:"pin"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}

// UpdateUserParams updates a user; nil fields are left unchanged
type UpdateUserParams struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *Role   `json:"role,omitempty"`
}

// Trainer is a studio trainer profile
type Trainer struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId,omitempty"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone,omitempty"`
	Specialization  string    `json:"specialization"`
	Bio             string    `json:"bio,omitempty"`
	ExperienceYears int       `json:"experienceYears"`
	Rating          float64   `json:"rating"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// TrainerParams creates or updates a trainer
type TrainerParams struct {
	UserID          string `json:"userId,omitempty"`
	Name            string `json:"name,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Specialization  string `json:"specialization,omitempty"`
	Bio             string `json:"bio,omitempty"`
	ExperienceYears int    `json:"experienceYears,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
}

// GymService is a class type offered by the studio, e.g. "Vinyasa Flow"
type GymService struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Category        string  `json:"category,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Active          bool    `json:"active"`
}

// GymServiceParams creates or updates a service
type GymServiceParams struct {
	Name            string   `json:"name,omitempty"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category,omitempty"`
	DurationMinutes int      `json:"durationMinutes,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

// Schedule is one class slot
type Schedule struct {
	ID          string      `json:"id"`
	ServiceID   string      `json:"serviceId"`
	TrainerID   string      `json:"trainerId"`
	Date        Date        `json:"date"`
	StartTime   string      `json:"startTime"`
	EndTime     string      `json:"endTime"`
	Capacity    int         `json:"capacity"`
	BookedCount int         `json:"bookedCount"`
	Service     *GymService `json:"service,omitempty"`
	Trainer     *Trainer    `json:"trainer,omitempty"`
}

// SpotsLeft returns the remaining capacity
func (s *Schedule) SpotsLeft() int {
	if left := s.Capacity - s.BookedCount; left > 0 {
		return left
	}
	return 0
}

// ScheduleParams creates or updates a class slot
type ScheduleParams struct {
	ServiceID string `json:"serviceId,omitempty"`
	TrainerID string `json:"trainerId,omitempty"`
	Date      Date   `json:"date"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Capacity  int    `json:"capacity,omitempty"`
}

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking is a customer's seat in a class slot
type Booking struct {
	ID         string        `json:"id"`
	UserID     string        `json:"userId"`
	ScheduleID string        `json:"scheduleId"`
	Status     BookingStatus `json:"status"`
	Notes      string        `json:"notes,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	Schedule   *Schedule     `json:"schedule,omitempty"`
	User       *User         `json:"user,omitempty"`
}

// CreateBookingParams books a class slot
type CreateBookingParams struct {
	ScheduleID string `json:"scheduleId"`
	Notes      string `json:"notes,omitempty"`
}

// Review is a customer's rating of a trainer or service
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TrainerID string    `json:"trainerId,omitempty"`
	ServiceID string    `json:"serviceId,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	User      *User     `json:"user,omitempty"`
}

// CreateReviewParams submits a review
type CreateReviewParams struct {
	TrainerID string `json:"trainerId,omitempty"`
	ServiceID string `json:"serviceId,omitempty"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// AttendanceStatus records whether a member showed up
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// AttendanceRecord is one member's attendance for one class
type AttendanceRecord struct {
	ID         string           `json:"id"`
	UserID     string           `json:"userId"`
	ScheduleID string           `json:"scheduleId"`
	Date       Date             `json:"date"`
	Status     AttendanceStatus `json:"status"`
	MarkedBy   string           `json:"markedBy,omitempty"`
}

// MarkAttendanceParams records attendance for a class
type MarkAttendanceParams struct {
	UserID     string           `json:"userId"`
	ScheduleID string           `json:"scheduleId"`
	Date       Date             `json:"date"`
	Status     AttendanceStatus `json:"status"`
}

// AttendanceFilter narrows an attendance listing
type AttendanceFilter struct {
	UserID     string
	ScheduleID string
	From       *Date
	To         *Date
}
