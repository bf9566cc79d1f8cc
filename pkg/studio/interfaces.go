package studio

import (
	"context"
)

// AuthService handles the identity lifecycle
type AuthService interface {
	// Bootstrap silently restores the session at startup. It never fails and
	// never navigates; a nil user means "not signed in".
	Bootstrap(ctx context.Context) *User

	// Profile fetches the signed-in user and surfaces any error
	Profile(ctx context.Context) (*User, error)

	// Login signs in with phone and PIN
	Login(ctx context.Context, phone, pin string) (*User, error)

	// Register creates an account and signs it in
	Register(ctx context.Context, params *RegisterParams) (*User, error)

	// Logout ends the session; the local session is cleared even on error
	Logout(ctx context.Context) error
}

// UserService manages studio users (admin)
type UserService interface {
	List(ctx context.Context) ([]*User, error)
	Get(ctx context.Context, userID string) (*User, error)
	Create(ctx context.Context, params *CreateUserParams) (*User, error)
	Update(ctx context.Context, userID string, params *UpdateUserParams) (*User, error)
	Delete(ctx context.Context, userID string) error
}

// TrainerService manages trainer profiles
type TrainerService interface {
	List(ctx context.Context) ([]*Trainer, error)
	Get(ctx context.Context, trainerID string) (*Trainer, error)
	Create(ctx context.Context, params *TrainerParams) (*Trainer, error)
	Update(ctx context.Context, trainerID string, params *TrainerParams) (*Trainer, error)
	Delete(ctx context.Context, trainerID string) error
}

// CatalogService manages the services (class types) the studio offers
type CatalogService interface {
	List(ctx context.Context) ([]*GymService, error)
	Get(ctx context.Context, serviceID string) (*GymService, error)
	Create(ctx context.Context, params *GymServiceParams) (*GymService, error)
	Update(ctx context.Context, serviceID string, params *GymServiceParams) (*GymService, error)
	Delete(ctx context.Context, serviceID string) error
}

// ScheduleService manages class slots
type ScheduleService interface {
	List(ctx context.Context) ([]*Schedule, error)

	// ListByDate returns the slots on one day
	ListByDate(ctx context.Context, day Date) ([]*Schedule, error)

	// ListByTrainer returns the slots taught by a trainer
	ListByTrainer(ctx context.Context, trainerID string) ([]*Schedule, error)

	Get(ctx context.Context, scheduleID string) (*Schedule, error)
	Create(ctx context.Context, params *ScheduleParams) (*Schedule, error)
	Update(ctx context.Context, scheduleID string, params *ScheduleParams) (*Schedule, error)
	Delete(ctx context.Context, scheduleID string) error
}

// BookingService handles class bookings
type BookingService interface {
	// List returns every booking (admin, trainer)
	List(ctx context.Context) ([]*Booking, error)

	// Mine returns the signed-in customer's bookings
	Mine(ctx context.Context) ([]*Booking, error)

	Get(ctx context.Context, bookingID string) (*Booking, error)
	Create(ctx context.Context, params *CreateBookingParams) (*Booking, error)

	// Cancel marks a booking cancelled
	Cancel(ctx context.Context, bookingID string) (*Booking, error)

	Delete(ctx context.Context, bookingID string) error
}

// ReviewService handles reviews
type ReviewService interface {
	List(ctx context.Context) ([]*Review, error)

	// ForTrainer returns the reviews of one trainer
	ForTrainer(ctx context.Context, trainerID string) ([]*Review, error)

	Create(ctx context.Context, params *CreateReviewParams) (*Review, error)
	Delete(ctx context.Context, reviewID string) error
}

// AttendanceService records class attendance
type AttendanceService interface {
	List(ctx context.Context, filter *AttendanceFilter) ([]*AttendanceRecord, error)

	// ForUser returns one member's attendance history
	ForUser(ctx context.Context, userID string) ([]*AttendanceRecord, error)

	// Mark records attendance for a member in a class
	Mark(ctx context.Context, params *MarkAttendanceParams) (*AttendanceRecord, error)

	// Update changes the status of an existing record
	Update(ctx context.Context, recordID string, status AttendanceStatus) (*AttendanceRecord, error)
}
