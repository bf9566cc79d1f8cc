package studio

import (
	"context"
	"fmt"
	"net/http"
)

// bookingService implements the BookingService interface
type bookingService struct {
	resource[Booking]
}

// List retrieves all bookings
func (s *bookingService) List(ctx context.Context) ([]*Booking, error) {
	return s.list(ctx, nil)
}

// Mine retrieves the signed-in customer's bookings
func (s *bookingService) Mine(ctx context.Context) ([]*Booking, error) {
	return s.listAt(ctx, s.path+"/my", nil)
}

// Get retrieves one booking
func (s *bookingService) Get(ctx context.Context, bookingID string) (*Booking, error) {
	return s.get(ctx, bookingID)
}

// Create books a class slot
func (s *bookingService) Create(ctx context.Context, params *CreateBookingParams) (*Booking, error) {
	if params == nil || params.ScheduleID == "" {
		return nil, fmt.Errorf("schedule id is required")
	}
	return s.create(ctx, params)
}

// Cancel cancels a booking
func (s *bookingService) Cancel(ctx context.Context, bookingID string) (*Booking, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("booking id is required")
	}
	return s.send(ctx, "cancel", http.MethodPatch, s.itemPath(bookingID)+"/cancel", nil)
}

// Delete deletes a booking
func (s *bookingService) Delete(ctx context.Context, bookingID string) error {
	return s.delete(ctx, bookingID)
}
