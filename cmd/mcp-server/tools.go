package main

import (
	"context"
	"fmt"

	"github.com/eshaffer321/studio-go/pkg/studio"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// studioTools holds the studio client and implements all tool handlers
type studioTools struct {
	client *studio.Client
}

// GetProfile tool - returns the signed-in user
type GetProfileInput struct {
	// No input parameters needed
}

type GetProfileOutput struct {
	ID    string `json:"id" jsonschema:"User ID"`
	Name  string `json:"name" jsonschema:"Full name"`
	Phone string `json:"phone" jsonschema:"Phone number"`
	Role  string `json:"role" jsonschema:"One of customer, admin or trainer"`
	Email string `json:"email,omitempty" jsonschema:"Email address if known"`
}

func (t *studioTools) GetProfile(ctx context.Context, req *mcp.CallToolRequest, input GetProfileInput) (*mcp.CallToolResult, GetProfileOutput, error) {
	user, err := t.client.Auth.Profile(ctx)
	if err != nil {
		return nil, GetProfileOutput{}, fmt.Errorf("failed to fetch profile: %w", err)
	}

	return nil, GetProfileOutput{
		ID:    user.ID,
		Name:  user.Name,
		Phone: user.Phone,
		Role:  user.Role.String(),
		Email: user.Email,
	}, nil
}

// ListSchedules tool - lists class slots
type ListSchedulesInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day in YYYY-MM-DD format (optional)"`
}

type ScheduleEntry struct {
	ID        string `json:"id" jsonschema:"Schedule ID"`
	Date      string `json:"date" jsonschema:"Day of the class"`
	StartTime string `json:"startTime" jsonschema:"Start time (HH:MM)"`
	EndTime   string `json:"endTime" jsonschema:"End time (HH:MM)"`
	Service   string `json:"service,omitempty" jsonschema:"Service name"`
	Trainer   string `json:"trainer,omitempty" jsonschema:"Trainer name"`
	Capacity  int    `json:"capacity" jsonschema:"Total spots"`
	SpotsLeft int    `json:"spotsLeft" jsonschema:"Remaining spots"`
}

type ListSchedulesOutput struct {
	Schedules []ScheduleEntry `json:"schedules" jsonschema:"List of class slots"`
	Count     int             `json:"count" jsonschema:"Number of slots returned"`
}

func (t *studioTools) ListSchedules(ctx context.Context, req *mcp.CallToolRequest, input ListSchedulesInput) (*mcp.CallToolResult, ListSchedulesOutput, error) {
	var (
		schedules []*studio.Schedule
		err       error
	)

	if input.Date != "" {
		day, parseErr := studio.ParseDate(input.Date)
		if parseErr != nil {
			return nil, ListSchedulesOutput{}, fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", parseErr)
		}
		schedules, err = t.client.Schedules.ListByDate(ctx, day)
	} else {
		schedules, err = t.client.Schedules.List(ctx)
	}
	if err != nil {
		return nil, ListSchedulesOutput{}, fmt.Errorf("failed to fetch schedules: %w", err)
	}

	entries := make([]ScheduleEntry, 0, len(schedules))
	for _, s := range schedules {
		entry := ScheduleEntry{
			ID:        s.ID,
			Date:      s.Date.String(),
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Capacity:  s.Capacity,
			SpotsLeft: s.SpotsLeft(),
		}
		if s.Service != nil {
			entry.Service = s.Service.Name
		}
		if s.Trainer != nil {
			entry.Trainer = s.Trainer.Name
		}
		entries = append(entries, entry)
	}

	return nil, ListSchedulesOutput{
		Schedules: entries,
		Count:     len(entries),
	}, nil
}

// ListBookings tool - lists bookings visible to the signed-in user
type ListBookingsInput struct {
	All bool `json:"all,omitempty" jsonschema:"List every booking instead of only your own (admins only)"`
}

type BookingEntry struct {
	ID         string `json:"id" jsonschema:"Booking ID"`
	ScheduleID string `json:"scheduleId" jsonschema:"Booked class slot"`
	Status     string `json:"status" jsonschema:"pending, confirmed, cancelled or completed"`
	Notes      string `json:"notes,omitempty" jsonschema:"Booking notes"`
}

type ListBookingsOutput struct {
	Bookings []BookingEntry `json:"bookings" jsonschema:"List of bookings"`
	Count    int            `json:"count" jsonschema:"Number of bookings returned"`
}

func (t *studioTools) ListBookings(ctx context.Context, req *mcp.CallToolRequest, input ListBookingsInput) (*mcp.CallToolResult, ListBookingsOutput, error) {
	if input.All {
		if decision := t.client.Authorize(studio.RoleAdmin); decision.Kind != studio.Render {
			return nil, ListBookingsOutput{}, fmt.Errorf("listing all bookings requires the admin role (%s)", decision.Kind)
		}
	}

	list := t.client.Bookings.Mine
	if input.All {
		list = t.client.Bookings.List
	}

	bookings, err := list(ctx)
	if err != nil {
		return nil, ListBookingsOutput{}, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	entries := make([]BookingEntry, 0, len(bookings))
	for _, b := range bookings {
		entries = append(entries, BookingEntry{
			ID:         b.ID,
			ScheduleID: b.ScheduleID,
			Status:     string(b.Status),
			Notes:      b.Notes,
		})
	}

	return nil, ListBookingsOutput{
		Bookings: entries,
		Count:    len(entries),
	}, nil
}

// ListTrainers tool - lists trainers
type ListTrainersInput struct {
	// No input parameters needed
}

type TrainerEntry struct {
	ID              string  `json:"id" jsonschema:"Trainer ID"`
	Name            string  `json:"name" jsonschema:"Trainer name"`
	Specialization  string  `json:"specialization" jsonschema:"Main discipline"`
	ExperienceYears int     `json:"experienceYears" jsonschema:"Years of experience"`
	Rating          float64 `json:"rating" jsonschema:"Average review rating"`
}

type ListTrainersOutput struct {
	Trainers []TrainerEntry `json:"trainers" jsonschema:"List of trainers"`
	Count    int            `json:"count" jsonschema:"Number of trainers"`
}

func (t *studioTools) ListTrainers(ctx context.Context, req *mcp.CallToolRequest, input ListTrainersInput) (*mcp.CallToolResult, ListTrainersOutput, error) {
	trainers, err := t.client.Trainers.List(ctx)
	if err != nil {
		return nil, ListTrainersOutput{}, fmt.Errorf("failed to fetch trainers: %w", err)
	}

	entries := make([]TrainerEntry, 0, len(trainers))
	for _, tr := range trainers {
		entries = append(entries, TrainerEntry{
			ID:              tr.ID,
			Name:            tr.Name,
			Specialization:  tr.Specialization,
			ExperienceYears: tr.ExperienceYears,
			Rating:          tr.Rating,
		})
	}

	return nil, ListTrainersOutput{
		Trainers: entries,
		Count:    len(entries),
	}, nil
}
