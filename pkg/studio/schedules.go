package studio

import (
	"context"
	"fmt"
	"net/url"
)

// scheduleService implements the ScheduleService interface
type scheduleService struct {
	resource[Schedule]
}

// List retrieves all class slots
func (s *scheduleService) List(ctx context.Context) ([]*Schedule, error) {
	return s.list(ctx, nil)
}

// ListByDate retrieves the slots on one day
func (s *scheduleService) ListByDate(ctx context.Context, day Date) ([]*Schedule, error) {
	return s.list(ctx, url.Values{"date": {day.String()}})
}

// ListByTrainer retrieves the slots taught by a trainer
func (s *scheduleService) ListByTrainer(ctx context.Context, trainerID string) ([]*Schedule, error) {
	return s.list(ctx, url.Values{"trainerId": {trainerID}})
}

// Get retrieves one slot
func (s *scheduleService) Get(ctx context.Context, scheduleID string) (*Schedule, error) {
	return s.get(ctx, scheduleID)
}

// Create adds a slot
func (s *scheduleService) Create(ctx context.Context, params *ScheduleParams) (*Schedule, error) {
	if params == nil {
		return nil, fmt.Errorf("schedule params are required")
	}
	return s.create(ctx, params)
}

// Update changes a slot
func (s *scheduleService) Update(ctx context.Context, scheduleID string, params *ScheduleParams) (*Schedule, error) {
	if params == nil {
		return nil, fmt.Errorf("schedule params are required")
	}
	return s.update(ctx, scheduleID, params)
}

// Delete removes a slot
func (s *scheduleService) Delete(ctx context.Context, scheduleID string) error {
	return s.delete(ctx, scheduleID)
}
