package studio

import (
	"context"
	"fmt"
)

type trainerService struct {
	resource[Trainer]
}

func (s *trainerService) List(ctx context.Context) ([]*Trainer, error) {
	return s.list(ctx, nil)
}

func (s *trainerService) Get(ctx context.Context, trainerID string) (*Trainer, error) {
	return s.get(ctx, trainerID)
}

func (s *trainerService) Create(ctx context.Context, params *TrainerParams) (*Trainer, error) {
	if params == nil {
		return nil, fmt.Errorf("trainer params are required")
	}
	return s.create(ctx, params)
}

func (s *trainerService) Update(ctx context.Context, trainerID string, params *TrainerParams) (*Trainer, error) {
	if params == nil {
		return nil, fmt.Errorf("trainer params are required")
	}
	return s.update(ctx, trainerID, params)
}

func (s *trainerService) Delete(ctx context.Context, trainerID string) error {
	return s.delete(ctx, trainerID)
}
