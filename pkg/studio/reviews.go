package studio

import (
	"context"
	"fmt"
	"net/url"
)

type reviewService struct {
	resource[Review]
}

func (s *reviewService) List(ctx context.Context) ([]*Review, error) {
	return s.list(ctx, nil)
}

func (s *reviewService) ForTrainer(ctx context.Context, trainerID string) ([]*Review, error) {
	return s.list(ctx, url.Values{"trainerId": {trainerID}})
}

func (s *reviewService) Create(ctx context.Context, params *CreateReviewParams) (*Review, error) {
	if params == nil {
		return nil, fmt.Errorf("review params are required")
	}
	return s.create(ctx, params)
}

func (s *reviewService) Delete(ctx context.Context, reviewID string) error {
	return s.delete(ctx, reviewID)
}
