package studio

import (
	"context"
	"fmt"
)

// catalogService implements the CatalogService interface over /services
type catalogService struct {
	resource[GymService]
}

// List retrieves every offered service
func (s *catalogService) List(ctx context.Context) ([]*GymService, error) {
	return s.list(ctx, nil)
}

// Get retrieves one service
func (s *catalogService) Get(ctx context.Context, serviceID string) (*GymService, error) {
	return s.get(ctx, serviceID)
}

// Create adds a service to the catalog
func (s *catalogService) Create(ctx context.Context, params *GymServiceParams) (*GymService, error) {
	if params == nil {
		return nil, fmt.Errorf("service params are required")
	}
	return s.create(ctx, params)
}

// Update changes a service
func (s *catalogService) Update(ctx context.Context, serviceID string, params *GymServiceParams) (*GymService, error) {
	if params == nil {
		return nil, fmt.Errorf("service params are required")
	}
	return s.update(ctx, serviceID, params)
}

// Delete removes a service
func (s *catalogService) Delete(ctx context.Context, serviceID string) error {
	return s.delete(ctx, serviceID)
}
