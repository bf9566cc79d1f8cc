package studio

import (
	"context"
	"fmt"
)

// userService implements the UserService interface
type userService struct {
	resource[User]
}

// List retrieves all users
func (s *userService) List(ctx context.Context) ([]*User, error) {
	return s.list(ctx, nil)
}

// Get retrieves a single user
func (s *userService) Get(ctx context.Context, userID string) (*User, error) {
	return s.get(ctx, userID)
}

// Create creates a user with the given role
func (s *userService) Create(ctx context.Context, params *CreateUserParams) (*User, error) {
	if params == nil {
		return nil, fmt.Errorf("user params are required")
	}
	return s.create(ctx, params)
}

// Update updates a user
func (s *userService) Update(ctx context.Context, userID string, params *UpdateUserParams) (*User, error) {
	if params == nil {
		return nil, fmt.Errorf("user params are required")
	}
	return s.update(ctx, userID, params)
}

// Delete deletes a user
func (s *userService) Delete(ctx context.Context, userID string) error {
	return s.delete(ctx, userID)
}
