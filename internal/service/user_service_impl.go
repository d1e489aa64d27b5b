package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/omnigratum/timeclock/internal/clock"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/repository"
)

// userService covers provisioning only; credential issuance and
// verification belong to an external collaborator.
type userService struct {
	users repository.UserRepo
	clk   clock.Clock
}

func NewUserService(users repository.UserRepo, clk clock.Clock) UserService {
	return &userService{users: users, clk: clk}
}

func (s *userService) Provision(ctx context.Context, requesterID string, u *domain.User) error {
	if _, err := requireAdmin(ctx, s.users, requesterID); err != nil {
		return err
	}
	if u.Email == "" || u.Name == "" {
		return fmt.Errorf("email and name required: %w", domain.ErrValidation)
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = domain.RoleEmployee
	}
	if u.Status == "" {
		u.Status = domain.UserActive
	}
	u.CreatedAt = s.clk.Now()
	return s.users.Create(ctx, u)
}

// Update lets admins change anything; users may update their own record
// but not their role or status.
func (s *userService) Update(ctx context.Context, requesterID string, u *domain.User) error {
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}
	if !requester.IsAdmin() {
		if requesterID != u.ID {
			return fmt.Errorf("users can only update themselves: %w", domain.ErrUnauthorized)
		}
		current, err := s.users.GetByID(ctx, u.ID)
		if err != nil {
			return err
		}
		if u.Role != current.Role || u.Status != current.Status {
			return fmt.Errorf("role and status changes need admin: %w", domain.ErrUnauthorized)
		}
	}
	return s.users.Update(ctx, u)
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *userService) List(ctx context.Context, requesterID string) ([]*domain.User, error) {
	if _, err := requireAdmin(ctx, s.users, requesterID); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}
