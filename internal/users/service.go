// Package users provides the HTTP handlers and business logic for user records.
package users

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bissquit/user-registry/internal/domain"
	"github.com/bissquit/user-registry/internal/pkg/ctxlog"
)

// Service implements user business logic.
type Service struct {
	repo    Repository
	parseID IDParser
}

// NewService creates a new user service.
// parseID decides which raw identifiers reach the repository.
func NewService(repo Repository, parseID IDParser) *Service {
	return &Service{
		repo:    repo,
		parseID: parseID,
	}
}

// ListFilterInput holds raw query values for listing users.
// A nil field means the parameter was not supplied.
type ListFilterInput struct {
	Age     *string
	Company *string
	Role    *string
}

// CreateUserInput holds data for creating a user.
type CreateUserInput struct {
	Name    string
	Age     int
	Company string
	Email   string
	Role    domain.Role
	Avatar  string
}

// BuildFilter converts raw query values into a Filter.
// It returns ErrInvalidAge when age is present but not an integer.
func BuildFilter(input ListFilterInput) (Filter, error) {
	var filter Filter

	if input.Age != nil {
		age, err := strconv.Atoi(strings.TrimSpace(*input.Age))
		if err != nil {
			return Filter{}, fmt.Errorf("%w: %q", ErrInvalidAge, *input.Age)
		}
		filter.Age = &age
	}

	if input.Company != nil {
		company := *input.Company
		filter.Company = &company
	}

	if input.Role != nil {
		role := domain.Role(*input.Role)
		filter.Role = &role
	}

	return filter, nil
}

// ListUsers returns every user matching all supplied filter values.
func (s *Service) ListUsers(ctx context.Context, input ListFilterInput) ([]domain.User, error) {
	filter, err := BuildFilter(input)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.ListUsers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = make([]domain.User, 0)
	}

	return users, nil
}

// GetUser returns the user with the given raw identifier.
func (s *Service) GetUser(ctx context.Context, rawID string) (*domain.User, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}

	return s.repo.GetUserByID(ctx, id)
}

// CreateUser stores a new user and returns it with its assigned ID.
// Field-level validation happens in the handler; only the role is checked here.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if !input.Role.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, input.Role)
	}

	avatar := input.Avatar
	if avatar == "" {
		avatar = DefaultAvatar(input.Email)
	}

	user := &domain.User{
		Name:    input.Name,
		Age:     input.Age,
		Company: input.Company,
		Email:   input.Email,
		Role:    input.Role,
		Avatar:  avatar,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	ctxlog.FromContext(ctx).Info("user created",
		"user_id", user.ID,
		"role", user.Role,
	)

	return user, nil
}

// DeleteUser removes the user with the given raw identifier and returns
// the canonical ID that was deleted.
func (s *Service) DeleteUser(ctx context.Context, rawID string) (string, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return "", err
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return "", err
	}

	ctxlog.FromContext(ctx).Info("user deleted", "deleted_id", id)

	return id, nil
}
