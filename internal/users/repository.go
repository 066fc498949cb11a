package users

import (
	"context"

	"github.com/bissquit/user-registry/internal/domain"
)

// Repository defines the interface for user data operations.
// IDs passed in have already been accepted by the service's IDParser.
type Repository interface {
	ListUsers(ctx context.Context, filter Filter) ([]domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context, filter Filter) (int64, error)
}

// Filter represents equality constraints for listing users.
// Nil fields impose no constraint; set fields are combined with AND.
type Filter struct {
	Age     *int
	Company *string
	Role    *domain.Role
}

// IsEmpty reports whether the filter matches every user.
func (f Filter) IsEmpty() bool {
	return f.Age == nil && f.Company == nil && f.Role == nil
}

// IDParser validates a raw identifier and returns its canonical form.
// It returns ErrInvalidID when raw is not an identifier the store accepts.
type IDParser func(raw string) (string, error)
