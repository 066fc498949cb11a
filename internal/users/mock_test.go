package users

import (
	"context"
	"fmt"
	"regexp"

	"github.com/bissquit/user-registry/internal/domain"
)

const samsID = "5f1e2d3c4b5a697887766554"

var hexID = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

func parseHexID(raw string) (string, error) {
	if !hexID.MatchString(raw) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return raw, nil
}

// mockRepository implements Repository in memory, preserving insertion order.
type mockRepository struct {
	users      []domain.User
	nextID     int
	listErr    error
	lastFilter Filter
}

func newMockRepository() *mockRepository {
	return &mockRepository{}
}

// newSeededRepository holds the four users the API tests rely on.
func newSeededRepository() *mockRepository {
	repo := newMockRepository()
	repo.users = []domain.User{
		{ID: "5f1e2d3c4b5a697887766551", Name: "Chris", Age: 25, Company: "UMM", Email: "chris@this.that", Role: domain.RoleAdmin,
			Avatar: "https://gravatar.com/avatar/8c9616d6cc5de638ea6920fb5d65fc6c?d=identicon"},
		{ID: "5f1e2d3c4b5a697887766552", Name: "Pat", Age: 37, Company: "IBM", Email: "pat@something.com", Role: domain.RoleEditor,
			Avatar: "https://gravatar.com/avatar/b42a11826c3bde672bce7e06ad729d44?d=identicon"},
		{ID: "5f1e2d3c4b5a697887766553", Name: "Jamie", Age: 37, Company: "OHMNET", Email: "jamie@frogs.com", Role: domain.RoleViewer,
			Avatar: "https://gravatar.com/avatar/d4a6c71dd9470ad4cf58f78c100258bf?d=identicon"},
		{ID: samsID, Name: "Sam", Age: 45, Company: "OHMNET", Email: "sam@frogs.com", Role: domain.RoleViewer,
			Avatar: "https://gravatar.com/avatar/08b7610b558a4cbbd20ae99072801f4d?d=identicon"},
	}
	return repo
}

func matches(u domain.User, f Filter) bool {
	if f.Age != nil && u.Age != *f.Age {
		return false
	}
	if f.Company != nil && u.Company != *f.Company {
		return false
	}
	if f.Role != nil && u.Role != *f.Role {
		return false
	}
	return true
}

func (m *mockRepository) ListUsers(_ context.Context, filter Filter) ([]domain.User, error) {
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []domain.User
	for _, u := range m.users {
		if matches(u, filter) {
			result = append(result, u)
		}
	}
	return result, nil
}

func (m *mockRepository) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) CreateUser(_ context.Context, user *domain.User) error {
	m.nextID++
	user.ID = fmt.Sprintf("%024x", m.nextID)
	m.users = append(m.users, *user)
	return nil
}

func (m *mockRepository) DeleteUser(_ context.Context, id string) error {
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return ErrUserNotFound
}

func (m *mockRepository) CountUsers(_ context.Context, filter Filter) (int64, error) {
	var n int64
	for _, u := range m.users {
		if matches(u, filter) {
			n++
		}
	}
	return n, nil
}
