package ports

import (
	"context"

	"github.com/userhive/account-api/internal/core/domain"
)

// UserPatch carries a partial update for a user record. Nil fields keep
// their prior value. Role is deliberately absent: no update path may
// change a user's role.
type UserPatch struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
}

// UserRepository defines the persistence contract for user accounts.
// Implementations must make the whole read-modify-write cycle of each
// mutating call atomic with respect to other mutations: two concurrent
// Creates with the same email must never both succeed.
type UserRepository interface {
	LoadAll(ctx context.Context) ([]domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
