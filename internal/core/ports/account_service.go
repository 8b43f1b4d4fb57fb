package ports

import (
	"context"

	"github.com/userhive/account-api/internal/core/domain"
)

// RegistrationInput is the validated shape for creating an account. The
// role is chosen by the service, never by the caller.
type RegistrationInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// ProfilePatch is the self-service partial update. Password, when present,
// is plaintext and gets hashed by the service before it reaches the store.
type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

// AccountService orchestrates the store, the hasher, the session issuer and
// the authorization rules. actorID is the subject of the caller's verified
// token; operations that take one fail with domain.ErrUnauthenticated when
// the id no longer resolves to an account.
type AccountService interface {
	Register(ctx context.Context, in RegistrationInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	CurrentUser(ctx context.Context, actorID string) (*domain.User, error)
	ListUsers(ctx context.Context, actorID string, roleFilter string) ([]domain.User, error)
	UpdateProfile(ctx context.Context, actorID string, patch ProfilePatch) (*domain.User, error)
	CreateAdmin(ctx context.Context, actorID string, in RegistrationInput) (*domain.User, error)
	DeleteUser(ctx context.Context, actorID, targetID string) error
}
