package service

import (
	"context"
	"errors"

	"github.com/userhive/account-api/internal/core/domain"
	"github.com/userhive/account-api/internal/core/ports"
)

// EnsureSuperAdmin provisions the first superAdmin out of band, from
// deployment configuration rather than any public endpoint. It is
// idempotent: when an account with the configured email already exists
// nothing happens, so restarts are safe. An empty email disables seeding.
func (s *AccountService) EnsureSuperAdmin(ctx context.Context, in ports.RegistrationInput) error {
	if in.Email == "" {
		return nil
	}
	if err := validateRegistration(in); err != nil {
		return err
	}

	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	created, err := s.createUser(ctx, in, domain.RoleSuperAdmin)
	if err != nil {
		return err
	}

	s.log.Info().
		Str("user_id", created.ID).
		Msg("bootstrap superAdmin provisioned")
	return nil
}
