package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/rs/zerolog"

	"github.com/userhive/account-api/internal/api/metrics"
	"github.com/userhive/account-api/internal/core/authz"
	"github.com/userhive/account-api/internal/core/domain"
	"github.com/userhive/account-api/internal/core/ports"
)

const minPasswordLength = 6

// AccountService implements registration, login and the administrative
// user-management use cases. The acting identity is always an explicit
// actorID resolved from the caller's verified token; there is no
// process-wide notion of "the logged-in user".
type AccountService struct {
	repo    ports.UserRepository
	hasher  ports.PasswordHasher
	session ports.SessionIssuer
	log     zerolog.Logger
}

func NewAccountService(repo ports.UserRepository, hasher ports.PasswordHasher, session ports.SessionIssuer, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, session: session, log: log}
}

var _ ports.AccountService = (*AccountService)(nil)

// Register creates a customer account. The role is fixed here, never read
// from the input.
func (s *AccountService) Register(ctx context.Context, in ports.RegistrationInput) (*domain.User, error) {
	if err := validateRegistration(in); err != nil {
		return nil, err
	}
	return s.createUser(ctx, in, domain.RoleCustomer)
}

// Login checks the credentials and mints a session token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.session.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, user, nil
}

// CurrentUser returns the account behind a verified token subject.
// A stale token whose subject was deleted yields ErrUserNotFound.
func (s *AccountService) CurrentUser(ctx context.Context, actorID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, actorID)
}

// ListUsers returns all users, optionally narrowed to one role. Only
// admins and superAdmins may list; an unrecognized filter value is a
// validation error rather than the silent full list.
func (s *AccountService) ListUsers(ctx context.Context, actorID string, roleFilter string) ([]domain.User, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewAllUsers(actor.Role) {
		metrics.AuthzDeniedTotal.WithLabelValues("list_users").Inc()
		return nil, domain.ErrForbidden
	}

	filter := domain.Role(roleFilter)
	if roleFilter != "" && !filter.Valid() {
		return nil, fmt.Errorf("%w: unknown role filter %q", domain.ErrValidation, roleFilter)
	}

	users, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if roleFilter == "" {
		return users, nil
	}

	matched := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.Role == filter {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

// UpdateProfile applies a partial self-service update. The patch carries
// no role field, so a caller can never escalate through this path. A
// present password is re-hashed before it reaches the store.
func (s *AccountService) UpdateProfile(ctx context.Context, actorID string, patch ports.ProfilePatch) (*domain.User, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditProfile(actor.ID, actorID) {
		return nil, domain.ErrForbidden
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	stored := ports.UserPatch{
		FirstName: patch.FirstName,
		LastName:  patch.LastName,
		Email:     patch.Email,
	}
	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		stored.PasswordHash = &hash
	}

	return s.repo.Update(ctx, actorID, stored)
}

// CreateAdmin provisions an admin account. Only a superAdmin may call it;
// the role is fixed to admin regardless of input.
func (s *AccountService) CreateAdmin(ctx context.Context, actorID string, in ports.RegistrationInput) (*domain.User, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanCreateAdmin(actor.Role) {
		metrics.AuthzDeniedTotal.WithLabelValues("create_admin").Inc()
		return nil, domain.ErrForbidden
	}
	if err := validateRegistration(in); err != nil {
		return nil, err
	}
	return s.createUser(ctx, in, domain.RoleAdmin)
}

// DeleteUser removes the target account. The target is looked up before
// the authorization check, so an admin probing a nonexistent id gets
// ErrUserNotFound, not ErrForbidden.
func (s *AccountService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return err
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if !authz.CanDeleteUser(actor.Role, target.Role) {
		metrics.AuthzDeniedTotal.WithLabelValues("delete_user").Inc()
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}

	s.log.Info().
		Str("actor_id", actor.ID).
		Str("actor_role", string(actor.Role)).
		Str("target_id", target.ID).
		Str("target_role", string(target.Role)).
		Msg("user deleted")
	return nil
}

// resolveActor maps a token subject back to an account. A valid token for
// a deleted account is ErrUnauthenticated: the caller must log in again.
func (s *AccountService) resolveActor(ctx context.Context, actorID string) (*domain.User, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return actor, nil
}

func (s *AccountService) createUser(ctx context.Context, in ports.RegistrationInput, role domain.Role) (*domain.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(role)).Inc()
	s.log.Info().
		Str("user_id", created.ID).
		Str("role", string(role)).
		Msg("user created")
	return created, nil
}

func validateRegistration(in ports.RegistrationInput) error {
	if in.FirstName == "" {
		return fmt.Errorf("%w: first name required", domain.ErrValidation)
	}
	if in.LastName == "" {
		return fmt.Errorf("%w: last name required", domain.ErrValidation)
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	return validatePassword(in.Password)
}

func validatePatch(patch ports.ProfilePatch) error {
	if patch.FirstName != nil && *patch.FirstName == "" {
		return fmt.Errorf("%w: first name must not be empty", domain.ErrValidation)
	}
	if patch.LastName != nil && *patch.LastName == "" {
		return fmt.Errorf("%w: last name must not be empty", domain.ErrValidation)
	}
	if patch.Email != nil {
		if err := validateEmail(*patch.Email); err != nil {
			return err
		}
	}
	if patch.Password != nil {
		return validatePassword(*patch.Password)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: malformed email %q", domain.ErrValidation, email)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	return nil
}
