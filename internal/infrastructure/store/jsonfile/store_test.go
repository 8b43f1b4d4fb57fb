package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhive/account-api/internal/core/domain"
	"github.com/userhive/account-api/internal/core/ports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "users.json"), false, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func strPtr(s string) *string { return &s }

func TestStore_CreateAndFind(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.User{
		FirstName:    "Alice",
		LastName:     "Smith",
		Email:        "a@x.com",
		PasswordHash: "hash",
		Role:         domain.RoleCustomer,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	byEmail, err := s.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)

	_, err = s.FindByEmail(ctx, "A@X.COM") // case-sensitive exact match
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_SequentialCreates_DistinctIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, &domain.User{FirstName: "A", LastName: "A", Email: "a@x.com", Role: domain.RoleCustomer})
	require.NoError(t, err)
	second, err := s.Create(ctx, &domain.User{FirstName: "B", LastName: "B", Email: "b@x.com", Role: domain.RoleCustomer})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestStore_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, &domain.User{FirstName: "A", LastName: "A", Email: "a@x.com", Role: domain.RoleCustomer})
	require.NoError(t, err)

	_, err = s.Create(ctx, &domain.User{FirstName: "B", LastName: "B", Email: "a@x.com", Role: domain.RoleCustomer})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	users, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestStore_ConcurrentCreates_SameEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Create(ctx, &domain.User{
				FirstName: "Race",
				LastName:  "Condition",
				Email:     "race@x.com",
				Role:      domain.RoleCustomer,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent create must win")

	users, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestStore_ConcurrentDeletes_DocumentIntact(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	emails := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"}
	ids := make([]string, 0, len(emails))
	for _, email := range emails {
		u, err := s.Create(ctx, &domain.User{FirstName: "U", LastName: "U", Email: email, Role: domain.RoleCustomer})
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}
	keeper, err := s.Create(ctx, &domain.User{FirstName: "K", LastName: "K", Email: "keep@x.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			assert.NoError(t, s.Delete(ctx, id))
		}(id)
	}
	wg.Wait()

	users, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, keeper.ID, users[0].ID)
}

func TestStore_Update_PartialSemantics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.User{
		FirstName:    "Alice",
		LastName:     "Smith",
		Email:        "a@x.com",
		PasswordHash: "old-hash",
		Role:         domain.RoleCustomer,
	})
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, ports.UserPatch{
		FirstName: strPtr("Alicia"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, "Smith", updated.LastName)
	assert.Equal(t, "a@x.com", updated.Email)
	assert.Equal(t, "old-hash", updated.PasswordHash)
	assert.Equal(t, domain.RoleCustomer, updated.Role)
}

func TestStore_Update_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Update(context.Background(), "missing", ports.UserPatch{FirstName: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.User{FirstName: "A", LastName: "A", Email: "a@x.com", Role: domain.RoleCustomer})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))
	assert.ErrorIs(t, s.Delete(ctx, created.ID), domain.ErrUserNotFound)

	_, err = s.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	ctx := context.Background()

	s, err := Open(path, false, zerolog.Nop())
	require.NoError(t, err)
	created, err := s.Create(ctx, &domain.User{
		FirstName:    "Alice",
		LastName:     "Smith",
		Email:        "a@x.com",
		PasswordHash: "hash",
		Role:         domain.RoleSuperAdmin,
	})
	require.NoError(t, err)

	reopened, err := Open(path, false, zerolog.Nop())
	require.NoError(t, err)
	found, err := reopened.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperAdmin, found.Role)
	assert.Equal(t, "hash", found.PasswordHash)
}

func TestStore_MissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)

	users, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestStore_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path, false, zerolog.Nop())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	// With reset allowed the store replaces the document with the empty
	// default and keeps working.
	s, err := Open(path, true, zerolog.Nop())
	require.NoError(t, err)

	users, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = s.Create(context.Background(), &domain.User{FirstName: "A", LastName: "A", Email: "a@x.com", Role: domain.RoleCustomer})
	require.NoError(t, err)
}
