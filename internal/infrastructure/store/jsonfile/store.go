// Package jsonfile persists the user collection as a single JSON document.
//
// The document is the only shared mutable resource in the process, so every
// mutating call runs its full load → mutate → persist cycle inside one
// mutex. Persistence writes a temp file in the same directory and renames
// it over the document, so readers never observe a half-written file.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/userhive/account-api/internal/api/metrics"
	"github.com/userhive/account-api/internal/core/domain"
	"github.com/userhive/account-api/internal/core/ports"
)

// record is the on-disk shape of a user. The bcrypt hash lives under the
// "password" key; domain.User never serializes it.
type record struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// document is the versioned root object of the store file.
type document struct {
	Users []record `json:"users"`
}

// Store implements ports.UserRepository on top of a single JSON file.
type Store struct {
	path string
	mu   chan struct{} // capacity-1 semaphore so Lock can honour ctx
	log  zerolog.Logger
}

var _ ports.UserRepository = (*Store)(nil)

// Open prepares a Store backed by path and verifies the document is
// readable. A missing file is the empty default. A corrupt file is
// ErrStoreUnavailable unless allowReset is set, in which case the store
// logs the damage and replaces the document with the empty default.
func Open(path string, allowReset bool, log zerolog.Logger) (*Store, error) {
	s := &Store{
		path: path,
		mu:   make(chan struct{}, 1),
		log:  log,
	}

	if _, err := s.load(); err != nil {
		if !allowReset {
			return nil, err
		}
		log.Warn().Err(err).Str("path", path).
			Msg("store document unreadable, resetting to empty default")
		if err := s.persist(&document{Users: []record{}}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) lock(ctx context.Context) error {
	select {
	case s.mu <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) unlock() {
	<-s.mu
}

// load reads the document from disk. Absent file means empty store;
// anything else unreadable or undecodable is ErrStoreUnavailable.
func (s *Store) load() (*document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &document{Users: []record{}}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}
	if doc.Users == nil {
		doc.Users = []record{}
	}
	return &doc, nil
}

// persist writes doc atomically: temp file in the document's directory,
// then rename over the original. Never truncates in place.
func (s *Store) persist(doc *document) error {
	start := time.Now()

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", domain.ErrStoreUnavailable, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", domain.ErrStoreUnavailable, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".users-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: temp file: %v", domain.ErrStoreUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write: %v", domain.ErrStoreUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync: %v", domain.ErrStoreUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close: %v", domain.ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename: %v", domain.ErrStoreUnavailable, err)
	}

	metrics.StoreWriteDuration.Observe(time.Since(start).Seconds())
	metrics.UsersTotal.Set(float64(len(doc.Users)))
	return nil
}

// LoadAll returns every user in document order. Always re-reads the disk
// so a restarted or external writer is observed.
func (s *Store) LoadAll(ctx context.Context) ([]domain.User, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(doc.Users))
	for _, r := range doc.Users {
		users = append(users, toDomain(r))
	}
	return users, nil
}

// FindByEmail returns the user with an exact, case-sensitive email match.
func (s *Store) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, r := range doc.Users {
		if r.Email == email {
			u := toDomain(r)
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// FindByID returns the user with the given id.
func (s *Store) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, r := range doc.Users {
		if r.ID == id {
			u := toDomain(r)
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create assigns a fresh id, appends the user and persists. The duplicate
// check and the append run inside one critical section, so concurrent
// creates with the same email cannot both succeed.
func (s *Store) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, r := range doc.Users {
		if r.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}

	created := *user
	created.ID = uuid.NewString()
	doc.Users = append(doc.Users, toRecord(created))

	if err := s.persist(doc); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies the non-nil fields of patch to the user with the given id
// and persists. Omitted fields keep their prior value; role has no patch
// field and is therefore immutable here.
func (s *Store) Update(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range doc.Users {
		if doc.Users[i].ID != id {
			continue
		}
		r := &doc.Users[i]
		if patch.FirstName != nil {
			r.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			r.LastName = *patch.LastName
		}
		if patch.Email != nil {
			r.Email = *patch.Email
		}
		if patch.PasswordHash != nil {
			r.Password = *patch.PasswordHash
		}

		if err := s.persist(doc); err != nil {
			return nil, err
		}
		u := toDomain(*r)
		return &u, nil
	}
	return nil, domain.ErrUserNotFound
}

// Delete removes the user with the given id and persists.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	kept := doc.Users[:0]
	found := false
	for _, r := range doc.Users {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return domain.ErrUserNotFound
	}

	doc.Users = kept
	return s.persist(doc)
}

// Ping reports whether the document is currently readable. Used by the
// readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	_, err := s.load()
	return err
}

func toDomain(r record) domain.User {
	return domain.User{
		ID:           r.ID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		PasswordHash: r.Password,
		Role:         domain.Role(r.Role),
	}
}

func toRecord(u domain.User) record {
	return record{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Role:      string(u.Role),
	}
}
