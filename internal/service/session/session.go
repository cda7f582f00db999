// Package session holds the user roster and the authenticated identity.
//
// The capability check it exposes is advisory: it gates what the
// presentation layer offers, and the clinic store does not re-enforce it.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dentcare/dentcare_backend/internal/model"
	"github.com/dentcare/dentcare_backend/internal/storage/kv"
	"github.com/dentcare/dentcare_backend/pkg/authorize"
	"github.com/dentcare/dentcare_backend/pkg/util/ids"
	"github.com/dentcare/dentcare_backend/pkg/util/password"
)

// Persisted slots owned by this store.
const (
	SlotUsers       = "users"
	SlotCurrentUser = "current_user"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateUserRequest struct {
	Username    string
	Password    string
	DisplayName string
	Role        model.Role
}

type UpdateUserRequest struct {
	Username    *string
	Password    *string
	DisplayName *string
	Role        *model.Role
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	// Login matches username exactly (case-sensitive) and verifies the
	// password against the stored hash. On failure the roster and the
	// session are left untouched.
	Login(ctx context.Context, username, pass string) (model.User, error)

	// Logout clears the session unconditionally.
	Logout(ctx context.Context)

	CurrentUser() (model.User, bool)
	Users() []model.User
	User(id string) (model.User, bool)

	// AddUser refuses a username already present in the roster.
	AddUser(ctx context.Context, req CreateUserRequest) (model.User, error)

	// UpdateUser merges the set fields into the matching user. An unknown
	// id is a silent no-op. A username change is not re-checked for
	// uniqueness, matching the historical behavior.
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest)

	// DeleteUser removes the user unless it is the authenticated one;
	// self-delete is a silent no-op.
	DeleteUser(ctx context.Context, id string)

	// CanPerformAction is the capability check: false when logged out or
	// when the (role, resource, action) triple is not in the table.
	CanPerformAction(action authorize.Action, resource authorize.Resource) bool
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type sessionStore struct {
	mu    sync.Mutex
	kv    kv.Store
	authz authorize.IAuthorization
	clock func() time.Time

	users     []model.User
	currentID string
}

type Option func(*sessionStore)

// WithClock overrides the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *sessionStore) { s.clock = clock }
}

// New reconstructs the store from storage, seeding the default roster when
// no users have ever been persisted.
func New(ctx context.Context, store kv.Store, authz authorize.IAuthorization, opts ...Option) (Service, error) {
	s := &sessionStore{
		kv:    store,
		authz: authz,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.users = kv.Read(ctx, store, SlotUsers, []model.User(nil))
	if len(s.users) == 0 {
		if err := s.seed(ctx); err != nil {
			return nil, err
		}
	}

	if id := kv.Read(ctx, store, SlotCurrentUser, (*string)(nil)); id != nil {
		if _, ok := s.findUser(*id); ok {
			s.currentID = *id
		}
	}

	return s, nil
}

func (s *sessionStore) seed(ctx context.Context) error {
	now := s.clock()
	for _, su := range model.DefaultUsers(now) {
		hash, err := password.Hash(su.Password)
		if err != nil {
			return err
		}
		u := su.User
		u.PasswordHash = hash
		s.users = append(s.users, u)
	}
	s.persistUsers(ctx)
	slog.Info("seeded default user roster", "users", len(s.users))
	return nil
}

func (s *sessionStore) Login(ctx context.Context, username, pass string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username && password.Match(u.PasswordHash, pass) {
			s.currentID = u.ID
			s.persistSession(ctx)
			return u, nil
		}
	}
	return model.User{}, ErrInvalidCredentials
}

func (s *sessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentID = ""
	s.persistSession(ctx)
}

func (s *sessionStore) CurrentUser() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentID == "" {
		return model.User{}, false
	}
	return s.findUser(s.currentID)
}

func (s *sessionStore) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *sessionStore) User(id string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findUser(id)
}

func (s *sessionStore) AddUser(ctx context.Context, req CreateUserRequest) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == req.Username {
			return model.User{}, ErrUsernameTaken
		}
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return model.User{}, err
	}

	u := model.User{
		ID:           ids.New(ids.PrefixUser),
		Username:     req.Username,
		PasswordHash: hash,
		DisplayName:  req.DisplayName,
		Role:         req.Role,
		CreatedAt:    s.clock(),
	}
	s.users = append(s.users, u)
	s.persistUsers(ctx)
	return u, nil
}

func (s *sessionStore) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		u := &s.users[i]
		if req.Username != nil {
			u.Username = *req.Username
		}
		if req.Password != nil {
			if hash, err := password.Hash(*req.Password); err == nil {
				u.PasswordHash = hash
			} else {
				slog.Error("password rehash failed, keeping previous hash", "user", id, "error", err)
			}
		}
		if req.DisplayName != nil {
			u.DisplayName = *req.DisplayName
		}
		if req.Role != nil {
			u.Role = *req.Role
		}
		s.persistUsers(ctx)
		return
	}
}

func (s *sessionStore) DeleteUser(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == s.currentID {
		return
	}

	kept := s.users[:0]
	removed := false
	for _, u := range s.users {
		if u.ID == id {
			removed = true
			continue
		}
		kept = append(kept, u)
	}
	s.users = kept
	if removed {
		s.persistUsers(ctx)
	}
}

func (s *sessionStore) CanPerformAction(action authorize.Action, resource authorize.Resource) bool {
	s.mu.Lock()
	u, ok := s.findUser(s.currentID)
	s.mu.Unlock()

	if !ok {
		return false
	}
	return s.authz.Can(authorize.Role(u.Role), resource, action)
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (s *sessionStore) findUser(id string) (model.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

// Persist failures are logged inside the kv adapter and degrade to stale
// storage; in-memory state stays authoritative for the session.
func (s *sessionStore) persistUsers(ctx context.Context) {
	_ = kv.Write(ctx, s.kv, SlotUsers, s.users)
}

func (s *sessionStore) persistSession(ctx context.Context) {
	var marker *string
	if s.currentID != "" {
		marker = &s.currentID
	}
	_ = kv.Write(ctx, s.kv, SlotCurrentUser, marker)
}
