package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mwhelan/tripmate/internal/domain"
)

// SaveUser upserts a user by id and rewrites the users file.
func (s *Store) SaveUser(u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	upsert(&s.users, u, func(x domain.User) uuid.UUID { return x.ID })
	s.persist(fileUsers, s.users)
	return nil
}

// GetUser retrieves a user by id.
// Returns domain.ErrNotFound if no user with that id exists.
func (s *Store) GetUser(id uuid.UUID) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("store.Store.GetUser: %w", domain.ErrNotFound)
}

// GetUserByEmail retrieves a user by email, compared case-insensitively.
// Returns domain.ErrNotFound if no user with that email exists.
func (s *Store) GetUserByEmail(email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("store.Store.GetUserByEmail: %w", domain.ErrNotFound)
}

// GetAllUsers returns a copy of the users collection.
func (s *Store) GetAllUsers() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.User(nil), s.users...)
}

// DeleteUser removes a user by id and rewrites the users file.
// Returns domain.ErrNotFound if no user with that id exists.
func (s *Store) DeleteUser(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !remove(&s.users, func(u domain.User) bool { return u.ID == id }) {
		return fmt.Errorf("store.Store.DeleteUser: %w", domain.ErrNotFound)
	}
	s.persist(fileUsers, s.users)
	return nil
}

// CurrentUser returns the logged-in user snapshot, or nil when logged out.
func (s *Store) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentUser == nil {
		return nil
	}
	u := *s.currentUser
	return &u
}

// SetCurrentUser replaces the current-user snapshot. Passing nil (logout)
// deletes the backing file instead of writing a null.
func (s *Store) SetCurrentUser(u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u == nil {
		s.currentUser = nil
		s.removeFile(fileCurrentUser)
		return nil
	}
	cp := *u
	s.currentUser = &cp
	s.persist(fileCurrentUser, cp)
	return nil
}

// SaveSession replaces the persisted session token.
func (s *Store) SaveSession(sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = &sess
	s.persist(fileSession, sess)
	return nil
}

// Session returns the persisted session.
// Returns domain.ErrNotFound when no session exists (logged out).
func (s *Store) Session() (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return domain.Session{}, fmt.Errorf("store.Store.Session: %w", domain.ErrNotFound)
	}
	return *s.session, nil
}

// ClearSession removes the persisted session and its backing file.
func (s *Store) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	s.removeFile(fileSession)
	return nil
}
