// Package auth implements signup, login, and session management on top of
// the store's user and session slots. Passwords are hashed with bcrypt;
// sessions are an opaque random token with a fixed expiry window and no
// refresh — an expired session simply requires logging in again.
package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mwhelan/tripmate/internal/domain"
)

// UserStore defines the store operations the auth service depends on.
// Defining the interface here (in the consumer package) lets tests inject
// a double without touching the file-backed store; *store.Store satisfies
// it as-is.
type UserStore interface {
	GetUserByEmail(email string) (domain.User, error)
	SaveUser(u domain.User) error
	CurrentUser() *domain.User
	SetCurrentUser(u *domain.User) error
	SaveSession(s domain.Session) error
	Session() (domain.Session, error)
	ClearSession() error
}

// MinPasswordLength is the shortest password SignUp accepts.
const MinPasswordLength = 6

// emailRe is a deliberately loose shape check: something, an @, something,
// a dot, something. Real deliverability is not this layer's problem.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Service implements the auth operations.
type Service struct {
	store      UserStore
	sessionTTL time.Duration
	bcryptCost int
}

// NewService constructs an auth Service. sessionTTL is the fixed window
// from issuance to expiry; bcryptCost ≤ 0 falls back to bcrypt's default.
func NewService(store UserStore, sessionTTL time.Duration, bcryptCost int) *Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{store: store, sessionTTL: sessionTTL, bcryptCost: bcryptCost}
}

// SignUp validates the input, creates the user, and establishes a session.
// Rules: non-blank name, plausibly shaped email, password of at least
// MinPasswordLength characters, and an email not already registered
// (compared case-insensitively).
func (s *Service) SignUp(fullName, email, password string) (domain.User, error) {
	if strings.TrimSpace(fullName) == "" {
		return domain.User{}, fmt.Errorf("%w: full name is required", domain.ErrValidation)
	}
	email = strings.TrimSpace(email)
	if !emailRe.MatchString(email) {
		return domain.User{}, fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLength)
	}

	if _, err := s.store.GetUserByEmail(email); err == nil {
		return domain.User{}, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, fmt.Errorf("auth.Service.SignUp: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("auth.Service.SignUp: hash: %w", err)
	}

	user := domain.NewUser(strings.TrimSpace(fullName), email, string(hash))
	if err := s.store.SaveUser(user); err != nil {
		return domain.User{}, fmt.Errorf("auth.Service.SignUp: %w", err)
	}
	if err := s.establishSession(user); err != nil {
		return domain.User{}, fmt.Errorf("auth.Service.SignUp: %w", err)
	}
	return user, nil
}

// Login authenticates by email (case-insensitive) and password and
// establishes a session. Any miss — unknown email or wrong password —
// returns the same domain.ErrInvalidCredentials, so a caller cannot
// probe which emails are registered.
func (s *Service) Login(email, password string) (domain.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.store.GetUserByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("auth.Service.Login: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	if err := s.establishSession(user); err != nil {
		return domain.User{}, fmt.Errorf("auth.Service.Login: %w", err)
	}
	return user, nil
}

// Logout clears the current-user slot and the session token.
func (s *Service) Logout() error {
	if err := s.store.SetCurrentUser(nil); err != nil {
		return fmt.Errorf("auth.Service.Logout: %w", err)
	}
	if err := s.store.ClearSession(); err != nil {
		return fmt.Errorf("auth.Service.Logout: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether there is a logged-in user with an
// unexpired session. Both halves are required: a lingering current-user
// snapshot with an expired token does not count.
func (s *Service) IsAuthenticated() bool {
	if s.store.CurrentUser() == nil {
		return false
	}
	sess, err := s.store.Session()
	if err != nil {
		return false
	}
	return !sess.Expired(time.Now().UTC())
}

// CurrentUser returns the logged-in user, or nil when logged out.
func (s *Service) CurrentUser() *domain.User {
	return s.store.CurrentUser()
}

// establishSession stores the user as current and issues a fresh opaque
// token expiring one sessionTTL from now.
func (s *Service) establishSession(user domain.User) error {
	if err := s.store.SetCurrentUser(&user); err != nil {
		return err
	}
	return s.store.SaveSession(domain.Session{
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	})
}
