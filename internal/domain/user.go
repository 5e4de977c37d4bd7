package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShareLocationMode controls when a user's live location is visible to
// fellow trip members.
type ShareLocationMode string

const (
	// ShareLocationOff disables location sharing entirely.
	ShareLocationOff ShareLocationMode = "off"
	// ShareLocationTrip shares location only while a trip is current.
	ShareLocationTrip ShareLocationMode = "trip"
	// ShareLocationAlways shares location whenever the app reports one.
	ShareLocationAlways ShareLocationMode = "always"
)

// Preferences holds per-user location-sharing settings.
// SharingDuration, when set, bounds how long sharing stays on;
// SharingExpiresAt is computed from it when the preference is saved.
type Preferences struct {
	ShareLocation           ShareLocationMode `json:"share_location"`
	ShowApproximateLocation bool              `json:"show_approximate_location"`
	SharingDuration         *time.Duration    `json:"sharing_duration,omitempty"`
	SharingExpiresAt        *time.Time        `json:"sharing_expires_at,omitempty"`
}

// SharingExpired reports whether a bounded sharing window has lapsed.
// Preferences without a duration never expire.
func (p Preferences) SharingExpired(now time.Time) bool {
	return p.SharingExpiresAt != nil && now.After(*p.SharingExpiresAt)
}

// WithSharingDuration returns a copy of the preferences bounded to d from
// now, with the expiry computed once at save time rather than re-derived
// on every read.
func (p Preferences) WithSharingDuration(d time.Duration, now time.Time) Preferences {
	expires := now.Add(d)
	p.SharingDuration = &d
	p.SharingExpiresAt = &expires
	return p
}

// User is an account holder. Email is unique case-insensitively, but the
// uniqueness is enforced only at signup time — the store itself accepts
// whatever it is given.
type User struct {
	ID           uuid.UUID   `json:"id"`
	FullName     string      `json:"full_name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"password_hash"`
	ProfileImage []byte      `json:"profile_image,omitempty"`
	Preferences  Preferences `json:"preferences"`
	CreatedAt    time.Time   `json:"created_at"`
}

// NewUser constructs a user with a fresh id and sharing turned off.
func NewUser(fullName, email, passwordHash string) User {
	return User{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		Preferences:  Preferences{ShareLocation: ShareLocationOff},
		CreatedAt:    time.Now().UTC(),
	}
}

// Session is the opaque credential issued at login/signup: a random token
// plus an absolute expiry. There is no refresh — expiry requires re-login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
