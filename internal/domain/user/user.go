// Package user holds the people who log tickets. Identity is asserted by
// the upstream session layer; a user is created on first login.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hotline-inc/hotline/internal/shared/biztime"
)

const maxUsernameLength = 64

// ErrNotFound is returned by repositories when no user matches.
var ErrNotFound = errors.New("user not found")

// ReservedUsername is the actor recorded by background jobs.
const ReservedUsername = "system"

type User struct {
	id        uint
	username  string
	lastLogin biztime.Instant
	createdAt biztime.Instant
}

// NewUser validates username and builds a user that has just logged in.
func NewUser(username string, now biztime.Instant) (*User, error) {
	username, err := NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	return &User{username: username, lastLogin: now, createdAt: now}, nil
}

func ReconstructUser(id uint, username string, lastLogin, createdAt biztime.Instant) *User {
	return &User{id: id, username: username, lastLogin: lastLogin, createdAt: createdAt}
}

// NormalizeUsername trims and validates a login name.
func NormalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", fmt.Errorf("username is required")
	}
	if len(username) > maxUsernameLength {
		return "", fmt.Errorf("username exceeds maximum length of %d characters", maxUsernameLength)
	}
	if strings.EqualFold(username, ReservedUsername) {
		return "", fmt.Errorf("username %q is reserved", username)
	}
	return username, nil
}

func (u *User) ID() uint { return u.id }

func (u *User) Username() string { return u.username }

func (u *User) LastLogin() biztime.Instant { return u.lastLogin }

func (u *User) CreatedAt() biztime.Instant { return u.createdAt }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// RecordLogin stamps the login time.
func (u *User) RecordLogin(now biztime.Instant) {
	u.lastLogin = now
}

// Repository defines the interface for user data operations
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdateLastLogin(ctx context.Context, u *User) error
}
