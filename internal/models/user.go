package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a supplied password does not match
// the stored hash.
var ErrInvalidCredentials = errors.New("invalid credentials")

// MaxPasswordLength is the longest password, in bytes, bcrypt accepts.
const MaxPasswordLength = 72

// ErrPasswordTooLong is returned for passwords over MaxPasswordLength bytes.
var ErrPasswordTooLong = fmt.Errorf("password must be at most %d bytes", MaxPasswordLength)

// HashCost is the bcrypt cost used for new password hashes.
var HashCost = bcrypt.DefaultCost

// User is an account that owns tasks.
// PasswordHash is persisted but never serialized.
type User struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex:idx_users_username;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

// NewUser creates a user with a fresh identifier and a hash of password.
func NewUser(username, password string) (*User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:           utils.NewID(),
		Username:     username,
		PasswordHash: hash,
	}, nil
}

// VerifyPassword reports whether candidate matches the stored password.
func (u *User) VerifyPassword(candidate string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(candidate)) == nil
}

// ChangePassword replaces the stored hash after verifying oldPassword.
// The stored hash is left untouched on any failure.
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	u.PasswordHash = hash
	return nil
}

func (u *User) String() string {
	return u.ID.String() + " " + u.Username
}

func hashPassword(password string) (string, error) {
	if len(password) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
