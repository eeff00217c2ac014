package user

import (
	"time"

	"github.com/cassiomorais/upi-registry/internal/domain/errors"
)

// User is a registered platform user. The ID is a human-readable string
// allocated from the USER_SEQ counter (e.g. U100001).
type User struct {
	ID            string
	FullName      string
	Phone         string
	Email         string
	PasswordHash  string
	AadhaarNumber string
	PanNumber     string
	DeviceID      string
	KycVerified   bool
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastLoginAt   *time.Time
}

func NewUser(id, fullName, phone, email, passwordHash string) (*User, error) {
	if id == "" {
		return nil, errors.NewValidationError("id", "cannot be empty")
	}
	if fullName == "" {
		return nil, errors.NewValidationError("full_name", "cannot be empty")
	}
	if phone == "" {
		return nil, errors.NewValidationError("phone", "cannot be empty")
	}
	if email == "" {
		return nil, errors.NewValidationError("email", "cannot be empty")
	}
	if passwordHash == "" {
		return nil, errors.NewValidationError("password_hash", "cannot be empty")
	}

	now := time.Now()
	return &User{
		ID:           id,
		FullName:     fullName,
		Phone:        phone,
		Email:        email,
		PasswordHash: passwordHash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
}

func (u *User) TouchLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}
