package vpa

import (
	"strings"
	"time"

	"github.com/cassiomorais/upi-registry/internal/domain/errors"
)

// Psp is a payment service provider owning a VPA handle namespace
// (e.g. okaxis, ybl). The ID is allocated from the PSP_SEQ counter.
type Psp struct {
	ID             string
	PspName        string
	PspHandle      string
	BankName       string
	BankIfscPrefix string
	LogoURL        string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewPsp(id, name, handle string) (*Psp, error) {
	if id == "" {
		return nil, errors.NewValidationError("id", "cannot be empty")
	}
	if name == "" {
		return nil, errors.NewValidationError("psp_name", "cannot be empty")
	}
	if handle == "" {
		return nil, errors.NewValidationError("psp_handle", "cannot be empty")
	}

	now := time.Now()
	return &Psp{
		ID:        id,
		PspName:   strings.TrimSpace(name),
		PspHandle: strings.ToLower(strings.TrimSpace(handle)),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
