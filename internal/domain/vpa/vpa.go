package vpa

import (
	"strings"
	"time"

	"github.com/cassiomorais/upi-registry/internal/domain/errors"
)

// Vpa is a virtual payment address, a human-facing alias (handle@psp)
// resolving to a linked bank account. The ID is allocated from the
// VPA_SEQ counter (e.g. VPA100001).
type Vpa struct {
	ID              string
	UserID          string
	VpaHandle       string
	PspID           string
	VpaAddress      string
	LinkedAccountID string
	IsPrimary       bool
	IsVerified      bool
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Address builds the wire form of a VPA from its handle and PSP handle.
func Address(handle, pspHandle string) string {
	return strings.ToLower(handle) + "@" + strings.ToLower(pspHandle)
}

func NewVpa(id, userID, handle string, psp *Psp, linkedAccountID string) (*Vpa, error) {
	if id == "" {
		return nil, errors.NewValidationError("id", "cannot be empty")
	}
	if userID == "" {
		return nil, errors.NewValidationError("user_id", "cannot be empty")
	}
	if handle == "" {
		return nil, errors.NewValidationError("vpa_handle", "cannot be empty")
	}
	if psp == nil {
		return nil, errors.NewValidationError("psp_id", "cannot be empty")
	}
	if linkedAccountID == "" {
		return nil, errors.NewValidationError("linked_account_id", "cannot be empty")
	}

	now := time.Now()
	return &Vpa{
		ID:              id,
		UserID:          userID,
		VpaHandle:       strings.ToLower(handle),
		PspID:           psp.ID,
		VpaAddress:      Address(handle, psp.PspHandle),
		LinkedAccountID: linkedAccountID,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Verification is the result of a VPA existence check. A lookup for an
// unknown address is not an error; it reports Exists=false.
type Verification struct {
	VpaAddress        string
	Exists            bool
	Active            bool
	AccountHolderName string
	PspName           string
}

// MaskName keeps the first letter of every word and hides the rest.
func MaskName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 1 {
			words[i] = string(r[0]) + strings.Repeat("*", len(r)-1)
		}
	}
	return strings.Join(words, " ")
}
