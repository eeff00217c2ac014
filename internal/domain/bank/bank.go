package bank

import (
	"strings"
	"time"

	"github.com/cassiomorais/upi-registry/internal/domain/errors"
)

// Bank is a participating bank. The ID is allocated from the per-code
// BANK_<CODE> counter (e.g. BSBI001).
type Bank struct {
	ID          string
	BankName    string
	BankCode    string
	IfscPrefix  string
	LogoURL     string
	UpiEnabled  bool
	ImpsEnabled bool
	NeftEnabled bool
	RtgsEnabled bool
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewBank(id, name, code, ifscPrefix string) (*Bank, error) {
	if id == "" {
		return nil, errors.NewValidationError("id", "cannot be empty")
	}
	if name == "" {
		return nil, errors.NewValidationError("bank_name", "cannot be empty")
	}
	if code == "" {
		return nil, errors.NewValidationError("bank_code", "cannot be empty")
	}
	if ifscPrefix == "" {
		return nil, errors.NewValidationError("ifsc_prefix", "cannot be empty")
	}

	now := time.Now()
	return &Bank{
		ID:          id,
		BankName:    strings.TrimSpace(name),
		BankCode:    strings.ToUpper(code),
		IfscPrefix:  strings.ToUpper(ifscPrefix),
		UpiEnabled:  true,
		ImpsEnabled: true,
		NeftEnabled: true,
		RtgsEnabled: true,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MatchesIfsc reports whether the full IFSC code belongs to this bank.
func (b *Bank) MatchesIfsc(ifscCode string) bool {
	return strings.HasPrefix(strings.ToUpper(ifscCode), b.IfscPrefix)
}
