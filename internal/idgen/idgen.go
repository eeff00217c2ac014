// Package idgen produces the external identifiers used across the
// registry. Sequential IDs (users, banks, PSPs, VPAs) draw from named
// database counters; account IDs are derived deterministically from
// their owning user and bank.
package idgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/cassiomorais/upi-registry/internal/domain/bank"
)

const (
	userSeq    = "USER_SEQ"
	pspSeq     = "PSP_SEQ"
	vpaSeq     = "VPA_SEQ"
	bankSeqPre = "BANK_"

	userSeqStart = 100000
	vpaSeqStart  = 100000
	pspSeqStart  = 1
	bankSeqStart = 1
)

// SequenceAllocator hands out monotonically increasing values from a
// named counter. The first call for a name returns start. Callers must
// run it inside a transaction so the counter row stays locked until
// the allocated value is committed.
type SequenceAllocator interface {
	NextValue(ctx context.Context, name string, start int64) (int64, error)
}

// Generator formats registry identifiers on top of a SequenceAllocator.
type Generator struct {
	seq SequenceAllocator
}

func New(seq SequenceAllocator) *Generator {
	return &Generator{seq: seq}
}

// UserID returns the next user identifier (U100000, U100001, ...).
func (g *Generator) UserID(ctx context.Context) (string, error) {
	v, err := g.seq.NextValue(ctx, userSeq, userSeqStart)
	if err != nil {
		return "", fmt.Errorf("allocating user id: %w", err)
	}
	return fmt.Sprintf("U%d", v), nil
}

// BankID returns the next identifier for the given bank code. Each
// code owns its own counter, so BSBI001 is followed by BSBI002.
func (g *Generator) BankID(ctx context.Context, bankCode string) (string, error) {
	code := strings.ToUpper(bankCode)
	v, err := g.seq.NextValue(ctx, bankSeqPre+code, bankSeqStart)
	if err != nil {
		return "", fmt.Errorf("allocating bank id for %s: %w", code, err)
	}
	return fmt.Sprintf("B%s%03d", code, v), nil
}

// PspID returns the next PSP identifier (PSP001, PSP002, ...).
func (g *Generator) PspID(ctx context.Context) (string, error) {
	v, err := g.seq.NextValue(ctx, pspSeq, pspSeqStart)
	if err != nil {
		return "", fmt.Errorf("allocating psp id: %w", err)
	}
	return fmt.Sprintf("PSP%03d", v), nil
}

// VpaID returns the next VPA identifier (VPA100000, VPA100001, ...).
func (g *Generator) VpaID(ctx context.Context) (string, error) {
	v, err := g.seq.NextValue(ctx, vpaSeq, vpaSeqStart)
	if err != nil {
		return "", fmt.Errorf("allocating vpa id: %w", err)
	}
	return fmt.Sprintf("VPA%d", v), nil
}

var accountTypeShort = map[bank.AccountType]string{
	bank.TypeSavings:      "SAV",
	bank.TypeCurrent:      "CUR",
	bank.TypeSalary:       "SAL",
	bank.TypeNRI:          "NRI",
	bank.TypeFixedDeposit: "FD",
}

// AccountID derives an account identifier from the owning user, bank
// code and account type (A100001SBISAV). It needs no counter and is
// stable for the same inputs.
func AccountID(userID, bankCode string, accountType bank.AccountType) string {
	short, ok := accountTypeShort[accountType]
	if !ok {
		short = "ACC"
	}
	return "A" + strings.TrimPrefix(userID, "U") + strings.ToUpper(bankCode) + short
}
