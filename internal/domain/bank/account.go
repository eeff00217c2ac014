package bank

import (
	"strings"
	"time"

	"github.com/cassiomorais/upi-registry/internal/domain/errors"
)

// AccountType is the product type of a linked bank account.
type AccountType string

const (
	TypeSavings      AccountType = "SAVINGS"
	TypeCurrent      AccountType = "CURRENT"
	TypeSalary       AccountType = "SALARY"
	TypeNRI          AccountType = "NRI"
	TypeFixedDeposit AccountType = "FIXED_DEPOSIT"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case TypeSavings, TypeCurrent, TypeSalary, TypeNRI, TypeFixedDeposit:
		return true
	}
	return false
}

// Account is a user's linked bank account. Balance is held in paise.
// The ID is derived from the user sequence, bank code and account type
// (e.g. A100001SBISAV), not allocated from a counter.
type Account struct {
	ID                string
	UserID            string
	BankID            string
	AccountNumber     string
	IfscCode          string
	AccountHolderName string
	AccountType       AccountType
	Balance           int64
	IsPrimary         bool
	IsVerified        bool
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewAccount(id, userID, bankID, accountNumber, ifscCode, holderName string, accountType AccountType) (*Account, error) {
	if id == "" {
		return nil, errors.NewValidationError("id", "cannot be empty")
	}
	if userID == "" {
		return nil, errors.NewValidationError("user_id", "cannot be empty")
	}
	if bankID == "" {
		return nil, errors.NewValidationError("bank_id", "cannot be empty")
	}
	if accountNumber == "" {
		return nil, errors.NewValidationError("account_number", "cannot be empty")
	}
	if ifscCode == "" {
		return nil, errors.NewValidationError("ifsc_code", "cannot be empty")
	}
	if holderName == "" {
		return nil, errors.NewValidationError("account_holder_name", "cannot be empty")
	}
	if !accountType.Valid() {
		return nil, errors.NewValidationError("account_type", "unknown account type")
	}

	now := time.Now()
	return &Account{
		ID:                id,
		UserID:            userID,
		BankID:            bankID,
		AccountNumber:     accountNumber,
		IfscCode:          strings.ToUpper(ifscCode),
		AccountHolderName: strings.TrimSpace(holderName),
		AccountType:       accountType,
		Balance:           0,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// MaskAccountNumber hides all but the last four digits (XXXXXXXX9012).
// Strings shorter than five characters are returned unchanged.
func MaskAccountNumber(accountNumber string) string {
	if len(accountNumber) < 5 {
		return accountNumber
	}
	masked := len(accountNumber) - 4
	return strings.Repeat("X", masked) + accountNumber[masked:]
}
