package testutil

import (
	"time"

	"github.com/cassiomorais/upi-registry/internal/domain/bank"
	"github.com/cassiomorais/upi-registry/internal/domain/user"
	"github.com/cassiomorais/upi-registry/internal/domain/vpa"
)

func NewTestUser(id, phone string) *user.User {
	now := time.Now()
	return &user.User{
		ID:           id,
		FullName:     "Ravi Kumar",
		Phone:        phone,
		Email:        id + "@example.com",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func NewTestBank(id, name, code, ifscPrefix string) *bank.Bank {
	now := time.Now()
	return &bank.Bank{
		ID:          id,
		BankName:    name,
		BankCode:    code,
		IfscPrefix:  ifscPrefix,
		UpiEnabled:  true,
		ImpsEnabled: true,
		NeftEnabled: true,
		RtgsEnabled: true,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func NewTestAccount(id, userID, bankID string, balancePaise int64) *bank.Account {
	now := time.Now()
	return &bank.Account{
		ID:                id,
		UserID:            userID,
		BankID:            bankID,
		AccountNumber:     "123456789012",
		IfscCode:          "SBIN0001234",
		AccountHolderName: "Ravi Kumar",
		AccountType:       bank.TypeSavings,
		Balance:           balancePaise,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func NewTestPsp(id, name, handle string) *vpa.Psp {
	now := time.Now()
	return &vpa.Psp{
		ID:        id,
		PspName:   name,
		PspHandle: handle,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestVpa(id, userID, handle, pspID, pspHandle, accountID string) *vpa.Vpa {
	now := time.Now()
	return &vpa.Vpa{
		ID:              id,
		UserID:          userID,
		VpaHandle:       handle,
		PspID:           pspID,
		VpaAddress:      vpa.Address(handle, pspHandle),
		LinkedAccountID: accountID,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
