package service

import "github.com/cassiomorais/upi-registry/internal/domain/bank"

type RegisterUserInput struct {
	FullName      string
	Phone         string
	Email         string
	Password      string
	AadhaarNumber string
	PanNumber     string
	DeviceID      string
}

// UpdateUserInput carries profile fields to replace. Empty fields are
// left unchanged.
type UpdateUserInput struct {
	FullName      string
	Email         string
	AadhaarNumber string
	PanNumber     string
	DeviceID      string
}

type RegisterBankInput struct {
	BankName    string
	BankCode    string
	IfscPrefix  string
	LogoURL     string
	UpiEnabled  *bool
	ImpsEnabled *bool
	NeftEnabled *bool
	RtgsEnabled *bool
}

type LinkAccountInput struct {
	UserID            string
	BankCode          string
	AccountNumber     string
	IfscCode          string
	AccountHolderName string
	AccountType       bank.AccountType
	IsPrimary         bool
}

type RegisterPspInput struct {
	PspName        string
	PspHandle      string
	BankName       string
	BankIfscPrefix string
	LogoURL        string
}

type CreateVpaInput struct {
	UserID          string
	VpaHandle       string
	PspID           string
	LinkedAccountID string
	IsPrimary       bool
}
