package controller

import (
	"math"
	"time"

	"github.com/cassiomorais/upi-registry/internal/domain/bank"
	"github.com/cassiomorais/upi-registry/internal/domain/user"
	"github.com/cassiomorais/upi-registry/internal/domain/vpa"
)

// --- Request DTOs ---
// HTTP/JSON shapes: float64 rupees for money, camelCase fields,
// validation tags. Controllers convert these to service inputs.

type RegisterUserRequest struct {
	FullName      string `json:"fullName" validate:"required,min=2,max=100"`
	Phone         string `json:"phone" validate:"required,indian_phone"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,password"`
	AadhaarNumber string `json:"aadhaarNumber" validate:"omitempty,aadhaar"`
	PanNumber     string `json:"panNumber" validate:"omitempty,pan"`
	DeviceID      string `json:"deviceId" validate:"omitempty,max=100"`
}

type UpdateUserRequest struct {
	FullName      string `json:"fullName" validate:"omitempty,min=2,max=100"`
	Email         string `json:"email" validate:"omitempty,email"`
	AadhaarNumber string `json:"aadhaarNumber" validate:"omitempty,aadhaar"`
	PanNumber     string `json:"panNumber" validate:"omitempty,pan"`
	DeviceID      string `json:"deviceId" validate:"omitempty,max=100"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type VerifyPasswordRequest struct {
	Phone    string `json:"phone" validate:"required,indian_phone"`
	Password string `json:"password" validate:"required"`
}

type KycRequest struct {
	KycVerified bool `json:"kycVerified"`
}

type RegisterBankRequest struct {
	BankName    string `json:"bankName" validate:"required,min=2,max=100"`
	BankCode    string `json:"bankCode" validate:"required,bank_code,min=3,max=10"`
	IfscPrefix  string `json:"ifscPrefix" validate:"required,ifsc_prefix"`
	LogoURL     string `json:"logoUrl" validate:"omitempty,url"`
	UpiEnabled  *bool  `json:"upiEnabled"`
	ImpsEnabled *bool  `json:"impsEnabled"`
	NeftEnabled *bool  `json:"neftEnabled"`
	RtgsEnabled *bool  `json:"rtgsEnabled"`
}

type LinkAccountRequest struct {
	UserID            string `json:"userId" validate:"required"`
	BankCode          string `json:"bankCode" validate:"required,bank_code,min=3,max=10"`
	AccountNumber     string `json:"accountNumber" validate:"required,account_number,min=9,max=18"`
	IfscCode          string `json:"ifscCode" validate:"required,ifsc"`
	AccountHolderName string `json:"accountHolderName" validate:"required,min=2,max=100"`
	AccountType       string `json:"accountType" validate:"required,oneof=SAVINGS CURRENT SALARY NRI FIXED_DEPOSIT"`
	IsPrimary         bool   `json:"isPrimary"`
}

type SetPrimaryRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type AmountRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type RegisterPspRequest struct {
	PspName        string `json:"pspName" validate:"required,min=2,max=100"`
	PspHandle      string `json:"pspHandle" validate:"required,vpa_handle,min=2,max=50"`
	BankName       string `json:"bankName" validate:"omitempty,max=100"`
	BankIfscPrefix string `json:"bankIfscPrefix" validate:"omitempty,ifsc_prefix"`
	LogoURL        string `json:"logoUrl" validate:"omitempty,url"`
}

type CreateVpaRequest struct {
	UserID          string `json:"userId" validate:"required"`
	VpaHandle       string `json:"vpaHandle" validate:"required,vpa_handle,min=3,max=50"`
	PspID           string `json:"pspId" validate:"required"`
	LinkedAccountID string `json:"linkedAccountId" validate:"required"`
	IsPrimary       bool   `json:"isPrimary"`
}

type VerifyVpaRequest struct {
	VpaAddress string `json:"vpaAddress" validate:"required,min=5,max=100"`
}

type LinkVpaAccountRequest struct {
	AccountID string `json:"accountId" validate:"required"`
}

// --- Response DTOs ---

type UserResponse struct {
	UserID        string     `json:"userId"`
	FullName      string     `json:"fullName"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	AadhaarNumber string     `json:"aadhaarNumber,omitempty"`
	PanNumber     string     `json:"panNumber,omitempty"`
	DeviceID      string     `json:"deviceId,omitempty"`
	KycVerified   bool       `json:"kycVerified"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
}

type BankResponse struct {
	BankID      string    `json:"bankId"`
	BankName    string    `json:"bankName"`
	BankCode    string    `json:"bankCode"`
	IfscPrefix  string    `json:"ifscPrefix"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	UpiEnabled  bool      `json:"upiEnabled"`
	ImpsEnabled bool      `json:"impsEnabled"`
	NeftEnabled bool      `json:"neftEnabled"`
	RtgsEnabled bool      `json:"rtgsEnabled"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type AccountResponse struct {
	AccountID         string    `json:"accountId"`
	UserID            string    `json:"userId"`
	BankID            string    `json:"bankId"`
	AccountNumber     string    `json:"accountNumber"`
	IfscCode          string    `json:"ifscCode"`
	AccountHolderName string    `json:"accountHolderName"`
	AccountType       string    `json:"accountType"`
	Balance           float64   `json:"balance"`
	IsPrimary         bool      `json:"isPrimary"`
	IsVerified        bool      `json:"isVerified"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type BalanceResponse struct {
	AccountID string  `json:"accountId"`
	Balance   float64 `json:"balance"`
}

type PspResponse struct {
	PspID          string    `json:"pspId"`
	PspName        string    `json:"pspName"`
	PspHandle      string    `json:"pspHandle"`
	BankName       string    `json:"bankName,omitempty"`
	BankIfscPrefix string    `json:"bankIfscPrefix,omitempty"`
	LogoURL        string    `json:"logoUrl,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type VpaResponse struct {
	VpaID           string    `json:"vpaId"`
	UserID          string    `json:"userId"`
	VpaHandle       string    `json:"vpaHandle"`
	PspID           string    `json:"pspId"`
	VpaAddress      string    `json:"vpaAddress"`
	LinkedAccountID string    `json:"linkedAccountId"`
	IsPrimary       bool      `json:"isPrimary"`
	IsVerified      bool      `json:"isVerified"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type VerificationResponse struct {
	VpaAddress        string `json:"vpaAddress"`
	Exists            bool   `json:"exists"`
	Active            bool   `json:"active"`
	AccountHolderName string `json:"accountHolderName,omitempty"`
	PspName           string `json:"pspName,omitempty"`
}

type AvailabilityResponse struct {
	VpaAddress string `json:"vpaAddress"`
	Available  bool   `json:"available"`
}

// --- Conversion helpers ---

func FromUser(u *user.User) *UserResponse {
	return &UserResponse{
		UserID:        u.ID,
		FullName:      u.FullName,
		Phone:         u.Phone,
		Email:         u.Email,
		AadhaarNumber: u.AadhaarNumber,
		PanNumber:     u.PanNumber,
		DeviceID:      u.DeviceID,
		KycVerified:   u.KycVerified,
		Active:        u.Active,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
		LastLoginAt:   u.LastLoginAt,
	}
}

func FromBank(b *bank.Bank) *BankResponse {
	return &BankResponse{
		BankID:      b.ID,
		BankName:    b.BankName,
		BankCode:    b.BankCode,
		IfscPrefix:  b.IfscPrefix,
		LogoURL:     b.LogoURL,
		UpiEnabled:  b.UpiEnabled,
		ImpsEnabled: b.ImpsEnabled,
		NeftEnabled: b.NeftEnabled,
		RtgsEnabled: b.RtgsEnabled,
		Active:      b.Active,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// FromAccount masks the account number; full numbers never leave the
// service.
func FromAccount(a *bank.Account) *AccountResponse {
	return &AccountResponse{
		AccountID:         a.ID,
		UserID:            a.UserID,
		BankID:            a.BankID,
		AccountNumber:     bank.MaskAccountNumber(a.AccountNumber),
		IfscCode:          a.IfscCode,
		AccountHolderName: a.AccountHolderName,
		AccountType:       string(a.AccountType),
		Balance:           paiseToFloat(a.Balance),
		IsPrimary:         a.IsPrimary,
		IsVerified:        a.IsVerified,
		Active:            a.Active,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func FromPsp(p *vpa.Psp) *PspResponse {
	return &PspResponse{
		PspID:          p.ID,
		PspName:        p.PspName,
		PspHandle:      p.PspHandle,
		BankName:       p.BankName,
		BankIfscPrefix: p.BankIfscPrefix,
		LogoURL:        p.LogoURL,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func FromVpa(v *vpa.Vpa) *VpaResponse {
	return &VpaResponse{
		VpaID:           v.ID,
		UserID:          v.UserID,
		VpaHandle:       v.VpaHandle,
		PspID:           v.PspID,
		VpaAddress:      v.VpaAddress,
		LinkedAccountID: v.LinkedAccountID,
		IsPrimary:       v.IsPrimary,
		IsVerified:      v.IsVerified,
		Active:          v.Active,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func FromVerification(v *vpa.Verification) *VerificationResponse {
	return &VerificationResponse{
		VpaAddress:        v.VpaAddress,
		Exists:            v.Exists,
		Active:            v.Active,
		AccountHolderName: v.AccountHolderName,
		PspName:           v.PspName,
	}
}

// floatToPaise converts a rupee amount to paise.
func floatToPaise(f float64) int64 {
	return int64(math.Round(f * 100))
}

// paiseToFloat converts paise to a rupee amount.
func paiseToFloat(paise int64) float64 {
	return float64(paise) / 100.0
}
