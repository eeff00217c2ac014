package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	domainErrors "github.com/cassiomorais/upi-registry/internal/domain/errors"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	patterns := map[string]*regexp.Regexp{
		"indian_phone":   regexp.MustCompile(`^[6-9]\d{9}$`),
		"aadhaar":        regexp.MustCompile(`^[0-9]{12}$`),
		"pan":            regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`),
		"ifsc":           regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`),
		"ifsc_prefix":    regexp.MustCompile(`^[A-Z]{4}$`),
		"bank_code":      regexp.MustCompile(`^[A-Z0-9]+$`),
		"account_number": regexp.MustCompile(`^[0-9]+$`),
		"vpa_handle":     regexp.MustCompile(`^[a-zA-Z0-9._-]+$`),
	}
	for tag, re := range patterns {
		re := re
		v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		})
	}

	// 6-20 characters with at least one letter and one digit.
	v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) < 6 || len(s) > 20 {
			return false
		}
		var hasLetter, hasDigit bool
		for _, r := range s {
			switch {
			case unicode.IsLetter(r):
				hasLetter = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		return hasLetter && hasDigit
	})

	return v
}

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domainErrors.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{domainErrors.ErrBankNotFound, http.StatusNotFound, "BANK_NOT_FOUND"},
	{domainErrors.ErrAccountNotFound, http.StatusNotFound, "ACCOUNT_NOT_FOUND"},
	{domainErrors.ErrPspNotFound, http.StatusNotFound, "PSP_NOT_FOUND"},
	{domainErrors.ErrVpaNotFound, http.StatusNotFound, "VPA_NOT_FOUND"},
	{domainErrors.ErrDuplicateVpa, http.StatusConflict, "DUPLICATE_VPA"},
	{domainErrors.ErrDuplicateResource, http.StatusConflict, "DUPLICATE_RESOURCE"},
	{domainErrors.ErrInsufficientBalance, http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE"},
	{domainErrors.ErrAccountLimitReached, http.StatusUnprocessableEntity, "ACCOUNT_LIMIT_REACHED"},
	{domainErrors.ErrOwnershipMismatch, http.StatusBadRequest, "VALIDATION_ERROR"},
	{domainErrors.ErrIfscMismatch, http.StatusBadRequest, "VALIDATION_ERROR"},
	{domainErrors.ErrPasswordMismatch, http.StatusBadRequest, "VALIDATION_ERROR"},
	{domainErrors.ErrIncorrectPassword, http.StatusBadRequest, "INVALID_ARGUMENT"},
	{domainErrors.ErrInvalidAmount, http.StatusBadRequest, "INVALID_ARGUMENT"},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, APIResponse{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	resp := APIResponse{Success: false, Message: err.Error()}

	var validationErr *domainErrors.ValidationError
	if errors.As(err, &validationErr) {
		resp.ErrorCode = "VALIDATION_ERROR"
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			resp.ErrorCode = m.code
			writeJSON(w, m.status, resp)
			return
		}
	}

	var domainErr *domainErrors.DomainError
	if errors.As(err, &domainErr) {
		resp.ErrorCode = domainErr.Code
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	log.Error().Err(err).Msg("unhandled error in handler")
	resp.ErrorCode = "INTERNAL_ERROR"
	resp.Message = "internal server error"
	writeJSON(w, http.StatusInternalServerError, resp)
}

func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domainErrors.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return domainErrors.NewValidationError(ve[0].Field(), ve[0].Tag()+" validation failed")
		}
		return domainErrors.NewValidationError("body", err.Error())
	}
	return nil
}
