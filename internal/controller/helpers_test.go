package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/cassiomorais/upi-registry/internal/domain/errors"
)

func decodeBody(t *testing.T, body string, dst any) error {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	return decodeAndValidate(r, dst)
}

func TestRegisterUserRequestValidation(t *testing.T) {
	valid := `{"fullName":"Ravi Kumar","phone":"9876543210","email":"ravi@example.com","password":"secret1"}`
	var req RegisterUserRequest
	require.NoError(t, decodeBody(t, valid, &req))

	tests := []struct {
		name string
		body string
	}{
		{"phone not starting 6-9", `{"fullName":"Ravi Kumar","phone":"1876543210","email":"ravi@example.com","password":"secret1"}`},
		{"phone too short", `{"fullName":"Ravi Kumar","phone":"987654321","email":"ravi@example.com","password":"secret1"}`},
		{"bad email", `{"fullName":"Ravi Kumar","phone":"9876543210","email":"not-an-email","password":"secret1"}`},
		{"password without digit", `{"fullName":"Ravi Kumar","phone":"9876543210","email":"ravi@example.com","password":"secrets"}`},
		{"password without letter", `{"fullName":"Ravi Kumar","phone":"9876543210","email":"ravi@example.com","password":"1234567"}`},
		{"password too short", `{"fullName":"Ravi Kumar","phone":"9876543210","email":"ravi@example.com","password":"a1"}`},
		{"bad aadhaar", `{"fullName":"Ravi Kumar","phone":"9876543210","email":"ravi@example.com","password":"secret1","aadhaarNumber":"12345"}`},
		{"bad pan", `{"fullName":"Ravi Kumar","phone":"9876543210","email":"ravi@example.com","password":"secret1","panNumber":"ABCDE123"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var req RegisterUserRequest
			err := decodeBody(t, tc.body, &req)
			require.Error(t, err)
			var validationErr *domainErrors.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestRegisterUserRequestOptionalKycFields(t *testing.T) {
	body := `{"fullName":"Ravi Kumar","phone":"9876543210","email":"ravi@example.com","password":"secret1","aadhaarNumber":"123456789012","panNumber":"ABCDE1234F"}`
	var req RegisterUserRequest
	require.NoError(t, decodeBody(t, body, &req))
	assert.Equal(t, "123456789012", req.AadhaarNumber)
	assert.Equal(t, "ABCDE1234F", req.PanNumber)
}

func TestLinkAccountRequestValidation(t *testing.T) {
	valid := `{"userId":"U100001","bankCode":"SBI","accountNumber":"123456789012","ifscCode":"SBIN0001234","accountHolderName":"Ravi Kumar","accountType":"SAVINGS"}`
	var req LinkAccountRequest
	require.NoError(t, decodeBody(t, valid, &req))

	tests := []struct {
		name string
		body string
	}{
		{"ifsc missing zero", `{"userId":"U100001","bankCode":"SBI","accountNumber":"123456789012","ifscCode":"SBIN1001234","accountHolderName":"Ravi Kumar","accountType":"SAVINGS"}`},
		{"ifsc too short", `{"userId":"U100001","bankCode":"SBI","accountNumber":"123456789012","ifscCode":"SBIN01","accountHolderName":"Ravi Kumar","accountType":"SAVINGS"}`},
		{"account number with letters", `{"userId":"U100001","bankCode":"SBI","accountNumber":"12345678901A","ifscCode":"SBIN0001234","accountHolderName":"Ravi Kumar","accountType":"SAVINGS"}`},
		{"account number too short", `{"userId":"U100001","bankCode":"SBI","accountNumber":"12345678","ifscCode":"SBIN0001234","accountHolderName":"Ravi Kumar","accountType":"SAVINGS"}`},
		{"unknown account type", `{"userId":"U100001","bankCode":"SBI","accountNumber":"123456789012","ifscCode":"SBIN0001234","accountHolderName":"Ravi Kumar","accountType":"CHECKING"}`},
		{"lowercase bank code", `{"userId":"U100001","bankCode":"sbi","accountNumber":"123456789012","ifscCode":"SBIN0001234","accountHolderName":"Ravi Kumar","accountType":"SAVINGS"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var req LinkAccountRequest
			assert.Error(t, decodeBody(t, tc.body, &req))
		})
	}
}

func TestCreateVpaRequestValidation(t *testing.T) {
	valid := `{"userId":"U100001","vpaHandle":"ravi.kumar","pspId":"PSP001","linkedAccountId":"A100001SBISAV"}`
	var req CreateVpaRequest
	require.NoError(t, decodeBody(t, valid, &req))

	var bad CreateVpaRequest
	assert.Error(t, decodeBody(t, `{"userId":"U100001","vpaHandle":"ravi kumar","pspId":"PSP001","linkedAccountId":"A100001SBISAV"}`, &bad))
}

func TestAmountRequestValidation(t *testing.T) {
	var req AmountRequest
	require.NoError(t, decodeBody(t, `{"amount":250.50}`, &req))
	assert.Equal(t, int64(25050), floatToPaise(req.Amount))

	var zero AmountRequest
	assert.Error(t, decodeBody(t, `{"amount":0}`, &zero))

	var negative AmountRequest
	assert.Error(t, decodeBody(t, `{"amount":-10}`, &negative))
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	var req AmountRequest
	err := decodeBody(t, `{"amount":`, &req)
	require.Error(t, err)
	var validationErr *domainErrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"user not found", domainErrors.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"vpa not found", domainErrors.ErrVpaNotFound, http.StatusNotFound, "VPA_NOT_FOUND"},
		{"duplicate vpa", domainErrors.ErrDuplicateVpa, http.StatusConflict, "DUPLICATE_VPA"},
		{"duplicate resource", domainErrors.NewDuplicateError("user", "phone", "9876543210"), http.StatusConflict, "DUPLICATE_RESOURCE"},
		{"insufficient balance", &domainErrors.InsufficientBalanceError{AccountID: "A100001SBISAV", Requested: 500, Available: 100}, http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE"},
		{"validation", domainErrors.NewValidationError("phone", "required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"ownership mismatch", domainErrors.ErrOwnershipMismatch, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"invalid amount", domainErrors.ErrInvalidAmount, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"unexpected", assert.AnError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tc.wantCode, resp.ErrorCode)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, assert.AnError)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Message)
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(rec, http.StatusCreated, "user registered", map[string]string{"userId": "U100000"})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "user registered", resp.Message)
	require.NotNil(t, resp.Data)
}

func TestPaiseConversionRoundTrip(t *testing.T) {
	assert.Equal(t, int64(25050), floatToPaise(250.50))
	assert.Equal(t, int64(1), floatToPaise(0.01))
	assert.Equal(t, int64(10), floatToPaise(0.1))
	assert.Equal(t, 250.50, paiseToFloat(25050))
}
