package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cassiomorais/upi-registry/internal/domain/bank"
	"github.com/cassiomorais/upi-registry/internal/service"
)

type AccountController struct {
	accountService *service.AccountService
}

func NewAccountController(accountService *service.AccountService) *AccountController {
	return &AccountController{accountService: accountService}
}

func (h *AccountController) Link(w http.ResponseWriter, r *http.Request) {
	var req LinkAccountRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	a, err := h.accountService.Link(r.Context(), service.LinkAccountInput{
		UserID:            req.UserID,
		BankCode:          req.BankCode,
		AccountNumber:     req.AccountNumber,
		IfscCode:          req.IfscCode,
		AccountHolderName: req.AccountHolderName,
		AccountType:       bank.AccountType(req.AccountType),
		IsPrimary:         req.IsPrimary,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "bank account linked", FromAccount(a))
}

func (h *AccountController) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.accountService.GetByID(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "account found", FromAccount(a))
}

func (h *AccountController) ListByUser(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.ListByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]*AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, FromAccount(a))
	}
	writeSuccess(w, http.StatusOK, "accounts retrieved", resp)
}

func (h *AccountController) GetPrimary(w http.ResponseWriter, r *http.Request) {
	a, err := h.accountService.GetPrimary(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "primary account found", FromAccount(a))
}

func (h *AccountController) SetPrimary(w http.ResponseWriter, r *http.Request) {
	var req SetPrimaryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.accountService.SetPrimary(r.Context(), req.UserID, chi.URLParam(r, "accountID")); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "primary account updated", nil)
}

func (h *AccountController) GetBalance(w http.ResponseWriter, r *http.Request) {
	a, err := h.accountService.GetByID(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "balance retrieved", BalanceResponse{
		AccountID: a.ID,
		Balance:   paiseToFloat(a.Balance),
	})
}

func (h *AccountController) Credit(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	a, err := h.accountService.Credit(r.Context(), chi.URLParam(r, "accountID"), floatToPaise(req.Amount))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "account credited", FromAccount(a))
}

func (h *AccountController) Debit(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	a, err := h.accountService.Debit(r.Context(), chi.URLParam(r, "accountID"), floatToPaise(req.Amount))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "account debited", FromAccount(a))
}

func (h *AccountController) Verify(w http.ResponseWriter, r *http.Request) {
	if err := h.accountService.MarkVerified(r.Context(), chi.URLParam(r, "accountID")); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "account verified", nil)
}

func (h *AccountController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.accountService.Delete(r.Context(), chi.URLParam(r, "accountID")); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "account deleted", nil)
}
