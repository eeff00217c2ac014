package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cassiomorais/upi-registry/internal/domain/bank"
	"github.com/cassiomorais/upi-registry/internal/service"
)

type BankController struct {
	bankService *service.BankService
}

func NewBankController(bankService *service.BankService) *BankController {
	return &BankController{bankService: bankService}
}

func (h *BankController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterBankRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	b, err := h.bankService.Register(r.Context(), service.RegisterBankInput{
		BankName:    req.BankName,
		BankCode:    req.BankCode,
		IfscPrefix:  req.IfscPrefix,
		LogoURL:     req.LogoURL,
		UpiEnabled:  req.UpiEnabled,
		ImpsEnabled: req.ImpsEnabled,
		NeftEnabled: req.NeftEnabled,
		RtgsEnabled: req.RtgsEnabled,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "bank registered", FromBank(b))
}

func (h *BankController) List(w http.ResponseWriter, r *http.Request) {
	banks, err := h.bankService.ListActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "banks retrieved", banksResponse(banks))
}

func (h *BankController) ListUpiEnabled(w http.ResponseWriter, r *http.Request) {
	banks, err := h.bankService.ListUpiEnabled(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "upi enabled banks retrieved", banksResponse(banks))
}

func (h *BankController) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.bankService.GetByID(r.Context(), chi.URLParam(r, "bankID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "bank found", FromBank(b))
}

func (h *BankController) GetByCode(w http.ResponseWriter, r *http.Request) {
	b, err := h.bankService.GetByCode(r.Context(), chi.URLParam(r, "bankCode"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "bank found", FromBank(b))
}

func banksResponse(banks []*bank.Bank) []*BankResponse {
	resp := make([]*BankResponse, 0, len(banks))
	for _, b := range banks {
		resp = append(resp, FromBank(b))
	}
	return resp
}
