package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cassiomorais/upi-registry/internal/service"
)

type VpaController struct {
	vpaService *service.VpaService
}

func NewVpaController(vpaService *service.VpaService) *VpaController {
	return &VpaController{vpaService: vpaService}
}

func (h *VpaController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateVpaRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	v, err := h.vpaService.Create(r.Context(), service.CreateVpaInput{
		UserID:          req.UserID,
		VpaHandle:       req.VpaHandle,
		PspID:           req.PspID,
		LinkedAccountID: req.LinkedAccountID,
		IsPrimary:       req.IsPrimary,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "vpa created", FromVpa(v))
}

func (h *VpaController) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.vpaService.GetByID(r.Context(), chi.URLParam(r, "vpaID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "vpa found", FromVpa(v))
}

func (h *VpaController) GetByAddress(w http.ResponseWriter, r *http.Request) {
	v, err := h.vpaService.GetByAddress(r.Context(), chi.URLParam(r, "vpaAddress"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "vpa found", FromVpa(v))
}

func (h *VpaController) ListByUser(w http.ResponseWriter, r *http.Request) {
	vpas, err := h.vpaService.ListByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]*VpaResponse, 0, len(vpas))
	for _, v := range vpas {
		resp = append(resp, FromVpa(v))
	}
	writeSuccess(w, http.StatusOK, "vpas retrieved", resp)
}

func (h *VpaController) GetPrimary(w http.ResponseWriter, r *http.Request) {
	v, err := h.vpaService.GetPrimary(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "primary vpa found", FromVpa(v))
}

// Verify resolves an address for pre-payment checks. Unknown addresses
// are a successful response with exists=false, not an error.
func (h *VpaController) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyVpaRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.vpaService.Verify(r.Context(), req.VpaAddress)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "vpa verification completed", FromVerification(result))
}

func (h *VpaController) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "vpaAddress")
	available, err := h.vpaService.CheckAvailability(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "availability checked", AvailabilityResponse{
		VpaAddress: address,
		Available:  available,
	})
}

func (h *VpaController) SetPrimary(w http.ResponseWriter, r *http.Request) {
	var req SetPrimaryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.vpaService.SetPrimary(r.Context(), req.UserID, chi.URLParam(r, "vpaID")); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "primary vpa updated", nil)
}

func (h *VpaController) LinkAccount(w http.ResponseWriter, r *http.Request) {
	var req LinkVpaAccountRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.vpaService.LinkAccount(r.Context(), chi.URLParam(r, "vpaID"), req.AccountID); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "vpa linked account updated", nil)
}

func (h *VpaController) MarkVerified(w http.ResponseWriter, r *http.Request) {
	if err := h.vpaService.MarkVerified(r.Context(), chi.URLParam(r, "vpaID")); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "vpa verified", nil)
}

func (h *VpaController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.vpaService.Delete(r.Context(), chi.URLParam(r, "vpaID")); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "vpa deleted", nil)
}
