package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cassiomorais/upi-registry/internal/service"
)

type PspController struct {
	pspService *service.PspService
}

func NewPspController(pspService *service.PspService) *PspController {
	return &PspController{pspService: pspService}
}

func (h *PspController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterPspRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.pspService.Register(r.Context(), service.RegisterPspInput{
		PspName:        req.PspName,
		PspHandle:      req.PspHandle,
		BankName:       req.BankName,
		BankIfscPrefix: req.BankIfscPrefix,
		LogoURL:        req.LogoURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "psp registered", FromPsp(p))
}

func (h *PspController) List(w http.ResponseWriter, r *http.Request) {
	psps, err := h.pspService.ListActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]*PspResponse, 0, len(psps))
	for _, p := range psps {
		resp = append(resp, FromPsp(p))
	}
	writeSuccess(w, http.StatusOK, "psps retrieved", resp)
}

func (h *PspController) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.pspService.GetByID(r.Context(), chi.URLParam(r, "pspID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "psp found", FromPsp(p))
}

func (h *PspController) GetByHandle(w http.ResponseWriter, r *http.Request) {
	p, err := h.pspService.GetByHandle(r.Context(), chi.URLParam(r, "pspHandle"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "psp found", FromPsp(p))
}
