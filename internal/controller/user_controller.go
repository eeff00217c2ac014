package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cassiomorais/upi-registry/internal/service"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

func (h *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	u, err := h.userService.Register(r.Context(), service.RegisterUserInput{
		FullName:      req.FullName,
		Phone:         req.Phone,
		Email:         req.Email,
		Password:      req.Password,
		AadhaarNumber: req.AadhaarNumber,
		PanNumber:     req.PanNumber,
		DeviceID:      req.DeviceID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "user registered", FromUser(u))
}

func (h *UserController) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.userService.GetByID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "user found", FromUser(u))
}

func (h *UserController) GetByPhone(w http.ResponseWriter, r *http.Request) {
	u, err := h.userService.GetByPhone(r.Context(), chi.URLParam(r, "phone"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "user found", FromUser(u))
}

func (h *UserController) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	u, err := h.userService.Update(r.Context(), chi.URLParam(r, "userID"), service.UpdateUserInput{
		FullName:      req.FullName,
		Email:         req.Email,
		AadhaarNumber: req.AadhaarNumber,
		PanNumber:     req.PanNumber,
		DeviceID:      req.DeviceID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "user updated", FromUser(u))
}

func (h *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	err := h.userService.ChangePassword(r.Context(), chi.URLParam(r, "userID"),
		req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "password changed", nil)
}

func (h *UserController) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	var req VerifyPasswordRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	valid, err := h.userService.VerifyPassword(r.Context(), req.Phone, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "password verified", map[string]bool{"valid": valid})
}

func (h *UserController) CheckPhone(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")
	available, err := h.userService.CheckPhoneAvailable(r.Context(), phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "phone availability checked", map[string]any{
		"phone":     phone,
		"available": available,
	})
}

func (h *UserController) UpdateKyc(w http.ResponseWriter, r *http.Request) {
	var req KycRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID := chi.URLParam(r, "userID")
	if err := h.userService.SetKycVerified(r.Context(), userID, req.KycVerified); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "kyc status updated", nil)
}

func (h *UserController) RecordLogin(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.RecordLogin(r.Context(), chi.URLParam(r, "userID")); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "login recorded", nil)
}

func (h *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "user deleted", nil)
}
