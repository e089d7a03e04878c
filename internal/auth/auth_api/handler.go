package auth_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"clinic-api/internal/auth"
	"clinic-api/internal/logger"
	"clinic-api/internal/models"
	"clinic-api/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	AuthService *auth.Service
	Logger      *logger.Logger
}

func NewHandler(service *auth.Service, log *logger.Logger) *Handler {
	return &Handler{AuthService: service, Logger: log}
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("AUTH", fmt.Sprintf("Signup: invalid request body: %v", err))
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Request failed", "Invalid request body"))
		return
	}

	account, err := h.AuthService.Signup(req)
	if err != nil {
		h.Logger.Warn("AUTH", fmt.Sprintf("Signup failed for mobile ending %s: %v", lastDigits(req.Mobile), err))
		utils.WriteError(w, err)
		return
	}

	h.Logger.Info("AUTH", fmt.Sprintf("Account created: %s", account.ID))
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Account created successfully", account))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("AUTH", fmt.Sprintf("Login: invalid request body: %v", err))
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Request failed", "Invalid request body"))
		return
	}

	account, err := h.AuthService.Login(req)
	if err != nil {
		h.Logger.Warn("AUTH", fmt.Sprintf("Login failed for mobile ending %s", lastDigits(req.Mobile)))
		utils.WriteError(w, err)
		return
	}

	h.Logger.Info("AUTH", fmt.Sprintf("Login successful: %s", account.ID))
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Login successful", account))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Request failed", "Invalid request body"))
		return
	}

	account, err := h.AuthService.UpdateProfile(id, req)
	if err != nil {
		h.Logger.Error("AUTH", fmt.Sprintf("UpdateProfile %s: %v", id, err))
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Profile updated", account))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.AuthService.ListAccounts()
	if err != nil {
		h.Logger.Error("AUTH", fmt.Sprintf("ListUsers: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Users fetched", accounts))
}

// lastDigits avoids logging full mobile numbers.
func lastDigits(mobile string) string {
	if len(mobile) <= 4 {
		return mobile
	}
	return mobile[len(mobile)-4:]
}
