package contact_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"clinic-api/internal/contact"
	"clinic-api/internal/logger"
	"clinic-api/internal/models"
	"clinic-api/internal/utils"
)

type Handler struct {
	ContactService *contact.Service
	Logger         *logger.Logger
}

func NewHandler(service *contact.Service, log *logger.Logger) *Handler {
	return &Handler{ContactService: service, Logger: log}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Request failed", "Invalid request body"))
		return
	}

	submission, err := h.ContactService.Submit(req)
	if err != nil {
		h.Logger.Error("CONTACT", fmt.Sprintf("Submit: %v", err))
		utils.WriteError(w, err)
		return
	}

	h.Logger.Info("CONTACT", fmt.Sprintf("Submission created: %s", submission.ID))
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Contact form submitted successfully", submission))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.ContactService.List()
	if err != nil {
		h.Logger.Error("CONTACT", fmt.Sprintf("List: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Contact submissions fetched", submissions))
}
