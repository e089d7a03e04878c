package appointment_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"clinic-api/internal/appointment"
	"clinic-api/internal/logger"
	"clinic-api/internal/models"
	"clinic-api/internal/utils"
)

type Handler struct {
	AppointmentService *appointment.Service
	Logger             *logger.Logger
}

func NewHandler(service *appointment.Service, log *logger.Logger) *Handler {
	return &Handler{AppointmentService: service, Logger: log}
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req models.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Request failed", "Invalid request body"))
		return
	}

	appt, err := h.AppointmentService.Book(req)
	if err != nil {
		h.Logger.Error("APPOINTMENT", fmt.Sprintf("Book: %v", err))
		utils.WriteError(w, err)
		return
	}

	h.Logger.Info("APPOINTMENT", fmt.Sprintf("Appointment booked: %s", appt.ID))
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Appointment booked successfully", appt))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.AppointmentService.List()
	if err != nil {
		h.Logger.Error("APPOINTMENT", fmt.Sprintf("List: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Appointments fetched", appointments))
}
