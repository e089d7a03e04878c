package admin_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"clinic-api/internal/admin"
	"clinic-api/internal/logger"
	"clinic-api/internal/models"
	"clinic-api/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	AdminService *admin.Service
	Logger       *logger.Logger

	// ContactList and UserList are the contact and user listing handlers,
	// re-exposed under /admin so every back-office view hangs off one group.
	ContactList http.HandlerFunc
	UserList    http.HandlerFunc
}

func NewHandler(service *admin.Service, log *logger.Logger, contactList, userList http.HandlerFunc) *Handler {
	return &Handler{AdminService: service, Logger: log, ContactList: contactList, UserList: userList}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/stats", h.Stats)
		r.Get("/bookings", h.ListBookings)
		r.Patch("/bookings/{id}/status", h.UpdateBookingStatus)
		r.Get("/payments", h.ListPayments)
		r.Get("/contacts", h.ListContacts)
		r.Get("/users", h.ListUsers)
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.AdminService.Stats(r.Context())
	if err != nil {
		h.Logger.Error("ADMIN", fmt.Sprintf("Stats: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Stats fetched", stats))
}

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.AdminService.ListBookings(r.Context())
	if err != nil {
		h.Logger.Error("ADMIN", fmt.Sprintf("ListBookings: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Bookings fetched", bookings))
}

func (h *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Request failed", "Invalid request body"))
		return
	}

	booking, err := h.AdminService.UpdateBookingStatus(r.Context(), id, req.Status)
	if err != nil {
		h.Logger.Error("ADMIN", fmt.Sprintf("UpdateBookingStatus %s -> %q: %v", id, req.Status, err))
		utils.WriteError(w, err)
		return
	}

	h.Logger.LogBooking("STATUS", booking.ID, fmt.Sprintf("status set to %s", booking.Status))
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Booking updated", booking))
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.AdminService.ListPayments(r.Context())
	if err != nil {
		h.Logger.Error("ADMIN", fmt.Sprintf("ListPayments: %v", err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Payments fetched", payments))
}

func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	if h.ContactList == nil {
		http.NotFound(w, r)
		return
	}
	h.ContactList(w, r)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if h.UserList == nil {
		http.NotFound(w, r)
		return
	}
	h.UserList(w, r)
}
