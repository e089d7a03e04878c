package booking_api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"clinic-api/internal/booking"
	"clinic-api/internal/logger"
	"clinic-api/internal/models"
	"clinic-api/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	BookingService *booking.Service
	Logger         *logger.Logger
}

func NewHandler(service *booking.Service, log *logger.Logger) *Handler {
	return &Handler{BookingService: service, Logger: log}
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Request failed", "Invalid request body"))
		return
	}

	result, err := h.BookingService.Checkout(req.UserID, req.Items)
	if err != nil {
		h.Logger.Error("BOOKING", fmt.Sprintf("Checkout for user %s: %v", req.UserID, err))
		utils.WriteError(w, err)
		return
	}

	h.Logger.LogBooking("CHECKOUT", result.Payment.BookingID,
		fmt.Sprintf("%d bookings, payment %s", len(result.Bookings), result.Payment.ID))
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Booking placed successfully", result))
}

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Request failed", "user_id is required"))
		return
	}

	bookings, err := h.BookingService.ListBookings(userID)
	if err != nil {
		h.Logger.Error("BOOKING", fmt.Sprintf("ListBookings for user %s: %v", userID, err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Bookings fetched", bookings))
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Request failed", "user_id is required"))
		return
	}

	payments, err := h.BookingService.ListPayments(userID)
	if err != nil {
		h.Logger.Error("PAYMENT", fmt.Sprintf("ListPayments for user %s: %v", userID, err))
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Payments fetched", payments))
}

func (h *Handler) ConfirmationQR(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingId")

	png, err := h.BookingService.ConfirmationQR(bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Error("BOOKING", fmt.Sprintf("ConfirmationQR %s: %v", bookingID, err))
		http.Error(w, "Could not generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
