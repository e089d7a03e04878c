package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"clinic-api/internal/apperror"
	"clinic-api/internal/logger"
	"clinic-api/internal/models"
	"clinic-api/internal/utils"

	"github.com/google/uuid"
)

type DBLayer interface {
	CreateBooking(booking models.Booking) error
	GetBookingByID(id string) (*models.Booking, error)
	ListBookingsByUser(userID string) ([]models.Booking, error)
	HasBookingsByUser(userID string) (bool, error)
	CreatePayment(payment models.Payment) error
	ListPaymentsByUser(userID string) ([]models.Payment, error)
}

type EventPublisher interface {
	PublishBookingCreated(booking models.Booking) error
	PublishPaymentCreated(payment models.Payment) error
}

type Service struct {
	DB     DBLayer
	Events EventPublisher
	Logger *logger.Logger
}

func NewService(db DBLayer, events EventPublisher, log *logger.Logger) *Service {
	return &Service{DB: db, Events: events, Logger: log}
}

// Checkout creates one pending booking per selected package and a single
// cash payment referencing the first booking, carrying the summed total.
// Bookings created before a failing insert are NOT rolled back; the store
// keeps them and staff reconcile manually. That window is accepted, not
// fixed here.
func (s *Service) Checkout(userID string, items []models.PackageItem) (*models.CheckoutResult, error) {
	v := &apperror.ValidationError{}
	if strings.TrimSpace(userID) == "" {
		v.Add("user_id", "User is required")
	}
	if len(items) == 0 {
		v.Add("items", "At least one package is required")
	}
	prices := make([]float64, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			v.Add(fmt.Sprintf("items[%d].name", i), "Package name is required")
			continue
		}
		price, err := strconv.ParseFloat(item.Price, 64)
		if err != nil {
			v.Add(fmt.Sprintf("items[%d].price", i), "Valid price is required")
			continue
		}
		prices[i] = price
	}
	if !v.Empty() {
		return nil, v
	}

	var total float64
	for _, price := range prices {
		total += price
	}

	now := time.Now().UTC()
	created := make([]models.Booking, 0, len(items))
	for i, item := range items {
		booking := models.Booking{
			ID:           uuid.NewString(),
			UserID:       userID,
			PackageName:  item.Name,
			PackagePrice: prices[i],
			Status:       models.BookingPending,
			CreatedAt:    now,
		}
		if err := s.DB.CreateBooking(booking); err != nil {
			s.Logger.Error("BOOKING", fmt.Sprintf("Checkout: failed to create booking for %q after %d of %d: %v",
				item.Name, len(created), len(items), err))
			return nil, &apperror.StoreError{Op: "create booking", Err: err}
		}
		created = append(created, booking)

		if err := s.Events.PublishBookingCreated(booking); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("Checkout: booking created event not published for %s", booking.ID))
		}
	}

	payment := models.Payment{
		ID:            utils.GeneratePaymentID(),
		BookingID:     created[0].ID,
		UserID:        userID,
		Amount:        total,
		PaymentMethod: "cash",
		Status:        models.PaymentPending,
		TransactionID: utils.GenerateTransactionID(),
		CreatedAt:     now,
	}
	if err := s.DB.CreatePayment(payment); err != nil {
		s.Logger.Error("PAYMENT", fmt.Sprintf("Checkout: payment insert failed, %d bookings remain pending: %v",
			len(created), err))
		return nil, &apperror.StoreError{Op: "create payment", Err: err}
	}
	s.Logger.LogPayment("CREATE", payment.ID, fmt.Sprintf("cash payment of %.2f for %d bookings", total, len(created)))

	if err := s.Events.PublishPaymentCreated(payment); err != nil {
		s.Logger.Warn("KAFKA", fmt.Sprintf("Checkout: payment created event not published for %s", payment.ID))
	}

	return &models.CheckoutResult{Bookings: created, Payment: payment}, nil
}

// HasOrders satisfies the session package's OrdersChecker.
func (s *Service) HasOrders(userID string) (bool, error) {
	return s.DB.HasBookingsByUser(userID)
}

func (s *Service) ListBookings(userID string) ([]models.Booking, error) {
	bookings, err := s.DB.ListBookingsByUser(userID)
	if err != nil {
		return nil, &apperror.StoreError{Op: "list bookings", Err: err}
	}
	return bookings, nil
}

func (s *Service) ListPayments(userID string) ([]models.Payment, error) {
	payments, err := s.DB.ListPaymentsByUser(userID)
	if err != nil {
		return nil, &apperror.StoreError{Op: "list payments", Err: err}
	}
	return payments, nil
}
