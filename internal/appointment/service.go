package appointment

import (
	"regexp"
	"strings"
	"time"

	"clinic-api/internal/apperror"
	"clinic-api/internal/models"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// dateLayouts accepted for the appointment date, fullest first.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

type DBLayer interface {
	CreateAppointment(appointment models.Appointment) error
	ListAppointments() ([]models.Appointment, error)
}

type Service struct {
	DB DBLayer
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db}
}

func (s *Service) Book(req models.AppointmentRequest) (*models.Appointment, error) {
	v := &apperror.ValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		v.Add("name", "Name is required")
	}
	if !emailPattern.MatchString(req.Email) {
		v.Add("email", "Valid email is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		v.Add("phone", "Phone is required")
	}
	date, dateErr := parseDate(req.Date)
	if dateErr != nil {
		v.Add("date", "Valid date is required")
	}
	if strings.TrimSpace(req.Service) == "" {
		v.Add("service", "Service is required")
	}
	if !v.Empty() {
		return nil, v
	}

	appointment := models.Appointment{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(req.Name),
		Email:           req.Email,
		Phone:           strings.TrimSpace(req.Phone),
		AppointmentDate: date,
		Service:         strings.TrimSpace(req.Service),
		Message:         req.Message,
		Status:          "pending",
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.DB.CreateAppointment(appointment); err != nil {
		return nil, &apperror.StoreError{Op: "save appointment", Err: err}
	}
	return &appointment, nil
}

func (s *Service) List() ([]models.Appointment, error) {
	appointments, err := s.DB.ListAppointments()
	if err != nil {
		return nil, &apperror.StoreError{Op: "list appointments", Err: err}
	}
	return appointments, nil
}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
