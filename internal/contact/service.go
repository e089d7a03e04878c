package contact

import (
	"regexp"
	"strings"
	"time"

	"clinic-api/internal/apperror"
	"clinic-api/internal/models"

	"github.com/google/uuid"
)

// listCap bounds the admin listing; the form has no pagination.
const listCap = 100

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type DBLayer interface {
	CreateSubmission(submission models.ContactSubmission) error
	ListSubmissions(limit int) ([]models.ContactSubmission, error)
}

type EventPublisher interface {
	PublishContactSubmitted(submission models.ContactSubmission) error
}

type Service struct {
	DB     DBLayer
	Events EventPublisher
}

func NewService(db DBLayer, events EventPublisher) *Service {
	return &Service{DB: db, Events: events}
}

func (s *Service) Submit(req models.ContactRequest) (*models.ContactSubmission, error) {
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
	if strings.TrimSpace(req.Subject) == "" {
		v.Add("subject", "Subject is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		v.Add("message", "Message is required")
	}
	if !v.Empty() {
		return nil, v
	}

	submission := models.ContactSubmission{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Phone:     strings.TrimSpace(req.Phone),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.DB.CreateSubmission(submission); err != nil {
		return nil, &apperror.StoreError{Op: "save contact submission", Err: err}
	}

	// Best effort: the submission is saved either way.
	_ = s.Events.PublishContactSubmitted(submission)

	return &submission, nil
}

func (s *Service) List() ([]models.ContactSubmission, error) {
	submissions, err := s.DB.ListSubmissions(listCap)
	if err != nil {
		return nil, &apperror.StoreError{Op: "list contact submissions", Err: err}
	}
	return submissions, nil
}
