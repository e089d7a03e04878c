package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"clinic-api/internal/apperror"
	"clinic-api/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User-facing messages. Unknown mobile and wrong password share one string
// so the responses are byte-identical and account existence cannot be
// probed.
const (
	MsgInvalidCredentials = "Invalid mobile number or password"
	MsgNoPasswordSet      = "This account does not have a password set. Please sign up again to set a password."
	MsgAccountExists      = "User with this mobile number already exists"

	msgMobileInvalid   = "Valid 10-digit mobile number required"
	msgPasswordTooWeak = "Password must be at least 6 characters long"
	msgPasswordMissing = "Password is required"
	msgNameEmpty       = "Name cannot be empty"
	msgEmailInvalid    = "Valid email is required"
)

var (
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type DBLayer interface {
	GetAccountByMobile(mobile string) (*models.Account, error)
	GetAccountByID(id string) (*models.Account, error)
	CreateAccount(account models.Account) error
	UpdateAccountFields(id string, updates map[string]interface{}) error
	ListAccounts() ([]models.Account, error)
}

type Service struct {
	DB DBLayer
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db}
}

// Signup creates an account for a mobile number not already registered. The
// pre-insert existence check is an optimization; the store's unique
// constraint is the real enforcement point, so an insert-time violation
// from a racing signup maps to the same conflict.
func (s *Service) Signup(req models.SignupRequest) (*models.Account, error) {
	v := &apperror.ValidationError{}
	if !mobilePattern.MatchString(strings.TrimSpace(req.Mobile)) {
		v.Add("mobile", msgMobileInvalid)
	}
	if len(req.Password) < 6 {
		v.Add("password", msgPasswordTooWeak)
	}
	if req.Name != "" && strings.TrimSpace(req.Name) == "" {
		v.Add("name", msgNameEmpty)
	}
	if req.Email != "" && !emailPattern.MatchString(req.Email) {
		v.Add("email", msgEmailInvalid)
	}
	if !v.Empty() {
		return nil, v
	}

	mobile := strings.TrimSpace(req.Mobile)
	existing, err := s.DB.GetAccountByMobile(mobile)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, &apperror.StoreError{Op: "check existing account", Err: err}
	}
	if existing != nil {
		return nil, &apperror.ConflictError{Message: MsgAccountExists}
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, &apperror.StoreError{Op: "hash password", Err: err}
	}

	account := models.Account{
		ID:           uuid.NewString(),
		Mobile:       mobile,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.DB.CreateAccount(account); err != nil {
		if isUniqueViolation(err) {
			return nil, &apperror.ConflictError{Message: MsgAccountExists}
		}
		return nil, &apperror.StoreError{Op: "create account", Err: err}
	}

	account.PasswordHash = ""
	return &account, nil
}

// Login authenticates a mobile/password pair and returns the account with
// the credential stripped.
func (s *Service) Login(req models.LoginRequest) (*models.Account, error) {
	v := &apperror.ValidationError{}
	if !mobilePattern.MatchString(strings.TrimSpace(req.Mobile)) {
		v.Add("mobile", msgMobileInvalid)
	}
	if req.Password == "" {
		v.Add("password", msgPasswordMissing)
	}
	if !v.Empty() {
		return nil, v
	}

	account, err := s.DB.GetAccountByMobile(strings.TrimSpace(req.Mobile))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &apperror.AuthenticationError{Message: MsgInvalidCredentials}
	}
	if err != nil {
		return nil, &apperror.StoreError{Op: "fetch account", Err: err}
	}

	// Legacy rows created before password hashes existed.
	if account.PasswordHash == "" {
		return nil, &apperror.AuthenticationError{Message: MsgNoPasswordSet}
	}

	ok, err := VerifyPassword(req.Password, account.PasswordHash)
	if err != nil || !ok {
		return nil, &apperror.AuthenticationError{Message: MsgInvalidCredentials}
	}

	account.PasswordHash = ""
	return account, nil
}

// UpdateProfile applies a partial update to name, email, or mobile with the
// same field rules as signup.
func (s *Service) UpdateProfile(id string, req models.ProfileUpdateRequest) (*models.Account, error) {
	v := &apperror.ValidationError{}
	if req.Mobile != nil && !mobilePattern.MatchString(*req.Mobile) {
		v.Add("mobile", "Mobile number must be 10 digits")
	}
	if req.Email != nil && *req.Email != "" && !emailPattern.MatchString(*req.Email) {
		v.Add("email", "Invalid email format")
	}
	if !v.Empty() {
		return nil, v
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			updates["name"] = nil
		} else {
			updates["name"] = *req.Name
		}
	}
	if req.Email != nil {
		if *req.Email == "" {
			updates["email"] = nil
		} else {
			updates["email"] = *req.Email
		}
	}
	if req.Mobile != nil {
		updates["mobile"] = *req.Mobile
	}
	if len(updates) == 0 {
		return s.getPublicAccount(id)
	}

	if err := s.DB.UpdateAccountFields(id, updates); err != nil {
		if isUniqueViolation(err) {
			return nil, &apperror.ConflictError{Message: MsgAccountExists}
		}
		return nil, &apperror.StoreError{Op: "update account", Err: err}
	}
	return s.getPublicAccount(id)
}

func (s *Service) ListAccounts() ([]models.Account, error) {
	accounts, err := s.DB.ListAccounts()
	if err != nil {
		return nil, &apperror.StoreError{Op: "list accounts", Err: err}
	}
	for i := range accounts {
		accounts[i].PasswordHash = ""
	}
	return accounts, nil
}

func (s *Service) getPublicAccount(id string) (*models.Account, error) {
	account, err := s.DB.GetAccountByID(id)
	if err != nil {
		return nil, &apperror.StoreError{Op: fmt.Sprintf("fetch account %s", id), Err: err}
	}
	account.PasswordHash = ""
	return account, nil
}

// isUniqueViolation recognizes a duplicate-key error from either backend:
// Postgres error class 23505 in production, the sqlite driver's message in
// tests.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
