// Package client is the HTTP client the terminal shell uses against the
// clinic API. It distinguishes three failure shapes: the server being
// unreachable, the server answering with an error envelope, and the server
// answering with something that is not JSON at all (a misconfigured
// deployment).
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"clinic-api/internal/models"
	"clinic-api/internal/utils"
)

// ErrUnreachable wraps transport-level failures (connection refused, DNS).
var ErrUnreachable = errors.New("cannot reach the server")

// ErrBadDeployment means the endpoint answered with non-JSON content.
var ErrBadDeployment = errors.New("server returned an unexpected response")

// APIError is an error envelope returned by the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Signup(req models.SignupRequest) (*models.Account, error) {
	var account models.Account
	if err := c.post("/api/auth/signup", req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) Login(req models.LoginRequest) (*models.Account, error) {
	var account models.Account
	if err := c.post("/api/auth/login", req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) SubmitContact(req models.ContactRequest) error {
	return c.post("/api/contact", req, nil)
}

func (c *Client) Checkout(userID string, items []models.PackageItem) (*models.CheckoutResult, error) {
	var result models.CheckoutResult
	req := models.CheckoutRequest{UserID: userID, Items: items}
	if err := c.post("/api/bookings/checkout", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Bookings(userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.get("/api/bookings?user_id="+userID, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) Payments(userID string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := c.get("/api/payments?user_id="+userID, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// HasOrders satisfies session.OrdersChecker for the shell.
func (c *Client) HasOrders(userID string) (bool, error) {
	bookings, err := c.Bookings(userID)
	if err != nil {
		return false, err
	}
	return len(bookings) > 0, nil
}

func (c *Client) post(path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Post(c.BaseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return decode(resp, out)
}

func (c *Client) get(path string, out interface{}) error {
	resp, err := c.HTTP.Get(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return decode(resp, out)
}

func decode(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	var envelope utils.APIResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w (status %d)", ErrBadDeployment, resp.StatusCode)
	}

	if !envelope.Success {
		message := envelope.Error
		if message == "" {
			message = envelope.Message
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out == nil || envelope.Data == nil {
		return nil
	}
	data, err := json.Marshal(envelope.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
