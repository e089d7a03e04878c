package utils

import (
	"encoding/json"
	"net/http"
	"time"

	"clinic-api/internal/apperror"
)

type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func SuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func ErrorResponse(message, errMsg string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		Error:     errMsg,
		Timestamp: time.Now(),
	}
}

func WriteJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteError converts a taxonomy error into its HTTP shape.
func WriteError(w http.ResponseWriter, err error) {
	status := apperror.HTTPStatus(err)
	message := "Request failed"
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	WriteJSON(w, status, ErrorResponse(message, apperror.PublicMessage(err)))
}
