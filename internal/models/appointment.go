package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Appointment struct {
	bun.BaseModel `bun:"table:appointments"`

	ID              string    `bun:"id,pk" json:"id"`
	Name            string    `bun:"name,notnull" json:"name"`
	Email           string    `bun:"email,notnull" json:"email"`
	Phone           string    `bun:"phone,notnull" json:"phone"`
	AppointmentDate time.Time `bun:"appointment_date,notnull" json:"appointment_date"`
	Service         string    `bun:"service,notnull" json:"service"`
	Message         string    `bun:"message" json:"message,omitempty"`
	Status          string    `bun:"status,notnull" json:"status"`
	CreatedAt       time.Time `bun:"created_at,notnull" json:"created_at"`
}

type AppointmentRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Date    string `json:"date"`
	Service string `json:"service"`
	Message string `json:"message,omitempty"`
}
