package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	bun.BaseModel `bun:"table:payments"`

	ID            string        `bun:"id,pk" json:"id"`
	BookingID     string        `bun:"booking_id,notnull" json:"booking_id"`
	UserID        string        `bun:"user_id,notnull" json:"user_id"`
	Amount        float64       `bun:"amount" json:"amount"`
	PaymentMethod string        `bun:"payment_method,notnull" json:"payment_method"`
	Status        PaymentStatus `bun:"status,notnull" json:"status"`
	TransactionID string        `bun:"transaction_id" json:"transaction_id"`
	CreatedAt     time.Time     `bun:"created_at,notnull" json:"created_at"`
}

// BookingSummary is the booking slice joined into the admin payments view.
type BookingSummary struct {
	PackageName string `json:"package_name"`
}

type PaymentWithDetails struct {
	Payment
	Booking *BookingSummary `json:"bookings,omitempty"`
	User    *AccountSummary `json:"users,omitempty"`
}
