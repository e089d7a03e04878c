package models

import (
	"time"

	"github.com/uptrace/bun"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Valid reports whether s is one of the four statuses the back office may
// set. Anything else is rejected before the store is touched.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	ID           string        `bun:"id,pk" json:"id"`
	UserID       string        `bun:"user_id,notnull" json:"user_id"`
	PackageName  string        `bun:"package_name,notnull" json:"package_name"`
	PackagePrice float64       `bun:"package_price" json:"package_price"`
	Status       BookingStatus `bun:"status,notnull" json:"status"`
	CreatedAt    time.Time     `bun:"created_at,notnull" json:"created_at"`
}

// BookingWithUser is a booking row with the owning account's contact fields
// joined in, the shape the admin dashboard renders.
type BookingWithUser struct {
	Booking
	User *AccountSummary `json:"users,omitempty"`
}

// PackageItem is one selected health package at checkout. Price arrives as a
// string because that is how the catalogue and the cart carry it.
type PackageItem struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Features []string `json:"features,omitempty"`
	Quantity int      `json:"quantity,omitempty"`
}

type CheckoutRequest struct {
	UserID string        `json:"user_id"`
	Items  []PackageItem `json:"items"`
}

type CheckoutResult struct {
	Bookings []Booking `json:"bookings"`
	Payment  Payment   `json:"payment"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}
