package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Account struct {
	bun.BaseModel `bun:"table:users"`

	ID           string    `bun:"id,pk" json:"id"`
	Mobile       string    `bun:"mobile,unique,notnull" json:"mobile"`
	PasswordHash string    `bun:"password_hash" json:"-"`
	Name         string    `bun:"name,nullzero" json:"name,omitempty"`
	Email        string    `bun:"email,nullzero" json:"email,omitempty"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"created_at"`
}

type SignupRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

type LoginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// ProfileUpdateRequest carries optional profile fields. A nil pointer means
// the field is untouched; a pointer to "" clears it.
type ProfileUpdateRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Mobile *string `json:"mobile,omitempty"`
}

// AccountSummary is the slice of account fields joined into admin listings.
type AccountSummary struct {
	Mobile string `json:"mobile"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}
