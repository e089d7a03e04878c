// Package admin aggregates back-office views across every table. Its routes
// are guarded only by the client-held admin gate; there is deliberately no
// server-side authorization here (a documented gap, not a boundary).
package admin

import (
	"context"
	"database/sql"
	"errors"

	"clinic-api/internal/apperror"
	"clinic-api/internal/models"

	"github.com/uptrace/bun"
)

type EventPublisher interface {
	PublishBookingStatusChanged(booking models.Booking) error
}

type Service struct {
	db     *bun.DB
	cache  *Cache
	events EventPublisher
}

// NewService builds the back-office service. cache may be nil when Redis is
// not enabled.
func NewService(db *bun.DB, cache *Cache, events EventPublisher) *Service {
	return &Service{db: db, cache: cache, events: events}
}

type Stats struct {
	TotalBookings   int     `json:"totalBookings"`
	PendingBookings int     `json:"pendingBookings"`
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalUsers      int     `json:"totalUsers"`
	TotalPayments   int     `json:"totalPayments"`
	TotalContacts   int     `json:"totalContacts"`
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.GetStats(ctx); ok {
			return stats, nil
		}
	}

	stats := &Stats{}
	var err error

	if stats.TotalBookings, err = s.db.NewSelect().Model((*models.Booking)(nil)).Count(ctx); err != nil {
		return nil, &apperror.StoreError{Op: "count bookings", Err: err}
	}
	if stats.PendingBookings, err = s.db.NewSelect().Model((*models.Booking)(nil)).
		Where("status = ?", models.BookingPending).Count(ctx); err != nil {
		return nil, &apperror.StoreError{Op: "count pending bookings", Err: err}
	}
	if err = s.db.NewSelect().Model((*models.Payment)(nil)).
		ColumnExpr("COALESCE(SUM(amount), 0)").Scan(ctx, &stats.TotalRevenue); err != nil {
		return nil, &apperror.StoreError{Op: "sum revenue", Err: err}
	}
	if stats.TotalUsers, err = s.db.NewSelect().Model((*models.Account)(nil)).Count(ctx); err != nil {
		return nil, &apperror.StoreError{Op: "count users", Err: err}
	}
	if stats.TotalPayments, err = s.db.NewSelect().Model((*models.Payment)(nil)).Count(ctx); err != nil {
		return nil, &apperror.StoreError{Op: "count payments", Err: err}
	}
	if stats.TotalContacts, err = s.db.NewSelect().Model((*models.ContactSubmission)(nil)).Count(ctx); err != nil {
		return nil, &apperror.StoreError{Op: "count contacts", Err: err}
	}

	if s.cache != nil {
		s.cache.SetStats(ctx, stats)
	}
	return stats, nil
}

// ListBookings returns every booking newest first with the owning account's
// contact fields merged in. Two queries joined in Go; the account fetch is
// batched over the distinct user IDs.
func (s *Service) ListBookings(ctx context.Context) ([]models.BookingWithUser, error) {
	var bookings []models.Booking
	err := s.db.NewSelect().
		Model(&bookings).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, &apperror.StoreError{Op: "list bookings", Err: err}
	}
	if len(bookings) == 0 {
		return []models.BookingWithUser{}, nil
	}

	accounts, err := s.accountsByID(ctx, userIDs(bookings))
	if err != nil {
		return nil, err
	}

	result := make([]models.BookingWithUser, len(bookings))
	for i, booking := range bookings {
		result[i] = models.BookingWithUser{Booking: booking}
		if account, ok := accounts[booking.UserID]; ok {
			result[i].User = &models.AccountSummary{
				Mobile: account.Mobile,
				Name:   account.Name,
				Email:  account.Email,
			}
		}
	}
	return result, nil
}

// UpdateBookingStatus transitions a booking to one of the four known
// statuses. Anything else is rejected before the store sees it.
func (s *Service) UpdateBookingStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	next := models.BookingStatus(status)
	if !next.Valid() {
		v := &apperror.ValidationError{}
		v.Add("status", "Invalid status")
		return nil, v
	}

	res, err := s.db.NewUpdate().
		Model((*models.Booking)(nil)).
		Set("status = ?", next).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, &apperror.StoreError{Op: "update booking status", Err: err}
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, &apperror.StoreError{Op: "update booking status", Err: sql.ErrNoRows}
	}

	var booking models.Booking
	err = s.db.NewSelect().
		Model(&booking).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, &apperror.StoreError{Op: "fetch updated booking", Err: err}
	}

	if s.events != nil {
		s.events.PublishBookingStatusChanged(booking)
	}

	// Stats now stale.
	if s.cache != nil {
		s.cache.InvalidateStats(ctx)
	}
	return &booking, nil
}

// ListPayments returns every payment newest first, joined with the linked
// booking's package name and the payer's contact fields.
func (s *Service) ListPayments(ctx context.Context) ([]models.PaymentWithDetails, error) {
	var payments []models.Payment
	err := s.db.NewSelect().
		Model(&payments).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, &apperror.StoreError{Op: "list payments", Err: err}
	}
	if len(payments) == 0 {
		return []models.PaymentWithDetails{}, nil
	}

	bookingIDs := make([]string, len(payments))
	ids := make([]string, len(payments))
	for i, payment := range payments {
		bookingIDs[i] = payment.BookingID
		ids[i] = payment.UserID
	}

	var bookings []models.Booking
	err = s.db.NewSelect().
		Model(&bookings).
		Where("id IN (?)", bun.In(bookingIDs)).
		Scan(ctx)
	if err != nil {
		return nil, &apperror.StoreError{Op: "fetch linked bookings", Err: err}
	}
	bookingByID := make(map[string]models.Booking, len(bookings))
	for _, booking := range bookings {
		bookingByID[booking.ID] = booking
	}

	accounts, err := s.accountsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]models.PaymentWithDetails, len(payments))
	for i, payment := range payments {
		result[i] = models.PaymentWithDetails{Payment: payment}
		if booking, ok := bookingByID[payment.BookingID]; ok {
			result[i].Booking = &models.BookingSummary{PackageName: booking.PackageName}
		}
		if account, ok := accounts[payment.UserID]; ok {
			result[i].User = &models.AccountSummary{Mobile: account.Mobile, Name: account.Name}
		}
	}
	return result, nil
}

func (s *Service) accountsByID(ctx context.Context, ids []string) (map[string]models.Account, error) {
	var accounts []models.Account
	err := s.db.NewSelect().
		Model(&accounts).
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, &apperror.StoreError{Op: "fetch accounts", Err: err}
	}
	byID := make(map[string]models.Account, len(accounts))
	for _, account := range accounts {
		byID[account.ID] = account
	}
	return byID, nil
}

func userIDs(bookings []models.Booking) []string {
	seen := make(map[string]struct{}, len(bookings))
	ids := make([]string, 0, len(bookings))
	for _, booking := range bookings {
		if _, ok := seen[booking.UserID]; ok {
			continue
		}
		seen[booking.UserID] = struct{}{}
		ids = append(ids, booking.UserID)
	}
	return ids
}
