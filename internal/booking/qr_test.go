package booking_test

import (
	"bytes"
	"database/sql"
	"testing"

	"clinic-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47}

func TestConfirmationQR(t *testing.T) {
	db := new(MockDBLayer)
	service := newService(db, new(MockPublisher))

	db.On("GetBookingByID", "b1").Return(&models.Booking{
		ID:          "b1",
		UserID:      "u1",
		PackageName: "Basic Health Checkup",
		Status:      models.BookingConfirmed,
	}, nil)

	png, err := service.ConfirmationQR("b1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader))
}

func TestConfirmationQRMissingBooking(t *testing.T) {
	db := new(MockDBLayer)
	service := newService(db, new(MockPublisher))

	db.On("GetBookingByID", "nope").Return(nil, sql.ErrNoRows)

	_, err := service.ConfirmationQR("nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
