package booking

import (
	"encoding/json"

	"github.com/skip2/go-qrcode"
)

// qrPayload is what the front desk scans to pull up a booking.
type qrPayload struct {
	BookingID   string `json:"booking_id"`
	PackageName string `json:"package_name"`
	Status      string `json:"status"`
}

// ConfirmationQR renders a booking reference as a 256px PNG QR code.
func (s *Service) ConfirmationQR(bookingID string) ([]byte, error) {
	booking, err := s.DB.GetBookingByID(bookingID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(qrPayload{
		BookingID:   booking.ID,
		PackageName: booking.PackageName,
		Status:      string(booking.Status),
	})
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(string(payload), qrcode.Medium, 256)
}
