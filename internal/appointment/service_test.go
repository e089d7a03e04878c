package appointment_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"clinic-api/internal/apperror"
	"clinic-api/internal/appointment"
	appointmentdb "clinic-api/internal/appointment/db"
	"clinic-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupService(t *testing.T) *appointment.Service {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)
	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { bunDB.Close() })
	require.NoError(t, bunDB.ResetModel(context.Background(), (*models.Appointment)(nil)))

	return appointment.NewService(&appointmentdb.DB{Bun: bunDB})
}

func validRequest() models.AppointmentRequest {
	return models.AppointmentRequest{
		Name:    "Jay",
		Email:   "jay@example.com",
		Phone:   "9876543210",
		Date:    "2026-09-15",
		Service: "General Consultation",
	}
}

func TestBookAppointment(t *testing.T) {
	service := setupService(t)

	booked, err := service.Book(validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, booked.ID)
	assert.Equal(t, "pending", booked.Status)
	assert.Equal(t, 2026, booked.AppointmentDate.Year())
	assert.Equal(t, time.September, booked.AppointmentDate.Month())
}

func TestBookAcceptsSeveralDateShapes(t *testing.T) {
	service := setupService(t)

	cases := []struct {
		name string
		date string
		ok   bool
	}{
		{"date only", "2026-09-15", true},
		{"datetime", "2026-09-15T10:30:00", true},
		{"rfc3339", "2026-09-15T10:30:00Z", true},
		{"slashes", "15/09/2026", false},
		{"garbage", "next tuesday", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.Date = tc.date
			_, err := service.Book(req)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				var validation *apperror.ValidationError
				assert.ErrorAs(t, err, &validation)
			}
		})
	}
}

func TestBookValidation(t *testing.T) {
	service := setupService(t)

	_, err := service.Book(models.AppointmentRequest{Email: "not-an-email"})
	var validation *apperror.ValidationError
	require.ErrorAs(t, err, &validation)

	fields := make([]string, len(validation.Fields))
	for i, f := range validation.Fields {
		fields[i] = f.Field
	}
	assert.ElementsMatch(t, []string{"name", "email", "phone", "date", "service"}, fields)
}

func TestListOrderedByAppointmentDate(t *testing.T) {
	service := setupService(t)

	later := validRequest()
	later.Date = "2026-10-01"
	_, err := service.Book(later)
	require.NoError(t, err)

	sooner := validRequest()
	sooner.Date = "2026-09-05"
	_, err = service.Book(sooner)
	require.NoError(t, err)

	appointments, err := service.List()
	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.True(t, appointments[0].AppointmentDate.Before(appointments[1].AppointmentDate))
}
