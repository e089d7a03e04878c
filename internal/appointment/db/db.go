package db

import (
	"context"

	"clinic-api/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateAppointment(appointment models.Appointment) error {
	_, err := d.Bun.NewInsert().Model(&appointment).Exec(context.Background())
	return err
}

// ListAppointments returns appointments in visit order.
func (d *DB) ListAppointments() ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := d.Bun.NewSelect().
		Model(&appointments).
		Order("appointment_date ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
