package db

import (
	"context"

	"clinic-api/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateSubmission(submission models.ContactSubmission) error {
	_, err := d.Bun.NewInsert().Model(&submission).Exec(context.Background())
	return err
}

// ListSubmissions returns the newest submissions first, capped at limit.
func (d *DB) ListSubmissions(limit int) ([]models.ContactSubmission, error) {
	var submissions []models.ContactSubmission
	err := d.Bun.NewSelect().
		Model(&submissions).
		Order("created_at DESC").
		Limit(limit).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return submissions, nil
}
