package db

import (
	"context"

	"clinic-api/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) GetAccountByMobile(mobile string) (*models.Account, error) {
	var account models.Account
	err := d.Bun.NewSelect().
		Model(&account).
		Where("mobile = ?", mobile).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (d *DB) GetAccountByID(id string) (*models.Account, error) {
	var account models.Account
	err := d.Bun.NewSelect().
		Model(&account).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (d *DB) CreateAccount(account models.Account) error {
	_, err := d.Bun.NewInsert().Model(&account).Exec(context.Background())
	return err
}

// UpdateAccountFields applies a partial profile update. Keys are column
// names; nil values clear the column.
func (d *DB) UpdateAccountFields(id string, updates map[string]interface{}) error {
	q := d.Bun.NewUpdate().
		Model((*models.Account)(nil)).
		Where("id = ?", id)
	for column, value := range updates {
		q = q.Set("? = ?", bun.Ident(column), value)
	}
	_, err := q.Exec(context.Background())
	return err
}

func (d *DB) ListAccounts() ([]models.Account, error) {
	var accounts []models.Account
	err := d.Bun.NewSelect().
		Model(&accounts).
		Order("created_at DESC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
