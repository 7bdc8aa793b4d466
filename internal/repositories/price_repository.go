package repositories

import (
	"context"
	"database/sql"

	"lakesideBack/internal/models"
)

type PriceRepository struct {
	DB *sql.DB
}

func (r *PriceRepository) GetPrices(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT property, nightly_rate FROM prices ORDER BY property`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := map[string]int{}
	for rows.Next() {
		var row models.PropertyPrice
		if err := rows.Scan(&row.Property, &row.NightlyRate); err != nil {
			return nil, err
		}
		prices[row.Property] = row.NightlyRate
	}
	return prices, rows.Err()
}

func (r *PriceRepository) UpdatePrices(ctx context.Context, prices map[string]int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for property, rate := range prices {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO prices (property, nightly_rate)
			VALUES (?, ?)
			ON DUPLICATE KEY UPDATE nightly_rate = VALUES(nightly_rate)
		`, property, rate)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
