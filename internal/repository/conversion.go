package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"owatch-server/internal/model"
)

// ConversionRepository handles conversion history persistence.
type ConversionRepository struct {
	pool *pgxpool.Pool
}

// NewConversionRepository creates a new ConversionRepository instance.
func NewConversionRepository(pool *pgxpool.Pool) *ConversionRepository {
	return &ConversionRepository{pool: pool}
}

// ListConversions retrieves the conversion history for a wallet, newest first.
func (r *ConversionRepository) ListConversions(ctx context.Context, address string) ([]*model.ConversionRecord, error) {
	const query = `
		SELECT id, address, points_spent, tokens_received, bonus_percent, created_at
		FROM conversions
		WHERE address = $1
		ORDER BY seq DESC
	`

	rows, err := r.pool.Query(ctx, query, address)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}
	defer rows.Close()

	var records []*model.ConversionRecord
	for rows.Next() {
		var rec model.ConversionRecord
		err := rows.Scan(
			&rec.ID,
			&rec.Address,
			&rec.PointsSpent,
			&rec.TokensReceived,
			&rec.BonusPercent,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversions: %w", err)
	}

	return records, nil
}

// AddConversion persists a new conversion record and prunes the wallet's history down
// to limit entries, evicting the oldest.
func (r *ConversionRepository) AddConversion(ctx context.Context, rec *model.ConversionRecord, limit int) error {
	const insert = `
		INSERT INTO conversions (id, address, points_spent, tokens_received, bonus_percent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, insert,
		rec.ID,
		rec.Address,
		rec.PointsSpent,
		rec.TokensReceived,
		rec.BonusPercent,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add conversion: %w", err)
	}

	const prune = `
		DELETE FROM conversions
		WHERE address = $1 AND seq NOT IN (
			SELECT seq FROM conversions
			WHERE address = $1
			ORDER BY seq DESC
			LIMIT $2
		)
	`

	if _, err := r.pool.Exec(ctx, prune, rec.Address, limit); err != nil {
		return fmt.Errorf("failed to prune conversion history: %w", err)
	}

	return nil
}
