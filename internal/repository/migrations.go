package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Migrate applies the database schema. Statements are idempotent so the
// server can run them on every start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Migration 1: accounts table
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			address TEXT PRIMARY KEY,
			points_balance BIGINT NOT NULL DEFAULT 0 CHECK (points_balance >= 0),
			token_balance DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (token_balance >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 1: accounts table created")

	// Migration 2: stakes table
	// The serial id is internal; a position is addressed by (pool_id, staked_at).
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS stakes (
			id BIGSERIAL PRIMARY KEY,
			address TEXT NOT NULL REFERENCES accounts(address) ON DELETE CASCADE,
			pool_id VARCHAR(50) NOT NULL,
			principal DOUBLE PRECISION NOT NULL CHECK (principal > 0),
			reward DOUBLE PRECISION NOT NULL,
			staked_at TIMESTAMPTZ NOT NULL,
			unlock_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_stakes_address ON stakes(address);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 2: stakes table created")

	// Migration 3: conversions table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS conversions (
			id UUID PRIMARY KEY,
			seq BIGSERIAL,
			address TEXT NOT NULL REFERENCES accounts(address) ON DELETE CASCADE,
			points_spent BIGINT NOT NULL,
			tokens_received DOUBLE PRECISION NOT NULL,
			bonus_percent INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_conversions_address_seq ON conversions(address, seq DESC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 3: conversions table created")

	// Migration 4: watched_videos table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS watched_videos (
			address TEXT NOT NULL REFERENCES accounts(address) ON DELETE CASCADE,
			video_id INT NOT NULL,
			claimed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (address, video_id)
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 4: watched_videos table created")

	log.Info().Msg("All migrations completed successfully")
	return nil
}
