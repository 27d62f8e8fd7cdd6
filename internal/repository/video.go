package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// VideoRepository tracks which videos a wallet has already claimed the
// watch reward for.
type VideoRepository struct {
	pool *pgxpool.Pool
}

// NewVideoRepository creates a new VideoRepository instance.
func NewVideoRepository(pool *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{pool: pool}
}

// HasClaimed reports whether the wallet already claimed the video's reward.
func (r *VideoRepository) HasClaimed(ctx context.Context, address string, videoID int) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM watched_videos WHERE address = $1 AND video_id = $2)`

	var claimed bool
	err := r.pool.QueryRow(ctx, query, address, videoID).Scan(&claimed)
	if err != nil {
		return false, fmt.Errorf("failed to check claimed video: %w", err)
	}

	return claimed, nil
}

// MarkClaimed records that the wallet claimed the video's reward.
func (r *VideoRepository) MarkClaimed(ctx context.Context, address string, videoID int) error {
	const query = `
		INSERT INTO watched_videos (address, video_id, claimed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (address, video_id) DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, address, videoID); err != nil {
		return fmt.Errorf("failed to mark video claimed: %w", err)
	}

	return nil
}
