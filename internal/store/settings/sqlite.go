package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/facevault/facevault/internal/models"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (*models.AuthSettings, error) {
	var s models.AuthSettings
	err := r.db.QueryRowContext(ctx, `
		SELECT confidence_threshold, pin_unlock_threshold, max_attempts,
		       liveness_enabled, blinks_required
		FROM settings WHERE id = 1
	`).Scan(&s.ConfidenceThreshold, &s.PinUnlockThreshold, &s.MaxAttempts,
		&s.LivenessEnabled, &s.BlinksRequired)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &s, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, s *models.AuthSettings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (id, confidence_threshold, pin_unlock_threshold,
		                      max_attempts, liveness_enabled, blinks_required)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			confidence_threshold = excluded.confidence_threshold,
			pin_unlock_threshold = excluded.pin_unlock_threshold,
			max_attempts         = excluded.max_attempts,
			liveness_enabled     = excluded.liveness_enabled,
			blinks_required      = excluded.blinks_required
	`, s.ConfidenceThreshold, s.PinUnlockThreshold, s.MaxAttempts,
		s.LivenessEnabled, s.BlinksRequired)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM settings`)
	if err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}
	return nil
}
