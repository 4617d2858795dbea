package secrets

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

func (r *SQLiteRepository) Get(ctx context.Context) (*models.MasterSecret, error) {
	var s models.MasterSecret
	err := r.db.QueryRowContext(ctx, `
		SELECT salt, verifier, created_at FROM master_secret WHERE id = 1
	`).Scan(&s.Salt, &s.Verifier, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get master secret: %w", err)
	}
	return &s, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, s *models.MasterSecret) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO master_secret (id, salt, verifier, created_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			salt       = excluded.salt,
			verifier   = excluded.verifier,
			created_at = excluded.created_at
	`, s.Salt, s.Verifier, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save master secret: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM master_secret`)
	if err != nil {
		return fmt.Errorf("failed to delete master secret: %w", err)
	}
	return nil
}
