package pins

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

func (r *SQLiteRepository) Get(ctx context.Context) (*models.PinCredential, error) {
	var c models.PinCredential
	err := r.db.QueryRowContext(ctx, `
		SELECT hash, salt, created_at FROM pin_credential WHERE id = 1
	`).Scan(&c.Hash, &c.Salt, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pin credential: %w", err)
	}
	return &c, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, c *models.PinCredential) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pin_credential (id, hash, salt, created_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			hash       = excluded.hash,
			salt       = excluded.salt,
			created_at = excluded.created_at
	`, c.Hash, c.Salt, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save pin credential: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pin_credential`)
	if err != nil {
		return fmt.Errorf("failed to delete pin credential: %w", err)
	}
	return nil
}
