package faces

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/facevault/facevault/internal/models"
	"github.com/facevault/facevault/internal/vision"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, sample *models.FaceSample) error {
	embedding, err := json.Marshal(sample.Embedding)
	if err != nil {
		return fmt.Errorf("failed to encode embedding: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO face_samples (id, embedding, image_path, created_at)
		VALUES (?, ?, ?, ?)
	`, sample.ID, embedding, sample.ImagePath, sample.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add face sample: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.FaceSample, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, embedding, image_path, created_at
		FROM face_samples ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query face samples: %w", err)
	}
	defer rows.Close()

	var samples []models.FaceSample
	for rows.Next() {
		var s models.FaceSample
		var embedding []byte
		if err := rows.Scan(&s.ID, &embedding, &s.ImagePath, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan face sample: %w", err)
		}
		var e vision.Embedding
		if err := json.Unmarshal(embedding, &e); err != nil {
			return nil, fmt.Errorf("failed to decode embedding: %w", err)
		}
		s.Embedding = e
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate face samples: %w", err)
	}
	return samples, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM face_samples`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count face samples: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM face_samples`)
	if err != nil {
		return fmt.Errorf("failed to clear face samples: %w", err)
	}
	return nil
}
