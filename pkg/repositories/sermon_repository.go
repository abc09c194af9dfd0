package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/haven-labs/sermon-engine/pkg/apperrors"
	"github.com/haven-labs/sermon-engine/pkg/database"
	"github.com/haven-labs/sermon-engine/pkg/models"
)

// SermonRepository provides data access for sermons.
type SermonRepository interface {
	Create(ctx context.Context, sermon *models.Sermon) error
	GetByID(ctx context.Context, sermonID uuid.UUID) (*models.Sermon, error)
	List(ctx context.Context) ([]*models.Sermon, error)
	UpdateRawThemes(ctx context.Context, sermonID uuid.UUID, rawThemes []string) error
}

type sermonRepository struct {
	db *database.DB
}

// NewSermonRepository creates a new SermonRepository.
func NewSermonRepository(db *database.DB) SermonRepository {
	return &sermonRepository{db: db}
}

var _ SermonRepository = (*sermonRepository)(nil)

func (r *sermonRepository) Create(ctx context.Context, sermon *models.Sermon) error {
	now := time.Now()

	query := `
		INSERT INTO sermons (id, title, speaker, transcript, raw_themes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	if sermon.ID == uuid.Nil {
		sermon.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, query,
		sermon.ID,
		sermon.Title,
		nullString(sermon.Speaker),
		nullString(sermon.Transcript),
		jsonbValue(sermon.RawThemes),
		now,
		now,
	).Scan(&sermon.CreatedAt, &sermon.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create sermon: %w", err)
	}

	return nil
}

func (r *sermonRepository) GetByID(ctx context.Context, sermonID uuid.UUID) (*models.Sermon, error) {
	query := `
		SELECT id, title, speaker, transcript, raw_themes, created_at, updated_at
		FROM sermons
		WHERE id = $1`

	sermon, err := scanSermon(r.db.QueryRow(ctx, query, sermonID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return sermon, nil
}

func (r *sermonRepository) List(ctx context.Context) ([]*models.Sermon, error) {
	query := `
		SELECT id, title, speaker, transcript, raw_themes, created_at, updated_at
		FROM sermons
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sermons: %w", err)
	}
	defer rows.Close()

	var sermons []*models.Sermon
	for rows.Next() {
		sermon, err := scanSermon(rows)
		if err != nil {
			return nil, err
		}
		sermons = append(sermons, sermon)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sermons: %w", err)
	}

	return sermons, nil
}

func (r *sermonRepository) UpdateRawThemes(ctx context.Context, sermonID uuid.UUID, rawThemes []string) error {
	query := `
		UPDATE sermons
		SET raw_themes = $2, updated_at = $3
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query, sermonID, jsonbValue(rawThemes), time.Now())
	if err != nil {
		return fmt.Errorf("failed to update raw themes: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func scanSermon(row pgx.Row) (*models.Sermon, error) {
	var s models.Sermon
	var speaker, transcript *string
	var rawThemes []byte

	err := row.Scan(
		&s.ID,
		&s.Title,
		&speaker,
		&transcript,
		&rawThemes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan sermon: %w", err)
	}

	if speaker != nil {
		s.Speaker = *speaker
	}
	if transcript != nil {
		s.Transcript = *transcript
	}
	if len(rawThemes) > 0 && string(rawThemes) != "null" {
		if err := json.Unmarshal(rawThemes, &s.RawThemes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal raw_themes: %w", err)
		}
	}

	return &s, nil
}

// nullString returns nil if the string is empty, otherwise the string pointer.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// jsonbValue prepares a string slice for a jsonb column, storing NULL
// for empty slices.
func jsonbValue(v []string) any {
	if len(v) == 0 {
		return nil
	}
	return v
}
