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

// ThemeAssignmentRepository provides data access for sermon theme
// assignments. ReplaceForSermon owns the read-reconcile-write race: it
// serializes concurrent reclassification of the same sermon with a
// per-sermon advisory lock.
type ThemeAssignmentRepository interface {
	GetBySermon(ctx context.Context, sermonID uuid.UUID) ([]*models.SermonThemeAssignment, error)
	GetBySermonAndTheme(ctx context.Context, sermonID uuid.UUID, themeID string) (*models.SermonThemeAssignment, error)
	Upsert(ctx context.Context, assignment *models.SermonThemeAssignment) error
	Delete(ctx context.Context, sermonID uuid.UUID, themeID string) error
	ReplaceForSermon(ctx context.Context, sermonID uuid.UUID, assignments []*models.SermonThemeAssignment) error
}

type themeAssignmentRepository struct {
	db *database.DB
}

// NewThemeAssignmentRepository creates a new ThemeAssignmentRepository.
func NewThemeAssignmentRepository(db *database.DB) ThemeAssignmentRepository {
	return &themeAssignmentRepository{db: db}
}

var _ ThemeAssignmentRepository = (*themeAssignmentRepository)(nil)

const assignmentColumns = `id, sermon_id, theme_id, confidence, override_state, source_themes, match_kind, created_at, updated_at`

func (r *themeAssignmentRepository) GetBySermon(ctx context.Context, sermonID uuid.UUID) ([]*models.SermonThemeAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM sermon_theme_assignments
		WHERE sermon_id = $1
		ORDER BY confidence DESC, theme_id`

	rows, err := r.db.Query(ctx, query, sermonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query theme assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.SermonThemeAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating theme assignments: %w", err)
	}

	return assignments, nil
}

func (r *themeAssignmentRepository) GetBySermonAndTheme(ctx context.Context, sermonID uuid.UUID, themeID string) (*models.SermonThemeAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM sermon_theme_assignments
		WHERE sermon_id = $1 AND theme_id = $2`

	a, err := scanAssignment(r.db.QueryRow(ctx, query, sermonID, themeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return a, nil
}

func (r *themeAssignmentRepository) Upsert(ctx context.Context, assignment *models.SermonThemeAssignment) error {
	now := time.Now()
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}

	query := `
		INSERT INTO sermon_theme_assignments (` + assignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (sermon_id, theme_id) DO UPDATE SET
			confidence = EXCLUDED.confidence,
			override_state = EXCLUDED.override_state,
			source_themes = EXCLUDED.source_themes,
			match_kind = EXCLUDED.match_kind,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		assignment.ID,
		assignment.SermonID,
		assignment.ThemeID,
		assignment.Confidence,
		assignment.OverrideState,
		jsonbValue(assignment.SourceThemes),
		nullString(assignment.MatchKind),
		now,
		now,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert theme assignment: %w", err)
	}

	return nil
}

func (r *themeAssignmentRepository) Delete(ctx context.Context, sermonID uuid.UUID, themeID string) error {
	query := `DELETE FROM sermon_theme_assignments WHERE sermon_id = $1 AND theme_id = $2`

	result, err := r.db.Exec(ctx, query, sermonID, themeID)
	if err != nil {
		return fmt.Errorf("failed to delete theme assignment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// ReplaceForSermon persists the full replacement assignment set computed
// by reconciliation: rows absent from the new set are deleted, the rest
// upserted, all inside one transaction holding a per-sermon advisory
// lock so concurrent reclassification of one sermon cannot interleave.
func (r *themeAssignmentRepository) ReplaceForSermon(ctx context.Context, sermonID uuid.UUID, assignments []*models.SermonThemeAssignment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::text))`, sermonID); err != nil {
		return fmt.Errorf("failed to take sermon lock: %w", err)
	}

	keep := make([]string, 0, len(assignments))
	for _, a := range assignments {
		keep = append(keep, a.ThemeID)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM sermon_theme_assignments WHERE sermon_id = $1 AND theme_id != ALL($2)`,
		sermonID, keep,
	); err != nil {
		return fmt.Errorf("failed to prune stale assignments: %w", err)
	}

	upsert := `
		INSERT INTO sermon_theme_assignments (` + assignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (sermon_id, theme_id) DO UPDATE SET
			confidence = EXCLUDED.confidence,
			override_state = EXCLUDED.override_state,
			source_themes = EXCLUDED.source_themes,
			match_kind = EXCLUDED.match_kind,
			updated_at = EXCLUDED.updated_at`

	for _, a := range assignments {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		if _, err := tx.Exec(ctx, upsert,
			a.ID,
			a.SermonID,
			a.ThemeID,
			a.Confidence,
			a.OverrideState,
			jsonbValue(a.SourceThemes),
			nullString(a.MatchKind),
			a.CreatedAt,
			a.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to upsert assignment for theme %s: %w", a.ThemeID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit assignment replacement: %w", err)
	}

	return nil
}

func scanAssignment(row pgx.Row) (*models.SermonThemeAssignment, error) {
	var a models.SermonThemeAssignment
	var matchKind *string
	var sourceThemes []byte

	err := row.Scan(
		&a.ID,
		&a.SermonID,
		&a.ThemeID,
		&a.Confidence,
		&a.OverrideState,
		&sourceThemes,
		&matchKind,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan theme assignment: %w", err)
	}

	if matchKind != nil {
		a.MatchKind = *matchKind
	}
	if len(sourceThemes) > 0 && string(sourceThemes) != "null" {
		if err := json.Unmarshal(sourceThemes, &a.SourceThemes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal source_themes: %w", err)
		}
	}

	return &a, nil
}
