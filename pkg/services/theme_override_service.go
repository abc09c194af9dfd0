package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haven-labs/sermon-engine/pkg/apperrors"
	"github.com/haven-labs/sermon-engine/pkg/models"
	"github.com/haven-labs/sermon-engine/pkg/repositories"
	"github.com/haven-labs/sermon-engine/pkg/themes"
)

// ThemeOverrideService originates the manual override transitions that
// reclassification must respect: adding a theme, removing one (which
// leaves a tombstone), and clearing a tombstone.
type ThemeOverrideService interface {
	// AddTheme attaches a theme as a user addition. Adding over an auto
	// assignment promotes it; adding over a tombstone revives it as
	// user_added. Idempotent for an existing user addition.
	AddTheme(ctx context.Context, sermonID uuid.UUID, themeID string) (*models.SermonThemeAssignment, error)

	// RemoveTheme detaches a theme, leaving a user_removed tombstone so
	// reclassification cannot silently re-add it. Idempotent for an
	// existing tombstone.
	RemoveTheme(ctx context.Context, sermonID uuid.UUID, themeID string) (*models.SermonThemeAssignment, error)

	// RestoreTheme deletes a tombstone. The theme becomes absent and the
	// next classification pass may assign it again as auto.
	RestoreTheme(ctx context.Context, sermonID uuid.UUID, themeID string) error

	// ListAssignments returns the sermon's theme assignments, including
	// user_removed tombstones so callers can see the override state.
	ListAssignments(ctx context.Context, sermonID uuid.UUID) ([]*models.SermonThemeAssignment, error)
}

type themeOverrideService struct {
	sermonRepo     repositories.SermonRepository
	assignmentRepo repositories.ThemeAssignmentRepository
	logger         *zap.Logger
}

// NewThemeOverrideService creates a new ThemeOverrideService.
func NewThemeOverrideService(
	sermonRepo repositories.SermonRepository,
	assignmentRepo repositories.ThemeAssignmentRepository,
	logger *zap.Logger,
) ThemeOverrideService {
	return &themeOverrideService{
		sermonRepo:     sermonRepo,
		assignmentRepo: assignmentRepo,
		logger:         logger.Named("theme-override-service"),
	}
}

var _ ThemeOverrideService = (*themeOverrideService)(nil)

func (s *themeOverrideService) AddTheme(ctx context.Context, sermonID uuid.UUID, themeID string) (*models.SermonThemeAssignment, error) {
	existing, err := s.lookup(ctx, sermonID, themeID)
	if err != nil {
		return nil, err
	}

	if existing != nil && existing.OverrideState == models.OverrideUserAdded {
		return existing, nil
	}

	assignment := existing
	if assignment == nil {
		assignment = &models.SermonThemeAssignment{
			SermonID:   sermonID,
			ThemeID:    themeID,
			Confidence: 1.0,
		}
	}
	assignment.OverrideState = models.OverrideUserAdded

	if err := s.assignmentRepo.Upsert(ctx, assignment); err != nil {
		return nil, fmt.Errorf("upsert user addition: %w", err)
	}

	s.logger.Info("Theme added by user",
		zap.String("sermon_id", sermonID.String()),
		zap.String("theme_id", themeID))

	return assignment, nil
}

func (s *themeOverrideService) RemoveTheme(ctx context.Context, sermonID uuid.UUID, themeID string) (*models.SermonThemeAssignment, error) {
	existing, err := s.lookup(ctx, sermonID, themeID)
	if err != nil {
		return nil, err
	}

	if existing != nil && existing.OverrideState == models.OverrideUserRemoved {
		return existing, nil
	}

	// Removing a theme that was never assigned still leaves a tombstone:
	// the user's intent is "never show this theme here".
	assignment := existing
	if assignment == nil {
		assignment = &models.SermonThemeAssignment{
			SermonID: sermonID,
			ThemeID:  themeID,
		}
	}
	assignment.OverrideState = models.OverrideUserRemoved

	if err := s.assignmentRepo.Upsert(ctx, assignment); err != nil {
		return nil, fmt.Errorf("upsert tombstone: %w", err)
	}

	s.logger.Info("Theme removed by user",
		zap.String("sermon_id", sermonID.String()),
		zap.String("theme_id", themeID))

	return assignment, nil
}

func (s *themeOverrideService) RestoreTheme(ctx context.Context, sermonID uuid.UUID, themeID string) error {
	existing, err := s.lookup(ctx, sermonID, themeID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperrors.ErrNotFound
	}
	if existing.OverrideState != models.OverrideUserRemoved {
		return apperrors.ErrConflict
	}

	if err := s.assignmentRepo.Delete(ctx, sermonID, themeID); err != nil {
		return fmt.Errorf("delete tombstone: %w", err)
	}

	s.logger.Info("Theme tombstone cleared",
		zap.String("sermon_id", sermonID.String()),
		zap.String("theme_id", themeID))

	return nil
}

func (s *themeOverrideService) ListAssignments(ctx context.Context, sermonID uuid.UUID) ([]*models.SermonThemeAssignment, error) {
	sermon, err := s.sermonRepo.GetByID(ctx, sermonID)
	if err != nil {
		return nil, fmt.Errorf("get sermon: %w", err)
	}
	if sermon == nil {
		return nil, apperrors.ErrNotFound
	}

	assignments, err := s.assignmentRepo.GetBySermon(ctx, sermonID)
	if err != nil {
		return nil, fmt.Errorf("get assignments: %w", err)
	}
	return assignments, nil
}

// lookup validates the theme id and sermon, then fetches any existing
// assignment for the pair.
func (s *themeOverrideService) lookup(ctx context.Context, sermonID uuid.UUID, themeID string) (*models.SermonThemeAssignment, error) {
	if !themes.IsValidID(themeID) {
		return nil, apperrors.ErrUnknownTheme
	}

	sermon, err := s.sermonRepo.GetByID(ctx, sermonID)
	if err != nil {
		return nil, fmt.Errorf("get sermon: %w", err)
	}
	if sermon == nil {
		return nil, apperrors.ErrNotFound
	}

	return s.assignmentRepo.GetBySermonAndTheme(ctx, sermonID, themeID)
}
