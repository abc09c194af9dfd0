package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haven-labs/sermon-engine/pkg/apperrors"
	"github.com/haven-labs/sermon-engine/pkg/models"
	"github.com/haven-labs/sermon-engine/pkg/repositories"
)

// NewSermonInput carries the caller-supplied fields for a new sermon.
type NewSermonInput struct {
	Title      string
	Speaker    string
	Transcript string
	RawThemes  []string
}

// SermonService manages sermon records.
type SermonService interface {
	CreateSermon(ctx context.Context, input NewSermonInput) (*models.Sermon, error)
	GetSermon(ctx context.Context, sermonID uuid.UUID) (*models.Sermon, error)
	ListSermons(ctx context.Context) ([]*models.Sermon, error)
}

type sermonService struct {
	sermonRepo repositories.SermonRepository
	logger     *zap.Logger
}

// NewSermonService creates a new SermonService.
func NewSermonService(sermonRepo repositories.SermonRepository, logger *zap.Logger) SermonService {
	return &sermonService{
		sermonRepo: sermonRepo,
		logger:     logger.Named("sermon-service"),
	}
}

var _ SermonService = (*sermonService)(nil)

func (s *sermonService) CreateSermon(ctx context.Context, input NewSermonInput) (*models.Sermon, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.New("sermon title is required")
	}

	now := time.Now()
	sermon := &models.Sermon{
		ID:         uuid.New(),
		Title:      title,
		Speaker:    strings.TrimSpace(input.Speaker),
		Transcript: input.Transcript,
		RawThemes:  sanitizeRawThemes(input.RawThemes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.sermonRepo.Create(ctx, sermon); err != nil {
		return nil, fmt.Errorf("failed to create sermon: %w", err)
	}

	s.logger.Info("Created sermon",
		zap.String("sermon_id", sermon.ID.String()),
		zap.String("title", sermon.Title))

	return sermon, nil
}

func (s *sermonService) GetSermon(ctx context.Context, sermonID uuid.UUID) (*models.Sermon, error) {
	sermon, err := s.sermonRepo.GetByID(ctx, sermonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sermon: %w", err)
	}
	if sermon == nil {
		return nil, apperrors.ErrNotFound
	}
	return sermon, nil
}

func (s *sermonService) ListSermons(ctx context.Context) ([]*models.Sermon, error) {
	sermons, err := s.sermonRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sermons: %w", err)
	}
	return sermons, nil
}
