package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haven-labs/sermon-engine/pkg/apperrors"
	"github.com/haven-labs/sermon-engine/pkg/llm"
	"github.com/haven-labs/sermon-engine/pkg/models"
	"github.com/haven-labs/sermon-engine/pkg/repositories"
	"github.com/haven-labs/sermon-engine/pkg/themes"
)

const (
	// maxRawThemes caps how many raw strings one classification pass accepts.
	maxRawThemes = 64
	// maxRawThemeLen caps the length of a single raw string; longer
	// entries are upstream garbage, not theme phrases.
	maxRawThemeLen = 300
)

// ClassificationResult reports one classification pass over a sermon.
type ClassificationResult struct {
	Sermon      *models.Sermon
	RawThemes   []string
	Matched     int
	Unmatched   int
	Assignments []*models.SermonThemeAssignment
}

// ClassificationService runs the classify-reconcile-persist pass for a
// sermon.
type ClassificationService interface {
	// Classify matches raw theme strings onto the canonical taxonomy and
	// reconciles the result into the sermon's persisted assignments.
	// With no rawThemes given it falls back to the sermon's stored raw
	// themes, then to the LLM tagger over the transcript.
	Classify(ctx context.Context, sermonID uuid.UUID, rawThemes []string) (*ClassificationResult, error)
}

type classificationService struct {
	sermonRepo     repositories.SermonRepository
	assignmentRepo repositories.ThemeAssignmentRepository
	matcher        *themes.Matcher
	tagger         llm.ThemeTagger // nil when no tagging backend is configured
	logger         *zap.Logger
}

// NewClassificationService creates a new ClassificationService.
func NewClassificationService(
	sermonRepo repositories.SermonRepository,
	assignmentRepo repositories.ThemeAssignmentRepository,
	matcher *themes.Matcher,
	tagger llm.ThemeTagger,
	logger *zap.Logger,
) ClassificationService {
	return &classificationService{
		sermonRepo:     sermonRepo,
		assignmentRepo: assignmentRepo,
		matcher:        matcher,
		tagger:         tagger,
		logger:         logger.Named("classification-service"),
	}
}

var _ ClassificationService = (*classificationService)(nil)

func (s *classificationService) Classify(ctx context.Context, sermonID uuid.UUID, rawThemes []string) (*ClassificationResult, error) {
	sermon, err := s.sermonRepo.GetByID(ctx, sermonID)
	if err != nil {
		return nil, fmt.Errorf("get sermon: %w", err)
	}
	if sermon == nil {
		return nil, apperrors.ErrNotFound
	}

	raw, fromRequest, err := s.resolveRawThemes(ctx, sermon, rawThemes)
	if err != nil {
		return nil, err
	}

	if fromRequest {
		if err := s.sermonRepo.UpdateRawThemes(ctx, sermonID, raw); err != nil {
			return nil, fmt.Errorf("store raw themes: %w", err)
		}
		sermon.RawThemes = raw
	}

	results := make([]themes.MatchResult, 0, len(raw))
	var matched, unmatched int
	for _, r := range raw {
		result := s.matcher.Match(r)
		if result.Kind == themes.MatchUnmatched {
			unmatched++
		} else {
			matched++
		}
		results = append(results, result)
	}

	existing, err := s.assignmentRepo.GetBySermon(ctx, sermonID)
	if err != nil {
		return nil, fmt.Errorf("get existing assignments: %w", err)
	}

	assignments := ReconcileAssignments(sermonID, results, existing, time.Now())

	if err := s.assignmentRepo.ReplaceForSermon(ctx, sermonID, assignments); err != nil {
		return nil, fmt.Errorf("persist assignments: %w", err)
	}

	s.logger.Info("Classified sermon",
		zap.String("sermon_id", sermonID.String()),
		zap.Int("raw_themes", len(raw)),
		zap.Int("matched", matched),
		zap.Int("unmatched", unmatched),
		zap.Int("assignments", len(assignments)))

	return &ClassificationResult{
		Sermon:      sermon,
		RawThemes:   raw,
		Matched:     matched,
		Unmatched:   unmatched,
		Assignments: assignments,
	}, nil
}

// resolveRawThemes decides where this pass's raw strings come from:
// the request, the sermon's stored raw themes, or a fresh tagging run.
// The second return value reports whether the strings are new and need
// to be stored on the sermon.
func (s *classificationService) resolveRawThemes(ctx context.Context, sermon *models.Sermon, requested []string) ([]string, bool, error) {
	if sanitized := sanitizeRawThemes(requested); len(sanitized) > 0 {
		return sanitized, true, nil
	}

	if stored := sanitizeRawThemes(sermon.RawThemes); len(stored) > 0 {
		return stored, false, nil
	}

	if s.tagger == nil || strings.TrimSpace(sermon.Transcript) == "" {
		return nil, false, nil
	}

	suggested, err := s.tagger.SuggestThemes(ctx, sermon.Transcript)
	if err != nil {
		return nil, false, fmt.Errorf("suggest themes: %w", err)
	}
	return sanitizeRawThemes(suggested), true, nil
}

// sanitizeRawThemes performs the input-boundary cleanup the matcher
// assumes: trims whitespace, drops empty and oversize strings, caps the
// list length. Duplicates are kept; aggregation collapses them.
func sanitizeRawThemes(raw []string) []string {
	var out []string
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" || len(r) > maxRawThemeLen {
			continue
		}
		out = append(out, r)
		if len(out) == maxRawThemes {
			break
		}
	}
	return out
}
