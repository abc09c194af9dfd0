package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haven-labs/sermon-engine/pkg/apperrors"
	"github.com/haven-labs/sermon-engine/pkg/auth"
	"github.com/haven-labs/sermon-engine/pkg/models"
	"github.com/haven-labs/sermon-engine/pkg/services"
)

// stubAuthService accepts every request with fixed claims. Handler tests
// exercise routing and response mapping, not token validation.
type stubAuthService struct{}

func (stubAuthService) ValidateRequest(r *http.Request) (*auth.Claims, string, error) {
	claims := &auth.Claims{}
	claims.Subject = "test-user"
	return claims, "test-token", nil
}

func testAuthMiddleware() *auth.Middleware {
	return auth.NewMiddleware(stubAuthService{}, zap.NewNop())
}

// mockSermonService implements services.SermonService.
type mockSermonService struct {
	sermons   map[uuid.UUID]*models.Sermon
	createErr error
	listErr   error
}

var _ services.SermonService = (*mockSermonService)(nil)

func newMockSermonService() *mockSermonService {
	return &mockSermonService{sermons: make(map[uuid.UUID]*models.Sermon)}
}

func (m *mockSermonService) CreateSermon(ctx context.Context, input services.NewSermonInput) (*models.Sermon, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	sermon := &models.Sermon{
		ID:        uuid.New(),
		Title:     input.Title,
		Speaker:   input.Speaker,
		RawThemes: input.RawThemes,
	}
	m.sermons[sermon.ID] = sermon
	return sermon, nil
}

func (m *mockSermonService) GetSermon(ctx context.Context, sermonID uuid.UUID) (*models.Sermon, error) {
	sermon, ok := m.sermons[sermonID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return sermon, nil
}

func (m *mockSermonService) ListSermons(ctx context.Context) ([]*models.Sermon, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*models.Sermon, 0, len(m.sermons))
	for _, s := range m.sermons {
		out = append(out, s)
	}
	return out, nil
}

// mockClassificationService implements services.ClassificationService.
type mockClassificationService struct {
	result *services.ClassificationResult
	err    error

	lastSermonID  uuid.UUID
	lastRawThemes []string
}

var _ services.ClassificationService = (*mockClassificationService)(nil)

func (m *mockClassificationService) Classify(ctx context.Context, sermonID uuid.UUID, rawThemes []string) (*services.ClassificationResult, error) {
	m.lastSermonID = sermonID
	m.lastRawThemes = rawThemes
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockOverrideService implements services.ThemeOverrideService.
type mockOverrideService struct {
	assignment  *models.SermonThemeAssignment
	assignments []*models.SermonThemeAssignment
	err         error

	lastSermonID uuid.UUID
	lastThemeID  string
	lastCall     string
}

var _ services.ThemeOverrideService = (*mockOverrideService)(nil)

func (m *mockOverrideService) AddTheme(ctx context.Context, sermonID uuid.UUID, themeID string) (*models.SermonThemeAssignment, error) {
	m.lastSermonID, m.lastThemeID, m.lastCall = sermonID, themeID, "add"
	return m.assignment, m.err
}

func (m *mockOverrideService) RemoveTheme(ctx context.Context, sermonID uuid.UUID, themeID string) (*models.SermonThemeAssignment, error) {
	m.lastSermonID, m.lastThemeID, m.lastCall = sermonID, themeID, "remove"
	return m.assignment, m.err
}

func (m *mockOverrideService) RestoreTheme(ctx context.Context, sermonID uuid.UUID, themeID string) error {
	m.lastSermonID, m.lastThemeID, m.lastCall = sermonID, themeID, "restore"
	return m.err
}

func (m *mockOverrideService) ListAssignments(ctx context.Context, sermonID uuid.UUID) ([]*models.SermonThemeAssignment, error) {
	m.lastSermonID, m.lastCall = sermonID, "list"
	if m.err != nil {
		return nil, m.err
	}
	return m.assignments, nil
}
