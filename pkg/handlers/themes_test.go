package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haven-labs/sermon-engine/pkg/apperrors"
	"github.com/haven-labs/sermon-engine/pkg/models"
	"github.com/haven-labs/sermon-engine/pkg/services"
	"github.com/haven-labs/sermon-engine/pkg/themes"
)

func newThemeMux(classify *mockClassificationService, override *mockOverrideService) *http.ServeMux {
	mux := http.NewServeMux()
	handler := NewThemeHandler(classify, override, zap.NewNop())
	handler.RegisterRoutes(mux, testAuthMiddleware())
	return mux
}

func TestThemeHandler_ListTaxonomy(t *testing.T) {
	mux := newThemeMux(&mockClassificationService{}, &mockOverrideService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/themes", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, float64(len(themes.All())), data["total"])

	list, ok := data["themes"].([]any)
	require.True(t, ok)
	first, ok := list[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, themes.All()[0].ID, first["id"])
}

func TestThemeHandler_Classify(t *testing.T) {
	sermon := &models.Sermon{ID: uuid.New(), Title: "On Grace"}
	classify := &mockClassificationService{
		result: &services.ClassificationResult{
			Sermon:    sermon,
			RawThemes: []string{"Amazing grace"},
			Matched:   1,
			Assignments: []*models.SermonThemeAssignment{{
				SermonID:      sermon.ID,
				ThemeID:       "grace",
				Confidence:    1.0,
				OverrideState: models.OverrideAuto,
				MatchKind:     models.MatchKindExact,
				SourceThemes:  []string{"Amazing grace"},
			}},
		},
	}
	mux := newThemeMux(classify, &mockOverrideService{})

	body := `{"raw_themes":["Amazing grace"]}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/sermons/"+sermon.ID.String()+"/classify", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sermon.ID, classify.lastSermonID)
	assert.Equal(t, []string{"Amazing grace"}, classify.lastRawThemes)

	data := decodeData(t, rec)
	assert.Equal(t, float64(1), data["matched"])
	assignments, ok := data["assignments"].([]any)
	require.True(t, ok)
	require.Len(t, assignments, 1)
}

func TestThemeHandler_Classify_EmptyBody(t *testing.T) {
	classify := &mockClassificationService{
		result: &services.ClassificationResult{Sermon: &models.Sermon{ID: uuid.New()}},
	}
	mux := newThemeMux(classify, &mockOverrideService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/sermons/"+uuid.NewString()+"/classify", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, classify.lastRawThemes)
}

func TestThemeHandler_Classify_SermonNotFound(t *testing.T) {
	classify := &mockClassificationService{err: apperrors.ErrNotFound}
	mux := newThemeMux(classify, &mockOverrideService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/sermons/"+uuid.NewString()+"/classify", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestThemeHandler_ListAssignments(t *testing.T) {
	sermonID := uuid.New()
	override := &mockOverrideService{
		assignments: []*models.SermonThemeAssignment{
			{SermonID: sermonID, ThemeID: "grace", OverrideState: models.OverrideAuto},
			{SermonID: sermonID, ThemeID: "mercy", OverrideState: models.OverrideUserRemoved},
		},
	}
	mux := newThemeMux(&mockClassificationService{}, override)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/sermons/"+sermonID.String()+"/themes", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sermonID, override.lastSermonID)
	data := decodeData(t, rec)
	assert.Equal(t, float64(2), data["total"])
}

func TestThemeHandler_AddTheme(t *testing.T) {
	sermonID := uuid.New()
	override := &mockOverrideService{
		assignment: &models.SermonThemeAssignment{
			SermonID:      sermonID,
			ThemeID:       "covenant",
			Confidence:    1.0,
			OverrideState: models.OverrideUserAdded,
		},
	}
	mux := newThemeMux(&mockClassificationService{}, override)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/sermons/"+sermonID.String()+"/themes/covenant", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "add", override.lastCall)
	assert.Equal(t, "covenant", override.lastThemeID)

	data := decodeData(t, rec)
	assert.Equal(t, models.OverrideUserAdded, data["override_state"])
}

func TestThemeHandler_AddTheme_Unknown(t *testing.T) {
	override := &mockOverrideService{err: apperrors.ErrUnknownTheme}
	mux := newThemeMux(&mockClassificationService{}, override)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/sermons/"+uuid.NewString()+"/themes/astrology", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestThemeHandler_RemoveTheme(t *testing.T) {
	sermonID := uuid.New()
	override := &mockOverrideService{
		assignment: &models.SermonThemeAssignment{
			SermonID:      sermonID,
			ThemeID:       "grace",
			OverrideState: models.OverrideUserRemoved,
		},
	}
	mux := newThemeMux(&mockClassificationService{}, override)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete,
		"/api/sermons/"+sermonID.String()+"/themes/grace", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "remove", override.lastCall)
	data := decodeData(t, rec)
	assert.Equal(t, models.OverrideUserRemoved, data["override_state"])
}

func TestThemeHandler_RestoreTheme(t *testing.T) {
	sermonID := uuid.New()
	override := &mockOverrideService{}
	mux := newThemeMux(&mockClassificationService{}, override)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/sermons/"+sermonID.String()+"/themes/grace/restore", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "restore", override.lastCall)
}

func TestThemeHandler_RestoreTheme_Conflict(t *testing.T) {
	override := &mockOverrideService{err: apperrors.ErrConflict}
	mux := newThemeMux(&mockClassificationService{}, override)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/sermons/"+uuid.NewString()+"/themes/grace/restore", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestThemeHandler_RestoreTheme_NotFound(t *testing.T) {
	override := &mockOverrideService{err: apperrors.ErrNotFound}
	mux := newThemeMux(&mockClassificationService{}, override)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/sermons/"+uuid.NewString()+"/themes/grace/restore", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
