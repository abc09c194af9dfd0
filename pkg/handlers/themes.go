package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/haven-labs/sermon-engine/pkg/apperrors"
	"github.com/haven-labs/sermon-engine/pkg/auth"
	"github.com/haven-labs/sermon-engine/pkg/models"
	"github.com/haven-labs/sermon-engine/pkg/services"
	"github.com/haven-labs/sermon-engine/pkg/themes"
)

// ThemeResponse is the wire shape of a taxonomy theme.
type ThemeResponse struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Keywords    []string `json:"keywords"`
}

// ThemeListResponse for GET /api/themes
type ThemeListResponse struct {
	Themes []ThemeResponse `json:"themes"`
	Total  int             `json:"total"`
}

// AssignmentResponse is the wire shape of a sermon theme assignment.
type AssignmentResponse struct {
	ThemeID       string    `json:"theme_id"`
	Confidence    float64   `json:"confidence"`
	OverrideState string    `json:"override_state"`
	SourceThemes  []string  `json:"source_themes,omitempty"`
	MatchKind     string    `json:"match_kind,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AssignmentListResponse for GET /api/sermons/{sid}/themes
type AssignmentListResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	Total       int                  `json:"total"`
}

// ClassifyRequest for POST /api/sermons/{sid}/classify. RawThemes is
// optional; without it the service falls back to stored raw themes, then
// to the configured tagger.
type ClassifyRequest struct {
	RawThemes []string `json:"raw_themes,omitempty"`
}

// ClassifyResponse reports the outcome of a classification pass.
type ClassifyResponse struct {
	SermonID    string               `json:"sermon_id"`
	RawThemes   []string             `json:"raw_themes"`
	Matched     int                  `json:"matched"`
	Unmatched   int                  `json:"unmatched"`
	Assignments []AssignmentResponse `json:"assignments"`
}

func toAssignmentResponse(a *models.SermonThemeAssignment) AssignmentResponse {
	return AssignmentResponse{
		ThemeID:       a.ThemeID,
		Confidence:    a.Confidence,
		OverrideState: a.OverrideState,
		SourceThemes:  a.SourceThemes,
		MatchKind:     a.MatchKind,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func toAssignmentResponses(assignments []*models.SermonThemeAssignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, toAssignmentResponse(a))
	}
	return out
}

// ThemeHandler handles taxonomy, classification and override HTTP requests.
type ThemeHandler struct {
	classificationService services.ClassificationService
	overrideService       services.ThemeOverrideService
	logger                *zap.Logger
}

// NewThemeHandler creates a new theme handler.
func NewThemeHandler(
	classificationService services.ClassificationService,
	overrideService services.ThemeOverrideService,
	logger *zap.Logger,
) *ThemeHandler {
	return &ThemeHandler{
		classificationService: classificationService,
		overrideService:       overrideService,
		logger:                logger,
	}
}

// RegisterRoutes registers the theme handler's routes on the given mux.
func (h *ThemeHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/themes", authMiddleware.RequireAuth(h.ListTaxonomy))
	mux.HandleFunc("POST /api/sermons/{sid}/classify", authMiddleware.RequireAuth(h.Classify))
	mux.HandleFunc("GET /api/sermons/{sid}/themes", authMiddleware.RequireAuth(h.ListAssignments))
	mux.HandleFunc("POST /api/sermons/{sid}/themes/{tid}", authMiddleware.RequireAuth(h.AddTheme))
	mux.HandleFunc("DELETE /api/sermons/{sid}/themes/{tid}", authMiddleware.RequireAuth(h.RemoveTheme))
	mux.HandleFunc("POST /api/sermons/{sid}/themes/{tid}/restore", authMiddleware.RequireAuth(h.RestoreTheme))
}

// ListTaxonomy handles GET /api/themes
// Returns the canonical taxonomy in declaration order.
func (h *ThemeHandler) ListTaxonomy(w http.ResponseWriter, r *http.Request) {
	all := themes.All()
	response := ThemeListResponse{Themes: make([]ThemeResponse, 0, len(all)), Total: len(all)}
	for _, theme := range all {
		response.Themes = append(response.Themes, ThemeResponse{
			ID:          theme.ID,
			DisplayName: theme.DisplayName,
			Keywords:    theme.Keywords,
		})
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Classify handles POST /api/sermons/{sid}/classify
func (h *ThemeHandler) Classify(w http.ResponseWriter, r *http.Request) {
	sermonID, ok := ParseSermonID(w, r, h.logger)
	if !ok {
		return
	}

	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	result, err := h.classificationService.Classify(r.Context(), sermonID, req.RawThemes)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "sermon_not_found", "Sermon not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Classification failed",
			zap.String("sermon_id", sermonID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "classification_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := ClassifyResponse{
		SermonID:    result.Sermon.ID.String(),
		RawThemes:   result.RawThemes,
		Matched:     result.Matched,
		Unmatched:   result.Unmatched,
		Assignments: toAssignmentResponses(result.Assignments),
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListAssignments handles GET /api/sermons/{sid}/themes
func (h *ThemeHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	sermonID, ok := ParseSermonID(w, r, h.logger)
	if !ok {
		return
	}

	assignments, err := h.overrideService.ListAssignments(r.Context(), sermonID)
	if err != nil {
		h.writeOverrideError(w, err, sermonID.String(), "")
		return
	}

	response := AssignmentListResponse{
		Assignments: toAssignmentResponses(assignments),
		Total:       len(assignments),
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// AddTheme handles POST /api/sermons/{sid}/themes/{tid}
func (h *ThemeHandler) AddTheme(w http.ResponseWriter, r *http.Request) {
	sermonID, ok := ParseSermonID(w, r, h.logger)
	if !ok {
		return
	}
	themeID, ok := ParseThemeID(w, r, h.logger)
	if !ok {
		return
	}

	assignment, err := h.overrideService.AddTheme(r.Context(), sermonID, themeID)
	if err != nil {
		h.writeOverrideError(w, err, sermonID.String(), themeID)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: toAssignmentResponse(assignment)}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// RemoveTheme handles DELETE /api/sermons/{sid}/themes/{tid}
func (h *ThemeHandler) RemoveTheme(w http.ResponseWriter, r *http.Request) {
	sermonID, ok := ParseSermonID(w, r, h.logger)
	if !ok {
		return
	}
	themeID, ok := ParseThemeID(w, r, h.logger)
	if !ok {
		return
	}

	assignment, err := h.overrideService.RemoveTheme(r.Context(), sermonID, themeID)
	if err != nil {
		h.writeOverrideError(w, err, sermonID.String(), themeID)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: toAssignmentResponse(assignment)}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// RestoreTheme handles POST /api/sermons/{sid}/themes/{tid}/restore
func (h *ThemeHandler) RestoreTheme(w http.ResponseWriter, r *http.Request) {
	sermonID, ok := ParseSermonID(w, r, h.logger)
	if !ok {
		return
	}
	themeID, ok := ParseThemeID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.overrideService.RestoreTheme(r.Context(), sermonID, themeID); err != nil {
		h.writeOverrideError(w, err, sermonID.String(), themeID)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeOverrideError maps service errors onto HTTP status codes.
func (h *ThemeHandler) writeOverrideError(w http.ResponseWriter, err error, sermonID, themeID string) {
	switch {
	case errors.Is(err, apperrors.ErrUnknownTheme):
		err = ErrorResponse(w, http.StatusBadRequest, "unknown_theme", "Theme is not part of the taxonomy")
	case errors.Is(err, apperrors.ErrNotFound):
		err = ErrorResponse(w, http.StatusNotFound, "not_found", "Sermon or assignment not found")
	case errors.Is(err, apperrors.ErrConflict):
		err = ErrorResponse(w, http.StatusConflict, "conflict", "Assignment is not in a restorable state")
	default:
		h.logger.Error("Theme override failed",
			zap.String("sermon_id", sermonID),
			zap.String("theme_id", themeID),
			zap.Error(err))
		err = ErrorResponse(w, http.StatusInternalServerError, "theme_override_failed", err.Error())
	}
	if err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
