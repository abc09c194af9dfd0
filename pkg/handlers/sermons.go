package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/haven-labs/sermon-engine/pkg/apperrors"
	"github.com/haven-labs/sermon-engine/pkg/auth"
	"github.com/haven-labs/sermon-engine/pkg/models"
	"github.com/haven-labs/sermon-engine/pkg/services"
)

// CreateSermonRequest for POST /api/sermons
type CreateSermonRequest struct {
	Title      string   `json:"title"`
	Speaker    string   `json:"speaker,omitempty"`
	Transcript string   `json:"transcript,omitempty"`
	RawThemes  []string `json:"raw_themes,omitempty"`
}

// SermonResponse is the wire shape of a sermon record.
type SermonResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Speaker    string    `json:"speaker,omitempty"`
	Transcript string    `json:"transcript,omitempty"`
	RawThemes  []string  `json:"raw_themes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SermonListResponse for GET /api/sermons
type SermonListResponse struct {
	Sermons []SermonResponse `json:"sermons"`
	Total   int              `json:"total"`
}

func toSermonResponse(s *models.Sermon) SermonResponse {
	return SermonResponse{
		ID:         s.ID.String(),
		Title:      s.Title,
		Speaker:    s.Speaker,
		Transcript: s.Transcript,
		RawThemes:  s.RawThemes,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// SermonHandler handles sermon CRUD HTTP requests.
type SermonHandler struct {
	sermonService services.SermonService
	logger        *zap.Logger
}

// NewSermonHandler creates a new sermon handler.
func NewSermonHandler(sermonService services.SermonService, logger *zap.Logger) *SermonHandler {
	return &SermonHandler{
		sermonService: sermonService,
		logger:        logger,
	}
}

// RegisterRoutes registers the sermon handler's routes on the given mux.
func (h *SermonHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/sermons", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("GET /api/sermons", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("GET /api/sermons/{sid}", authMiddleware.RequireAuth(h.Get))
}

// Create handles POST /api/sermons
func (h *SermonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSermonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	sermon, err := h.sermonService.CreateSermon(r.Context(), services.NewSermonInput{
		Title:      req.Title,
		Speaker:    req.Speaker,
		Transcript: req.Transcript,
		RawThemes:  req.RawThemes,
	})
	if err != nil {
		h.logger.Error("Failed to create sermon",
			zap.String("title", req.Title),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusBadRequest, "create_sermon_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: toSermonResponse(sermon)}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /api/sermons
func (h *SermonHandler) List(w http.ResponseWriter, r *http.Request) {
	sermons, err := h.sermonService.ListSermons(r.Context())
	if err != nil {
		h.logger.Error("Failed to list sermons", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_sermons_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := SermonListResponse{Sermons: make([]SermonResponse, 0, len(sermons)), Total: len(sermons)}
	for _, sermon := range sermons {
		response.Sermons = append(response.Sermons, toSermonResponse(sermon))
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/sermons/{sid}
func (h *SermonHandler) Get(w http.ResponseWriter, r *http.Request) {
	sermonID, ok := ParseSermonID(w, r, h.logger)
	if !ok {
		return
	}

	sermon, err := h.sermonService.GetSermon(r.Context(), sermonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "sermon_not_found", "Sermon not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to get sermon",
			zap.String("sermon_id", sermonID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "get_sermon_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: toSermonResponse(sermon)}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
