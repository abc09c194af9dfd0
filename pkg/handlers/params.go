package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ParseSermonID extracts and validates the sermon ID from the request path.
// Returns the parsed UUID and true on success, or uuid.Nil and false on error
// (after writing an error response).
// Expects path parameter: sid
func ParseSermonID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	return parseUUID(w, r, "sid", "invalid_sermon_id", "Invalid sermon ID format", logger)
}

// ParseThemeID extracts the theme ID from the request path. Theme IDs are
// taxonomy slugs, not UUIDs; existence is checked by the service layer.
// Returns the ID and true on success, or empty string and false on error
// (after writing an error response).
// Expects path parameter: tid
func ParseThemeID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (string, bool) {
	themeID := r.PathValue("tid")
	if themeID == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_theme_id", "Missing theme ID"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return "", false
	}
	return themeID, true
}

// parseUUID is the internal helper that does the actual parsing work.
func parseUUID(w http.ResponseWriter, r *http.Request, pathParam, errorCode, errorMessage string, logger *zap.Logger) (uuid.UUID, bool) {
	idStr := r.PathValue(pathParam)
	id, err := uuid.Parse(idStr)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, errorCode, errorMessage); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return id, true
}
