package models

import (
	"time"

	"github.com/google/uuid"
)

// Override state values for theme assignments. The state decides what a
// reclassification pass may do to the row:
//   - auto rows are owned by the classifier and may be refreshed or dropped,
//   - user_added rows survive reclassification even with zero fresh support,
//   - user_removed rows are tombstones and are never revived automatically.
const (
	OverrideAuto        = "auto"
	OverrideUserAdded   = "user_added"
	OverrideUserRemoved = "user_removed"
)

// Match kind values recorded on an assignment (the kind of the strongest
// contributing match).
const (
	MatchKindExact     = "exact"
	MatchKindFuzzy     = "fuzzy"
	MatchKindUnmatched = "unmatched"
)

// SermonThemeAssignment links one sermon to one canonical theme. At most
// one row exists per (sermon, theme) pair. Stored in sermon_theme_assignments.
type SermonThemeAssignment struct {
	ID            uuid.UUID `json:"id"`
	SermonID      uuid.UUID `json:"sermon_id"`
	ThemeID       string    `json:"theme_id"`
	Confidence    float64   `json:"confidence"`
	OverrideState string    `json:"override_state"`
	SourceThemes  []string  `json:"source_themes,omitempty"`
	MatchKind     string    `json:"match_kind,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsUserOverride reports whether the row carries a manual edit that
// reclassification must preserve.
func (a *SermonThemeAssignment) IsUserOverride() bool {
	return a.OverrideState == OverrideUserAdded || a.OverrideState == OverrideUserRemoved
}
