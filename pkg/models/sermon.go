package models

import (
	"time"

	"github.com/google/uuid"
)

// Sermon is one piece of long-form content whose AI-generated topical
// tags get classified into canonical themes. RawThemes holds the most
// recent tag strings from the upstream tagging pass, preserved verbatim
// so classification can be re-run without re-tagging.
type Sermon struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Speaker    string    `json:"speaker,omitempty"`
	Transcript string    `json:"transcript,omitempty"`
	RawThemes  []string  `json:"raw_themes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
