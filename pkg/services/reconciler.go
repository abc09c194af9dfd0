package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/haven-labs/sermon-engine/pkg/models"
	"github.com/haven-labs/sermon-engine/pkg/themes"
)

// themeAggregate folds every fresh match result for one theme into the
// values that land on the assignment row: the strongest confidence, the
// kind of the strongest contributor, and the union of source strings.
type themeAggregate struct {
	confidence float64
	matchKind  string
	sources    []string
}

// aggregateResults groups fresh match results by resolved theme.
// Unmatched results carry no theme and are dropped here; they never
// influence reconciliation.
func aggregateResults(fresh []themes.MatchResult) map[string]*themeAggregate {
	aggs := make(map[string]*themeAggregate)
	for _, r := range fresh {
		if r.Kind == themes.MatchUnmatched || r.Theme == nil {
			continue
		}
		agg := aggs[r.Theme.ID]
		if agg == nil {
			agg = &themeAggregate{
				confidence: r.Confidence,
				matchKind:  string(r.Kind),
			}
			aggs[r.Theme.ID] = agg
		} else if r.Confidence > agg.confidence {
			agg.confidence = r.Confidence
			agg.matchKind = string(r.Kind)
		}
		agg.sources = appendUnique(agg.sources, r.SourceText)
	}
	return aggs
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

// ReconcileAssignments merges fresh classification output with the
// sermon's persisted assignments and returns the full replacement set.
// It is a pure function: inputs are never mutated, and the result is
// ordered by taxonomy declaration order.
//
// Override semantics:
//   - user_removed tombstones are carried forward untouched, even when
//     classification produces the theme again;
//   - user_added rows survive with or without fresh support, refreshing
//     their evidence when support exists but never reverting to auto;
//   - auto rows follow the classifier: created, refreshed, or dropped.
func ReconcileAssignments(
	sermonID uuid.UUID,
	fresh []themes.MatchResult,
	existing []*models.SermonThemeAssignment,
	now time.Time,
) []*models.SermonThemeAssignment {
	autos := make(map[string]*models.SermonThemeAssignment)
	userAdded := make(map[string]*models.SermonThemeAssignment)
	userRemoved := make(map[string]*models.SermonThemeAssignment)
	for _, a := range existing {
		switch a.OverrideState {
		case models.OverrideUserAdded:
			userAdded[a.ThemeID] = a
		case models.OverrideUserRemoved:
			userRemoved[a.ThemeID] = a
		default:
			autos[a.ThemeID] = a
		}
	}

	aggs := aggregateResults(fresh)

	var result []*models.SermonThemeAssignment
	for _, theme := range themes.All() {
		agg := aggs[theme.ID]

		if tombstone, ok := userRemoved[theme.ID]; ok {
			// The tombstone wins regardless of fresh support.
			result = append(result, tombstone)
			continue
		}

		if added, ok := userAdded[theme.ID]; ok {
			if agg == nil {
				result = append(result, added)
				continue
			}
			// A user addition accumulates fresh evidence but keeps its state.
			refreshed := *added
			refreshed.Confidence = agg.confidence
			refreshed.MatchKind = agg.matchKind
			refreshed.SourceThemes = agg.sources
			refreshed.UpdatedAt = now
			result = append(result, &refreshed)
			continue
		}

		if agg == nil {
			// An auto row without fresh support is no longer justified.
			continue
		}

		if prior, ok := autos[theme.ID]; ok {
			updated := *prior
			updated.Confidence = agg.confidence
			updated.MatchKind = agg.matchKind
			updated.SourceThemes = agg.sources
			updated.UpdatedAt = now
			result = append(result, &updated)
			continue
		}

		result = append(result, &models.SermonThemeAssignment{
			ID:            uuid.New(),
			SermonID:      sermonID,
			ThemeID:       theme.ID,
			Confidence:    agg.confidence,
			OverrideState: models.OverrideAuto,
			SourceThemes:  agg.sources,
			MatchKind:     agg.matchKind,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	return result
}
