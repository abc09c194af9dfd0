package themes

import "fmt"

// MatchKind classifies how a raw string was resolved to a theme.
type MatchKind string

const (
	MatchExact     MatchKind = "exact"
	MatchFuzzy     MatchKind = "fuzzy"
	MatchUnmatched MatchKind = "unmatched"
)

const (
	// fuzzyThreshold is the minimum boosted Jaccard score a theme must
	// reach before a fuzzy match is accepted.
	fuzzyThreshold = 0.25
	// overlapBoost rewards any shared vocabulary over none.
	overlapBoost = 0.1
	// fuzzyConfidenceFloor / fuzzyConfidenceCeil bound the confidence
	// range fuzzy scores are mapped into. Exact matches are always 1.0.
	fuzzyConfidenceFloor = 0.6
	fuzzyConfidenceCeil  = 0.9
)

// MatchResult is the outcome of matching one raw theme string. Theme is
// nil when Kind is MatchUnmatched. SourceText preserves the original,
// un-normalized input for audit and display.
type MatchResult struct {
	Theme      *Theme
	Confidence float64
	Kind       MatchKind
	SourceText string
}

// Matcher resolves raw theme strings against the taxonomy. Its
// dictionary is built once and never mutated afterwards, so a single
// Matcher is safe for concurrent use without coordination.
type Matcher struct {
	dict map[string]*Theme
}

// NewMatcher builds a matcher over the static taxonomy and synonym
// dictionary.
func NewMatcher() *Matcher {
	return &Matcher{dict: buildDictionary()}
}

// AddSynonyms folds overlay entries into the dictionary. Must be called
// before the matcher is shared between goroutines. An overlay key that
// already resolves to a different theme is rejected: dictionary keys
// are globally unique.
func (m *Matcher) AddSynonyms(overlay *SynonymOverlay) error {
	for id, phrases := range overlay.Synonyms {
		t := ByID(id)
		if t == nil {
			return fmt.Errorf("unknown theme id %q", id)
		}
		for _, phrase := range phrases {
			key := Canonicalize(phrase).Key
			if key == "" {
				continue
			}
			if prev, ok := m.dict[key]; ok && prev != t {
				return fmt.Errorf("synonym %q already maps to theme %s", phrase, prev.ID)
			}
			m.dict[key] = t
		}
	}
	return nil
}

// Match resolves one raw string to a MatchResult. Every input produces
// a result; failure to match is the MatchUnmatched value, not an error.
func (m *Matcher) Match(raw string) MatchResult {
	c := Canonicalize(raw)

	if t, ok := m.dict[c.Key]; ok && c.Key != "" {
		return MatchResult{Theme: t, Confidence: 1.0, Kind: MatchExact, SourceText: raw}
	}

	if len(c.Tokens) == 0 {
		return MatchResult{Kind: MatchUnmatched, SourceText: raw}
	}

	var best *Theme
	var bestScore float64
	for _, t := range taxonomy {
		score := keywordScore(c.Tokens, t)
		// Strict > keeps the first declared theme on ties.
		if score > bestScore {
			best = t
			bestScore = score
		}
	}

	if best == nil || bestScore < fuzzyThreshold {
		return MatchResult{Kind: MatchUnmatched, SourceText: raw}
	}

	confidence := fuzzyConfidenceFloor + (bestScore-fuzzyThreshold)*0.4
	if confidence > fuzzyConfidenceCeil {
		confidence = fuzzyConfidenceCeil
	}

	return MatchResult{Theme: best, Confidence: confidence, Kind: MatchFuzzy, SourceText: raw}
}

// keywordScore is the Jaccard similarity between the input tokens and
// the theme's keyword set, plus a flat boost when anything overlaps.
func keywordScore(tokens map[string]struct{}, t *Theme) float64 {
	var intersection int
	for tok := range tokens {
		if t.HasKeyword(tok) {
			intersection++
		}
	}
	if intersection == 0 {
		return 0
	}

	union := len(tokens) + len(t.keywordSet) - intersection
	return float64(intersection)/float64(union) + overlapBoost
}
