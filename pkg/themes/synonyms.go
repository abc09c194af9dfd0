package themes

import (
	"fmt"
	"os"

	"github.com/jinzhu/inflection"
	"gopkg.in/yaml.v3"
)

// synonyms maps curated phrase variants to theme ids. Keys are written
// in already-canonical form (lowercase, punctuation-free); they are
// canonicalized again at dictionary build time so a typo here cannot
// produce an unreachable entry. Every theme's display name and its
// plural inflection are added automatically and do not appear here.
var synonyms = map[string]string{
	// salvation
	"saved by grace":    "salvation",
	"being saved":       "salvation",
	"eternal life":      "salvation",
	"born again":        "salvation",
	"the way of salvation": "salvation",

	// grace
	"amazing grace":   "grace",
	"gods grace":      "grace",
	"saving grace":    "grace",
	"unmerited favor": "grace",

	// faith
	"trusting god":   "faith",
	"belief":         "faith",
	"believing":      "faith",
	"faith in god":   "faith",
	"walking by faith": "faith",

	// hope
	"living hope":    "hope",
	"hope in christ": "hope",
	"blessed hope":   "hope",

	// love
	"gods love":       "love",
	"love of god":     "love",
	"loving others":   "love",
	"agape love":      "love",
	"love one another": "love",

	// mercy
	"gods mercy":     "mercy",
	"divine mercy":   "mercy",
	"lovingkindness": "mercy",

	// forgiveness
	"gods forgiveness":   "forgiveness",
	"divine forgiveness": "forgiveness",
	"forgiving others":   "forgiveness",
	"being forgiven":     "forgiveness",

	// redemption
	"redeemed":       "redemption",
	"the redeemer":   "redemption",
	"redeeming love": "redemption",

	// covenant
	"the new covenant": "covenant",
	"old covenant":     "covenant",
	"gods covenant":    "covenant",
	"covenant promises": "covenant",

	// faithfulness
	"gods faithfulness": "faithfulness",
	"god is faithful":   "faithfulness",
	"great is thy faithfulness": "faithfulness",

	// prayer
	"praying":          "prayer",
	"intercession":     "prayer",
	"a life of prayer": "prayer",
	"prayer life":      "prayer",

	// worship
	"praise":             "worship",
	"praise and worship": "worship",
	"worshiping god":     "worship",
	"giving glory":       "worship",

	// repentance
	"repent":           "repentance",
	"turning from sin": "repentance",
	"confession of sin": "repentance",

	// obedience
	"obeying god":        "obedience",
	"walking in obedience": "obedience",
	"keeping the commandments": "obedience",

	// holiness
	"sanctification": "holiness",
	"being set apart": "holiness",
	"holy living":    "holiness",

	// righteousness
	"the righteousness of god": "righteousness",
	"righteous living":         "righteousness",
	"justification":            "righteousness",

	// justice
	"gods justice":       "justice",
	"justice for the oppressed": "justice",
	"doing justice":      "justice",

	// wisdom
	"godly wisdom":  "wisdom",
	"wisdom of god": "wisdom",
	"discernment":   "wisdom",

	// suffering
	"trials":                "suffering",
	"trials and tribulations": "suffering",
	"suffering well":        "suffering",
	"persecution":           "suffering",

	// perseverance
	"endurance":          "perseverance",
	"persevering":        "perseverance",
	"running the race":   "perseverance",
	"standing firm":      "perseverance",

	// humility
	"being humble":     "humility",
	"humble yourself":  "humility",
	"servant heart":    "humility",
	"servanthood":      "humility",

	// stewardship
	"generosity":      "stewardship",
	"generous giving": "stewardship",
	"tithing":         "stewardship",
	"giving":          "stewardship",

	// evangelism
	"the gospel":         "evangelism",
	"sharing the gospel": "evangelism",
	"the great commission": "evangelism",
	"witnessing":         "evangelism",

	// discipleship
	"following jesus":  "discipleship",
	"making disciples": "discipleship",
	"spiritual growth": "discipleship",

	// community
	"fellowship":         "community",
	"the body of christ": "community",
	"church community":   "community",
	"unity in the church": "community",

	// family
	"marriage":          "family",
	"parenting":         "family",
	"family life":       "family",
	"husbands and wives": "family",

	// creation
	"the creation story": "creation",
	"god the creator":    "creation",
	"in the beginning":   "creation",
}

// buildDictionary assembles the exact-match dictionary: every theme's
// canonicalized display name, its plural inflection, and the curated
// synonym table. Keys must be globally unique; a collision between two
// themes is a data bug and panics at init.
func buildDictionary() map[string]*Theme {
	dict := make(map[string]*Theme, len(synonyms)+2*len(taxonomy))

	add := func(phrase string, t *Theme) {
		key := Canonicalize(phrase).Key
		if key == "" {
			return
		}
		if prev, ok := dict[key]; ok {
			if prev != t {
				panic(fmt.Sprintf("themes: dictionary key %q maps to both %s and %s", key, prev.ID, t.ID))
			}
			return
		}
		dict[key] = t
	}

	for _, t := range taxonomy {
		add(t.DisplayName, t)
		add(inflection.Plural(t.DisplayName), t)
	}
	for phrase, id := range synonyms {
		t := taxonomyByID[id]
		if t == nil {
			panic(fmt.Sprintf("themes: synonym %q references unknown theme %s", phrase, id))
		}
		add(phrase, t)
	}

	return dict
}

// SynonymOverlay is the on-disk format for site-local dictionary
// additions: theme id to extra phrase variants.
type SynonymOverlay struct {
	Synonyms map[string][]string `yaml:"synonyms"`
}

// LoadSynonymOverlay reads extra dictionary entries from a YAML file.
// The file is optional configuration; entries referencing unknown theme
// ids are an error so a taxonomy typo fails at startup, not silently.
func LoadSynonymOverlay(path string) (*SynonymOverlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read synonym overlay: %w", err)
	}

	var overlay SynonymOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse synonym overlay: %w", err)
	}

	for id := range overlay.Synonyms {
		if !IsValidID(id) {
			return nil, fmt.Errorf("synonym overlay references unknown theme id %q", id)
		}
	}

	return &overlay, nil
}
