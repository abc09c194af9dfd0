// Package themes implements the canonical theme taxonomy and the
// matching engine that maps free-form theme strings onto it.
package themes

// Theme is one member of the fixed canonical taxonomy. Theme IDs are
// persistence keys and are append-only: never renamed, never reused.
type Theme struct {
	ID          string
	DisplayName string
	Keywords    []string

	keywordSet map[string]struct{}
}

// HasKeyword reports whether token is in the theme's keyword set.
func (t *Theme) HasKeyword(token string) bool {
	_, ok := t.keywordSet[token]
	return ok
}

// taxonomy is the full theme list in declaration order. Declaration order
// is load-bearing: fuzzy-match ties resolve to the first declared theme.
var taxonomy = []*Theme{
	{ID: "salvation", DisplayName: "Salvation", Keywords: []string{
		"salvation", "saved", "savior", "save", "eternal", "life", "cross", "deliverance", "rescue", "rescued",
	}},
	{ID: "grace", DisplayName: "Grace", Keywords: []string{
		"grace", "gracious", "unmerited", "favor", "gift", "undeserved",
	}},
	{ID: "faith", DisplayName: "Faith", Keywords: []string{
		"faith", "believe", "belief", "believing", "trust", "trusting", "assurance", "conviction",
	}},
	{ID: "hope", DisplayName: "Hope", Keywords: []string{
		"hope", "hopeful", "expectation", "anchor", "future", "promise",
	}},
	{ID: "love", DisplayName: "Love", Keywords: []string{
		"love", "loving", "beloved", "charity", "compassion", "agape",
	}},
	{ID: "mercy", DisplayName: "Mercy", Keywords: []string{
		"mercy", "merciful", "compassion", "pity", "kindness", "lovingkindness",
	}},
	{ID: "forgiveness", DisplayName: "Forgiveness", Keywords: []string{
		"forgiveness", "forgive", "forgiven", "forgiving", "pardon", "reconciliation", "cleansing",
	}},
	{ID: "redemption", DisplayName: "Redemption", Keywords: []string{
		"redemption", "redeem", "redeemed", "redeemer", "ransom", "bought", "price",
	}},
	{ID: "covenant", DisplayName: "Covenant", Keywords: []string{
		"covenant", "promise", "oath", "agreement", "testament", "abraham", "israel",
	}},
	{ID: "faithfulness", DisplayName: "Faithfulness", Keywords: []string{
		"faithfulness", "faithful", "promise", "promises", "steadfast", "loyal", "loyalty", "unchanging",
	}},
	{ID: "prayer", DisplayName: "Prayer", Keywords: []string{
		"prayer", "pray", "praying", "intercession", "petition", "supplication",
	}},
	{ID: "worship", DisplayName: "Worship", Keywords: []string{
		"worship", "praise", "adoration", "glory", "glorify", "exalt", "song", "singing",
	}},
	{ID: "repentance", DisplayName: "Repentance", Keywords: []string{
		"repentance", "repent", "repenting", "turning", "contrite", "confession", "sin", "sins",
	}},
	{ID: "obedience", DisplayName: "Obedience", Keywords: []string{
		"obedience", "obey", "obeying", "commandment", "commandments", "submission", "walk",
	}},
	{ID: "holiness", DisplayName: "Holiness", Keywords: []string{
		"holiness", "sanctification", "sanctified", "consecrated", "pure", "purity", "set", "apart",
	}},
	{ID: "righteousness", DisplayName: "Righteousness", Keywords: []string{
		"righteousness", "righteous", "upright", "justified", "justification", "blameless",
	}},
	{ID: "justice", DisplayName: "Justice", Keywords: []string{
		"justice", "just", "oppressed", "oppression", "fairness", "equity", "poor", "defend",
	}},
	{ID: "wisdom", DisplayName: "Wisdom", Keywords: []string{
		"wisdom", "wise", "understanding", "discernment", "knowledge", "proverbs",
	}},
	{ID: "suffering", DisplayName: "Suffering", Keywords: []string{
		"suffering", "suffer", "pain", "trial", "trials", "affliction", "persecution", "sorrow",
	}},
	{ID: "perseverance", DisplayName: "Perseverance", Keywords: []string{
		"perseverance", "persevere", "endurance", "endure", "enduring", "steadfast", "patience", "race",
	}},
	{ID: "humility", DisplayName: "Humility", Keywords: []string{
		"humility", "humble", "meek", "meekness", "lowly", "servant", "servanthood",
	}},
	{ID: "stewardship", DisplayName: "Stewardship", Keywords: []string{
		"stewardship", "steward", "giving", "generosity", "tithe", "tithing", "money", "resources", "talents",
	}},
	{ID: "evangelism", DisplayName: "Evangelism", Keywords: []string{
		"evangelism", "gospel", "witness", "testimony", "mission", "missions", "share", "nations",
	}},
	{ID: "discipleship", DisplayName: "Discipleship", Keywords: []string{
		"discipleship", "disciple", "disciples", "follow", "following", "growth", "mentoring",
	}},
	{ID: "community", DisplayName: "Community", Keywords: []string{
		"community", "fellowship", "church", "body", "unity", "together", "believers",
	}},
	{ID: "family", DisplayName: "Family", Keywords: []string{
		"family", "marriage", "parenting", "children", "husband", "wife", "home",
	}},
	{ID: "creation", DisplayName: "Creation", Keywords: []string{
		"creation", "created", "creator", "nature", "world", "genesis", "beginning",
	}},
}

var taxonomyByID = make(map[string]*Theme, len(taxonomy))

func init() {
	for _, t := range taxonomy {
		t.keywordSet = make(map[string]struct{}, len(t.Keywords))
		for _, kw := range t.Keywords {
			t.keywordSet[kw] = struct{}{}
		}
		if _, dup := taxonomyByID[t.ID]; dup {
			panic("themes: duplicate theme id " + t.ID)
		}
		taxonomyByID[t.ID] = t
	}
}

// All returns every canonical theme in declaration order. The returned
// slice is shared; callers must not mutate it.
func All() []*Theme {
	return taxonomy
}

// ByID returns the theme with the given id, or nil if the id is not in
// the taxonomy.
func ByID(id string) *Theme {
	return taxonomyByID[id]
}

// IsValidID reports whether id names a canonical theme.
func IsValidID(id string) bool {
	_, ok := taxonomyByID[id]
	return ok
}
