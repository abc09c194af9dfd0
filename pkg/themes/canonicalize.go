package themes

import (
	"strings"
	"unicode"
)

// Canonical is the normalized form of a raw theme string: a full-phrase
// key for exact dictionary lookup and a stopword-free token set for
// fuzzy keyword matching.
type Canonical struct {
	Key    string
	Tokens map[string]struct{}
}

// stopwords are dropped from the token set. Beyond the usual articles,
// conjunctions and pronouns, this includes religious honorifics and
// fillers ("god", "lord", "holy", ...) that appear in nearly every
// generated tag and carry no discriminating signal between themes.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"and": {}, "or": {}, "but": {}, "nor": {}, "so": {}, "yet": {},
	"of": {}, "in": {}, "on": {}, "to": {}, "for": {}, "with": {},
	"through": {}, "by": {}, "from": {}, "at": {}, "as": {}, "into": {},
	"upon": {}, "over": {}, "under": {}, "about": {}, "toward": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "being": {}, "been": {},
	"this": {}, "that": {}, "these": {}, "those": {},
	"it": {}, "its": {}, "his": {}, "her": {}, "hers": {}, "their": {}, "theirs": {},
	"our": {}, "ours": {}, "your": {}, "yours": {}, "my": {}, "mine": {},
	"i": {}, "he": {}, "she": {}, "we": {}, "us": {}, "you": {}, "they": {}, "them": {},
	"who": {}, "whom": {}, "what": {}, "how": {}, "when": {}, "where": {},
	"all": {}, "any": {}, "every": {}, "each": {}, "o": {},
	"god": {}, "gods": {}, "lord": {}, "lords": {}, "christ": {}, "jesus": {},
	"holy": {}, "spirit": {}, "divine": {}, "heavenly": {}, "father": {},
	"biblical": {}, "bible": {}, "scripture": {}, "christian": {},
}

// asciiFold maps typographic quote and dash variants onto plain ASCII.
// Dashes become spaces so hyphenated phrases still split into words.
var asciiFold = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", " ", // en dash
	"—", " ", // em dash
	"-", " ",
)

// Canonicalize normalizes a raw theme string. It is a pure function:
// any input, including empty, yields a valid (possibly empty) result.
func Canonicalize(raw string) Canonical {
	s := asciiFold.Replace(strings.ToLower(raw))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	key := strings.Join(words, " ")

	tokens := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, skip := stopwords[w]; skip {
			continue
		}
		tokens[w] = struct{}{}
	}

	return Canonical{Key: key, Tokens: tokens}
}
