package screening

import (
	"regexp"
	"strings"
)

// Linguistics is the language model surface the pipeline needs. *nlp.Pipeline
// implements it; tests substitute a small fake.
type Linguistics interface {
	Tokenize(text string) []string
	IsStopWord(token string) bool
	Lemma(token string) string
	PersonEntities(text string) []string
}

var nonLetters = regexp.MustCompile(`[^a-z\s]`)

// Normalizer prepares resume and job-description text for matching and embedding.
type Normalizer struct {
	lang Linguistics
}

// NewNormalizer returns a Normalizer backed by lang.
func NewNormalizer(lang Linguistics) *Normalizer {
	return &Normalizer{lang: lang}
}

// Normalize lowercases, drops non-letters, removes stop-words and lemmatizes.
// Output tokens are joined by single spaces.
func (n *Normalizer) Normalize(text string) string {
	text = nonLetters.ReplaceAllString(strings.ToLower(text), " ")
	if strings.TrimSpace(text) == "" {
		return ""
	}
	tokens := n.lang.Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" || n.lang.IsStopWord(tok) {
			continue
		}
		lemma := strings.ToLower(strings.TrimSpace(n.lang.Lemma(tok)))
		if lemma == "" {
			continue
		}
		out = append(out, lemma)
	}
	return strings.Join(out, " ")
}
