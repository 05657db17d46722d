// Package nlp wraps the English linguistic pipeline used for screening:
// tokenization and named entities from prose, lemmas from golem.
package nlp

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
)

//go:embed stopwords_en.txt
var stopwordsEN string

const (
	labelPerson = "PERSON"
	warmupText  = "warm"
)

// Pipeline is safe for concurrent use once constructed. The prose model is
// only read after New returns.
type Pipeline struct {
	lemmatizer *golem.Lemmatizer
	model      *prose.Model
	stopwords  map[string]struct{}
}

// New loads the English lemma dictionary and the tagging and entity model.
// It is slow; build it once per process.
func New() (*Pipeline, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load lemmatizer: %w", err)
	}
	doc, err := prose.NewDocument(warmupText)
	if err != nil {
		return nil, fmt.Errorf("load entity model: %w", err)
	}
	return &Pipeline{lemmatizer: lem, model: doc.Model, stopwords: StopWords()}, nil
}

// StopWords returns a fresh copy of the English stop-word set.
func StopWords() map[string]struct{} {
	words := strings.Fields(stopwordsEN)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Tokenize splits text into word tokens without tagging or entity extraction.
func (p *Pipeline) Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	doc, err := prose.NewDocument(text,
		prose.UsingModel(p.model),
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return strings.Fields(text)
	}
	toks := doc.Tokens()
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		if t := strings.TrimSpace(tok.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// IsStopWord reports whether a lowercase token is a stop-word.
func (p *Pipeline) IsStopWord(token string) bool {
	_, ok := p.stopwords[token]
	return ok
}

// Lemma returns the dictionary base form of a token, or the token itself.
func (p *Pipeline) Lemma(token string) string {
	if lemma := p.lemmatizer.Lemma(token); lemma != "" {
		return lemma
	}
	return token
}

// PersonEntities returns PERSON entities in document order.
func (p *Pipeline) PersonEntities(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	doc, err := prose.NewDocument(text, prose.UsingModel(p.model))
	if err != nil {
		return nil
	}
	var out []string
	for _, ent := range doc.Entities() {
		if ent.Label == labelPerson {
			if name := strings.TrimSpace(ent.Text); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}
