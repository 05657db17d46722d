package screening

import (
	"fmt"
	"strings"
)

// MatchMode selects how a skill is located in normalized resume text.
type MatchMode string

const (
	// MatchSubstring treats a skill as present when it occurs anywhere in the text.
	MatchSubstring MatchMode = "substring"
	// MatchWord requires the skill to cover whole tokens, so "java" misses "javascript".
	MatchWord MatchMode = "word"
)

// ParseMatchMode accepts "", "substring" or "word".
func ParseMatchMode(raw string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchWord:
		return MatchWord, nil
	default:
		return "", fmt.Errorf("unknown skill match mode %q", raw)
	}
}

// SkillMatch holds matched and missing skills per tier, each in configured order.
type SkillMatch struct {
	MatchedCore      []string
	MatchedSecondary []string
	MissingCore      []string
	MissingSecondary []string
}

// Matched returns matched core then matched secondary skills.
func (m SkillMatch) Matched() []string {
	out := make([]string, 0, len(m.MatchedCore)+len(m.MatchedSecondary))
	out = append(out, m.MatchedCore...)
	return append(out, m.MatchedSecondary...)
}

// Missing returns missing core then missing secondary skills.
func (m SkillMatch) Missing() []string {
	out := make([]string, 0, len(m.MissingCore)+len(m.MissingSecondary))
	out = append(out, m.MissingCore...)
	return append(out, m.MissingSecondary...)
}

// Matcher decides which skills of a role appear in normalized resume text.
// Skills go through the same normalizer as the resume so that lemmas line up
// ("machine learning" and a resume saying "machine learning" reduce identically).
type Matcher struct {
	mode      MatchMode
	normalize func(string) string
}

// NewMatcher returns a Matcher. A nil normalizer compares skills verbatim.
func NewMatcher(mode MatchMode, n *Normalizer) *Matcher {
	if mode == "" {
		mode = MatchSubstring
	}
	m := &Matcher{mode: mode}
	if n != nil {
		m.normalize = n.Normalize
	}
	return m
}

// Match partitions profile skills into matched and missing.
func (m *Matcher) Match(normalizedText string, profile RoleProfile) SkillMatch {
	res := SkillMatch{
		MatchedCore:      []string{},
		MatchedSecondary: []string{},
		MissingCore:      []string{},
		MissingSecondary: []string{},
	}
	for _, skill := range profile.Core {
		if m.contains(normalizedText, skill) {
			res.MatchedCore = append(res.MatchedCore, skill)
		} else {
			res.MissingCore = append(res.MissingCore, skill)
		}
	}
	for _, skill := range profile.Secondary {
		if m.contains(normalizedText, skill) {
			res.MatchedSecondary = append(res.MatchedSecondary, skill)
		} else {
			res.MissingSecondary = append(res.MissingSecondary, skill)
		}
	}
	return res
}

func (m *Matcher) contains(text, skill string) bool {
	needle := skill
	if m.normalize != nil {
		if n := m.normalize(skill); n != "" {
			needle = n
		}
	}
	if needle == "" || text == "" {
		return false
	}
	if m.mode == MatchWord {
		return strings.Contains(" "+text+" ", " "+needle+" ")
	}
	return strings.Contains(text, needle)
}
