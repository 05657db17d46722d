package screening

import (
	"math"
	"strings"
)

// Scoring weights. These are fixed policy, not per-call options.
const (
	coreWeight      = 0.7
	secondaryWeight = 0.3

	skillWeight      = 0.45
	similarityWeight = 0.35
	experienceWeight = 0.20

	// experienceCap is the number of years that earns the full experience score.
	experienceCap = 5
)

// Suggestion texts.
const (
	SuggestSkillsPrefix   = "Improve skills in: "
	SuggestEntryLevel     = "Add internships / entry-level projects"
	SuggestProjects       = "Highlight real-world projects"
	SuggestOptimizeResume = "Optimize resume keywords as per job description"
)

// ScoreBreakdown carries the component scores behind a shortlisting probability.
type ScoreBreakdown struct {
	Skill      float64 `json:"skill"`
	Experience float64 `json:"experience"`
	Shortlist  float64 `json:"-"`
}

// SkillScore weights core coverage at 0.7 and secondary coverage at 0.3, on 0–100.
func SkillScore(match SkillMatch, profile RoleProfile) float64 {
	core := float64(len(match.MatchedCore)) / float64(max(len(profile.Core), 1))
	secondary := float64(len(match.MatchedSecondary)) / float64(max(len(profile.Secondary), 1))
	return (coreWeight*core + secondaryWeight*secondary) * 100
}

// ExperienceScore maps years onto 0–100, saturating at five years.
func ExperienceScore(years int) float64 {
	if years < 0 {
		years = 0
	}
	return math.Min(float64(years)/experienceCap, 1) * 100
}

// Score combines skill coverage, similarity and experience into a shortlisting probability.
func Score(match SkillMatch, profile RoleProfile, similarity float64, years int) ScoreBreakdown {
	skill := SkillScore(match, profile)
	exp := ExperienceScore(years)
	shortlist := skillWeight*skill + similarityWeight*clampPercent(similarity) + experienceWeight*exp
	return ScoreBreakdown{
		Skill:      round2(skill),
		Experience: round2(exp),
		Shortlist:  clampPercent(round2(shortlist)),
	}
}

// Suggestions returns improvement hints in fixed rule order; the list is never empty.
func Suggestions(missing []string, years int) []string {
	out := make([]string, 0, 3)
	if len(missing) > 0 {
		out = append(out, SuggestSkillsPrefix+strings.Join(missing, ", "))
	}
	switch {
	case years < 2:
		out = append(out, SuggestEntryLevel)
	case years < 5:
		out = append(out, SuggestProjects)
	}
	return append(out, SuggestOptimizeResume)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
