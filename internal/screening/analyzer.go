package screening

import (
	"context"
	"slices"
	"time"

	"resume-screener/internal/extract"
)

// Input is one (resume, job description, role) analysis request.
type Input struct {
	Document       extract.RawDocument
	JobDescription string
	Role           string
}

// Result is the outcome of screening one resume against one role.
type Result struct {
	CandidateName           string         `json:"candidate_name"`
	JobRole                 string         `json:"job_role"`
	MatchedSkills           []string       `json:"matched_skills"`
	MissingSkills           []string       `json:"missing_skills"`
	SimilarityScore         float64        `json:"similarity_score"`
	ShortlistingProbability float64        `json:"shortlisting_probability"`
	ExperienceYears         int            `json:"experience_years"`
	Degrees                 []string       `json:"degrees"`
	Certifications          []string       `json:"certifications"`
	Suggestions             []string       `json:"suggestions"`
	Scores                  ScoreBreakdown `json:"scores"`
}

// ToMap returns the result keyed by field name, without the score breakdown.
func (r *Result) ToMap() map[string]any {
	return map[string]any{
		"candidate_name":           r.CandidateName,
		"job_role":                 r.JobRole,
		"matched_skills":           r.MatchedSkills,
		"missing_skills":           r.MissingSkills,
		"similarity_score":         r.SimilarityScore,
		"shortlisting_probability": r.ShortlistingProbability,
		"experience_years":         r.ExperienceYears,
		"degrees":                  r.Degrees,
		"certifications":           r.Certifications,
		"suggestions":              r.Suggestions,
	}
}

// Analyzer runs the screening pipeline.
type Analyzer struct {
	taxonomy      *Taxonomy
	models        *Models
	mode          MatchMode
	timeout       time.Duration
	referenceYear int
	now           func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMatchMode selects the skill matching strategy.
func WithMatchMode(mode MatchMode) Option {
	return func(a *Analyzer) { a.mode = mode }
}

// WithModelTimeout bounds each embedding call.
func WithModelTimeout(d time.Duration) Option {
	return func(a *Analyzer) { a.timeout = d }
}

// WithReferenceYear fixes the year "present" resolves to. Zero uses the clock.
func WithReferenceYear(year int) Option {
	return func(a *Analyzer) { a.referenceYear = year }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAnalyzer returns an Analyzer over taxonomy and models.
func NewAnalyzer(taxonomy *Taxonomy, models *Models, opts ...Option) *Analyzer {
	a := &Analyzer{
		taxonomy: taxonomy,
		models:   models,
		mode:     MatchSubstring,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Taxonomy returns the role table the analyzer screens against.
func (a *Analyzer) Taxonomy() *Taxonomy {
	return a.taxonomy
}

// Analyze extracts text from in.Document and screens it against in.Role.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (*Result, error) {
	if _, err := a.taxonomy.Lookup(in.Role); err != nil {
		return nil, err
	}
	return a.AnalyzeText(ctx, extract.Text(ctx, in.Document), in.JobDescription, in.Role)
}

// AnalyzeRoles extracts doc once and screens it against each role in order.
// Every role is validated before any work is done. Role-independent work,
// including the embedding call, runs once for the whole batch.
func (a *Analyzer) AnalyzeRoles(ctx context.Context, doc extract.RawDocument, jobDescription string, roles []string) ([]*Result, error) {
	profiles := make([]RoleProfile, 0, len(roles))
	for _, role := range roles {
		profile, err := a.taxonomy.Lookup(role)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	f, err := a.features(ctx, extract.Text(ctx, doc), jobDescription)
	if err != nil {
		return nil, err
	}
	out := make([]*Result, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, a.screen(f, profile))
	}
	return out, nil
}

// AnalyzeText screens already extracted resume text.
func (a *Analyzer) AnalyzeText(ctx context.Context, resumeText, jobDescription, role string) (*Result, error) {
	profile, err := a.taxonomy.Lookup(role)
	if err != nil {
		return nil, err
	}
	f, err := a.features(ctx, resumeText, jobDescription)
	if err != nil {
		return nil, err
	}
	return a.screen(f, profile), nil
}

// resumeFeatures holds everything about a resume that does not depend on the role.
type resumeFeatures struct {
	normalizer  *Normalizer
	resumeClean string
	name        string
	years       int
	degrees     []string
	certs       []string
	similarity  float64
}

func (a *Analyzer) features(ctx context.Context, resumeText, jobDescription string) (*resumeFeatures, error) {
	lang, embedder, err := a.models.Get(ctx)
	if err != nil {
		return nil, err
	}

	normalizer := NewNormalizer(lang)
	resumeClean := normalizer.Normalize(resumeText)
	jobClean := normalizer.Normalize(jobDescription)

	scorer := &SimilarityScorer{Embedder: embedder, Timeout: a.timeout}
	similarity, err := scorer.Score(ctx, resumeClean, jobClean)
	if err != nil {
		return nil, err
	}

	degrees, certs := ExtractEducation(resumeText, a.taxonomy.Degrees(), a.taxonomy.Certifications())
	return &resumeFeatures{
		normalizer:  normalizer,
		resumeClean: resumeClean,
		name:        ExtractName(lang, resumeText),
		years:       ExtractExperience(resumeText, a.currentYear()),
		degrees:     degrees,
		certs:       certs,
		similarity:  similarity,
	}, nil
}

func (a *Analyzer) screen(f *resumeFeatures, profile RoleProfile) *Result {
	match := NewMatcher(a.mode, f.normalizer).Match(f.resumeClean, profile)
	missing := match.Missing()
	scores := Score(match, profile, f.similarity, f.years)
	return &Result{
		CandidateName:           f.name,
		JobRole:                 profile.Name,
		MatchedSkills:           match.Matched(),
		MissingSkills:           missing,
		SimilarityScore:         f.similarity,
		ShortlistingProbability: scores.Shortlist,
		ExperienceYears:         f.years,
		Degrees:                 slices.Clone(f.degrees),
		Certifications:          slices.Clone(f.certs),
		Suggestions:             Suggestions(missing, f.years),
		Scores:                  scores,
	}
}

func (a *Analyzer) currentYear() int {
	if a.referenceYear > 0 {
		return a.referenceYear
	}
	return a.now().Year()
}
