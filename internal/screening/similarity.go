package screening

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"resume-screener/internal/embedding"
)

// SimilarityScorer compares normalized resume and job-description text through embeddings.
type SimilarityScorer struct {
	Embedder embedding.Embedder
	// Timeout bounds a single model invocation; zero means no extra bound.
	Timeout time.Duration
}

// Score returns cosine similarity scaled to 0–100 and rounded to 2 decimals.
// Empty text on either side scores 0 without calling the model.
func (s *SimilarityScorer) Score(ctx context.Context, resumeText, jobText string) (float64, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return 0, nil
	}
	if s.Embedder == nil {
		return 0, errors.New("similarity: embedder not configured")
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	vecs, err := s.Embedder.Embed(ctx, []string{resumeText, jobText})
	if err != nil {
		return 0, fmt.Errorf("similarity: %w", err)
	}
	if len(vecs) != 2 {
		return 0, fmt.Errorf("similarity: expected 2 vectors, got %d: %w", len(vecs), embedding.ErrEmptyResult)
	}
	return clampPercent(round2(Cosine(vecs[0], vecs[1]) * 100)), nil
}

// Cosine returns the cosine similarity of a and b, or 0 when it is undefined.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	c := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0
	}
	return c
}
