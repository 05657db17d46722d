package screenings

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"resume-screener/internal/extract"
	"resume-screener/internal/screening"
	"resume-screener/internal/shared/storage/object"
	local "resume-screener/internal/shared/storage/object/local"
)

type stubScreener struct {
	mu    sync.Mutex
	calls int
	docs  []extract.RawDocument
	err   error
}

func (s *stubScreener) AnalyzeRoles(ctx context.Context, doc extract.RawDocument, jobDescription string, roles []string) ([]*screening.Result, error) {
	s.mu.Lock()
	s.calls++
	s.docs = append(s.docs, doc)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*screening.Result, 0, len(roles))
	for i, role := range roles {
		out = append(out, &screening.Result{
			CandidateName:           "Jane Doe",
			JobRole:                 role,
			MatchedSkills:           []string{"python"},
			MissingSkills:           []string{"sql"},
			SimilarityScore:         50,
			ShortlistingProbability: float64(70 - i),
			ExperienceYears:         3,
			Degrees:                 []string{},
			Certifications:          []string{},
			Suggestions:             []string{screening.SuggestSkillsPrefix + "sql"},
		})
	}
	return out, nil
}

type failingStore struct{}

func (failingStore) Put(ctx context.Context, key, contentType string, r io.Reader) (object.Object, error) {
	return object.Object{}, errors.New("disk full")
}

func (failingStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, errors.New("not found")
}

func newTestService(t *testing.T) (*Service, *stubScreener, *MemoryRepo, string) {
	t.Helper()
	tax, err := screening.DefaultTaxonomy()
	if err != nil {
		t.Fatalf("DefaultTaxonomy: %v", err)
	}
	dir := t.TempDir()
	screener := &stubScreener{}
	repo := NewMemoryRepo()
	svc := &Service{
		Screener: screener,
		Taxonomy: tax,
		Repo:     repo,
		Store:    local.New(dir),
		Now: func() time.Time {
			return time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
		},
		NewID: uuid.NewString,
	}
	return svc, screener, repo, dir
}
