package screenings

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-screener/internal/extract"
	"resume-screener/internal/screening"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/storage/object"
	"resume-screener/internal/shared/telemetry"
	"resume-screener/internal/shared/util"
)

const (
	defaultListLimit = 20
	maxListLimit     = 50
)

// Screener runs the analysis pipeline. *screening.Analyzer implements it.
type Screener interface {
	AnalyzeRoles(ctx context.Context, doc extract.RawDocument, jobDescription string, roles []string) ([]*screening.Result, error)
}

// Service contains business logic for screenings.
type Service struct {
	Screener Screener
	Taxonomy *screening.Taxonomy
	Repo     Repo
	// Store archives uploads when non-nil.
	Store    object.Store

	Now   func() time.Time
	NewID func() string
}

// UploadRequest is one resume screened against one or more roles.
type UploadRequest struct {
	FileName       string
	Data           []byte
	JobDescription string
	Roles          []string
}

// Roles returns the configured role profiles.
func (s *Service) Roles() []screening.RoleProfile {
	return s.Taxonomy.Roles()
}

// Screen validates the request, archives the upload, runs one analysis per role and
// persists the results as a batch.
func (s *Service) Screen(ctx context.Context, req UploadRequest) (Batch, error) {
	roles, format, err := s.validate(req)
	if err != nil {
		return Batch{}, err
	}

	start := s.now()
	batchID := s.newID()
	for range roles {
		metrics.IncScreeningStarted()
	}

	storageKey, err := s.archive(ctx, batchID, req, start)
	if err != nil {
		s.fail(ctx, batchID, roles, err)
		return Batch{}, err
	}

	doc := extract.RawDocument{Data: req.Data, Format: format}
	results, err := s.Screener.AnalyzeRoles(ctx, doc, req.JobDescription, roles)
	if err != nil {
		s.fail(ctx, batchID, roles, err)
		return Batch{}, fmt.Errorf("analyze: %w", err)
	}

	checksum := util.Checksum(req.Data)
	items := make([]Screening, 0, len(results))
	for i, res := range results {
		items = append(items, Screening{
			ID:             s.newID(),
			BatchID:        batchID,
			Role:           res.JobRole,
			Position:       i,
			FileName:       req.FileName,
			Format:         format,
			Checksum:       checksum,
			StorageKey:     storageKey,
			JobDescription: req.JobDescription,
			Result:         *res,
			CreatedAt:      start,
		})
	}
	if err := s.Repo.CreateBatch(ctx, items); err != nil {
		s.fail(ctx, batchID, roles, err)
		return Batch{}, fmt.Errorf("store screenings: %w", err)
	}

	metrics.ObserveScreeningDuration(s.now().Sub(start))
	for _, item := range items {
		metrics.IncScreeningCompleted()
		metrics.ObserveShortlistScore(item.Result.ShortlistingProbability)
		telemetry.Info("screening.completed", map[string]any{
			"request_id":               requestIDFromContext(ctx),
			"screening_id":             item.ID,
			"batch_id":                 batchID,
			"role":                     item.Role,
			"shortlisting_probability": item.Result.ShortlistingProbability,
			"similarity_score":         item.Result.SimilarityScore,
			"experience_years":         item.Result.ExperienceYears,
		})
	}
	return Batch{ID: batchID, Screenings: items}, nil
}

// Get returns one screening.
func (s *Service) Get(ctx context.Context, id string) (Screening, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return Screening{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns screenings newest first. limit is clamped to [1, 50] with 20 as default.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Screening, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.List(ctx, limit, offset)
}

// validate checks the request and returns canonical, de-duplicated role names.
func (s *Service) validate(req UploadRequest) ([]string, extract.Format, error) {
	if strings.TrimSpace(req.FileName) == "" {
		return nil, "", fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	format := extract.FormatFromFileName(req.FileName)
	if !format.Supported() {
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, req.FileName)
	}
	if len(req.Data) == 0 {
		return nil, "", fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, "", fmt.Errorf("%w: jobDescription is required", ErrInvalidInput)
	}

	seen := make(map[string]bool, len(req.Roles))
	roles := make([]string, 0, len(req.Roles))
	for _, raw := range req.Roles {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		profile, err := s.Taxonomy.Lookup(raw)
		if err != nil {
			return nil, "", err
		}
		if seen[profile.Name] {
			continue
		}
		seen[profile.Name] = true
		roles = append(roles, profile.Name)
	}
	if len(roles) == 0 {
		return nil, "", fmt.Errorf("%w: at least one role is required", ErrInvalidInput)
	}
	return roles, format, nil
}

func (s *Service) archive(ctx context.Context, batchID string, req UploadRequest, at time.Time) (string, error) {
	if s.Store == nil {
		return "", nil
	}
	key, err := object.UploadKey(batchID, req.FileName, at)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	obj, err := s.Store.Put(ctx, key, "", bytes.NewReader(req.Data))
	if err != nil {
		return "", fmt.Errorf("archive upload: %w", err)
	}
	metrics.IncUploadArchived()
	return obj.Key, nil
}

func (s *Service) fail(ctx context.Context, batchID string, roles []string, err error) {
	for range roles {
		metrics.IncScreeningFailed()
	}
	telemetry.Error("screening.failed", map[string]any{
		"request_id": requestIDFromContext(ctx),
		"batch_id":   batchID,
		"roles":      roles,
		"err":        err,
	})
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
