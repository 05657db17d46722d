package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ModelState is satisfied by *screening.Models.
type ModelState interface {
	Ready() bool
}

// Service encapsulates health-related checks.
type Service struct {
	DB     Pinger
	Models ModelState
}

// NewService constructs a new health service. Either dependency may be nil.
func NewService(db Pinger, models ModelState) *Service {
	return &Service{DB: db, Models: models}
}

// Status returns a simple liveness payload.
func (s *Service) Status() map[string]bool {
	return map[string]bool{"ok": true}
}

// Readiness reports each dependency and whether all of them are usable.
// A missing database means the in-memory repository is in use and counts as ready.
func (s *Service) Readiness(ctx context.Context) (bool, map[string]string) {
	checks := map[string]string{"database": "memory", "models": "loading"}
	ready := true

	if s.DB != nil {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := s.DB.PingContext(pingCtx); err != nil {
			checks["database"] = "unavailable"
			ready = false
		} else {
			checks["database"] = "ok"
		}
	}

	if s.Models != nil && s.Models.Ready() {
		checks["models"] = "ok"
	} else {
		ready = false
	}
	return ready, checks
}
