package health

import (
	"context"
	"errors"
	"testing"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type fakeModels bool

func (f fakeModels) Ready() bool { return bool(f) }

func TestStatus(t *testing.T) {
	if !NewService(nil, nil).Status()["ok"] {
		t.Fatal("expected ok")
	}
}

func TestReadiness(t *testing.T) {
	cases := []struct {
		name     string
		svc      *Service
		ready    bool
		database string
		models   string
	}{
		{"memory repo with models", NewService(nil, fakeModels(true)), true, "memory", "ok"},
		{"models loading", NewService(nil, fakeModels(false)), false, "memory", "loading"},
		{"database down", NewService(fakePinger{err: errors.New("refused")}, fakeModels(true)), false, "unavailable", "ok"},
		{"all ok", NewService(fakePinger{}, fakeModels(true)), true, "ok", "ok"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ready, checks := tc.svc.Readiness(context.Background())
			if ready != tc.ready {
				t.Fatalf("expected ready=%v, got %v", tc.ready, ready)
			}
			if checks["database"] != tc.database || checks["models"] != tc.models {
				t.Fatalf("unexpected checks: %v", checks)
			}
		})
	}
}
