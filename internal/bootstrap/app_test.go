package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-screener/internal/embedding"
	"resume-screener/internal/screenings"
	"resume-screener/internal/shared/config"
)

func devConfig(t *testing.T) config.Config {
	return config.Config{
		Env:                "dev",
		ObjectStoreType:    "local",
		LocalStoreDir:      t.TempDir(),
		ArchiveUploads:     true,
		EmbeddingProvider:  "local",
		SkillMatchMode:     "substring",
		RateLimitPerMinute: 30,
		RateLimitBurst:     10,
	}
}

func TestBuildUsesMemoryRepoWithoutDatabase(t *testing.T) {
	app, err := Build(context.Background(), devConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	if app.DB != nil {
		t.Fatalf("expected no database")
	}
	if _, ok := app.ScreeningsRepo.(*screenings.MemoryRepo); !ok {
		t.Fatalf("expected memory repo, got %T", app.ScreeningsRepo)
	}
	if app.Store == nil {
		t.Fatalf("expected archive store")
	}

	for _, path := range []string{"/api/v1/health", "/api/v1/roles", "/metrics"} {
		resp := httptest.NewRecorder()
		app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
	}
}

func TestBuildWithoutArchive(t *testing.T) {
	cfg := devConfig(t)
	cfg.ArchiveUploads = false
	app, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	if app.Store != nil {
		t.Fatalf("expected no archive store")
	}
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	cfg := devConfig(t)
	cfg.Env = "production"
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatal("expected error without DATABASE_URL in production")
	}
}

func TestBuildRejectsBadMatchMode(t *testing.T) {
	cfg := devConfig(t)
	cfg.SkillMatchMode = "fuzzy"
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatal("expected match mode error")
	}
}

func TestBuildLoadsTaxonomyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	raw := "roles:\n  - name: Site Reliability Engineer\n    core: [kubernetes, terraform]\n    secondary: [go]\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write taxonomy: %v", err)
	}
	cfg := devConfig(t)
	cfg.TaxonomyPath = path

	app, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	names := app.Taxonomy.RoleNames()
	if len(names) != 1 || names[0] != "site reliability engineer" {
		t.Fatalf("unexpected roles: %v", names)
	}
}

func TestNewEmbedderSelectsProvider(t *testing.T) {
	cfg := devConfig(t)
	emb, err := NewEmbedder(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewEmbedder: %v", err)
	}
	if _, ok := emb.(*embedding.HashingEmbedder); !ok {
		t.Fatalf("expected hashing embedder, got %T", emb)
	}

	cfg.EmbeddingProvider = "openai"
	if _, err := NewEmbedder(context.Background(), cfg); err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("expected missing key error, got %v", err)
	}

	cfg.EmbeddingProvider = "bogus"
	if _, err := NewEmbedder(context.Background(), cfg); err == nil {
		t.Fatal("expected unknown provider error")
	}
}
