package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/embedding"
	"resume-screener/internal/embedding/gemini"
	"resume-screener/internal/embedding/openai"
	"resume-screener/internal/nlp"
	"resume-screener/internal/screening"
	"resume-screener/internal/screenings"
	"resume-screener/internal/services/health"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/server"
	"resume-screener/internal/shared/storage/db"
	"resume-screener/internal/shared/storage/object"
	localstore "resume-screener/internal/shared/storage/object/local"
	s3store "resume-screener/internal/shared/storage/object/s3"
	"resume-screener/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.Store
	Taxonomy         *screening.Taxonomy
	Models           *screening.Models
	Analyzer         *screening.Analyzer
	ScreeningsRepo   screenings.Repo
	ScreeningService *screenings.Service
	ScreeningHandler *screenings.Handler
}

// Build prepares shared dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	analyzer, models, err := BuildAnalyzer(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var store object.Store
	if cfg.ArchiveUploads {
		store, err = buildStore(ctx, cfg)
		if err != nil {
			closeDB(sqlDB)
			return nil, err
		}
	}

	var repo screenings.Repo
	if sqlDB != nil {
		repo = &screenings.PGRepo{DB: sqlDB}
	} else {
		repo = screenings.NewMemoryRepo()
	}

	svc := &screenings.Service{
		Screener: analyzer,
		Taxonomy: analyzer.Taxonomy(),
		Repo:     repo,
		Store:    store,
	}
	handler := screenings.NewHandler(svc)

	app := &App{
		Config:           cfg,
		DB:               sqlDB,
		Store:            store,
		Taxonomy:         analyzer.Taxonomy(),
		Models:           models,
		Analyzer:         analyzer,
		ScreeningsRepo:   repo,
		ScreeningService: svc,
		ScreeningHandler: handler,
	}
	healthSvc := health.NewService(nil, models)
	if sqlDB != nil {
		healthSvc.DB = sqlDB
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		ScreeningHandler: handler,
		Health:           healthSvc,
	})
	return app, nil
}

// Close releases models and the database pool.
func (a *App) Close() error {
	var errs []error
	if a.Models != nil {
		if err := a.Models.Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BuildAnalyzer loads the taxonomy and prepares lazily initialised models.
func BuildAnalyzer(cfg config.Config) (*screening.Analyzer, *screening.Models, error) {
	taxonomy, err := loadTaxonomy(cfg.TaxonomyPath)
	if err != nil {
		return nil, nil, err
	}
	mode, err := screening.ParseMatchMode(cfg.SkillMatchMode)
	if err != nil {
		return nil, nil, err
	}
	models := screening.NewModels(
		func(ctx context.Context) (screening.Linguistics, error) {
			pipeline, err := nlp.New()
			if err != nil {
				return nil, err
			}
			return pipeline, nil
		},
		func(ctx context.Context) (embedding.Embedder, error) {
			return NewEmbedder(ctx, cfg)
		},
	)

	opts := []screening.Option{
		screening.WithMatchMode(mode),
		screening.WithModelTimeout(cfg.ModelTimeout),
	}
	if cfg.ReferenceYear > 0 {
		opts = append(opts, screening.WithReferenceYear(cfg.ReferenceYear))
	}
	return screening.NewAnalyzer(taxonomy, models, opts...), models, nil
}

// NewEmbedder returns the embedder selected by EMBEDDING_PROVIDER.
func NewEmbedder(ctx context.Context, cfg config.Config) (embedding.Embedder, error) {
	switch cfg.EmbeddingProvider {
	case "openai":
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.EmbeddingModel)
	case "gemini":
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
	case "", "local":
		return embedding.NewHashingEmbedder(0), nil
	default:
		return nil, fmt.Errorf("unknown EMBEDDING_PROVIDER %q", cfg.EmbeddingProvider)
	}
}

func loadTaxonomy(path string) (*screening.Taxonomy, error) {
	t, err := screening.LoadTaxonomy(path)
	if err != nil || strings.TrimSpace(path) == "" {
		return t, err
	}
	telemetry.Info("bootstrap.taxonomy_loaded", map[string]any{
		"path":  path,
		"roles": t.RoleNames(),
	})
	return t, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repo", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB); err != nil {
			closeDB(sqlDB)
			sqlDB = nil
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repo", map[string]any{
				"reason": "database unavailable",
				"err":    err,
			})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func closeDB(sqlDB *sql.DB) {
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
