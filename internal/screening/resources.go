package screening

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"resume-screener/internal/embedding"
)

// ErrModelsShutdown is returned by Models accessors after Shutdown.
var ErrModelsShutdown = errors.New("screening models are shut down")

// LinguisticsLoader builds the linguistic pipeline.
type LinguisticsLoader func(ctx context.Context) (Linguistics, error)

// EmbedderLoader builds the embedding model.
type EmbedderLoader func(ctx context.Context) (embedding.Embedder, error)

// Models owns the process-wide linguistic pipeline and embedder. Both are built once,
// either by an explicit Initialize or on first use, and are read-only afterwards.
type Models struct {
	loadLinguistics LinguisticsLoader
	loadEmbedder    EmbedderLoader

	// ready is read without mu so readiness probes never wait on a load.
	ready atomic.Bool

	mu       sync.Mutex
	closed   bool
	lang     Linguistics
	embedder embedding.Embedder
}

// NewModels returns an uninitialized Models.
func NewModels(lang LinguisticsLoader, embedder EmbedderLoader) *Models {
	return &Models{loadLinguistics: lang, loadEmbedder: embedder}
}

// StaticModels wraps already-built components. Used by tests and by callers that manage
// construction themselves.
func StaticModels(lang Linguistics, embedder embedding.Embedder) *Models {
	m := &Models{lang: lang, embedder: embedder}
	m.ready.Store(true)
	return m
}

// Initialize loads both models. It is idempotent; a failed load may be retried.
func (m *Models) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initLocked(ctx)
}

func (m *Models) initLocked(ctx context.Context) error {
	if m.closed {
		return ErrModelsShutdown
	}
	if m.ready.Load() {
		return nil
	}
	if m.loadLinguistics == nil || m.loadEmbedder == nil {
		return errors.New("screening models: loaders not configured")
	}
	lang, err := m.loadLinguistics(ctx)
	if err != nil {
		return fmt.Errorf("load linguistics: %w", err)
	}
	emb, err := m.loadEmbedder(ctx)
	if err != nil {
		return fmt.Errorf("load embedder: %w", err)
	}
	m.lang, m.embedder = lang, emb
	m.ready.Store(true)
	return nil
}

// Get returns the loaded components, initializing them on first use.
func (m *Models) Get(ctx context.Context) (Linguistics, embedding.Embedder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.initLocked(ctx); err != nil {
		return nil, nil, err
	}
	return m.lang, m.embedder, nil
}

// Ready reports whether the models are loaded and not shut down.
func (m *Models) Ready() bool {
	return m.ready.Load()
}

// Shutdown releases the embedder when it holds resources. Later Get calls fail.
func (m *Models) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	m.ready.Store(false)
	var err error
	if c, ok := m.embedder.(io.Closer); ok {
		err = c.Close()
	}
	m.lang, m.embedder = nil, nil
	return err
}
