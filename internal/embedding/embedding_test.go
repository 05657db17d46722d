package embedding

import (
	"context"
	"math"
	"testing"
)

func TestHashingEmbedderDeterministic(t *testing.T) {
	e := NewHashingEmbedder(0)
	first, err := e.Embed(context.Background(), []string{"python sql machine learning"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	second, err := e.Embed(context.Background(), []string{"python sql machine learning"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(first[0]) != DefaultHashDims {
		t.Fatalf("expected %d dims, got %d", DefaultHashDims, len(first[0]))
	}
	for i := range first[0] {
		if first[0][i] != second[0][i] {
			t.Fatalf("expected identical vectors at %d", i)
		}
	}
}

func TestHashingEmbedderUnitNorm(t *testing.T) {
	vecs, err := NewHashingEmbedder(64).Embed(context.Background(), []string{"data analyst excel tableau", ""})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	var norm float64
	for _, v := range vecs[0] {
		norm += float64(v) * float64(v)
	}
	if math.Abs(norm-1) > 1e-5 {
		t.Fatalf("expected unit norm, got %f", norm)
	}
	for _, v := range vecs[1] {
		if v != 0 {
			t.Fatalf("expected zero vector for empty text")
		}
	}
}

func TestHashingEmbedderHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewHashingEmbedder(8).Embed(ctx, []string{"x"}); err == nil {
		t.Fatalf("expected context error")
	}
}
