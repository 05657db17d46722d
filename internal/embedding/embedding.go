package embedding

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"strings"
)

// Embedder turns text passages into fixed-length dense vectors.
// Implementations must be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// ErrEmptyResult is returned when a provider answers without vectors.
var ErrEmptyResult = errors.New("embedding: empty result")

// DefaultHashDims matches the width of small sentence-embedding models.
const DefaultHashDims = 384

// HashingEmbedder is a deterministic, offline embedder built from hashed unigram
// and bigram features. It is the default provider for development and tests.
type HashingEmbedder struct {
	Dims int
}

// NewHashingEmbedder returns a HashingEmbedder with dims features (DefaultHashDims if <= 0).
func NewHashingEmbedder(dims int) *HashingEmbedder {
	if dims <= 0 {
		dims = DefaultHashDims
	}
	return &HashingEmbedder{Dims: dims}
}

// Embed implements Embedder.
func (h *HashingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dims := h.Dims
	if dims <= 0 {
		dims = DefaultHashDims
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = hashVector(text, dims)
	}
	return out, nil
}

func hashVector(text string, dims int) []float32 {
	vec := make([]float64, dims)
	tokens := strings.Fields(strings.ToLower(text))
	for i, tok := range tokens {
		addFeature(vec, tok, 1)
		if i > 0 {
			addFeature(vec, tokens[i-1]+" "+tok, 0.5)
		}
	}
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	out := make([]float32, dims)
	if norm == 0 {
		return out
	}
	norm = math.Sqrt(norm)
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out
}

func addFeature(vec []float64, feature string, weight float64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum64()
	idx := int(sum % uint64(len(vec)))
	// The top bit picks the sign so unrelated features tend to cancel out.
	if sum>>63 == 1 {
		weight = -weight
	}
	vec[idx] += weight
}

var _ Embedder = (*HashingEmbedder)(nil)
