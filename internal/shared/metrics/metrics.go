package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	screeningStartedTotal   atomic.Uint64
	screeningCompletedTotal atomic.Uint64
	screeningFailedTotal    atomic.Uint64
	uploadArchivedTotal     atomic.Uint64

	screeningDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000})
	shortlistScore    = newHistogram([]float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100})
)

// IncScreeningStarted increments the started counter.
func IncScreeningStarted() {
	screeningStartedTotal.Add(1)
}

// IncScreeningCompleted increments the completed counter.
func IncScreeningCompleted() {
	screeningCompletedTotal.Add(1)
}

// IncScreeningFailed increments the failed counter.
func IncScreeningFailed() {
	screeningFailedTotal.Add(1)
}

// IncUploadArchived counts resumes written to the object store.
func IncUploadArchived() {
	uploadArchivedTotal.Add(1)
}

// ObserveScreeningDuration records how long one upload took to screen.
func ObserveScreeningDuration(d time.Duration) {
	ms := float64(d) / float64(time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	screeningDuration.Observe(ms)
}

// ObserveShortlistScore records a shortlisting probability (0–100).
func ObserveShortlistScore(score float64) {
	shortlistScore.Observe(score)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "screening_started_total", "Total screenings started", screeningStartedTotal.Load())
	writeCounter(&buf, "screening_completed_total", "Total screenings completed", screeningCompletedTotal.Load())
	writeCounter(&buf, "screening_failed_total", "Total screenings failed", screeningFailedTotal.Load())
	writeCounter(&buf, "upload_archived_total", "Total resumes archived to the object store", uploadArchivedTotal.Load())
	writeHistogram(&buf, "screening_duration_ms", "Screening duration in milliseconds", screeningDuration.Snapshot())
	writeHistogram(&buf, "shortlist_score", "Shortlisting probability distribution", shortlistScore.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe adds value to the first bucket that holds it; Render accumulates.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
