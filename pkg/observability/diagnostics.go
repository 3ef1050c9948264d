package observability

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/Locietta/distance-field-playground/pkg/geometry"
)

// DiagnosticThrottle rate-limits a noisy diagnostic so a mesh with many
// degenerate triangles doesn't flood the log: every occurrence still
// increments the metrics counter, but only up to ratePerSec log lines
// per second are actually written, with the remainder tallied in
// Suppressed. Adapted from the teacher's per-client HTTP rate limiter,
// collapsed to the single global limiter this batch job needs.
type DiagnosticThrottle struct {
	limiter *rate.Limiter
	logger  *Logger
	metrics *Metrics

	mu         sync.Mutex
	suppressed uint64
}

// NewDiagnosticThrottle builds a throttle allowing at most ratePerSec
// diagnostic log lines per second, bursting up to burst.
func NewDiagnosticThrottle(logger *Logger, metrics *Metrics, ratePerSec float64, burst int) *DiagnosticThrottle {
	return &DiagnosticThrottle{
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
		logger:  logger,
		metrics: metrics,
	}
}

// Install wires the throttle into geometry.OnDegenerateTriangle for the
// remainder of the process.
func (t *DiagnosticThrottle) Install() {
	geometry.OnDegenerateTriangle = t.onDegenerateTriangle
}

func (t *DiagnosticThrottle) onDegenerateTriangle(p, a, b, c geometry.Vec3) {
	if t.metrics != nil {
		t.metrics.RecordDegenerateTriangle()
	}

	if !t.limiter.Allow() {
		t.mu.Lock()
		t.suppressed++
		t.mu.Unlock()
		return
	}

	t.logger.Warn("degenerate triangle in closest-point query", map[string]interface{}{
		"probe": p,
		"a":     a,
		"b":     b,
		"c":     c,
	})
}

// Suppressed returns how many diagnostic lines were dropped by the
// limiter since the throttle was installed.
func (t *DiagnosticThrottle) Suppressed() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.suppressed
}
