// internal/pool/metrics.go

package pool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// generateDuration tracks generator latency per difficulty.
	generateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sudoku_generate_duration_seconds",
		Help:    "Time to generate one puzzle",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	}, []string{"difficulty"})

	// poolHits counts new games served from the warm buffer.
	poolHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sudoku_pool_hits_total",
		Help: "Puzzles served from the pre-generation buffer",
	}, []string{"difficulty"})

	// poolMisses counts new games that had to generate inline.
	poolMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sudoku_pool_misses_total",
		Help: "Puzzles generated inline because the buffer was empty",
	}, []string{"difficulty"})
)
