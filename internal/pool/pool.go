// internal/pool/pool.go
//
// Pre-generation pool: one refill worker per difficulty keeps a small
// buffer of ready puzzles, so starting a game rarely waits on the
// generator. Expert boards are the slow path; with a warm buffer the
// handler cost drops to a channel receive.

package pool

import (
	"context"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/numgrid/sudoku/internal/sudoku"
)

const defaultSize = 4

// Pool holds per-difficulty buffers of generated puzzles.
type Pool struct {
	buffers map[sudoku.Difficulty]chan sudoku.Puzzle
	cancel  context.CancelFunc
	g       *errgroup.Group
}

// New builds a pool buffering up to size puzzles per difficulty.
// It does not generate anything until Start.
func New(size int) *Pool {
	if size <= 0 {
		size = defaultSize
	}
	buffers := make(map[sudoku.Difficulty]chan sudoku.Puzzle, len(sudoku.Difficulties))
	for _, d := range sudoku.Difficulties {
		buffers[d] = make(chan sudoku.Puzzle, size)
	}
	return &Pool{buffers: buffers}
}

// Start launches the refill workers. They run until Stop or until ctx is
// cancelled, blocking whenever their buffer is full.
func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	g, ctx := errgroup.WithContext(ctx)
	p.g = g

	for i, d := range sudoku.Difficulties {
		d := d
		ch := p.buffers[d]
		rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(i)))
		g.Go(func() error {
			for {
				puz := generateTimed(d, rng)
				select {
				case ch <- puz:
				case <-ctx.Done():
					return nil
				}
			}
		})
	}
	log.Info().Int("per_difficulty", cap(p.buffers[sudoku.Easy])).Msg("puzzle pool started")
}

// Stop cancels the workers and waits for them to exit. Safe to call only
// after Start.
func (p *Pool) Stop() {
	p.cancel()
	_ = p.g.Wait()
}

// Take returns a buffered puzzle for d, falling back to inline generation
// when the buffer is empty (or d is unknown, which generates at the easy
// bucket).
func (p *Pool) Take(d sudoku.Difficulty) sudoku.Puzzle {
	select {
	case puz := <-p.buffers[d]:
		poolHits.WithLabelValues(string(d)).Inc()
		return puz
	default:
		poolMisses.WithLabelValues(string(d)).Inc()
		return generateTimed(d, rand.New(rand.NewSource(time.Now().UnixNano())))
	}
}

// Depths reports the number of buffered puzzles per difficulty.
func (p *Pool) Depths() map[string]int {
	out := make(map[string]int, len(p.buffers))
	for d, ch := range p.buffers {
		out[string(d)] = len(ch)
	}
	return out
}

// generateTimed runs the generator under the duration histogram.
func generateTimed(d sudoku.Difficulty, rng *rand.Rand) sudoku.Puzzle {
	timer := prometheus.NewTimer(generateDuration.WithLabelValues(string(d)))
	defer timer.ObserveDuration()
	return sudoku.Generate(d, rng)
}
