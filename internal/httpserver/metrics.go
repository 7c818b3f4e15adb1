// internal/httpserver/metrics.go

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequests counts requests by route pattern, method, and status.
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sudoku_http_requests_total",
		Help: "HTTP requests by route, method, and status",
	}, []string{"route", "method", "status"})

	// solveOutcomes counts stateless solve requests by result.
	solveOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sudoku_solve_requests_total",
		Help: "Solve requests by outcome (solved, unsolvable, multiple, invalid)",
	}, []string{"outcome"})

	// gamesCompleted counts finished sessions by difficulty.
	gamesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sudoku_games_completed_total",
		Help: "Sessions finished with a correct full grid",
	}, []string{"difficulty"})
)

// countRequests is a chi middleware feeding httpRequests. The route
// pattern is resolved after the handler ran, so parametrized paths
// aggregate under one label.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
	})
}
