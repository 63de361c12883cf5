package api

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mtlprog/fxcompare/internal/calculator"
	"github.com/mtlprog/fxcompare/internal/export"
)

// NewServer creates an HTTP server with all routes configured.
// Requests are handled one at a time; the calculator session has a single owner.
func NewServer(port string, svc *calculator.Service, limiter *rate.Limiter, writer export.Writer) *http.Server {
	handler := NewHandler(svc, limiter, writer)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/profiles", handler.ListProfiles)
	mux.HandleFunc("POST /api/v1/profiles", handler.AddProfile)
	mux.HandleFunc("PUT /api/v1/profiles/active", handler.SwitchProfile)
	mux.HandleFunc("DELETE /api/v1/profiles/{key}", handler.DeleteProfile)
	mux.HandleFunc("GET /api/v1/settings", handler.GetSettings)
	mux.HandleFunc("PUT /api/v1/settings/theme", handler.SetTheme)
	mux.HandleFunc("PUT /api/v1/settings/dates", handler.SetDates)
	mux.HandleFunc("GET /api/v1/compare", handler.CurrentComparison)
	mux.HandleFunc("POST /api/v1/compare", handler.Compare)
	mux.HandleFunc("POST /api/v1/fetch", handler.FetchRates)
	mux.HandleFunc("POST /api/v1/export", handler.Export)

	return &http.Server{
		Addr:         ":" + port,
		Handler:      serialize(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewFetchLimiter allows one fetch per interval with the given burst.
func NewFetchLimiter(interval time.Duration, burst int) *rate.Limiter {
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(interval), burst)
}

func serialize(next http.Handler) http.Handler {
	var mu sync.Mutex
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		next.ServeHTTP(w, r)
	})
}
