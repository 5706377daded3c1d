package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/rock-salt/match-cli/internal/compat"
	"github.com/rock-salt/match-cli/internal/config"
	"github.com/rock-salt/match-cli/internal/model"
	"github.com/rock-salt/match-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the compatibility HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: buildRouter(s, cfg),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// buildRouter assembles the HTTP routes. Split out from the command so tests
// can drive it with httptest.
func buildRouter(s store.Store, c *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	if c.Server.RateLimitRPS > 0 {
		r.Use(rateLimiter(c.Server.RateLimitRPS))
	}

	h := &apiHandler{store: s, cfg: c}

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/v1/compatibility", h.evaluatePair)
	r.Get("/v1/riders/{id}/venues", h.rankVenues)
	r.Get("/v1/venues/{id}/riders", h.rankRiders)

	return r
}

// rateLimiter applies a global token-bucket limit across all clients.
func rateLimiter(rps float64) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

type apiHandler struct {
	store store.Store
	cfg   *config.Config
}

type evaluateRequest struct {
	Rider   model.Rider          `json:"rider"`
	Venue   model.Venue          `json:"venue"`
	Weights *config.MatchWeights `json:"weights,omitempty"`
}

func (h *apiHandler) evaluatePair(w http.ResponseWriter, req *http.Request) {
	var body evaluateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := body.Rider.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := body.Venue.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	weights := h.cfg.Match.Weights
	if body.Weights != nil {
		weights = *body.Weights
		if err := compat.ValidateWeights(weights); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	result := compat.Evaluate(body.Rider, body.Venue, weights)
	writeJSON(w, http.StatusOK, result)
}

func (h *apiHandler) rankVenues(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	id := chi.URLParam(req, "id")

	rider, err := h.store.GetRider(ctx, id)
	if err != nil {
		writeStoreError(w, err, "rider")
		return
	}

	venues, err := h.store.ListVenues(ctx, store.ListFilter{})
	if err != nil {
		writeStoreError(w, err, "venues")
		return
	}

	matches, err := compat.RankVenues(ctx, *rider, venues, h.cfg.Match.Weights, h.cfg.Match.Concurrency)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "ranking failed"})
		return
	}

	limit, all := listParams(req, h.cfg.Match.Limit)
	if !all {
		matches = compat.TopVenues(matches, limit)
	} else if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	writeJSON(w, http.StatusOK, matches)
}

func (h *apiHandler) rankRiders(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	id := chi.URLParam(req, "id")

	venue, err := h.store.GetVenue(ctx, id)
	if err != nil {
		writeStoreError(w, err, "venue")
		return
	}

	riders, err := h.store.ListRiders(ctx, store.ListFilter{})
	if err != nil {
		writeStoreError(w, err, "riders")
		return
	}

	matches, err := compat.RankRiders(ctx, *venue, riders, h.cfg.Match.Weights, h.cfg.Match.Concurrency)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "ranking failed"})
		return
	}

	limit, all := listParams(req, h.cfg.Match.Limit)
	if !all {
		matches = compat.TopRiders(matches, limit)
	} else if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	writeJSON(w, http.StatusOK, matches)
}

func listParams(req *http.Request, defaultLimit int) (limit int, all bool) {
	limit = defaultLimit
	if v := req.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	all = req.URL.Query().Get("all") == "true"
	return limit, all
}

func writeStoreError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": what + " not found"})
		return
	}
	zap.L().Error("store error", zap.String("what", what), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
