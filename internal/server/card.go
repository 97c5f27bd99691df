// Package server wires the card pipeline to HTTP: query parsing,
// cache/ETag headers and error-to-status mapping.
package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github-card/internal/constants"
	"github-card/internal/domain"
	"github-card/internal/github"
	"github-card/internal/render"

	"github.com/rs/zerolog"
)

// CardProvider is the orchestrator surface the HTTP layer consumes.
type CardProvider interface {
	Serve(ctx context.Context, req domain.CardRequest) ([]byte, error)
}

// RateLimitSource exposes the tracked GitHub quota state.
type RateLimitSource interface {
	GetRateLimitInfo() github.RateLimitInfo
}

type CardServer struct {
	cards     CardProvider
	rateLimit RateLimitSource
	logger    zerolog.Logger
}

func NewCardServer(cards CardProvider, rateLimit RateLimitSource, logger zerolog.Logger) *CardServer {
	return &CardServer{cards: cards, rateLimit: rateLimit, logger: logger}
}

func (s *CardServer) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/card", s.handleCard)
	mux.HandleFunc("/api/ratelimit", s.handleRateLimit)
}

func (s *CardServer) handleCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req := parseCardRequest(r)

	// normalize here as well so the ETag matches the canonical key the
	// orchestrator caches under
	req.Theme = render.NormalizeTheme(req.Theme)
	etag := etagFor(req.CacheKey())

	if !req.ForceRefresh && r.Header.Get("If-None-Match") == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	img, err := s.cards.Serve(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(constants.CardCacheTTL.Seconds())))
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		s.logger.Warn().Err(err).Msg("failed to write card response")
	}
}

func (s *CardServer) handleRateLimit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.rateLimit.GetRateLimitInfo()); err != nil {
		s.logger.Warn().Err(err).Msg("failed to write ratelimit response")
	}
}

func (s *CardServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrMissingUsername):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		status = http.StatusServiceUnavailable
	}

	s.logger.Error().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request failed")
	http.Error(w, err.Error(), status)
}

func parseCardRequest(r *http.Request) domain.CardRequest {
	q := r.URL.Query()
	return domain.CardRequest{
		Username:     strings.TrimSpace(q.Get("username")),
		Theme:        q.Get("theme"),
		Background:   q.Get("bg"),
		Bio:          q.Get("bio"),
		Skills:       splitSkills(q.Get("skills")),
		DisplayName:  q.Get("name"),
		Opacity:      parseOpacity(q.Get("opacity")),
		Font:         q.Get("font"),
		ForceRefresh: q.Get("refresh") == "true",
	}
}

func splitSkills(raw string) []string {
	if raw == "" {
		return nil
	}
	var skills []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func parseOpacity(raw string) float64 {
	if raw == "" {
		return 1
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 1 {
		return 1
	}
	return v
}

func etagFor(cacheKey string) string {
	sum := sha256.Sum256([]byte(cacheKey))
	return `"` + hex.EncodeToString(sum[:])[:16] + `"`
}
