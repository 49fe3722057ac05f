package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"jobrater/internal/models"
	"jobrater/internal/pipeline"
	"jobrater/internal/scraper"
	"jobrater/internal/woo"
)

// Server exposes the pipeline over HTTP: POST /jobs runs a search,
// GET /description fetches a single posting, GET /customer resolves a
// shop customer's saved search.
type Server struct {
	pipe    *pipeline.Pipeline
	source  pipeline.Source
	woo     *woo.Client
	origins map[string]struct{}
	log     zerolog.Logger
}

func New(pipe *pipeline.Pipeline, source pipeline.Source, wooClient *woo.Client, origins []string, log zerolog.Logger) *Server {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		allowed[origin] = struct{}{}
	}
	return &Server{
		pipe:    pipe,
		source:  source,
		woo:     wooClient,
		origins: allowed,
		log:     log,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs", s.handleJobs)
	mux.HandleFunc("/description", s.handleDescription)
	mux.HandleFunc("/customer", s.handleCustomer)
	mux.HandleFunc("/health", s.handleHealth)
	return s.cors(mux)
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			if _, ok := s.origins[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	urls := scraper.SearchURLs(req)
	started := time.Now()
	result, stats := s.pipe.Run(r.Context(), urls, req.Plavra)
	s.log.Info().
		Int("urls", len(urls)).
		Int("records", len(result.Records)).
		Int("total", result.TotalCount).
		Int64("listing_failures", stats.ListingFailures).
		Int64("entry_failures", stats.EntryFailures).
		Dur("elapsed", time.Since(started)).
		Msg("search handled")

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDescription(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	target := r.URL.Query().Get("url")
	if target == "" {
		http.Error(w, "missing url parameter", http.StatusBadRequest)
		return
	}

	description, err := s.source.FetchDescription(r.Context(), target)
	if err != nil {
		// Failures degrade to an empty object, not an error status.
		s.log.Warn().Err(err).Str("url", target).Msg("description fetch failed")
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"description": description})
}

func (s *Server) handleCustomer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "invalid id parameter", http.StatusBadRequest)
		return
	}

	profile, err := s.woo.Lookup(r.Context(), id)
	switch {
	case errors.Is(err, woo.ErrNotConfigured):
		http.Error(w, "customer lookup not configured", http.StatusServiceUnavailable)
	case errors.Is(err, woo.ErrCustomerNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Customer not found"})
	case err != nil:
		s.log.Warn().Err(err).Int("id", id).Msg("customer lookup failed")
		http.Error(w, "customer lookup failed", http.StatusBadGateway)
	default:
		writeJSON(w, http.StatusOK, profile)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "jobrater"})
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
