package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/umputun/ainews/pkg/domain"
	"github.com/umputun/ainews/pkg/report"
	"github.com/umputun/ainews/pkg/storage"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
	defaultTopDays      = 7
	defaultTopLimit     = 10
	defaultRSSMinScore  = 60
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"archive": s.history != nil,
	}
	if path, err := s.store.LatestReport(); err == nil {
		status["latest_report"] = path
	}
	renderJSON(w, r, http.StatusOK, status)
}

// latestReportHandler serves the most recent html report
func (s *Server) latestReportHandler(w http.ResponseWriter, r *http.Request) {
	path, err := s.store.LatestReport()
	if err != nil {
		s.artifactError(w, r, err)
		return
	}
	http.ServeFile(w, r, path)
}

// reportHandler serves a stored artifact by its file name
func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	path, err := s.store.Open(r.PathValue("name"))
	if err != nil {
		s.artifactError(w, r, err)
		return
	}
	http.ServeFile(w, r, path)
}

// topicsHandler returns topics of the latest run, highest score first.
// Supports ?tier=excellent|good|normal and ?limit=N.
func (s *Server) topicsHandler(w http.ResponseWriter, r *http.Request) {
	topics, err := s.latestTopics()
	if err != nil {
		s.artifactError(w, r, err)
		return
	}

	tier := domain.Tier(r.URL.Query().Get("tier"))
	if tier != "" {
		switch tier {
		case domain.TierExcellent, domain.TierGood, domain.TierNormal:
			topics = report.Partition(topics)[tier]
		default:
			renderError(w, r, fmt.Errorf("invalid tier %q", tier), http.StatusBadRequest)
			return
		}
	}

	limit, err := intParam(r, "limit", 0)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if limit > 0 {
		topics = report.Top(topics, limit)
	}
	if topics == nil {
		topics = []domain.ScoredTopic{}
	}
	renderJSON(w, r, http.StatusOK, topics)
}

// statsHandler returns summary statistics of the latest run
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	topics, err := s.latestTopics()
	if err != nil {
		s.artifactError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, report.Statistics(topics))
}

// historyHandler returns recent archived runs, newest first
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		renderError(w, r, errors.New("archive is disabled"), http.StatusNotFound)
		return
	}

	limit, err := intParam(r, "limit", defaultHistoryLimit)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	runs, err := s.history.Recent(r.Context(), min(limit, maxHistoryLimit))
	if err != nil {
		log.Printf("[ERROR] failed to get run history: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, runs)
}

// historyTopHandler returns the best archived topics of the last ?days=N days
func (s *Server) historyTopHandler(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		renderError(w, r, errors.New("archive is disabled"), http.StatusNotFound)
		return
	}

	days, err := intParam(r, "days", defaultTopDays)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	limit, err := intParam(r, "limit", defaultTopLimit)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	topics, err := s.history.Top(r.Context(), since, min(limit, maxHistoryLimit))
	if err != nil {
		log.Printf("[ERROR] failed to get top topics: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, topics)
}

// rssHandler serves the latest run as an RSS feed, ?min_score=N filters by total score
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	minScore, err := intParam(r, "min_score", defaultRSSMinScore)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	topics, err := s.latestTopics()
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("[ERROR] failed to get topics for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	title, baseURL := s.config.GetFeedConfig()
	rss, err := report.NewFeedWriter(title, baseURL).Write(topics, minScore, time.Now())
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// latestTopics loads topics from the most recent analyzed file
func (s *Server) latestTopics() ([]domain.ScoredTopic, error) {
	path, err := s.store.LatestAnalyzed()
	if err != nil {
		return nil, err
	}
	topics, err := s.store.LoadAnalyzed(path)
	if err != nil {
		return nil, err
	}
	return report.SortByScore(topics), nil
}

// artifactError maps storage errors to a json response
func (s *Server) artifactError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		renderError(w, r, err, http.StatusNotFound)
		return
	}
	log.Printf("[ERROR] failed to access artifact: %v", err)
	renderError(w, r, err, http.StatusInternalServerError)
}

// intParam reads a non-negative integer query parameter
func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
