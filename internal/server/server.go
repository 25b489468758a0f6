// Package server renders web pages over HTTP. POST /api/sonificate fetches
// a URL, renders a centered slice of its text and answers with metadata;
// GET /audios/{name} serves the rendered WAV files.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cwbudde/algo-sonify/audiofile"
	"github.com/cwbudde/algo-sonify/internal/config"
	"github.com/cwbudde/algo-sonify/sonify"
	"github.com/cwbudde/algo-sonify/sonify/preset"
)

// maxPageBytes caps how much of a fetched page is read.
const maxPageBytes = 16 << 20

// Renderer renders text with a named preset.
type Renderer interface {
	Render(ctx context.Context, text, presetName string) (*sonify.Result, error)
}

// Request is the body of POST /api/sonificate.
type Request struct {
	URL           string `json:"url"`
	ScriptVariant string `json:"scriptVariant"`
}

// Response is the metadata returned for a rendered page.
type Response struct {
	AudioURL       string         `json:"audioUrl"`
	ProcessingInfo ProcessingInfo `json:"processingInfo"`
}

type ProcessingInfo struct {
	Timestamp              time.Time `json:"timestamp"`
	ProcessingTime         string    `json:"processingTime"`
	OriginalURL            string    `json:"originalUrl"`
	OriginalContentLength  int       `json:"originalContentLength"`
	ProcessedContentLength int       `json:"processedContentLength"`
	ContentType            string    `json:"contentType"`
	StatusCode             int       `json:"statusCode"`
	FileName               string    `json:"fileName"`
	Preset                 string    `json:"preset"`
}

// Server is the HTTP front end of an engine.
type Server struct {
	cfg     config.Server
	render  Renderer
	logger  *slog.Logger
	client  *http.Client
	now     func() time.Time
	metrics *metrics
	pruning atomic.Bool
	wg      sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHTTPClient sets the client used to fetch pages.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Server) {
		if c != nil {
			s.client = c
		}
	}
}

// WithClock replaces time.Now for file names and cleanup.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates the audio directory and returns a Server.
func New(r Renderer, cfg config.Server, opts ...Option) (*Server, error) {
	if r == nil {
		return nil, errors.New("server: renderer is required")
	}

	if cfg.AudioDir == "" {
		return nil, errors.New("server: audio dir is required")
	}

	if err := os.MkdirAll(cfg.AudioDir, 0o755); err != nil {
		return nil, fmt.Errorf("server: create audio dir: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		render:  r,
		logger:  slog.Default(),
		client:  &http.Client{Timeout: cfg.FetchTimeout},
		now:     time.Now,
		metrics: newMetrics(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s, nil
}

// Handler returns the routes of s.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sonificate", s.handleSonificate)
	mux.HandleFunc("GET /audios/{name}", s.handleAudio)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	return allowCORS(mux)
}

// Run serves on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}

		close(errc)
	}()

	s.logger.Info("server started", slog.String("addr", s.cfg.Addr), slog.String("audio_dir", s.cfg.AudioDir))

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("server stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("http shutdown error", slog.String("error", err.Error()))
	}

	s.wg.Wait()

	return nil
}

func (s *Server) handleSonificate(w http.ResponseWriter, r *http.Request) {
	start := s.now()

	resp, err := s.sonificate(r.Context(), r.Body, start)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.metrics.renderSeconds.Observe(s.now().Sub(start).Seconds())
	writeJSON(w, http.StatusOK, resp)

	s.startPrune()
}

func (s *Server) sonificate(ctx context.Context, body io.Reader, start time.Time) (*Response, error) {
	var req Request
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return nil, badRequest("Invalid request body", err)
	}

	if strings.TrimSpace(req.URL) == "" {
		return nil, badRequest("No URL provided", nil)
	}

	page, err := s.fetch(ctx, req.URL)
	if err != nil {
		return nil, badRequest("Error when downloading the URL", err)
	}

	text := Slice(page.body, s.cfg.Limit)
	name := FileName(page.url, start, s.cfg.StampNames)

	presetName := req.ScriptVariant
	if presetName == "" {
		presetName = preset.DefaultName
	}

	res, err := s.render.Render(ctx, text, presetName)
	if err != nil {
		return nil, processingFailed(err)
	}

	if err := audiofile.WriteWAV(filepath.Join(s.cfg.AudioDir, name), res.SampleRate, res.PCM); err != nil {
		return nil, processingFailed(err)
	}

	elapsed := s.now().Sub(start)

	s.logger.Info("rendered page",
		slog.String("url", req.URL),
		slog.String("file", name),
		slog.String("preset", res.Preset),
		slog.Int("chars", utf8.RuneCountInString(text)),
		slog.Duration("elapsed", elapsed),
	)

	return &Response{
		AudioURL: name,
		ProcessingInfo: ProcessingInfo{
			Timestamp:              start.UTC(),
			ProcessingTime:         strconv.FormatInt(elapsed.Milliseconds(), 10) + "ms",
			OriginalURL:            req.URL,
			OriginalContentLength:  utf8.RuneCountInString(page.body),
			ProcessedContentLength: utf8.RuneCountInString(text),
			ContentType:            page.contentType,
			StatusCode:             page.status,
			FileName:               name,
			Preset:                 res.Preset,
		},
	}, nil
}

type page struct {
	url         *url.URL
	body        string
	contentType string
	status      int
}

func (s *Server) fetch(ctx context.Context, rawURL string) (*page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	if u.Hostname() == "" {
		return nil, errors.New("missing host")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("request failed with status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, err
	}

	return &page{
		url:         u,
		body:        string(data),
		contentType: resp.Header.Get("Content-Type"),
		status:      resp.StatusCode,
	}, nil
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	if !filepath.IsLocal(name) || filepath.Base(name) != name || filepath.Ext(name) != ".wav" {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(s.cfg.AudioDir, name))
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Prune removes WAV files older than the configured maximum age and
// returns how many it removed. A zero age keeps every file.
func (s *Server) Prune() (int, error) {
	if s.cfg.MaxFileAge <= 0 {
		return 0, nil
	}

	entries, err := os.ReadDir(s.cfg.AudioDir)
	if err != nil {
		return 0, fmt.Errorf("server: read audio dir: %w", err)
	}

	cutoff := s.now().Add(-s.cfg.MaxFileAge)
	removed := 0

	var errs []error

	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != ".wav" {
			continue
		}

		info, err := e.Info()
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(s.cfg.AudioDir, e.Name())); err != nil {
			errs = append(errs, err)
			continue
		}

		removed++
	}

	s.metrics.pruned.Add(float64(removed))

	return removed, errors.Join(errs...)
}

// startPrune runs Prune in the background unless a run is in progress.
func (s *Server) startPrune() {
	if s.cfg.MaxFileAge <= 0 || !s.pruning.CompareAndSwap(false, true) {
		return
	}

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer s.pruning.Store(false)

		n, err := s.Prune()
		if err != nil {
			s.logger.Warn("audio cleanup failed", slog.String("error", err.Error()))
		}

		if n > 0 {
			s.logger.Info("removed old audio files", slog.Int("count", n))
		}
	}()
}

// Wait blocks until background cleanup has finished.
func (s *Server) Wait() {
	s.wg.Wait()
}

// Slice returns the centered limit-character window of text. Text of at
// most limit characters, or a limit <= 0, is returned whole.
func Slice(text string, limit int) string {
	n := utf8.RuneCountInString(text)
	if limit <= 0 || n <= limit {
		return text
	}

	start := (n - limit + 1) / 2

	runes := []rune(text)

	return string(runes[start : start+limit])
}

// FileName names the WAV file for a page: its host name, followed by the
// Unix millisecond time of the request when stamped.
func FileName(u *url.URL, at time.Time, stamped bool) string {
	host := strings.ReplaceAll(u.Hostname(), ":", "_")
	if stamped {
		return host + "_" + strconv.FormatInt(at.UnixMilli(), 10) + ".wav"
	}

	return host + ".wav"
}

type httpError struct {
	status int
	msg    string
	err    error
}

func (e *httpError) Error() string {
	if e.err == nil {
		return e.msg
	}

	return e.msg + ": " + e.err.Error()
}

func (e *httpError) Unwrap() error { return e.err }

func badRequest(msg string, err error) error {
	return &httpError{status: http.StatusBadRequest, msg: msg, err: err}
}

func processingFailed(err error) error {
	return &httpError{status: http.StatusInternalServerError, msg: "Error when processing the audio", err: err}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, msg := http.StatusInternalServerError, "Internal server error"

	var he *httpError
	if errors.As(err, &he) {
		status, msg = he.status, he.Error()
	}

	s.metrics.failures.WithLabelValues(strconv.Itoa(status)).Inc()
	s.logger.Warn("request failed", slog.Int("status", status), slog.String("error", err.Error()))

	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")

		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", "GET,HEAD,PUT,PATCH,POST,DELETE")
			h.Set("Access-Control-Allow-Headers", r.Header.Get("Access-Control-Request-Headers"))
			w.WriteHeader(http.StatusNoContent)

			return
		}

		next.ServeHTTP(w, r)
	})
}

type metrics struct {
	registry      *prometheus.Registry
	renderSeconds prometheus.Histogram
	failures      *prometheus.CounterVec
	pruned        prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		renderSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sonify_render_seconds",
			Help:    "Time to fetch, render and write one page.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sonify_failed_requests_total",
			Help: "Failed sonification requests by status code.",
		}, []string{"code"}),
		pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sonify_pruned_files_total",
			Help: "Audio files removed by cleanup.",
		}),
	}

	m.registry.MustRegister(m.renderSeconds, m.failures, m.pruned)

	return m
}
