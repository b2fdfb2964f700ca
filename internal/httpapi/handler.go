// Package httpapi exposes the org chart pipeline as a JSON HTTP API.
//
// Uploads are stateless: every request carries the roster CSV in its body
// and the pipeline options as query parameters. Caching happens in the
// shared Runner, keyed on content hashes, so repeated uploads of the same
// roster are cheap.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/matzehuels/orgview/pkg/errors"
	"github.com/matzehuels/orgview/pkg/export"
	"github.com/matzehuels/orgview/pkg/observability"
	"github.com/matzehuels/orgview/pkg/org"
	"github.com/matzehuels/orgview/pkg/pipeline"
)

// maxBodyBytes caps uploaded roster size at 16 MiB.
const maxBodyBytes = 16 << 20

// Handler serves the org chart API backed by a pipeline runner.
type Handler struct {
	log    *log.Logger
	runner *pipeline.Runner
}

// NewHandler creates an API handler.
func NewHandler(logger *log.Logger, runner *pipeline.Runner) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{log: logger, runner: runner}
}

// Router builds the chi route tree.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(h.accessLog)

	r.Get("/healthz", h.handleHealthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/forest", h.handleForest)
		r.Post("/layout", h.handleLayout)
		r.Post("/render", h.handleRender)
	})

	return r
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))

		h.log.Info("http request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleForest validates an uploaded roster and returns the committed
// forest with stats and warnings.
func (h *Handler) handleForest(w http.ResponseWriter, r *http.Request) {
	opts, err := h.optionsFromRequest(r)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	f, err := h.runner.Build(r.Context(), opts)
	if err != nil {
		h.writeAppError(w, err)
		return
	}
	data, err := export.MarshalForest(f, opts.Thresholds)
	if err != nil {
		h.writeAppError(w, err)
		return
	}
	h.writeRawJSON(w, http.StatusOK, data)
}

// handleLayout builds and lays out an uploaded roster, returning the full
// document (forest plus positions).
func (h *Handler) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := h.optionsFromRequest(r)
	if err != nil {
		h.writeAppError(w, err)
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := h.runner.Execute(r.Context(), opts)
	if err != nil {
		h.writeAppError(w, err)
		return
	}
	w.Header().Set("X-Forest-Hash", result.ForestHash)
	w.Header().Set("X-Cache-Layout", cacheStatus(result.CacheInfo.LayoutHit))
	h.writeRawJSON(w, http.StatusOK, result.Artifacts[pipeline.FormatJSON])
}

// handleRender returns a rendered artifact in the requested format.
func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := h.optionsFromRequest(r)
	if err != nil {
		h.writeAppError(w, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	result, err := h.runner.Execute(r.Context(), opts)
	if err != nil {
		h.writeAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypeFor(format))
	w.Header().Set("X-Cache-Render", cacheStatus(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// optionsFromRequest reads the CSV body and maps query parameters onto
// pipeline options.
func (h *Handler) optionsFromRequest(r *http.Request) (pipeline.Options, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return pipeline.Options{}, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(body) == 0 {
		return pipeline.Options{}, apperrors.New(apperrors.ErrCodeInvalidInput, "request body must contain roster CSV")
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Data:       body,
		Thresholds: org.DefaultThresholds,
		Kind:       q.Get("kind"),
		OrderBy:    q.Get("order"),
		Unified:    q.Get("unified") == "true",
		Department: q.Get("department"),
		Location:   q.Get("location"),
		Detailed:   q.Get("detailed") == "true",
		ShowEdges:  q.Get("edges") == "true",
		Refresh:    q.Get("refresh") == "true",
		Logger:     h.log,
	}
	if v := q.Get("depth"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid depth: %q", v)
		}
		opts.MaxDepth = depth
	}
	if v := q.Get("span_low"); v != "" {
		low, err := strconv.Atoi(v)
		if err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidThreshold, "invalid span_low: %q", v)
		}
		opts.Thresholds.Low = low
	}
	if v := q.Get("span_high"); v != "" {
		high, err := strconv.Atoi(v)
		if err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidThreshold, "invalid span_high: %q", v)
		}
		opts.Thresholds.High = high
	}
	return opts, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeRawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeAppError maps pipeline error codes to HTTP statuses.
func (h *Handler) writeAppError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidRecord, apperrors.ErrCodeInvalidViz,
		apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidThreshold,
		apperrors.ErrCodeEmptyDataset, apperrors.ErrCodeMissingColumn:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound, apperrors.ErrCodeNodeNotFound:
		status = http.StatusNotFound
	}
	h.writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    string(apperrors.GetCode(err)),
			"message": apperrors.UserMessage(err),
		},
	})
}

func contentTypeFor(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
