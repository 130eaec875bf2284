// Package httpserver exposes the stylesheet service over HTTP.
package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.trai.ch/sheaf/internal/core/domain"
	"go.trai.ch/sheaf/internal/core/ports"
)

// ContentType is sent with every stylesheet response.
const ContentType = "text/css; charset=UTF-8"

// Handler serves aggregated stylesheets. The raw query string is the selector.
type Handler struct {
	service ports.StylesheetService
	logger  ports.Logger
}

// NewHandler creates a Handler.
func NewHandler(service ports.StylesheetService, logger ports.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		w.WriteHeader(http.StatusMethodNotAllowed)
		h.access(r, http.StatusMethodNotAllowed, "", start)
		return
	}

	resp, err := h.service.Serve(r.Context(), parseRequest(r))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrFragmentNotFound) {
			status = http.StatusNotFound
			h.logger.Warn("fragment not found", "selector", r.URL.RawQuery)
		} else {
			h.logger.Error(err)
		}
		w.WriteHeader(status)
		h.access(r, status, "", start)
		return
	}

	header := w.Header()
	if !resp.ModTime.IsZero() {
		header.Set("Last-Modified", resp.ModTime.UTC().Format(http.TimeFormat))
	}
	if resp.ETag != "" {
		header.Set("ETag", resp.ETag)
	}

	if resp.Outcome == domain.OutcomeNotModified {
		w.WriteHeader(http.StatusNotModified)
		h.access(r, http.StatusNotModified, resp.Outcome.String(), start)
		return
	}

	header.Set("Content-Type", ContentType)
	header.Set("Content-Length", strconv.Itoa(len(resp.Body)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(resp.Body)
	}
	h.access(r, http.StatusOK, resp.Outcome.String(), start)
}

func (h *Handler) access(r *http.Request, status int, outcome string, start time.Time) {
	h.logger.Debug("request",
		"method", r.Method,
		"query", r.URL.RawQuery,
		"status", status,
		"outcome", outcome,
		"duration", time.Since(start).Round(time.Microsecond),
	)
}

func parseRequest(r *http.Request) domain.Request {
	raw := r.URL.RawQuery
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}

	req := domain.Request{
		Selector:    domain.ParseSelector(raw),
		IfNoneMatch: r.Header.Get("If-None-Match"),
	}
	if ims := r.Header.Get("If-Modified-Since"); ims != "" {
		if t, err := http.ParseTime(ims); err == nil {
			req.IfModifiedSince = t
		}
	}
	return req
}
