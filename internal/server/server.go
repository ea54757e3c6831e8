package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/mapcraftlabs/feasibility-dashboard/internal/dashboard"
	"github.com/mapcraftlabs/feasibility-dashboard/internal/selection"
	"github.com/mapcraftlabs/feasibility-dashboard/pkg/format"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

var pageTemplate = template.Must(
	template.New("dashboard.html").
		Funcs(template.FuncMap{"count": format.Count}).
		ParseFS(staticFiles, "static/dashboard.html"),
)

type handler struct {
	logger   *zap.Logger
	builder  *dashboard.Builder
	defaults selection.Defaults
	version  string
}

// NewHandler constructs the HTTP handler that serves the dashboard page and API.
func NewHandler(logger *zap.Logger, builder *dashboard.Builder, defaults selection.Defaults, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if builder == nil {
		builder = dashboard.NewBuilder(logger, nil)
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, builder: builder, defaults: defaults, version: trimmedVersion}

	mux := http.NewServeMux()

	// Dashboard JSON for scripted consumers
	mux.HandleFunc("/api/dashboard", h.handleDashboard)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	mux.HandleFunc("/", h.handlePage)

	return mux
}

type dashboardResponse struct {
	*dashboard.Dashboard
	Duration string `json:"duration"`
}

type page struct {
	Title     string
	Version   string
	Dashboard *dashboard.Dashboard
	Error     string
	Guidance  string
	Usage     string
}

func (h *handler) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	d, status, resolved, err := h.build(r)
	p := page{Title: dashboard.Title, Version: h.version, Dashboard: d}
	if err != nil {
		h.logFailure("server.handlePage", status, err)
		if status == http.StatusInternalServerError {
			http.Error(w, http.StatusText(status), status)
			return
		}
		p.Error = errorMessage(err)
		p.Guidance = guidance(resolved)
		p.Usage = selection.Usage()
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		h.logger.Error("failed to render dashboard page",
			zap.String("op", "server.handlePage"),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write dashboard page",
			zap.String("op", "server.handlePage"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	d, status, resolved, err := h.build(r)
	if err != nil {
		h.respondErrorWithOp(w, status, resolved, err, "server.handleDashboard")
		return
	}

	h.writeJSON(w, http.StatusOK, dashboardResponse{Dashboard: d, Duration: d.Duration.String()})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// build runs one rendering pass for the request's scenario selection and
// returns the status the response should carry. resolved reports whether
// any locator was selected before loading began.
func (h *handler) build(r *http.Request) (d *dashboard.Dashboard, status int, resolved bool, err error) {
	sources, err := selection.Resolve(r.URL.Query(), h.defaults)
	if err != nil {
		return nil, http.StatusBadRequest, false, err
	}

	d, err = h.builder.Build(r.Context(), sources, nil)
	if err != nil {
		if errors.Is(err, dashboard.ErrNoUsableInput) {
			return nil, http.StatusBadRequest, true, err
		}
		return nil, http.StatusInternalServerError, true, err
	}
	return d, http.StatusOK, true, nil
}

func guidance(resolved bool) string {
	if resolved {
		return selection.RetryGuidance()
	}
	return selection.Guidance()
}

func errorMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

func (h *handler) logFailure(op string, status int, err error) {
	h.logger.Error("dashboard request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.Error(err),
	)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, resolved bool, err error, op string) {
	h.logFailure(op, status, err)

	payload := map[string]string{"error": err.Error()}
	if errors.Is(err, dashboard.ErrNoUsableInput) {
		payload["guidance"] = guidance(resolved)
		payload["usage"] = selection.Usage()
	}
	h.writeJSON(w, status, payload)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
