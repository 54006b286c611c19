// Package web serves the ledger as an HTML page and a small JSON API.
package web

import (
	_ "embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ramanasai/fitlog/internal/activity"
	"github.com/ramanasai/fitlog/internal/logging"
	"github.com/ramanasai/fitlog/internal/utils"
)

//go:embed page.html
var pageHTML string

var page = template.Must(template.New("page").Parse(pageHTML))

const maxBodyBytes = 16 << 10

// Handler coordinates HTTP requests with the ledger.
type Handler struct {
	ledger   *activity.Ledger
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// NewHandler builds a Handler. Metrics are served from gatherer when it is
// not nil.
func NewHandler(ledger *activity.Ledger, logger *slog.Logger, gatherer prometheus.Gatherer) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{ledger: ledger, logger: logger, gatherer: gatherer}
}

// CreateActivityRequest is the JSON body of POST /api/activities.
type CreateActivityRequest struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
}

// CreateActivityResponse echoes the stored record with the new totals.
type CreateActivityResponse struct {
	Activity activity.Record `json:"activity"`
	Totals   activity.Totals `json:"totals"`
}

type pageData struct {
	Rows   []utils.Row
	Totals activity.Totals
	Keys   []string
}

// Routes returns the mux with every endpoint registered.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("POST /activities", h.addForm)
	mux.HandleFunc("POST /activities/{id}/delete", h.deleteForm)
	mux.HandleFunc("GET /api/totals", h.totals)
	mux.HandleFunc("GET /api/activities", h.listActivities)
	mux.HandleFunc("POST /api/activities", h.createActivity)
	mux.HandleFunc("DELETE /api/activities/{id}", h.deleteActivity)
	mux.HandleFunc("GET /healthz", healthz)
	if h.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
	return h.logRequests(mux)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) report() utils.Report {
	return utils.NewReport(h.ledger.Calculator(), h.ledger.Summary())
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	rep := h.report()
	data := pageData{Rows: rep.Rows, Totals: rep.Totals, Keys: h.ledger.Calculator().Tables.Keys()}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		h.logger.Error("render page", slog.Any("error", err))
	}
}

func (h *Handler) addForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "unable to parse form", http.StatusBadRequest)
		return
	}
	// blank fields leave the ledger untouched, same as the TUI
	if _, _, _, err := h.ledger.Add(r.Context(), r.PostFormValue("name"), r.PostFormValue("duration")); err != nil {
		h.logger.Error("add activity", slog.Any("error", err))
		http.Error(w, "unable to add activity", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) deleteForm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.ledger.Remove(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, activity.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("remove activity", slog.Any("error", err))
		http.Error(w, "unable to remove activity", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) totals(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.ledger.Totals())
}

func (h *Handler) listActivities(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.report())
}

func (h *Handler) createActivity(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "unable to read body")
		return
	}
	var req CreateActivityRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	rec, totals, ok, err := h.ledger.Add(r.Context(), req.Name, req.Duration)
	switch {
	case err != nil:
		h.logger.Error("add activity", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "server_error", "unable to add activity")
		return
	case !ok:
		h.writeError(w, http.StatusBadRequest, "validation_failed", "name and duration are required")
		return
	}
	h.writeJSON(w, http.StatusCreated, CreateActivityResponse{Activity: rec, Totals: totals})
}

func (h *Handler) deleteActivity(w http.ResponseWriter, r *http.Request) {
	totals, err := h.ledger.Remove(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, activity.ErrRecordNotFound) {
			h.writeError(w, http.StatusNotFound, "not_found", "activity not found")
			return
		}
		h.logger.Error("remove activity", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "server_error", "unable to remove activity")
		return
	}
	h.writeJSON(w, http.StatusOK, totals)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, detail string) {
	h.writeJSON(w, status, map[string]string{"type": code, "detail": detail})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		h.logger.Error("encode response", slog.Any("error", err))
		http.Error(w, "unable to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
}
