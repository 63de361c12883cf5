package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/mtlprog/fxcompare/internal/calculator"
	"github.com/mtlprog/fxcompare/internal/domain"
	"github.com/mtlprog/fxcompare/internal/export"
	"github.com/mtlprog/fxcompare/internal/profile"
)

const maxBodyBytes = 64 << 10

// Handler provides HTTP endpoints over one calculator session.
type Handler struct {
	svc     *calculator.Service
	limiter *rate.Limiter
	writer  export.Writer
}

// NewHandler creates a new API handler. limiter bounds rate fetches; writer
// may be nil when no export destination is configured.
func NewHandler(svc *calculator.Service, limiter *rate.Limiter, writer export.Writer) *Handler {
	return &Handler{svc: svc, limiter: limiter, writer: writer}
}

type profileResponse struct {
	Key    string        `json:"key"`
	Origin domain.Origin `json:"origin"`
	Label  string        `json:"label"`
	domain.Profile
}

func newProfileResponse(p domain.Profile) profileResponse {
	return profileResponse{Key: p.Key, Origin: p.Origin, Label: p.Label(), Profile: p}
}

type compareResponse struct {
	Profile        profileResponse           `json:"profile"`
	Comparison     domain.Comparison         `json:"comparison"`
	Recommendation calculator.Recommendation `json:"recommendation"`
}

// ListProfiles handles GET /api/v1/profiles.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles := h.svc.Profiles()
	out := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, newProfileResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"active":   h.svc.ActiveProfile().Key,
		"profiles": out,
	})
}

// AddProfile handles POST /api/v1/profiles.
func (h *Handler) AddProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
		profile.ProfileInput
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.svc.AddProfile(req.Key, req.ProfileInput)
	if err != nil {
		writeServiceError(w, "failed to add profile", err)
		return
	}
	writeJSON(w, http.StatusCreated, newProfileResponse(p))
}

// DeleteProfile handles DELETE /api/v1/profiles/{key}.
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProfile(r.PathValue("key")); err != nil {
		writeServiceError(w, "failed to delete profile", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SwitchProfile handles PUT /api/v1/profiles/active.
func (h *Handler) SwitchProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.svc.SwitchProfile(req.Key)
	if err != nil {
		writeServiceError(w, "failed to switch profile", err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileResponse(p))
}

// GetSettings handles GET /api/v1/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Settings())
}

// SetTheme handles PUT /api/v1/settings/theme. An empty theme toggles.
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme domain.Theme `json:"theme"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	theme := req.Theme
	var err error
	if theme == "" {
		theme, err = h.svc.ToggleTheme()
	} else {
		err = h.svc.SetTheme(theme)
	}
	if err != nil {
		writeServiceError(w, "failed to set theme", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]domain.Theme{"theme": theme})
}

// SetDates handles PUT /api/v1/settings/dates.
func (h *Handler) SetDates(w http.ResponseWriter, r *http.Request) {
	var d domain.Dates
	if !decodeJSON(w, r, &d) {
		return
	}
	if err := h.svc.SetDates(d); err != nil {
		writeServiceError(w, "failed to set dates", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Compare handles POST /api/v1/compare.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var raw calculator.RawInputs
	if !decodeJSON(w, r, &raw) {
		return
	}

	cmp, err := h.svc.Calculate(raw)
	if err != nil {
		writeServiceError(w, "comparison failed", err)
		return
	}
	h.writeComparison(w, cmp)
}

// CurrentComparison handles GET /api/v1/compare.
func (h *Handler) CurrentComparison(w http.ResponseWriter, r *http.Request) {
	cmp, err := h.svc.Current()
	if err != nil {
		writeServiceError(w, "comparison failed", err)
		return
	}
	h.writeComparison(w, cmp)
}

func (h *Handler) writeComparison(w http.ResponseWriter, cmp domain.Comparison) {
	p := h.svc.ActiveProfile()
	writeJSON(w, http.StatusOK, compareResponse{
		Profile:        newProfileResponse(p),
		Comparison:     cmp,
		Recommendation: calculator.Recommend(cmp, p),
	})
}

// FetchRates handles POST /api/v1/fetch.
func (h *Handler) FetchRates(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow() {
		slog.Warn("fetch rate limit exceeded", "remoteAddr", r.RemoteAddr)
		writeError(w, http.StatusTooManyRequests, "too many fetches, try again later")
		return
	}

	out, err := h.svc.FetchRates(r.Context())
	if err != nil {
		writeServiceError(w, "rate fetch failed", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Export handles POST /api/v1/export.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	if h.writer == nil {
		writeError(w, http.StatusServiceUnavailable, "export is not configured")
		return
	}

	cmp, err := h.svc.Current()
	if err != nil {
		writeServiceError(w, "export failed", err)
		return
	}
	report := export.BuildReport(h.svc.ActiveProfile(), cmp, h.svc.Settings().Dates)
	if err := h.writer.Write(r.Context(), report); err != nil {
		slog.Error("failed to export comparison", "error", err)
		writeError(w, http.StatusBadGateway, "export failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "exported"})
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// writeServiceError maps the domain error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSourceUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		slog.Error(msg, "error", err)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
