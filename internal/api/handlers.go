package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starford/peaklog/internal/apperr"
	"github.com/starford/peaklog/internal/climbservice"
	"github.com/starford/peaklog/internal/sorter"
)

// Handler holds API route handlers.
type Handler struct {
	svc *climbservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *climbservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListPeaks handles GET /api/peaks.
//
//	@Summary		List catalog peaks in catalog order
//	@Tags			peaks
//	@Produce		json
//	@Success		200	{object}	PeakListResponse
//	@Security		BearerAuth
//	@Router			/peaks [get]
func (h *Handler) ListPeaks(w http.ResponseWriter, r *http.Request) {
	peaks := h.svc.Peaks(r.Context())
	writeJSON(w, http.StatusOK, PeakListResponse{Peaks: peaks, Total: len(peaks)})
}

// ListPeakNames handles GET /api/peaks/names.
//
//	@Summary		List catalog peak names, sorted
//	@Tags			peaks
//	@Produce		json
//	@Success		200	{object}	PeakNamesResponse
//	@Security		BearerAuth
//	@Router			/peaks/names [get]
func (h *Handler) ListPeakNames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PeakNamesResponse{Names: h.svc.PeakNames(r.Context())})
}

// ListClimbs handles GET /api/climbs.
//
//	@Summary		List logged climbs
//	@Tags			climbs
//	@Produce		json
//	@Param			sort	query		string	false	"Sort order"	Enums(date-climbed, peak-name, peak-rank)
//	@Success		200		{object}	ClimbListResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/climbs [get]
func (h *Handler) ListClimbs(w http.ResponseWriter, r *http.Request) {
	sort := r.URL.Query().Get("sort")
	climbs, err := h.svc.List(r.Context(), sort)
	if err != nil {
		if errors.Is(err, apperr.ErrUnknownSortOrder) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		} else {
			slog.Error("list climbs failed", slog.String("sort", sort), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	if sort == "" {
		sort = string(sorter.ByDate)
	}
	writeJSON(w, http.StatusOK, ClimbListResponse{Climbs: climbs, Sort: sort})
}

// LogClimb handles POST /api/climbs.
//
//	@Summary		Log a climb
//	@Tags			climbs
//	@Accept			json
//	@Produce		json
//	@Param			body	body		LogClimbRequest	true	"Climb to log"
//	@Success		201		{object}	models.LogEntry
//	@Failure		400		{object}	errResponse
//	@Failure		422		{object}	ValidationErrorResponse
//	@Security		BearerAuth
//	@Router			/climbs [post]
func (h *Handler) LogClimb(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req LogClimbRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	entry, err := h.svc.Log(r.Context(), req.PeakName, req.DateClimbed, strings.TrimSpace(req.Notes))
	if err != nil {
		if apperr.IsValidation(err) {
			writeValidation(w, err)
		} else {
			slog.Error("log climb failed",
				slog.String("peak_name", req.PeakName),
				slog.String("date_climbed", req.DateClimbed),
				slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// RemoveClimb handles DELETE /api/climbs.
//
//	@Summary		Remove every climb of a peak on a date
//	@Tags			climbs
//	@Produce		json
//	@Param			peak_name		query		string	true	"Peak name"
//	@Param			date_climbed	query		string	true	"Date climbed (YYYY-MM-DD)"
//	@Success		200				{object}	RemoveClimbResponse
//	@Failure		400				{object}	errResponse
//	@Failure		422				{object}	ValidationErrorResponse
//	@Security		BearerAuth
//	@Router			/climbs [delete]
func (h *Handler) RemoveClimb(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name, date := q.Get("peak_name"), q.Get("date_climbed")
	if name == "" || date == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("peak_name and date_climbed are required"))
		return
	}

	n, err := h.svc.Remove(r.Context(), name, date)
	if err != nil {
		if apperr.IsValidation(err) {
			writeValidation(w, err)
		} else {
			slog.Error("remove climb failed",
				slog.String("peak_name", name),
				slog.String("date_climbed", date),
				slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, RemoveClimbResponse{Removed: n})
}

// Progress handles GET /api/progress.
//
//	@Summary		Distinct peaks climbed against the catalog
//	@Tags			progress
//	@Produce		json
//	@Success		200	{object}	models.Progress
//	@Security		BearerAuth
//	@Router			/progress [get]
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Progress(r.Context()))
}

// MapMarkers handles GET /api/map.
//
//	@Summary		One marker per climbed peak
//	@Tags			progress
//	@Produce		json
//	@Success		200	{object}	MapResponse
//	@Security		BearerAuth
//	@Router			/map [get]
func (h *Handler) MapMarkers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MapResponse{Markers: h.svc.MapMarkers(r.Context())})
}
