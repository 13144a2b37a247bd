package handlers

import (
	"log"
	"net/http"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"strconv"
)

type HistoryHandler struct {
	Runs ports.RouteRunRepository
}

// List returns a page of past runs, newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	skip, ok := queryInt(r, "skip", 0)
	if !ok || skip < 0 {
		writeError(w, r, http.StatusBadRequest, "skip must be a non-negative integer")
		return
	}
	limit, ok := queryInt(r, "limit", 10)
	if !ok || limit < 1 || limit > 100 {
		writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}

	total, err := h.Runs.CountRuns(r.Context())
	if err != nil {
		log.Printf("req_id=%s count runs failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	runs, err := h.Runs.ListRuns(r.Context(), skip, limit)
	if err != nil {
		log.Printf("req_id=%s list runs failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.HistoryResponse{
		Total:  total,
		Routes: make([]dto.RouteRunResponse, 0, len(runs)),
	}
	for _, run := range runs {
		res.Routes = append(res.Routes, dto.RouteRunResponse{
			ID:              run.ID,
			Algorithm:       string(run.Algorithm),
			Mode:            string(run.Mode),
			DistanceKm:      run.DistanceKm,
			ExecutionTimeMs: run.ExecutionTimeMs,
			Path:            toPoints(run.Path),
			Geometry:        toPoints(run.Geometry),
			Degenerate:      run.Degenerate,
			CreatedAt:       run.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func queryInt(r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
