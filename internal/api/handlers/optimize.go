package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
	"time"
)

const (
	MaxLocations = 100
	maxBodyBytes = 1 << 20
)

type OptimizeHandler struct {
	Optimizer *services.RouteOptimizer
	// Runs is optional; when nil runs are not persisted.
	Runs ports.RouteRunRepository
}

// Optimize orders the submitted locations and records the run.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.Locations == nil {
		writeError(w, r, http.StatusBadRequest, "locations is required")
		return
	}
	if len(req.Locations) > MaxLocations {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("at most %d locations are allowed", MaxLocations))
		return
	}

	stops := make([]domain.Coordinate, len(req.Locations))
	for i, loc := range req.Locations {
		if loc.Lat == nil || loc.Lng == nil {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("locations[%d]: lat and lng are required", i))
			return
		}
		stops[i] = domain.Coordinate{Lat: *loc.Lat, Lng: *loc.Lng}
	}

	alg, err := domain.ParseAlgorithm(req.Algorithm)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	res, err := h.Optimizer.Optimize(r.Context(), services.OptimizeRequest{
		Stops:     stops,
		Algorithm: alg,
		Mode:      mode,
	})
	elapsed := time.Since(start)

	if err != nil {
		var sue *domain.ServiceUnavailableError
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, r, http.StatusBadRequest, err.Error())
		case errors.As(err, &sue):
			log.Printf("req_id=%s optimize unavailable: stage=%s err=%v", obs.RequestID(r.Context()), sue.Stage, sue.Err)
			writeErrorDetail(w, r, http.StatusServiceUnavailable, "routing service unavailable", sue.Stage)
		default:
			log.Printf("req_id=%s optimize failed: %v", obs.RequestID(r.Context()), err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	execMs := round3(float64(elapsed.Microseconds()) / 1000.0)
	distance := round3(res.TotalKm)

	h.saveRun(r.Context(), &domain.RouteRun{
		Algorithm:       alg,
		Mode:            mode,
		DistanceKm:      distance,
		ExecutionTimeMs: execMs,
		Path:            res.Path.Coordinates(),
		Geometry:        res.Geometry,
		Degenerate:      res.Degenerate,
	})

	writeJSON(w, r, http.StatusOK, dto.OptimizeResponse{
		Path:            toPoints(res.Path.Coordinates()),
		Order:           res.Path.Indices(),
		DistanceKm:      distance,
		ExecutionTimeMs: execMs,
		Geometry:        toPoints(res.Geometry),
		Degenerate:      res.Degenerate,
		UnreachableLegs: res.UnreachableLegs,
	})
}

// saveRun never fails the request; history is best effort.
func (h *OptimizeHandler) saveRun(ctx context.Context, run *domain.RouteRun) {
	if h.Runs == nil {
		return
	}
	if _, err := h.Runs.SaveRun(ctx, run); err != nil {
		log.Printf("req_id=%s save run failed: %v", obs.RequestID(ctx), err)
	}
}
