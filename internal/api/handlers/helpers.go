package handlers

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg})
}

func writeErrorDetail(w http.ResponseWriter, r *http.Request, status int, msg, detail string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg, Detail: detail})
}

func toPoints(coords []domain.Coordinate) []dto.Point {
	if coords == nil {
		return nil
	}
	out := make([]dto.Point, len(coords))
	for i, c := range coords {
		out[i] = dto.Point{Lat: c.Lat, Lng: c.Lng}
	}
	return out
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
