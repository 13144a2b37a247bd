package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"route-optimizer-service/internal/domain"
)

type tableResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Distances [][]*float64 `json:"distances"`
}

// fetchTable retrieves the full distance matrix from the OSRM table service.
func (o *OSRMProvider) fetchTable(ctx context.Context, stops []domain.Coordinate) (domain.CostMatrix, error) {
	endpoint := fmt.Sprintf("%s/table/v1/%s/%s?annotations=distance", o.baseURL, o.profile, encodeCoordinates(stops))

	resp, err := o.getWithRetry(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("table request failed: %w", err)
	}
	defer resp.Body.Close()

	var tr tableResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decode table response: %w", err)
	}

	if tr.Code != "Ok" {
		return nil, fmt.Errorf("table service returned code=%q message=%q", tr.Code, tr.Message)
	}

	n := len(stops)
	if len(tr.Distances) != n {
		return nil, fmt.Errorf("expected %d matrix rows; got %d", n, len(tr.Distances))
	}

	out := make(domain.CostMatrix, n)
	for i, row := range tr.Distances {
		if len(row) != n {
			return nil, fmt.Errorf("matrix row %d has %d columns; want %d", i, len(row), n)
		}

		out[i] = make([]*float64, n)
		for j, meters := range row {
			// OSRM reports unroutable pairs as null.
			if meters == nil {
				continue
			}
			km := *meters / 1000.0
			out[i][j] = &km
		}
	}

	return out, nil
}
