package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"vrp-route-service/internal/api/dto"
	"vrp-route-service/internal/domain"
	"vrp-route-service/internal/platform/metrics"
	"vrp-route-service/internal/platform/obs"
	"vrp-route-service/internal/ports"
	"vrp-route-service/internal/services"
)

// NoSolutionMessage is returned to clients when an instance is infeasible.
const NoSolutionMessage = "No solution found"

// Body size allowance: a fixed envelope plus room for one formatted [lat, lng] pair per location.
const (
	bodyBaseBytes        = 4 << 10
	bodyBytesPerLocation = 128
	maxBodyBytesUnbound  = 8 << 20
)

type SolveHandler struct {
	Provider          ports.DistanceProvider
	Validate          *validator.Validate
	Improve           bool
	ImproveRounds     int
	ParallelThreshold int
	MaxLocations      int
	MaxVehicles       int
}

// Solve validates a routing request, runs one solve and renders the trips.
// Infeasible instances are a client error, not a server fault.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SolveRequest

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes())
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		metrics.Solves.WithLabelValues(metrics.OutcomeInvalid).Inc()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		metrics.Solves.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	in, msg := h.instance(&req)
	if msg != "" {
		metrics.Solves.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	opts := services.SolveOptions{
		Provider:          h.Provider,
		Improve:           h.Improve,
		MaxImproveRounds:  h.ImproveRounds,
		ParallelThreshold: h.ParallelThreshold,
	}

	metrics.SolveStops.Observe(float64(len(in.Stops)))
	start := time.Now()
	res, err := services.SolveVRP(r.Context(), in, opts)
	metrics.SolveDuration.Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, services.ErrNoSolution):
		metrics.Solves.WithLabelValues(metrics.OutcomeNoSolution).Inc()
		writeError(w, r, http.StatusBadRequest, NoSolutionMessage)
		return
	case errors.Is(err, services.ErrInvalidInstance):
		metrics.Solves.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeError(w, r, http.StatusBadRequest, "invalid instance")
		return
	case err != nil:
		metrics.Solves.WithLabelValues(metrics.OutcomeError).Inc()
		log.Printf("solve failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	metrics.Solves.WithLabelValues(metrics.OutcomeOK).Inc()
	metrics.SolutionDistance.Observe(float64(res.Solution.TotalDistanceMeters))
	log.Printf(
		"solve ok: req_id=%s stops=%d vehicles=%d total_distance_m=%d",
		obs.RequestID(r.Context()), len(in.Stops), in.NumVehicles, res.Solution.TotalDistanceMeters,
	)

	writeJSON(w, r, http.StatusOK, toSolveResponse(res.Trips))
}

// maxBodyBytes bounds the request body so MaxLocations is enforced before parsing.
func (h *SolveHandler) maxBodyBytes() int64 {
	if h.MaxLocations <= 0 {
		return maxBodyBytesUnbound
	}
	return bodyBaseBytes + int64(h.MaxLocations)*bodyBytesPerLocation
}

// instance validates req and converts it; a non-empty message means a client error.
func (h *SolveHandler) instance(req *dto.SolveRequest) (domain.Instance, string) {
	v := h.Validate
	if v == nil {
		v = NewValidator()
	}
	if err := v.Struct(req); err != nil {
		return domain.Instance{}, validationMessage(err)
	}

	if h.MaxVehicles > 0 && *req.NumVehicles > h.MaxVehicles {
		return domain.Instance{}, fmt.Sprintf("num_vehicles must be at most %d", h.MaxVehicles)
	}
	if h.MaxLocations > 0 && len(req.Locations) > h.MaxLocations {
		return domain.Instance{}, fmt.Sprintf("locations must contain at most %d entries", h.MaxLocations)
	}

	depot, err := domain.CoordinatesFromList(req.Depot)
	if err != nil {
		return domain.Instance{}, "depot must be a [lat, lng] pair"
	}

	stops := make([]domain.Coordinates, 0, len(req.Locations))
	for i, loc := range req.Locations {
		c, err := domain.CoordinatesFromList(loc)
		if err != nil {
			return domain.Instance{}, fmt.Sprintf("locations[%d] must be a [lat, lng] pair", i)
		}
		stops = append(stops, c)
	}

	return domain.Instance{
		Depot:              depot,
		Stops:              stops,
		NumVehicles:        *req.NumVehicles,
		MaxStopsPerVehicle: *req.MaxStopsPerVehicle,
	}, ""
}

func toSolveResponse(trips []domain.Trip) dto.SolveResponse {
	res := dto.SolveResponse{Trips: make([]dto.Trip, 0, len(trips))}
	for _, t := range trips {
		path := make([][]float64, 0, len(t.Path))
		for _, c := range t.Path {
			path = append(path, c.CoordsToList())
		}
		res.Trips = append(res.Trips, dto.Trip{t.Name: path})
	}
	return res
}
