package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"raintarget/internal/metrics"
	"raintarget/internal/target"
)

const maxBodyBytes = 1 << 16

type apiRequest struct {
	FirstInningsScore *int `json:"first_innings_score"`
	ScheduledOvers    *int `json:"scheduled_overs"`
	OversLost         *int `json:"overs_lost"`
}

// apiResponse rounds the rate and deduction to two decimals for display.
type apiResponse struct {
	OversAvailable      int     `json:"overs_available"`
	InitialRequiredRate float64 `json:"initial_required_rate"`
	RunsDeducted        float64 `json:"runs_deducted"`
	ParScore            int     `json:"par_score"`
	TargetToWin         int     `json:"target_to_win"`
}

func newAPIResponse(res target.Result) apiResponse {
	return apiResponse{
		OversAvailable:      res.OversAvailable,
		InitialRequiredRate: target.Round2(res.InitialRequiredRate),
		RunsDeducted:        target.Round2(res.RunsDeducted),
		ParScore:            res.ParScore,
		TargetToWin:         res.TargetToWin,
	}
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	var (
		req apiRequest
		err error
	)
	switch r.Method {
	case http.MethodGet:
		req, err = requestFromQuery(r)
	case http.MethodPost:
		req, err = requestFromBody(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), "")
		return
	}

	in, err := s.inputFromRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), "")
		return
	}

	res, err := s.compute(r, metrics.SourceAPI, in)
	if err != nil {
		kind := ""
		if ve, ok := target.AsValidation(err); ok {
			kind = string(ve.Kind)
		}
		writeError(w, r, http.StatusUnprocessableEntity, err.Error(), kind)
		return
	}
	writeJSON(w, r, http.StatusOK, newAPIResponse(res))
}

func (s *Server) inputFromRequest(req apiRequest) (target.Input, error) {
	if req.FirstInningsScore == nil {
		return target.Input{}, errors.New("first_innings_score is required")
	}
	if req.OversLost == nil {
		return target.Input{}, errors.New("overs_lost is required")
	}
	in := target.Input{
		FirstInningsScore: *req.FirstInningsScore,
		ScheduledOvers:    s.DefaultScheduledOvers(),
		OversLost:         *req.OversLost,
	}
	if req.ScheduledOvers != nil {
		in.ScheduledOvers = *req.ScheduledOvers
	}
	return in, nil
}

func requestFromQuery(r *http.Request) (apiRequest, error) {
	q := r.URL.Query()
	var req apiRequest
	for _, f := range []struct {
		name string
		dst  **int
	}{
		{"first_innings_score", &req.FirstInningsScore},
		{"scheduled_overs", &req.ScheduledOvers},
		{"overs_lost", &req.OversLost},
	} {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("%s must be an integer, got %q", f.name, raw)
		}
		*f.dst = &v
	}
	return req, nil
}

func requestFromBody(w http.ResponseWriter, r *http.Request) (apiRequest, error) {
	var req apiRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, errors.New("request body is empty")
		}
		return req, fmt.Errorf("invalid JSON body: %w", err)
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message, kind string) {
	body := map[string]string{"error": message}
	if kind != "" {
		body["kind"] = kind
	}
	if reqID := RequestIDFromContext(r.Context()); reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, r, status, body)
}
