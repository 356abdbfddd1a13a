package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"intercept-calc/internal/kinematics"
	"intercept-calc/internal/logging"
	"intercept-calc/internal/problem"
	"intercept-calc/internal/scenario"
	"intercept-calc/internal/sim"
	"intercept-calc/internal/telemetry"
	"intercept-calc/internal/units"
)

var errUnknownProblem = errors.New("unknown problem")

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v before committing the status, so an unencodable value
// becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("encode response", "err", err)
		buf.Reset()
		json.NewEncoder(&buf).Encode(errorResponse{Error: "encode response: " + err.Error()})
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// statusFor maps calculation errors to client errors.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errUnknownProblem), errors.Is(err, scenario.ErrUnknownScenario):
		return http.StatusNotFound
	case errors.Is(err, units.ErrUnrecognizedUnit),
		errors.Is(err, kinematics.ErrInvalidParameter),
		errors.Is(err, problem.ErrInvalidInput),
		errors.Is(err, sim.ErrBadTraceOptions),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	log := logging.FromContext(r.Context())
	if status >= 500 {
		log.Error("request failed", "err", err)
	} else {
		log.Debug("request rejected", "status", status, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

var errBadRequest = errors.New("bad request")

// decodeInto decodes an optional JSON body over dst.
func decodeInto(body io.Reader, dst any) error {
	if body == nil {
		return nil
	}
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"speed":    units.SpeedUnits(),
		"distance": units.DistanceUnits(),
	})
}

type convertResponse struct {
	Kind   string  `json:"kind"`
	Value  float64 `json:"value"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v, err := strconv.ParseFloat(q.Get("value"), 64)
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: value: %v", errBadRequest, err))
		return
	}
	resp := convertResponse{Kind: q.Get("kind"), Value: v, From: q.Get("from"), To: q.Get("to")}
	switch resp.Kind {
	case "", "speed":
		resp.Kind = "speed"
		resp.Result, err = convertSpeed(v, resp.From, resp.To)
	case "distance":
		resp.Result, err = convertDistance(v, resp.From, resp.To)
	default:
		err = fmt.Errorf("%w: kind must be speed or distance", errBadRequest)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func convertSpeed(v float64, from, to string) (float64, error) {
	f, err := units.ParseSpeedUnit(from)
	if err != nil {
		return 0, err
	}
	t, err := units.ParseSpeedUnit(to)
	if err != nil {
		return 0, err
	}
	return units.ConvertSpeed(v, f, t)
}

func convertDistance(v float64, from, to string) (float64, error) {
	f, err := units.ParseDistanceUnit(from)
	if err != nil {
		return 0, err
	}
	t, err := units.ParseDistanceUnit(to)
	if err != nil {
		return 0, err
	}
	return units.ConvertDistance(v, f, t)
}

type formResponse struct {
	Inputs []problem.Field `json:"inputs"`
	Result problem.Result  `json:"result"`
}

func (s *Server) handleCollisionForm(w http.ResponseWriter, r *http.Request) {
	s.form(w, r, problem.NewCollisionProblem(s.cfg.Collision))
}

func (s *Server) handleInterceptForm(w http.ResponseWriter, r *http.Request) {
	s.form(w, r, problem.NewInterceptProblem(s.cfg.Intercept))
}

func (s *Server) form(w http.ResponseWriter, r *http.Request, p problem.Presenter) {
	res, err := p.ResetDefaults()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formResponse{Inputs: p.BuildInputs(), Result: res})
}

func (s *Server) handleCollision(w http.ResponseWriter, r *http.Request) {
	p, err := s.presenterFromBody(r.Body, telemetry.ProblemCollision)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.recompute(w, r, p)
}

func (s *Server) handleIntercept(w http.ResponseWriter, r *http.Request) {
	p, err := s.presenterFromBody(r.Body, telemetry.ProblemIntercept)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.recompute(w, r, p)
}

// presenterFromBody builds a presenter whose inputs are the configured
// defaults overlaid with the request body.
func (s *Server) presenterFromBody(body io.Reader, kind telemetry.Problem) (problem.Presenter, error) {
	switch kind {
	case telemetry.ProblemCollision:
		p := problem.NewCollisionProblem(s.cfg.Collision)
		return p, decodeInto(body, &p.Inputs)
	case telemetry.ProblemIntercept:
		p := problem.NewInterceptProblem(s.cfg.Intercept)
		return p, decodeInto(body, &p.Inputs)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownProblem, kind)
	}
}

func (s *Server) recompute(w http.ResponseWriter, r *http.Request, p problem.Presenter) {
	res, err := p.Recompute()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	calculationsTotal.WithLabelValues(string(res.Problem), strconv.FormatBool(res.Outcome)).Inc()
	if s.results != nil {
		if err := s.results.WriteResult(res.Row(telemetry.NewGenerator(res.Problem))); err != nil {
			logging.FromContext(r.Context()).Warn("result write failed", "err", err)
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenario.Names(s.cfg))
}

type scenarioResponse struct {
	*scenario.Scenario
	Result problem.Result `json:"result"`
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := scenario.Lookup(chi.URLParam(r, "name"), s.cfg)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := sc.Presenter()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := p.Recompute()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scenarioResponse{Scenario: sc, Result: res})
}

type traceResponse struct {
	RunID  string               `json:"run_id"`
	Steps  int                  `json:"steps"`
	Last   sim.Frame            `json:"last"`
	Frames []telemetry.FrameRow `json:"frames"`
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	kind := telemetry.Problem(chi.URLParam(r, "problem"))
	p, err := s.presenterFromBody(r.Body, kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := s.traceOptions(r, kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	m, err := p.Model()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	cw := &sim.CollectWriter{}
	res, err := s.trace(r, m, opts, cw)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, traceResponse{RunID: res.RunID, Steps: res.Steps, Last: res.Last, Frames: cw.Frames})
}

// trace runs the model, also feeding the configured frame writer.
func (s *Server) trace(r *http.Request, m sim.Model, opts sim.TraceOptions, w sim.FrameWriter) (sim.TraceResult, error) {
	if s.frames != nil {
		w = sim.NewMultiWriter([]sim.FrameWriter{w, s.frames}, nil)
	}
	res, err := sim.Trace(r.Context(), m, opts, telemetry.NewGenerator(m.Problem()), w)
	traceFramesTotal.WithLabelValues(string(m.Problem())).Add(float64(res.Steps))
	return res, err
}

// traceOptions reads step, speed_factor and max_steps from the query,
// falling back to the simulation config. max_steps is capped by the config.
func (s *Server) traceOptions(r *http.Request, kind telemetry.Problem) (sim.TraceOptions, error) {
	simCfg := s.cfg.Simulation
	opts := sim.TraceOptions{
		Step:        simCfg.CollisionStep,
		SpeedFactor: simCfg.SpeedFactor,
		MaxSteps:    simCfg.MaxSteps,
	}
	if kind == telemetry.ProblemIntercept {
		opts.Step = simCfg.InterceptStep
	}
	q := r.URL.Query()
	if v := q.Get("step"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return opts, fmt.Errorf("%w: step: %v", errBadRequest, err)
		}
		opts.Step = d
	}
	if v := q.Get("speed_factor"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("%w: speed_factor: %v", errBadRequest, err)
		}
		opts.SpeedFactor = f
	}
	if v := q.Get("max_steps"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("%w: max_steps: %v", errBadRequest, err)
		}
		if n > 0 && n < opts.MaxSteps {
			opts.MaxSteps = n
		}
	}
	return opts, nil
}
