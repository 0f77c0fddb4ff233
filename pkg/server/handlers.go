package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/boxgrid/pkg/buildinfo"
	"github.com/matzehuels/boxgrid/pkg/codec"
	"github.com/matzehuels/boxgrid/pkg/errors"
	"github.com/matzehuels/boxgrid/pkg/grid"
	"github.com/matzehuels/boxgrid/pkg/pipeline"
)

type encodeRequest struct {
	Rects  [][4]float64 `json:"rects"`
	Labels *bool        `json:"labels,omitempty"`
	Units  int          `json:"units,omitempty"`
}

type encodeResponse struct {
	Grid   []string `json:"grid"`
	Height int      `json:"height"`
	Width  int      `json:"width"`
	Cached bool     `json:"cached"`
}

type decodeRequest struct {
	Grid []string `json:"grid"`
}

type decodeResponse struct {
	Rects  [][4]int `json:"rects"`
	Cached bool     `json:"cached"`
}

type verifyResponse struct {
	OK    bool     `json:"ok"`
	Grid  []string `json:"grid"`
	Rects [][4]int `json:"rects"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Diff    []string    `json:"diff,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	var req encodeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	set, err := pipeline.Prepare(req.Rects, req.Units)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	labels := s.labels
	if req.Labels != nil {
		labels = *req.Labels
	}
	res, err := s.runner.Encode(r.Context(), set, pipeline.Options{Labels: labels, Units: req.Units})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeResponse{
		Grid:   res.Grid.Lines(),
		Height: res.Grid.Height(),
		Width:  res.Grid.Width(),
		Cached: res.CacheInfo.EncodeHit,
	})
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := grid.Parse(req.Grid)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Decode(r.Context(), g, pipeline.Options{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, decodeResponse{
		Rects:  res.Set.Tuples(),
		Cached: res.CacheInfo.DecodeHit,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req encodeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	set, err := pipeline.Prepare(req.Rects, req.Units)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Verify(r.Context(), set, pipeline.Options{Units: req.Units})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{
		OK:    true,
		Grid:  res.Grid.Lines(),
		Rects: res.Set.Tuples(),
	})
}

// decodeBody reads a size-limited JSON body into v, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err)
	}
	return nil
}

// writeError maps err to a status code and a JSON error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	body := errorBody{Code: code, Message: errors.UserMessage(err)}

	var mismatch *codec.MismatchError
	if stderrors.As(err, &mismatch) && mismatch.Diff != nil {
		body.Diff = mismatch.Diff.Lines()
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", RequestIDFromContext(r.Context()), "err", err)
	} else {
		s.logger.Debug("request rejected", "request_id", RequestIDFromContext(r.Context()), "code", code)
	}
	writeJSON(w, status, errorResponse{Error: body})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidRect,
		errors.ErrCodeInvalidGrid,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeEmptyGrid,
		errors.ErrCodeUnlabeledGrid,
		errors.ErrCodeBoundNotFound,
		errors.ErrCodeLabelGap,
		errors.ErrCodeDuplicateLabel,
		errors.ErrCodeReconstructionMismatch:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
