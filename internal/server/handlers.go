package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/HerbHall/wifisurvey/internal/scanner"
	"github.com/HerbHall/wifisurvey/internal/survey"
	"github.com/HerbHall/wifisurvey/internal/version"
	"github.com/HerbHall/wifisurvey/internal/wifi"
	"go.uber.org/zap"
)

// CreateSampleRequest is the body of POST /api/v1/samples.
type CreateSampleRequest struct {
	Floorplan string  `json:"floorplan"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, version.Map())
}

func (s *Server) handleLink(w http.ResponseWriter, r *http.Request) {
	rec, err := s.link.Scan(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListSamples(w http.ResponseWriter, r *http.Request) {
	samples, err := s.samples.List(r.Context(), r.URL.Query().Get("floorplan"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, samples)
}

func (s *Server) handleGetSample(w http.ResponseWriter, r *http.Request) {
	sample, err := s.samples.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

func (s *Server) handleCreateSample(w http.ResponseWriter, r *http.Request) {
	var req CreateSampleRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		BadRequest(w, "invalid request body: "+err.Error(), r.URL.Path)
		return
	}

	sample, err := s.recorder.Record(r.Context(), req.Floorplan, req.X, req.Y)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/samples/"+sample.ID)
	writeJSON(w, http.StatusCreated, sample)
}

// writeError maps domain errors to problem responses. Parser failures keep
// their message as the detail so clients can show it verbatim.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	path := r.URL.Path
	switch {
	case errors.Is(err, survey.ErrInvalidSample):
		BadRequest(w, err.Error(), path)
	case errors.Is(err, survey.ErrSampleNotFound):
		NotFound(w, err.Error(), path)
	case errors.Is(err, survey.ErrInconsistentLink):
		Conflict(w, err.Error(), path)
	case isParseError(err):
		Unprocessable(w, err.Error(), path)
	case errors.Is(err, scanner.ErrUnsupportedPlatform):
		NotImplemented(w, err.Error(), path)
	case errors.Is(err, scanner.ErrCommandNotFound):
		Unavailable(w, err.Error(), path)
	default:
		s.logger.Error("request failed",
			zap.String("path", path),
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		InternalError(w, "internal error", path)
	}
}

// parseErrors are failures to interpret tool output.
var parseErrors = []error{
	wifi.ErrNotLocalized,
	wifi.ErrInvalidBSSID,
	wifi.ErrNoWifiSection,
	wifi.ErrInterfaceNotFound,
	wifi.ErrUnknownChannelFormat,
	wifi.ErrNoProfiles,
	wifi.ErrNoProfileName,
	wifi.ErrNoSSIDName,
	scanner.ErrNoInterface,
	scanner.ErrNotAssociated,
}

func isParseError(err error) bool {
	for _, target := range parseErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
