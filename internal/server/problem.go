package server

import (
	"encoding/json"
	"net/http"
)

// Problem types for RFC 7807 responses.
const (
	ProblemTypeBadRequest     = "urn:wifisurvey:problem:bad-request"
	ProblemTypeNotFound       = "urn:wifisurvey:problem:not-found"
	ProblemTypeConflict       = "urn:wifisurvey:problem:conflict"
	ProblemTypeUnprocessable  = "urn:wifisurvey:problem:unreadable-link"
	ProblemTypeRateLimited    = "urn:wifisurvey:problem:rate-limited"
	ProblemTypeInternal       = "urn:wifisurvey:problem:internal-error"
	ProblemTypeNotImplemented = "urn:wifisurvey:problem:unsupported-platform"
	ProblemTypeUnavailable    = "urn:wifisurvey:problem:tool-unavailable"
)

// Problem is an RFC 7807 Problem Details body.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// WriteProblem writes p as application/problem+json.
func WriteProblem(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func writeProblem(w http.ResponseWriter, typ string, status int, detail, instance string) {
	WriteProblem(w, Problem{
		Type:     typ,
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: instance,
	})
}

// BadRequest writes a 400 problem response.
func BadRequest(w http.ResponseWriter, detail, instance string) {
	writeProblem(w, ProblemTypeBadRequest, http.StatusBadRequest, detail, instance)
}

// NotFound writes a 404 problem response.
func NotFound(w http.ResponseWriter, detail, instance string) {
	writeProblem(w, ProblemTypeNotFound, http.StatusNotFound, detail, instance)
}

// Conflict writes a 409 problem response.
func Conflict(w http.ResponseWriter, detail, instance string) {
	writeProblem(w, ProblemTypeConflict, http.StatusConflict, detail, instance)
}

// Unprocessable writes a 422 problem response for tool output that could
// not be parsed.
func Unprocessable(w http.ResponseWriter, detail, instance string) {
	writeProblem(w, ProblemTypeUnprocessable, http.StatusUnprocessableEntity, detail, instance)
}

// RateLimited writes a 429 problem response.
func RateLimited(w http.ResponseWriter, detail, instance string) {
	writeProblem(w, ProblemTypeRateLimited, http.StatusTooManyRequests, detail, instance)
}

// InternalError writes a 500 problem response.
func InternalError(w http.ResponseWriter, detail, instance string) {
	writeProblem(w, ProblemTypeInternal, http.StatusInternalServerError, detail, instance)
}

// NotImplemented writes a 501 problem response.
func NotImplemented(w http.ResponseWriter, detail, instance string) {
	writeProblem(w, ProblemTypeNotImplemented, http.StatusNotImplemented, detail, instance)
}

// Unavailable writes a 503 problem response.
func Unavailable(w http.ResponseWriter, detail, instance string) {
	writeProblem(w, ProblemTypeUnavailable, http.StatusServiceUnavailable, detail, instance)
}
