package service

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Problem is an RFC 7807 problem detail. Every error response from the
// compute service uses it.
type Problem struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Instance  string `json:"instance,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (p *Problem) Error() string {
	return fmt.Sprintf("%s: %s", p.Title, p.Detail)
}

const problemContentType = "application/problem+json"

// writeProblem writes a problem response enriched with the request path and id.
func writeProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	problem := &Problem{
		Type:      fmt.Sprintf("https://algoviz.local/errors/%d", status),
		Title:     http.StatusText(status),
		Status:    status,
		Detail:    detail,
		Instance:  r.URL.Path,
		RequestID: w.Header().Get(requestIDHeader),
	}

	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem)
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, detail string) {
	writeProblem(w, r, http.StatusBadRequest, detail)
}

func writeMethodNotAllowed(w http.ResponseWriter, r *http.Request, allow string) {
	w.Header().Set("Allow", allow)
	writeProblem(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("%s is not supported here; use %s", r.Method, allow))
}

func writeTooManyRequests(w http.ResponseWriter, r *http.Request, retryAfterSecs int) {
	w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfterSecs))
	writeProblem(w, r, http.StatusTooManyRequests, "Rate limit exceeded. Retry after the specified interval.")
}
