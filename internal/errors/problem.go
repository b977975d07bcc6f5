package errors

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
)

// Problem type URIs following RFC 7807.
const (
	TypeValidation       = "/errors/validation"
	TypeNotFound         = "/errors/not-found"
	TypeRateLimit        = "/errors/rate-limit"
	TypeInternal         = "/errors/internal"
	TypeTimeout          = "/errors/timeout"
	TypeInsufficientData = "/errors/analytics/insufficient-data"
	TypeDegenerateInput  = "/errors/analytics/degenerate-input"
	TypeLengthMismatch   = "/errors/analytics/length-mismatch"
)

// ProblemDetails is an RFC 7807 problem response body.
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Extensions carries additional response fields.
	Extensions map[string]interface{} `json:"-"`
}

// Render implements the render.Renderer interface.
func (pd *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, pd.Status)
	return nil
}

// Error implements the error interface so a ProblemDetails can travel as an
// error through handler plumbing.
func (pd *ProblemDetails) Error() string {
	return pd.Title + ": " + pd.Detail
}

// MarshalJSON includes extension members alongside the standard fields.
func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{}, 5+len(pd.Extensions))
	data["type"] = pd.Type
	data["title"] = pd.Title
	data["status"] = pd.Status
	if pd.Detail != "" {
		data["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		data["instance"] = pd.Instance
	}
	for k, v := range pd.Extensions {
		data[k] = v
	}
	return json.Marshal(data)
}

// NewProblemDetails creates a new RFC 7807 problem.
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:       problemType,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: make(map[string]interface{}),
	}
}

// WithExtension adds an extension field to the problem details.
func (pd *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	pd.Extensions[key] = value
	return pd
}

// ValidationProblem builds a 400 problem for a failed parameter.
func ValidationProblem(field, message, instance string) *ProblemDetails {
	return NewProblemDetails(
		http.StatusBadRequest,
		TypeValidation,
		"Validation Failed",
		message,
		instance,
	).WithExtension("field", field)
}

// NotFoundProblem builds a 404 problem for a missing resource.
func NotFoundProblem(detail, instance string) *ProblemDetails {
	return NewProblemDetails(
		http.StatusNotFound,
		TypeNotFound,
		"Resource Not Found",
		detail,
		instance,
	)
}
