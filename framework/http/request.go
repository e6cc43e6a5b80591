package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Request is the plain request record handlers consume. It wraps the
// transport's *http.Request behind body/param/query accessors so handler
// code never touches the envelope directly.
//
// The body is buffered on first read so that the validation layer (which
// needs a flat input map) and the handler (which binds into a struct)
// can both consume it.
type Request struct {
	raw  *http.Request
	body []byte
	read bool
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the request body into v. Supports JSON and
// application/x-www-form-urlencoded bodies; form fields are mapped via
// a JSON round-trip so `json:"name"` tags cover both.
func (req *Request) Bind(v any) error {
	if strings.Contains(req.ContentType(), "application/json") {
		return req.bindJSON(v)
	}
	if err := req.raw.ParseForm(); err != nil {
		return err
	}
	return bindForm(req.raw.PostForm, v)
}

func (req *Request) bindJSON(v any) error {
	body, err := req.bodyBytes()
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	return json.Unmarshal(body, v)
}

// bodyBytes reads and caches the request body.
func (req *Request) bodyBytes() ([]byte, error) {
	if req.read {
		return req.body, nil
	}
	defer req.raw.Body.Close()
	body, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return nil, err
	}
	req.body = body
	req.read = true
	return body, nil
}

func bindForm(values map[string][]string, v any) error {
	m := make(map[string]any, len(values))
	for k, vals := range values {
		if len(vals) == 1 {
			m[k] = vals[0]
		} else {
			m[k] = vals
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Input returns a single input value (query string OR post body).
func (req *Request) Input(key string, fallback ...string) string {
	_ = req.raw.ParseForm()
	v := req.raw.FormValue(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// All returns all input as a flat map: query string plus body fields
// (top-level JSON scalars or form values). This is the shape the
// validation layer consumes.
func (req *Request) All() map[string]string {
	out := make(map[string]string)

	if strings.Contains(req.ContentType(), "application/json") {
		if body, err := req.bodyBytes(); err == nil && len(body) > 0 {
			var m map[string]any
			if json.Unmarshal(body, &m) == nil {
				for k, v := range m {
					out[k] = stringify(v)
				}
			}
		}
	} else {
		_ = req.raw.ParseForm()
		for k, v := range req.raw.Form {
			if len(v) > 0 {
				out[k] = v[0]
			}
		}
	}

	for k, v := range req.raw.URL.Query() {
		if _, bodyWins := out[k]; !bodyWins && len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// stringify flattens a decoded JSON scalar to its input-string form.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// Has returns true if the key is present and non-empty.
func (req *Request) Has(key string) bool {
	return req.Input(key) != ""
}

// Param returns a URL route parameter (chi).
func (req *Request) Param(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// BearerToken extracts the token from Authorization: Bearer <token>.
func (req *Request) BearerToken() string {
	auth := req.raw.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// Method returns the HTTP method.
func (req *Request) Method() string { return req.raw.Method }

// Path returns the URL path.
func (req *Request) Path() string { return req.raw.URL.Path }

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}
