package http

import (
	"encoding/json"
	"net/http"

	"github.com/km-arc/go-nest/framework/validation"
)

// Response is the plain response record producers write through. It
// wraps http.ResponseWriter behind JSON envelope helpers so handler
// results and errors serialize uniformly.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Raw returns the underlying ResponseWriter.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Created sends 201 JSON: {"data": v}
func (res *Response) Created(v any) {
	res.JSON(http.StatusCreated, envelope{"data": v})
}

// NoContent sends 204 with no body.
func (res *Response) NoContent() {
	res.w.WriteHeader(http.StatusNoContent)
}

// Error sends a JSON error response.
//
//	res.Error(http.StatusNotFound, "Resource not found")
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// BadRequest sends 400.
func (res *Response) BadRequest(message ...string) {
	res.JSON(http.StatusBadRequest, envelope{"message": first(message, "Bad request.")})
}

// Unauthorized sends 401.
func (res *Response) Unauthorized(message ...string) {
	res.JSON(http.StatusUnauthorized, envelope{"message": first(message, "Unauthenticated.")})
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	res.JSON(http.StatusNotFound, envelope{"message": first(message, "Not found.")})
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) {
	res.JSON(http.StatusInternalServerError, envelope{"message": first(message, "Server Error.")})
}

// ValidationError sends 422 with the standard error bag:
// {"errors": {"field": ["msg"]}}
func (res *Response) ValidationError(errors *validation.Errors) {
	res.JSON(http.StatusUnprocessableEntity, errors)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
