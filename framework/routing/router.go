// Package routing wraps chi with the small routing surface the scaffold
// needs: verb helpers, prefixes, groups and middleware.
package routing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router wraps chi.Router.
type Router struct {
	mux chi.Router
}

// New creates a Router with sane defaults (Logger, Recoverer, RealIP).
func New() *Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	return &Router{mux: r}
}

// ── HTTP verbs ───────────────────────────────────────────────────────────────

func (r *Router) Get(pattern string, h http.HandlerFunc)    { r.mux.Get(pattern, h) }
func (r *Router) Post(pattern string, h http.HandlerFunc)   { r.mux.Post(pattern, h) }
func (r *Router) Put(pattern string, h http.HandlerFunc)    { r.mux.Put(pattern, h) }
func (r *Router) Patch(pattern string, h http.HandlerFunc)  { r.mux.Patch(pattern, h) }
func (r *Router) Delete(pattern string, h http.HandlerFunc) { r.mux.Delete(pattern, h) }

// Method registers a handler for an arbitrary HTTP method.
func (r *Router) Method(method, pattern string, h http.HandlerFunc) {
	r.mux.Method(method, pattern, h)
}

// ── Groups & Prefixes ────────────────────────────────────────────────────────

// Group creates an inline group sharing this router's mount point.
func (r *Router) Group(fn func(r *Router)) {
	r.mux.Group(func(mx chi.Router) {
		fn(&Router{mux: mx})
	})
}

// Prefix creates a sub-router under a URL prefix.
func (r *Router) Prefix(pattern string, fn func(r *Router)) {
	r.mux.Route(pattern, func(mx chi.Router) {
		fn(&Router{mux: mx})
	})
}

// ── Middleware ───────────────────────────────────────────────────────────────

// Middleware adds one or more middleware to the router.
func (r *Router) Middleware(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// ── Params ───────────────────────────────────────────────────────────────────

// Param extracts a URL route parameter.
func Param(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// ── Serve ────────────────────────────────────────────────────────────────────

// ServeHTTP implements http.Handler so Router can be passed to
// http.ListenAndServe.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handler returns the underlying http.Handler (for testing etc.).
func (r *Router) Handler() http.Handler {
	return r.mux
}
