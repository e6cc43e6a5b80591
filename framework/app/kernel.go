package app

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/km-arc/go-nest/framework/annotations"
	"github.com/km-arc/go-nest/framework/config"
	"github.com/km-arc/go-nest/framework/container"
	gohttp "github.com/km-arc/go-nest/framework/http"
	"github.com/km-arc/go-nest/framework/routing"
	"github.com/km-arc/go-nest/framework/validation"
)

// Handler is the single-method business object the scaffold dispatches
// to. One handler type per route; its collaborators arrive through the
// component registry.
type Handler interface {
	Handle(req *gohttp.Request) (any, error)
}

// Application is the composition root. It owns the component registry,
// the annotation store, the router and the config, and mounts routes
// whose handlers are resolved from the registry per request.
type Application struct {
	Config      *config.Config
	Components  *container.Registry
	Annotations *annotations.Store
	Router      *routing.Router
}

// New creates and bootstraps the application.
func New(envFiles ...string) *Application {
	return &Application{
		Config:      config.Load(envFiles...),
		Components:  container.New(),
		Annotations: annotations.New(),
		Router:      routing.New(),
	}
}

// ── Bootstrap hooks ──────────────────────────────────────────────────────────

// Provide applies registration hooks. Any error — duplicate registration
// included — is a startup configuration bug and aborts the process.
func (a *Application) Provide(providers ...container.Provider) {
	for _, p := range providers {
		if err := p.Register(a.Components); err != nil {
			log.Fatalf("bootstrap: %v", err)
		}
	}
}

// Annotate attaches a validation ruleset to a handler identity. The
// dispatch pipeline runs it against the request input before the handler.
func (a *Application) Annotate(identity string, rules validation.Rules) {
	a.Annotations.Attach(identity, rules)
}

// ── Routing ──────────────────────────────────────────────────────────────────

// Handle mounts a route dispatching to the handler registered under
// identity. The handler and its full dependency graph are resolved
// freshly on every request.
func (a *Application) Handle(method, pattern, identity string) {
	a.Router.Method(method, pattern, a.dispatch(identity))
}

// Get/Post/Put/Patch/Delete are Handle shorthands.
func (a *Application) Get(pattern, identity string)    { a.Handle(http.MethodGet, pattern, identity) }
func (a *Application) Post(pattern, identity string)   { a.Handle(http.MethodPost, pattern, identity) }
func (a *Application) Put(pattern, identity string)    { a.Handle(http.MethodPut, pattern, identity) }
func (a *Application) Patch(pattern, identity string)  { a.Handle(http.MethodPatch, pattern, identity) }
func (a *Application) Delete(pattern, identity string) { a.Handle(http.MethodDelete, pattern, identity) }

// ResourceIdentities names the handler identities for a CRUD resource.
// Empty fields are skipped.
type ResourceIdentities struct {
	Index   string // GET    pattern
	Store   string // POST   pattern
	Show    string // GET    pattern/{id}
	Update  string // PUT    pattern/{id} (+ PATCH)
	Destroy string // DELETE pattern/{id}
}

// Resource mounts the standard CRUD routes for a resource.
func (a *Application) Resource(pattern string, ids ResourceIdentities) {
	item := pattern + "/{id}"
	if ids.Index != "" {
		a.Get(pattern, ids.Index)
	}
	if ids.Store != "" {
		a.Post(pattern, ids.Store)
	}
	if ids.Show != "" {
		a.Get(item, ids.Show)
	}
	if ids.Update != "" {
		a.Put(item, ids.Update)
		a.Patch(item, ids.Update)
	}
	if ids.Destroy != "" {
		a.Delete(item, ids.Destroy)
	}
}

// ── Dispatch pipeline ────────────────────────────────────────────────────────

// dispatch is the per-request flow: resolve → validate → handle →
// serialize. Wiring defects (unregistered types, cycles, wrong handler
// shape) are programmer errors; they are logged and answered with a
// generic 500, never surfaced to the client.
func (a *Application) dispatch(identity string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := gohttp.NewRequest(r)
		res := gohttp.NewResponse(w)

		instance, err := a.Components.Resolve(identity)
		if err != nil {
			log.Printf("dispatch: %v", err)
			res.ServerError()
			return
		}
		handler, ok := instance.(Handler)
		if !ok {
			log.Printf("dispatch: %q does not implement app.Handler", identity)
			res.ServerError()
			return
		}

		if v, attached := validation.ForIdentity(a.Annotations, identity, req.All()); attached && v.Fails() {
			res.ValidationError(v.Errors())
			return
		}

		result, err := handler.Handle(req)
		if err != nil {
			a.renderError(res, err)
			return
		}

		switch {
		case result == nil:
			res.NoContent()
		case r.Method == http.MethodPost:
			res.Created(result)
		default:
			res.Success(result)
		}
	}
}

// renderError maps handler errors onto responses. A *gohttp.Error keeps
// its status and message; everything else is a 500, with the underlying
// message exposed only in debug mode.
func (a *Application) renderError(res *gohttp.Response, err error) {
	var httpErr *gohttp.Error
	if errors.As(err, &httpErr) {
		res.Error(httpErr.Status, httpErr.Message)
		return
	}
	log.Printf("handler: %v", err)
	if a.Config.App.Debug {
		res.ServerError(err.Error())
		return
	}
	res.ServerError()
}

// ── Serve ────────────────────────────────────────────────────────────────────

// Run starts the HTTP server on APP_PORT (default 8000).
func (a *Application) Run() {
	addr := ":" + a.Config.App.Port
	fmt.Printf("🚀  %s running on http://localhost%s  [%s]\n",
		a.Config.App.Name, addr, a.Config.App.Env)

	if err := http.ListenAndServe(addr, a.Router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
