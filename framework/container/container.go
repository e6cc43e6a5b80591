package container

import (
	"reflect"
	"sync"
)

// Constructor builds a concrete value from its already-resolved
// dependencies, passed in declaration order.
type Constructor func(deps ...any) any

// entry is the registry's record of one constructible type.
type entry struct {
	ctor Constructor
	deps []string
}

// Registry is the component table.
//
// It maps a type identity (a stable string key, see TypeKey) to a
// constructor plus that constructor's ordered dependency identities.
// Registration happens once per type at bootstrap; Resolve then builds
// the full dependency graph depth-first, freshly on every call.
//
// A Registry is created explicitly with New and passed down from the
// composition root — there is no package-level instance — so tests can
// build throwaway registries without cross-test leakage.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register inserts a component entry for identity.
//
// deps is the ordered list of dependency identities the constructor
// expects; it is fixed at registration and never changes. Registering
// an identity twice is a bootstrap configuration bug and fails with
// *DuplicateRegistrationError, leaving the first entry intact.
//
//	reg.Register("user.repo", func(deps ...any) any { return NewUserRepo() })
//	reg.Register("user.service", func(deps ...any) any {
//	    return NewUserService(deps[0].(*UserRepo))
//	}, "user.repo")
func (r *Registry) Register(identity string, ctor Constructor, deps ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[identity]; exists {
		return &DuplicateRegistrationError{Identity: identity}
	}
	r.entries[identity] = &entry{ctor: ctor, deps: deps}
	return nil
}

// MustRegister is Register for bootstrap paths where a wiring error
// should abort startup immediately.
func (r *Registry) MustRegister(identity string, ctor Constructor, deps ...string) {
	if err := r.Register(identity, ctor, deps...); err != nil {
		panic(err)
	}
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve constructs a fully-wired instance of identity.
//
// Resolution is depth-first: each declared dependency is resolved, in
// declaration order, before the constructor runs with the resulting
// instances in that same order. Nothing is cached — two consecutive
// calls return two independent object graphs, and a type appearing in
// multiple branches is instantiated once per branch.
//
// Fails with *UnregisteredTypeError naming the missing identity when
// any identity in the graph has no entry, and *CyclicDependencyError
// naming the cycle when the graph is not acyclic.
func (r *Registry) Resolve(identity string) (any, error) {
	return r.resolve(identity, nil)
}

// resolve carries the stack of identities currently under construction,
// used both to detect cycles and to report the cycle path.
func (r *Registry) resolve(identity string, stack []string) (any, error) {
	for i, ancestor := range stack {
		if ancestor == identity {
			cycle := make([]string, 0, len(stack)-i+1)
			cycle = append(cycle, stack[i:]...)
			cycle = append(cycle, identity)
			return nil, &CyclicDependencyError{Cycle: cycle}
		}
	}

	r.mu.RLock()
	e, ok := r.entries[identity]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnregisteredTypeError{Identity: identity}
	}

	stack = append(stack, identity)
	args := make([]any, 0, len(e.deps))
	for _, dep := range e.deps {
		instance, err := r.resolve(dep, stack)
		if err != nil {
			return nil, err
		}
		args = append(args, instance)
	}

	return e.ctor(args...), nil
}

// ── Introspection ─────────────────────────────────────────────────────────────

// Registered returns true if an identity has an entry.
func (r *Registry) Registered(identity string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[identity]
	return ok
}

// Identities returns all registered identities (for debugging; order is
// unspecified).
func (r *Registry) Identities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	return out
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v, useful as a
// stable identity without hand-written strings.
//
//	key := container.TypeKey((*UserService)(nil))  // "main.UserService"
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve is a generic helper that resolves an identity and type-asserts
// the result.
//
//	svc, err := container.Resolve[*UserService](reg, "user.service")
func Resolve[T any](r *Registry, identity string) (T, error) {
	var zero T
	instance, err := r.Resolve(identity)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, &WrongTypeError{Identity: identity, Got: reflect.TypeOf(instance).String()}
	}
	return typed, nil
}

// MustResolve is Resolve for composition-root paths where a wiring
// defect should abort immediately.
func MustResolve[T any](r *Registry, identity string) T {
	typed, err := Resolve[T](r, identity)
	if err != nil {
		panic(err)
	}
	return typed
}
