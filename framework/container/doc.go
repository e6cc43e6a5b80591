// Package container implements the component table at the heart of the
// scaffold: a registry mapping type identities to constructors and their
// ordered dependency identities, with depth-first recursive resolution
// into fully-wired instances.
//
// Three invariants drive the design:
//
//   - one constructor per identity — a second registration is a fatal
//     configuration error, not an override;
//   - dependency lists are declared explicitly at registration, in
//     constructor-argument order, and are immutable afterwards;
//   - resolution never caches — every Resolve rebuilds the entire
//     transitive graph, so callers own their instances outright.
//
// Cycles in the dependency graph are detected and reported with the full
// cycle path rather than recursing without bound.
package container
