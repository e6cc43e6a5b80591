package container_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-nest/framework/container"
)

// value builds a constructor that ignores its deps and returns v.
func value(v any) container.Constructor {
	return func(deps ...any) any { return v }
}

//
// -----------------------------------------------------------------------------
// Register
// -----------------------------------------------------------------------------

func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()

	r := container.New()
	require.NoError(t, r.Register("svc", value("first")))

	err := r.Register("svc", value("second"))
	require.Error(t, err)

	var dup *container.DuplicateRegistrationError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "svc", dup.Identity)

	// The first registration stays intact.
	got, err := r.Resolve("svc")
	require.NoError(t, err)
	assert.Equal(t, "first", got)
}

func TestMustRegister_PanicsOnDuplicate(t *testing.T) {
	t.Parallel()

	r := container.New()
	r.MustRegister("svc", value(1))
	assert.Panics(t, func() { r.MustRegister("svc", value(2)) })
}

func TestRegistered_And_Identities(t *testing.T) {
	t.Parallel()

	r := container.New()
	require.NoError(t, r.Register("a", value(1)))
	require.NoError(t, r.Register("b", value(2)))

	assert.True(t, r.Registered("a"))
	assert.False(t, r.Registered("missing"))
	assert.ElementsMatch(t, []string{"a", "b"}, r.Identities())
}

//
// -----------------------------------------------------------------------------
// Resolve
// -----------------------------------------------------------------------------

type leaf struct{ n int }

func TestResolve_ZeroDependencies(t *testing.T) {
	t.Parallel()

	r := container.New()
	require.NoError(t, r.Register("leaf", func(deps ...any) any {
		require.Empty(t, deps)
		return &leaf{n: 7}
	}))

	got, err := r.Resolve("leaf")
	require.NoError(t, err)
	require.IsType(t, &leaf{}, got)
	assert.Equal(t, 7, got.(*leaf).n)
}

// Root depends on [A, B], A depends on [C]: construction order must be
// C, A(C), B, Root(A, B), with constructor arguments in declared order.
func TestResolve_DepthFirstInDeclarationOrder(t *testing.T) {
	t.Parallel()

	r := container.New()
	var order []string

	require.NoError(t, r.Register("c", func(deps ...any) any {
		order = append(order, "c")
		return "C"
	}))
	require.NoError(t, r.Register("a", func(deps ...any) any {
		order = append(order, "a")
		require.Equal(t, []any{"C"}, deps)
		return "A"
	}, "c"))
	require.NoError(t, r.Register("b", func(deps ...any) any {
		order = append(order, "b")
		return "B"
	}))
	require.NoError(t, r.Register("root", func(deps ...any) any {
		order = append(order, "root")
		require.Equal(t, []any{"A", "B"}, deps)
		return "ROOT"
	}, "a", "b"))

	got, err := r.Resolve("root")
	require.NoError(t, err)
	assert.Equal(t, "ROOT", got)
	assert.Equal(t, []string{"c", "a", "b", "root"}, order)
}

func TestResolve_Unregistered_Root(t *testing.T) {
	t.Parallel()

	r := container.New()
	_, err := r.Resolve("ghost")
	require.Error(t, err)

	var missing *container.UnregisteredTypeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ghost", missing.Identity)
}

// The missing identity must be named even when it sits three levels deep.
func TestResolve_Unregistered_Nested(t *testing.T) {
	t.Parallel()

	r := container.New()
	require.NoError(t, r.Register("top", value("top"), "mid"))
	require.NoError(t, r.Register("mid", value("mid"), "leaf"))
	require.NoError(t, r.Register("leaf", value("leaf"), "ghost"))

	_, err := r.Resolve("top")
	require.Error(t, err)

	var missing *container.UnregisteredTypeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ghost", missing.Identity)
}

// Every resolve rebuilds the graph: no instance reuse within or across
// calls, so mutating one instance must not affect another.
func TestResolve_NoCaching(t *testing.T) {
	t.Parallel()

	r := container.New()
	require.NoError(t, r.Register("leaf", func(deps ...any) any {
		return &leaf{n: 1}
	}))

	first, err := r.Resolve("leaf")
	require.NoError(t, err)
	second, err := r.Resolve("leaf")
	require.NoError(t, err)

	require.NotSame(t, first.(*leaf), second.(*leaf))

	first.(*leaf).n = 99
	assert.Equal(t, 1, second.(*leaf).n)
}

// A shared dependency appearing in two branches is instantiated once per
// branch.
func TestResolve_SharedDependencyRebuiltPerBranch(t *testing.T) {
	t.Parallel()

	r := container.New()
	built := 0
	require.NoError(t, r.Register("shared", func(deps ...any) any {
		built++
		return &leaf{}
	}))
	require.NoError(t, r.Register("left", func(deps ...any) any { return deps[0] }, "shared"))
	require.NoError(t, r.Register("right", func(deps ...any) any { return deps[0] }, "shared"))
	require.NoError(t, r.Register("root", func(deps ...any) any {
		require.NotSame(t, deps[0].(*leaf), deps[1].(*leaf))
		return "root"
	}, "left", "right"))

	_, err := r.Resolve("root")
	require.NoError(t, err)
	assert.Equal(t, 2, built)
}

//
// -----------------------------------------------------------------------------
// Cycle detection
// -----------------------------------------------------------------------------

func TestResolve_Cycle(t *testing.T) {
	t.Parallel()

	r := container.New()
	require.NoError(t, r.Register("a", value("a"), "b"))
	require.NoError(t, r.Register("b", value("b"), "a"))

	_, err := r.Resolve("a")
	require.Error(t, err)

	var cyc *container.CyclicDependencyError
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, []string{"a", "b", "a"}, cyc.Cycle)
	assert.Contains(t, cyc.Error(), `"a" -> "b" -> "a"`)
}

func TestResolve_SelfCycle(t *testing.T) {
	t.Parallel()

	r := container.New()
	require.NoError(t, r.Register("narcissus", value("n"), "narcissus"))

	_, err := r.Resolve("narcissus")

	var cyc *container.CyclicDependencyError
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, []string{"narcissus", "narcissus"}, cyc.Cycle)
}

// A cycle reached through a non-cyclic prefix reports only the cycle
// itself, not the path leading to it.
func TestResolve_CycleBelowRoot(t *testing.T) {
	t.Parallel()

	r := container.New()
	require.NoError(t, r.Register("root", value("root"), "a"))
	require.NoError(t, r.Register("a", value("a"), "b"))
	require.NoError(t, r.Register("b", value("b"), "a"))

	_, err := r.Resolve("root")

	var cyc *container.CyclicDependencyError
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, []string{"a", "b", "a"}, cyc.Cycle)
}

//
// -----------------------------------------------------------------------------
// Generic helpers
// -----------------------------------------------------------------------------

func TestResolveGeneric_TypeAsserts(t *testing.T) {
	t.Parallel()

	r := container.New()
	require.NoError(t, r.Register("leaf", func(deps ...any) any { return &leaf{n: 3} }))

	got, err := container.Resolve[*leaf](r, "leaf")
	require.NoError(t, err)
	assert.Equal(t, 3, got.n)
}

func TestResolveGeneric_WrongType(t *testing.T) {
	t.Parallel()

	r := container.New()
	require.NoError(t, r.Register("leaf", value("not a leaf")))

	_, err := container.Resolve[*leaf](r, "leaf")
	require.Error(t, err)

	var wrong *container.WrongTypeError
	require.ErrorAs(t, err, &wrong)
	assert.Equal(t, "leaf", wrong.Identity)
	assert.Equal(t, "string", wrong.Got)
}

func TestMustResolve_PanicsOnMissing(t *testing.T) {
	t.Parallel()

	r := container.New()
	assert.Panics(t, func() { container.MustResolve[*leaf](r, "ghost") })
}

func TestTypeKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bytes.Buffer", container.TypeKey(bytes.Buffer{}))
	// Pointer types map to their element type's key.
	assert.Equal(t, "bytes.Buffer", container.TypeKey((*bytes.Buffer)(nil)))
}
