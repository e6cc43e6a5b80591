package annotations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-nest/framework/annotations"
)

func TestLookup_AbsentWithoutAttach(t *testing.T) {
	t.Parallel()

	s := annotations.New()
	v, ok := s.Lookup("never-attached")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestAttach_Lookup(t *testing.T) {
	t.Parallel()

	s := annotations.New()
	s.Attach("users.store", map[string]string{"name": "required"})

	v, ok := s.Lookup("users.store")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"name": "required"}, v)
}

func TestAttach_LastWriteWins(t *testing.T) {
	t.Parallel()

	s := annotations.New()
	s.Attach("users.store", "first")
	s.Attach("users.store", "second")

	v, ok := s.Lookup("users.store")
	require.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestLookupAs_TypedAccess(t *testing.T) {
	t.Parallel()

	s := annotations.New()
	s.Attach("handler", []string{"a", "b"})

	got, ok := annotations.LookupAs[[]string](s, "handler")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestLookupAs_WrongTypeIsAbsent(t *testing.T) {
	t.Parallel()

	s := annotations.New()
	s.Attach("handler", 42)

	_, ok := annotations.LookupAs[string](s, "handler")
	assert.False(t, ok)
}

// The store's lifecycle is independent per instance: no cross-store
// leakage.
func TestStore_Isolation(t *testing.T) {
	t.Parallel()

	a := annotations.New()
	b := annotations.New()
	a.Attach("k", "v")

	_, ok := b.Lookup("k")
	assert.False(t, ok)
}
