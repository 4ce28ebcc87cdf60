package app

import (
	"testing"

	"github.com/dkeye/djrelay/internal/core"
	"github.com/dkeye/djrelay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockConn struct{}

func (mockConn) TrySend(core.Frame) error { return nil }
func (mockConn) Close()                   {}

func TestRegistry_UniqueNames(t *testing.T) {
	r := NewRegistry()

	got := make([]domain.Identity, 0, 4)
	for _, sid := range []core.SessionID{"1", "2", "3"} {
		id, ok := r.Register(sid, "guest")
		require.True(t, ok)
		got = append(got, id)
	}
	id, ok := r.Register("4", "")
	require.True(t, ok)
	got = append(got, id)

	assert.Equal(t, []domain.Identity{"guest", "guest#2", "guest#3", "guest#4"}, got)
	assert.Equal(t, 4, r.Count())
}

func TestRegistry_LowestFreeSuffix(t *testing.T) {
	r := NewRegistry()
	r.Register("1", "dj")
	r.Register("2", "dj")
	r.Register("3", "dj")

	r.Release("2")
	id, _ := r.Register("4", "dj")
	assert.Equal(t, domain.Identity("dj#2"), id)

	r.Release("1")
	id, _ = r.Register("5", "dj")
	assert.Equal(t, domain.Identity("dj"), id)
}

func TestRegistry_ExplicitSuffixTaken(t *testing.T) {
	r := NewRegistry()
	r.Register("1", "dj#2")
	r.Register("2", "dj")

	id, _ := r.Register("3", "dj")
	assert.Equal(t, domain.Identity("dj#3"), id)
}

func TestRegistry_SecondRegisterRejected(t *testing.T) {
	r := NewRegistry()
	first, ok := r.Register("1", "alice")
	require.True(t, ok)

	_, ok = r.Register("1", "bob")
	assert.False(t, ok)

	id, _ := r.IdentityOf("1")
	assert.Equal(t, first, id)
	_, ok = r.Lookup("bob")
	assert.False(t, ok)
}

func TestRegistry_ResolveAndRelease(t *testing.T) {
	r := NewRegistry()
	r.BindSignal("1", mockConn{})
	r.Register("1", "alice")

	sess, ok := r.Resolve("1")
	require.True(t, ok)
	assert.Equal(t, domain.Identity("alice"), sess.Identity())
	byName, ok := r.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, sess, byName)

	r.Release("1")
	r.Release("1")
	r.Release("unknown")

	_, ok = r.Resolve("1")
	assert.False(t, ok)
	_, ok = r.Lookup("alice")
	assert.False(t, ok)
	_, ok = r.Signal("1")
	assert.True(t, ok, "transport binding outlives registration")

	r.Unbind("1")
	_, ok = r.Signal("1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Count())
}
