package sessions

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	closed atomic.Int32
}

func (f *fakeSession) Close() { f.closed.Add(1) }

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestRegistry() (*Registry[*fakeSession], *clock) {
	c := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewRegistry[*fakeSession](10*time.Minute, c.now), c
}

func TestAddAndGetExtendsTTL(t *testing.T) {
	r, c := newTestRegistry()
	s := &fakeSession{}

	id, exp, err := r.Add(s)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, c.t.Add(10*time.Minute), exp)

	c.t = c.t.Add(9 * time.Minute)
	got, exp, err := r.Get(id)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, c.t.Add(10*time.Minute), exp)

	c.t = c.t.Add(9 * time.Minute)
	_, _, err = r.Get(id)
	assert.NoError(t, err)
}

func TestGetExpiredClosesSession(t *testing.T) {
	r, c := newTestRegistry()
	s := &fakeSession{}
	id, _, err := r.Add(s)
	require.NoError(t, err)

	c.t = c.t.Add(10 * time.Minute)
	_, _, err = r.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), s.closed.Load())
	assert.Equal(t, 0, r.Len())
}

func TestGetUnknown(t *testing.T) {
	r, _ := newTestRegistry()
	_, _, err := r.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	r, _ := newTestRegistry()
	s := &fakeSession{}
	id, _, _ := r.Add(s)

	assert.True(t, r.Remove(id))
	assert.False(t, r.Remove(id))
	assert.Equal(t, int32(1), s.closed.Load())
}

func TestSweepDropsOnlyExpired(t *testing.T) {
	r, c := newTestRegistry()
	old := &fakeSession{}
	_, _, _ = r.Add(old)
	c.t = c.t.Add(5 * time.Minute)
	fresh := &fakeSession{}
	_, _, _ = r.Add(fresh)

	c.t = c.t.Add(6 * time.Minute)
	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, int32(1), old.closed.Load())
	assert.Equal(t, int32(0), fresh.closed.Load())
	assert.Equal(t, 1, r.Len())
}

func TestCloseAll(t *testing.T) {
	r, _ := newTestRegistry()
	a, b := &fakeSession{}, &fakeSession{}
	_, _, _ = r.Add(a)
	_, _, _ = r.Add(b)

	r.CloseAll()
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, int32(1), a.closed.Load())
	assert.Equal(t, int32(1), b.closed.Load())
}
