package edge

import (
	"testing"

	"github.com/specialistvlad/sodggo/internal/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndGet(t *testing.T) {
	x := New()
	_, replaced := x.Put(0, "a", 1)
	assert.False(t, replaced)

	got, ok := x.Get(0, "a")
	require.True(t, ok)
	assert.Equal(t, vertex.ID(1), got)

	_, ok = x.Get(0, "b")
	assert.False(t, ok)
	_, ok = x.Get(9, "a")
	assert.False(t, ok)
}

func TestPut_LastWriteWins(t *testing.T) {
	x := New()
	x.Put(0, "a", 1)
	prev, replaced := x.Put(0, "a", 2)
	assert.True(t, replaced)
	assert.Equal(t, vertex.ID(1), prev)

	got, _ := x.Get(0, "a")
	assert.Equal(t, vertex.ID(2), got)
	assert.Equal(t, 1, x.Len(), "overwrite must not create a second edge")
	assert.Empty(t, x.Referrers(1), "old target no longer referenced")
	assert.Equal(t, []vertex.ID{0}, x.Referrers(2))
}

func TestLabels_Sorted(t *testing.T) {
	x := New()
	x.Put(0, "zeta", 1)
	x.Put(0, "alpha", 2)
	x.Put(0, "mu", 3)
	assert.Equal(t, []string{"alpha", "mu", "zeta"}, x.Labels(0))
	assert.Equal(t, []Edge{{"alpha", 2}, {"mu", 3}, {"zeta", 1}}, x.Edges(0))
	assert.Empty(t, x.Labels(5))
}

func TestRemove_Idempotent(t *testing.T) {
	x := New()
	x.Put(0, "a", 1)
	assert.True(t, x.Remove(0, "a"))
	assert.False(t, x.Remove(0, "a"))
	assert.False(t, x.Remove(3, "nothing"))
	assert.Equal(t, 0, x.Len())
	assert.Empty(t, x.Referrers(1))
}

func TestReferrers_CountsMultipleLabels(t *testing.T) {
	x := New()
	x.Put(0, "a", 2)
	x.Put(0, "b", 2)
	x.Put(1, "c", 2)

	assert.Equal(t, []vertex.ID{0, 1}, x.Referrers(2))
	x.Remove(0, "a")
	assert.Equal(t, []vertex.ID{0, 1}, x.Referrers(2), "0 still points at 2 through b")
	x.Remove(0, "b")
	assert.Equal(t, []vertex.ID{1}, x.Referrers(2))
}

func TestDetach(t *testing.T) {
	x := New()
	x.Put(0, "a", 1)
	x.Put(1, "parent", 0)
	x.Put(1, "self", 1)
	x.Put(1, "b", 2)
	x.Put(2, "up", 1)
	x.Put(0, "c", 2)

	dropped := x.Detach(1)
	assert.Equal(t, 5, dropped)
	assert.Equal(t, 1, x.Len())

	_, ok := x.Get(0, "a")
	assert.False(t, ok)
	_, ok = x.Get(2, "up")
	assert.False(t, ok)
	assert.Empty(t, x.Labels(1))
	assert.Empty(t, x.Referrers(1))
	assert.Empty(t, x.Referrers(0), "1 no longer points at 0")

	got, ok := x.Get(0, "c")
	require.True(t, ok)
	assert.Equal(t, vertex.ID(2), got)
}

func TestClone_IsDeep(t *testing.T) {
	x := New()
	x.Put(0, "a", 1)
	c := x.Clone()
	c.Put(0, "a", 2)
	c.Put(0, "b", 3)

	got, _ := x.Get(0, "a")
	assert.Equal(t, vertex.ID(1), got)
	assert.Equal(t, 1, x.Len())
	assert.Equal(t, []vertex.ID{0}, x.Referrers(1))
	assert.Empty(t, c.Referrers(1))
}
