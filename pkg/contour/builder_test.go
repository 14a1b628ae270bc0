package contour

import (
	"testing"

	"github.com/philipparndt/gosplit/pkg/cuterr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertRingClosed checks that ring is the cyclic sequence of edges, each
// edge used once
func assertRingClosed(t *testing.T, ring []int, edges [][2]int) {
	t.Helper()
	require.GreaterOrEqual(t, distinct(ring), 3)
	require.Len(t, ring, len(edges))

	want := make(map[[2]int]int)
	for _, e := range edges {
		want[e]++
	}
	for i := range ring {
		e := [2]int{ring[i], ring[(i+1)%len(ring)]}
		want[e]--
	}
	for e, n := range want {
		assert.Zero(t, n, "edge %v", e)
	}
}

func TestBuilderClosesShuffledSquare(t *testing.T) {
	edges := [][2]int{{2, 3}, {0, 1}, {3, 0}, {1, 2}}
	b := NewBuilder()
	for _, e := range edges {
		b.AddConnected(e[0], e[1])
	}

	rings, err := b.Rings(false, false)
	require.NoError(t, err)
	require.Equal(t, 1, rings.Len())
	assertRingClosed(t, rings.Ring(0), edges)
	assert.Empty(t, b.OpenChains())
}

func TestBuilderMergesChains(t *testing.T) {
	// two chains 0-1-2 and 3-4-5 get joined by 2->3, closed by 5->0
	edges := [][2]int{{0, 1}, {1, 2}, {3, 4}, {4, 5}, {2, 3}, {5, 0}}
	b := NewBuilder()
	for _, e := range edges {
		b.AddConnected(e[0], e[1])
	}

	rings, err := b.Rings(false, false)
	require.NoError(t, err)
	require.Equal(t, 1, rings.Len())
	assertRingClosed(t, rings.Ring(0), edges)
}

func TestBuilderPrependsAndMergesAcrossStart(t *testing.T) {
	// 4->5 then 3->4 prepends; 1->2 starts a chain; 2->3 merges both
	edges := [][2]int{{4, 5}, {3, 4}, {1, 2}, {2, 3}, {5, 1}}
	b := NewBuilder()
	for _, e := range edges {
		b.AddConnected(e[0], e[1])
	}

	rings, err := b.Rings(false, false)
	require.NoError(t, err)
	require.Equal(t, 1, rings.Len())
	assertRingClosed(t, rings.Ring(0), edges)
}

func TestBuilderSeveralRings(t *testing.T) {
	b := NewBuilder()
	for _, e := range [][2]int{{0, 1}, {10, 11}, {1, 2}, {11, 12}, {2, 0}, {12, 10}} {
		b.AddConnected(e[0], e[1])
	}
	rings, err := b.Rings(false, false)
	require.NoError(t, err)
	assert.Equal(t, 2, rings.Len())
}

func TestBuilderIgnoresDegenerateEdge(t *testing.T) {
	b := NewBuilder()
	b.AddConnected(4, 4)
	assert.Empty(t, b.OpenChains())
}

func TestBuilderOpenChains(t *testing.T) {
	b := NewBuilder()
	b.AddConnected(0, 1)
	b.AddConnected(1, 2)
	b.AddConnected(7, 8)

	_, err := b.Rings(false, false)
	assert.True(t, cuterr.IsMalformed(err))

	rings, err := b.Rings(false, true)
	require.NoError(t, err)
	assert.Equal(t, 0, rings.Len())

	rings, err = b.Rings(true, false)
	require.NoError(t, err)
	require.Equal(t, 1, rings.Len(), "only the chain with 3 vertices is force-closed")
	assert.Equal(t, []int{0, 1, 2}, rings.Ring(0))
}

func TestBuilderCloneIsIndependent(t *testing.T) {
	b := NewBuilder()
	b.AddConnected(0, 1)
	b.AddConnected(1, 2)

	fork := b.Clone()
	fork.AddConnected(2, 0)

	closed, err := fork.Rings(false, false)
	require.NoError(t, err)
	assert.Equal(t, 1, closed.Len())

	assert.Len(t, b.OpenChains(), 1)
	_, err = b.Rings(false, false)
	assert.Error(t, err)
}

func TestRingSetDropsDegenerateRings(t *testing.T) {
	s := NewRingSet()
	assert.False(t, s.Add([]int{1, 2}))
	assert.False(t, s.Add([]int{1, 2, 1}))
	assert.True(t, s.Add([]int{1, 2, 3}))
	assert.Equal(t, 1, s.Len())

	c := s.Clone()
	c.Add([]int{4, 5, 6})
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}}, c.All())
}
