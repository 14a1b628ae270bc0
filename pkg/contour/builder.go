package contour

import (
	"github.com/philipparndt/gosplit/pkg/cuterr"
)

// Builder stitches directed boundary edges into rings. Vertex identity is
// by interned id.
type Builder struct {
	chains  []*chain
	byStart map[int]*chain
	byEnd   map[int]*chain
	done    *RingSet
}

type chain struct {
	ids   []int
	alive bool
}

func (c *chain) start() int { return c.ids[0] }
func (c *chain) end() int   { return c.ids[len(c.ids)-1] }

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{
		byStart: make(map[int]*chain),
		byEnd:   make(map[int]*chain),
		done:    NewRingSet(),
	}
}

// AddConnected registers the directed edge v0 -> v1
func (b *Builder) AddConnected(v0, v1 int) {
	if v0 == v1 {
		return
	}

	if c, ok := b.byStart[v1]; ok {
		switch d, merge := b.byEnd[v0]; {
		case c.end() == v0:
			b.unlink(c)
			b.done.Add(c.ids)
		case merge:
			b.unlink(c)
			b.unlink(d)
			b.link(&chain{ids: append(append([]int(nil), d.ids...), c.ids...)})
		default:
			delete(b.byStart, v1)
			c.ids = append([]int{v0}, c.ids...)
			b.byStart[v0] = c
		}
		return
	}

	if c, ok := b.byEnd[v0]; ok {
		// closing and merging both need a chain starting at v1, handled above
		delete(b.byEnd, v0)
		c.ids = append(c.ids, v1)
		b.byEnd[v1] = c
		return
	}

	b.link(&chain{ids: []int{v0, v1}})
}

// Rings returns the completed rings. With selfConnect, open chains of at
// least 3 vertices are closed and returned too. Otherwise open chains are
// an ErrMalformedMesh unless ignorePartial is set.
func (b *Builder) Rings(selfConnect, ignorePartial bool) (*RingSet, error) {
	rings := b.done.Clone()
	open := b.OpenChains()
	if len(open) == 0 {
		return rings, nil
	}

	if selfConnect {
		for _, ids := range open {
			if len(ids) >= 3 {
				rings.Add(ids)
			}
		}
		return rings, nil
	}
	if !ignorePartial {
		return nil, cuterr.Malformed("cut boundary did not close: %d open chains remain", len(open))
	}
	return rings, nil
}

// OpenChains returns copies of the chains that did not close
func (b *Builder) OpenChains() [][]int {
	var out [][]int
	for _, c := range b.chains {
		if c.alive {
			out = append(out, append([]int(nil), c.ids...))
		}
	}
	return out
}

// Clone returns an independent copy of the builder state
func (b *Builder) Clone() *Builder {
	out := NewBuilder()
	out.done = b.done.Clone()
	for _, c := range b.chains {
		if c.alive {
			out.link(&chain{ids: append([]int(nil), c.ids...)})
		}
	}
	return out
}

func (b *Builder) link(c *chain) {
	c.alive = true
	b.chains = append(b.chains, c)
	b.byStart[c.start()] = c
	b.byEnd[c.end()] = c
}

func (b *Builder) unlink(c *chain) {
	c.alive = false
	if b.byStart[c.start()] == c {
		delete(b.byStart, c.start())
	}
	if b.byEnd[c.end()] == c {
		delete(b.byEnd, c.end())
	}
}
