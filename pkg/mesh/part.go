package mesh

import "github.com/philipparndt/gosplit/pkg/geometry"

// Side tags which half-space a part belongs to
type Side int

const (
	SideUnassigned Side = iota
	SidePositive
	SideNegative
)

// String returns the lower-case side name
func (s Side) String() string {
	switch s {
	case SidePositive:
		return "positive"
	case SideNegative:
		return "negative"
	}
	return "unassigned"
}

// Part is one output sub-mesh of a cut. Origin maps original mesh vertex
// indices to local indices for the vertices carried over unchanged.
type Part struct {
	Vertices []geometry.Vector3
	Indices  []int
	UVs      []geometry.Vector2
	Origin   map[int]int
	Side     Side
}

// Mesh returns the part's buffers as a mesh, sharing the slices
func (p *Part) Mesh() *Mesh {
	return &Mesh{Vertices: p.Vertices, Indices: p.Indices, UVs: p.UVs}
}

// TriangleCount returns the number of triangles in the part
func (p *Part) TriangleCount() int {
	return len(p.Indices) / 3
}

// KeyKind distinguishes the origins of part vertices
type KeyKind uint8

const (
	// KeyOriginal is an unchanged vertex of the input mesh, A is its index
	KeyOriginal KeyKind = iota
	// KeyEdge is an intersection on the input edge A-B (A < B)
	KeyEdge
	// KeyCap is a cap vertex, A is its interned vertex id
	KeyCap
	// KeyExtra is any other vertex, A is a caller-defined id
	KeyExtra
)

// VertexKey identifies a part vertex so repeated references share it
type VertexKey struct {
	Kind KeyKind
	A, B int
}

// OriginalKey returns the key of input vertex i
func OriginalKey(i int) VertexKey {
	return VertexKey{Kind: KeyOriginal, A: i}
}

// EdgeKey returns the key of the intersection on input edge a-b
func EdgeKey(a, b int) VertexKey {
	if a > b {
		a, b = b, a
	}
	return VertexKey{Kind: KeyEdge, A: a, B: b}
}

// CapKey returns the key of the cap vertex for interned id
func CapKey(id int) VertexKey {
	return VertexKey{Kind: KeyCap, A: id}
}

// PartBuilder accumulates a Part, deduplicating vertices by key
type PartBuilder struct {
	part  *Part
	local map[VertexKey]int
	uvs   bool
}

// NewPartBuilder starts an empty part. withUVs controls whether the part
// stores texture coordinates.
func NewPartBuilder(side Side, withUVs bool) *PartBuilder {
	return &PartBuilder{
		part:  &Part{Origin: make(map[int]int), Side: side},
		local: make(map[VertexKey]int),
		uvs:   withUVs,
	}
}

// Vertex returns the local index for key, adding the vertex on first use
func (b *PartBuilder) Vertex(key VertexKey, pos geometry.Vector3, uv geometry.Vector2) int {
	if idx, ok := b.local[key]; ok {
		return idx
	}
	idx := len(b.part.Vertices)
	b.part.Vertices = append(b.part.Vertices, pos)
	if b.uvs {
		b.part.UVs = append(b.part.UVs, uv)
	}
	b.local[key] = idx
	if key.Kind == KeyOriginal {
		b.part.Origin[key.A] = idx
	}
	return idx
}

// Lookup returns the local index of key if it was added
func (b *PartBuilder) Lookup(key VertexKey) (int, bool) {
	idx, ok := b.local[key]
	return idx, ok
}

// Triangle appends a triangle of local indices
func (b *PartBuilder) Triangle(i, j, k int) {
	b.part.Indices = append(b.part.Indices, i, j, k)
}

// Empty reports whether no triangle has been added
func (b *PartBuilder) Empty() bool {
	return len(b.part.Indices) == 0
}

// Side returns the side the part is built for
func (b *PartBuilder) Side() Side {
	return b.part.Side
}

// Build returns the accumulated part
func (b *PartBuilder) Build() *Part {
	return b.part
}
