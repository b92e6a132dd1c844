// Package systems provides the per-step rules shared by the simulations:
// neighbour queries, flocking steering and the trail field.
package systems

import (
	"math"

	"github.com/pthm-cable/swarmsketch/vmath"
)

// Neighbor holds a nearby agent with its precomputed distance.
type Neighbor struct {
	Index int     // index into the queried population
	Dist  float64 // Euclidean distance from the query origin
}

// NeighborFinder returns every agent within radius of agent self,
// excluding self. Results are appended to dst.
type NeighborFinder interface {
	NeighborsWithin(dst []Neighbor, self int, radius float64) []Neighbor
}

// NeighborsWithin is the O(n^2) brute-force query. It appends to dst every
// agent other than self whose distance to positions[self] is < radius.
func NeighborsWithin(dst []Neighbor, self int, positions []vmath.Vec2, radius float64) []Neighbor {
	origin := positions[self]
	radiusSq := radius * radius
	for i, p := range positions {
		if i == self {
			continue
		}
		dx := p.X - origin.X
		dy := p.Y - origin.Y
		distSq := dx*dx + dy*dy
		if distSq < radiusSq {
			dst = append(dst, Neighbor{Index: i, Dist: math.Sqrt(distSq)})
		}
	}
	return dst
}

// Scan adapts NeighborsWithin to the NeighborFinder interface.
type Scan struct {
	Positions []vmath.Vec2
}

// NeighborsWithin implements NeighborFinder.
func (s Scan) NeighborsWithin(dst []Neighbor, self int, radius float64) []Neighbor {
	return NeighborsWithin(dst, self, s.Positions, radius)
}

// SpatialGrid buckets agent indices into square cells so queries only
// visit cells overlapping the query radius. It returns the same set as
// the full scan.
type SpatialGrid struct {
	cellSize  float64
	cols      int
	rows      int
	cells     [][]int
	positions []vmath.Vec2
}

// NewSpatialGrid creates a grid covering a width x height canvas.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// CellSize returns the edge length of one grid cell.
func (g *SpatialGrid) CellSize() float64 {
	return g.cellSize
}

// Rebuild clears the grid and inserts every position. The grid keeps a
// reference to positions; the caller must not mutate it until the next
// Rebuild.
func (g *SpatialGrid) Rebuild(positions []vmath.Vec2) {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.positions = positions
	for i, p := range positions {
		col, row := g.cellOf(p.X, p.Y)
		idx := row*g.cols + col
		g.cells[idx] = append(g.cells[idx], i)
	}
}

// NeighborsWithin implements NeighborFinder. Safe for concurrent use
// between Rebuild calls.
func (g *SpatialGrid) NeighborsWithin(dst []Neighbor, self int, radius float64) []Neighbor {
	origin := g.positions[self]
	radiusSq := radius * radius

	c0, r0 := g.cellOf(origin.X-radius, origin.Y-radius)
	c1, r1 := g.cellOf(origin.X+radius, origin.Y+radius)

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			for _, i := range g.cells[row*g.cols+col] {
				if i == self {
					continue
				}
				p := g.positions[i]
				dx := p.X - origin.X
				dy := p.Y - origin.Y
				distSq := dx*dx + dy*dy
				if distSq < radiusSq {
					dst = append(dst, Neighbor{Index: i, Dist: math.Sqrt(distSq)})
				}
			}
		}
	}
	return dst
}

// cellOf returns the clamped cell coordinates for a canvas position.
// Clamping is monotone, so a clamped query range still covers every
// clamped insertion it should.
func (g *SpatialGrid) cellOf(x, y float64) (col, row int) {
	col = int(math.Floor(x / g.cellSize))
	row = int(math.Floor(y / g.cellSize))

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}
