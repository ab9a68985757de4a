package nav

import "fmt"

// Mesh is a rectangular walkability grid.
type Mesh struct {
	width    int
	height   int
	cellSize float64
	blocked  []bool
	diagonal bool
}

// NewMesh creates an empty (fully walkable) mesh of width×height cells.
func NewMesh(width, height int, cellSize float64) (*Mesh, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid mesh size %dx%d", width, height)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("invalid cell size %v", cellSize)
	}
	return &Mesh{
		width:    width,
		height:   height,
		cellSize: cellSize,
		blocked:  make([]bool, width*height),
	}, nil
}

// Width returns the number of columns.
func (m *Mesh) Width() int { return m.width }

// Height returns the number of rows.
func (m *Mesh) Height() int { return m.height }

// CellSize returns the edge length of one cell in simulation units.
func (m *Mesh) CellSize() float64 { return m.cellSize }

// SetDiagonal enables 8-neighbour expansion.
func (m *Mesh) SetDiagonal(enabled bool) { m.diagonal = enabled }

// AddObstacle marks the cell as not walkable. Out-of-range cells are ignored.
func (m *Mesh) AddObstacle(col, row int) {
	if !m.InBounds(col, row) {
		return
	}
	m.blocked[row*m.width+col] = true
}

// InBounds reports whether the cell lies on the mesh.
func (m *Mesh) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < m.width && row < m.height
}

// IsWalkable reports whether the cell is on the mesh and not an obstacle.
func (m *Mesh) IsWalkable(col, row int) bool {
	return m.InBounds(col, row) && !m.blocked[row*m.width+col]
}

// CellToWorld returns the center of the cell in simulation space.
func (m *Mesh) CellToWorld(col, row int) Vec2 {
	return Vec2{
		X: (float64(col) + 0.5) * m.cellSize,
		Y: (float64(row) + 0.5) * m.cellSize,
	}
}
