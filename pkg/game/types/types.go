package types

import "github.com/recallab/tetromino/pkg/game/pieces"

// Cell is the content of one board cell. CellEmpty marks an unoccupied
// cell; any other value is the identity tag of the locked piece that
// filled it.
type Cell uint8

const CellEmpty Cell = 0

// CellForShape returns the cell tag for a locked piece of the given shape.
func CellForShape(shape pieces.Shape) Cell {
	return Cell(shape) + 1
}

// Shape returns the shape a non-empty cell was locked from.
func (c Cell) Shape() pieces.Shape {
	return pieces.Shape(c - 1)
}

// ActivePiece is the currently falling piece. It exists only between spawn
// and lock.
type ActivePiece struct {
	Shape    pieces.Shape `json:"shape"`
	Rotation int          `json:"rotation"`
	X        int          `json:"x"`
	Y        int          `json:"y"`
}

// Cells returns the piece's absolute board cells at its current position
// and rotation.
func (p ActivePiece) Cells() []pieces.Cell {
	rel := pieces.Cells(p.Shape, p.Rotation)
	abs := make([]pieces.Cell, len(rel))
	for i, c := range rel {
		abs[i] = pieces.Cell{DX: p.X + c.DX, DY: p.Y + c.DY}
	}
	return abs
}

// Translated returns a copy of the piece shifted by (dx, dy).
func (p ActivePiece) Translated(dx, dy int) ActivePiece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns a copy of the piece with its rotation index changed by
// direction (+1 clockwise, -1 counterclockwise), normalized to the shape's
// rotation count.
func (p ActivePiece) Rotated(direction int) ActivePiece {
	n := pieces.Rotations(p.Shape)
	r := (p.Rotation + direction) % n
	if r < 0 {
		r += n
	}
	p.Rotation = r
	return p
}
