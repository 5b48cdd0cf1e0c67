package game

import (
	gametypes "github.com/recallab/tetromino/pkg/game/types"
)

// Board is the fixed-size grid locked pieces accumulate in. Dimensions
// are immutable after construction. The grid is indexed [row][column]
// with row 0 at the top.
type Board struct {
	width  int
	height int
	grid   [][]gametypes.Cell
}

// NewBoard creates an empty board of the given dimensions.
func NewBoard(width, height int) *Board {
	grid := make([][]gametypes.Cell, height)
	for y := range grid {
		grid[y] = make([]gametypes.Cell, width)
	}
	return &Board{
		width:  width,
		height: height,
		grid:   grid,
	}
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

// IsFree returns true iff (x, y) is within bounds and unoccupied.
// Out-of-bounds coordinates are not free, not an error.
func (b *Board) IsFree(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	return b.grid[y][x] == gametypes.CellEmpty
}

// Lock writes the piece's absolute cells into the grid. Every target cell
// must currently be free; an occupied target is an InvariantViolation.
// Cells above the top row are skipped, the caller decides whether locking
// above the grid ends the run.
func (b *Board) Lock(piece gametypes.ActivePiece) error {
	cells := piece.Cells()
	for _, c := range cells {
		if c.DY < 0 {
			continue
		}
		if !b.IsFree(c.DX, c.DY) {
			return &InvariantViolation{X: c.DX, Y: c.DY}
		}
	}
	tag := gametypes.CellForShape(piece.Shape)
	for _, c := range cells {
		if c.DY < 0 {
			continue
		}
		b.grid[c.DY][c.DX] = tag
	}
	return nil
}

// ClearFullRows removes every row where all columns are occupied, shifts
// the rows above each removed row down, and returns the count removed.
// Relative vertical order and cell identity of the remaining rows are
// preserved.
func (b *Board) ClearFullRows() int {
	cleared := 0
	y := b.height - 1
	for y >= 0 {
		if b.rowFull(y) {
			for pull := y; pull > 0; pull-- {
				copy(b.grid[pull], b.grid[pull-1])
			}
			for x := 0; x < b.width; x++ {
				b.grid[0][x] = gametypes.CellEmpty
			}
			cleared++
		} else {
			y--
		}
	}
	return cleared
}

func (b *Board) rowFull(y int) bool {
	for x := 0; x < b.width; x++ {
		if b.grid[y][x] == gametypes.CellEmpty {
			return false
		}
	}
	return true
}

// Cells returns a copy of the grid for snapshots.
func (b *Board) Cells() [][]gametypes.Cell {
	grid := make([][]gametypes.Cell, b.height)
	for y := range b.grid {
		grid[y] = make([]gametypes.Cell, b.width)
		copy(grid[y], b.grid[y])
	}
	return grid
}
