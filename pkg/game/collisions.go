package game

import (
	gametypes "github.com/recallab/tetromino/pkg/game/types"
)

// canPlace reports whether every cell of the piece is legal on the board.
// Cells above the top row are legal while falling as long as they stay
// within the horizontal bounds; everything else must be a free board cell.
func canPlace(b *Board, piece gametypes.ActivePiece) bool {
	for _, c := range piece.Cells() {
		if c.DY < 0 {
			if c.DX < 0 || c.DX >= b.Width() {
				return false
			}
			continue
		}
		if !b.IsFree(c.DX, c.DY) {
			return false
		}
	}
	return true
}

// tryTranslate returns the piece shifted by (dx, dy) and true if every
// candidate cell is free and in-bounds. Otherwise the original piece is
// returned unchanged. All-or-nothing, no partial application.
func tryTranslate(b *Board, piece gametypes.ActivePiece, dx, dy int) (gametypes.ActivePiece, bool) {
	candidate := piece.Translated(dx, dy)
	if !canPlace(b, candidate) {
		return piece, false
	}
	return candidate, true
}

// tryRotate returns the piece rotated by direction (+1 clockwise, -1
// counterclockwise) and true if the rotated cells are all free and
// in-bounds. A rotation that would collide is rejected outright, there is
// no wall-kick adjustment.
func tryRotate(b *Board, piece gametypes.ActivePiece, direction int) (gametypes.ActivePiece, bool) {
	candidate := piece.Rotated(direction)
	if !canPlace(b, candidate) {
		return piece, false
	}
	return candidate, true
}
