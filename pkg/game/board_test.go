package game

import (
	"testing"

	"github.com/recallab/tetromino/pkg/game/pieces"
	gametypes "github.com/recallab/tetromino/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_IsFree(t *testing.T) {
	b := NewBoard(10, 20)

	assert.True(t, b.IsFree(0, 0))
	assert.True(t, b.IsFree(9, 19))

	// Out of bounds is not free, not an error.
	assert.False(t, b.IsFree(-1, 0))
	assert.False(t, b.IsFree(10, 0))
	assert.False(t, b.IsFree(0, -1))
	assert.False(t, b.IsFree(0, 20))

	require.NoError(t, b.Lock(gametypes.ActivePiece{Shape: pieces.ShapeO, X: 0, Y: 16}))
	assert.False(t, b.IsFree(1, 18))
	assert.True(t, b.IsFree(0, 18))
}

func TestBoard_Lock(t *testing.T) {
	b := NewBoard(10, 20)
	piece := gametypes.ActivePiece{Shape: pieces.ShapeO, X: 0, Y: 16}

	require.NoError(t, b.Lock(piece))
	tag := gametypes.CellForShape(pieces.ShapeO)
	grid := b.Cells()
	assert.Equal(t, tag, grid[18][1])
	assert.Equal(t, tag, grid[18][2])
	assert.Equal(t, tag, grid[19][1])
	assert.Equal(t, tag, grid[19][2])

	// Locking into an occupied cell is an invariant break, not a
	// recoverable condition.
	err := b.Lock(piece)
	require.Error(t, err)
	assert.True(t, IsInvariantViolation(err))

	// The failed lock must not have written anything.
	assert.Equal(t, grid, b.Cells())
}

func TestBoard_ClearFullRows(t *testing.T) {
	type cell struct {
		x, y int
		tag  gametypes.Cell
	}
	tests := []struct {
		name      string
		fullRows  []int
		extra     []cell
		wantCount int
		wantAfter []cell
	}{
		{
			name:      "no full rows",
			extra:     []cell{{x: 0, y: 19, tag: 2}},
			wantCount: 0,
			wantAfter: []cell{{x: 0, y: 19, tag: 2}},
		},
		{
			name:      "single bottom row",
			fullRows:  []int{19},
			extra:     []cell{{x: 3, y: 18, tag: 5}},
			wantCount: 1,
			wantAfter: []cell{{x: 3, y: 19, tag: 5}},
		},
		{
			name:      "two separated rows shift independently",
			fullRows:  []int{17, 19},
			extra:     []cell{{x: 2, y: 16, tag: 3}, {x: 4, y: 18, tag: 6}},
			wantCount: 2,
			wantAfter: []cell{{x: 2, y: 18, tag: 3}, {x: 4, y: 19, tag: 6}},
		},
		{
			name:      "four simultaneous rows",
			fullRows:  []int{16, 17, 18, 19},
			extra:     []cell{{x: 7, y: 15, tag: 4}},
			wantCount: 4,
			wantAfter: []cell{{x: 7, y: 19, tag: 4}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(10, 20)
			for _, y := range tt.fullRows {
				for x := 0; x < 10; x++ {
					b.grid[y][x] = 1
				}
			}
			for _, c := range tt.extra {
				b.grid[c.y][c.x] = c.tag
			}

			assert.Equal(t, tt.wantCount, b.ClearFullRows())

			occupied := 0
			for y := 0; y < 20; y++ {
				for x := 0; x < 10; x++ {
					if b.grid[y][x] != gametypes.CellEmpty {
						occupied++
					}
				}
			}
			assert.Equal(t, len(tt.wantAfter), occupied)
			for _, c := range tt.wantAfter {
				assert.Equal(t, c.tag, b.grid[c.y][c.x], "cell (%d, %d)", c.x, c.y)
			}
		})
	}
}

func TestBoard_ClearFullRows_PreservesOrder(t *testing.T) {
	b := NewBoard(10, 20)
	// Stack of distinct tags above a full row.
	b.grid[15][0] = 3
	b.grid[16][0] = 4
	b.grid[17][0] = 5
	for x := 0; x < 10; x++ {
		b.grid[19][x] = 1
	}

	assert.Equal(t, 1, b.ClearFullRows())

	assert.Equal(t, gametypes.Cell(3), b.grid[16][0])
	assert.Equal(t, gametypes.Cell(4), b.grid[17][0])
	assert.Equal(t, gametypes.Cell(5), b.grid[18][0])
}
