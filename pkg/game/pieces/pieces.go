// Package pieces holds the static tetromino shape geometry: the seven
// canonical shapes and their rotation states, expressed as cell offsets
// relative to a piece's board position.
package pieces

// Shape identifies one of the seven tetromino shapes.
type Shape int

const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
)

// NumShapes is the number of distinct shapes.
const NumShapes = 7

func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeT:
		return "T"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	}
	return "unknown"
}

// Cell is a relative cell offset from a piece's board position.
type Cell struct {
	DX int
	DY int
}

const (
	// TemplateSize is the side length of the square templates below.
	TemplateSize = 5
	blank        = '.'
)

// Shape templates. Each shape has an ordered list of rotation states drawn
// on a 5x5 grid. Row index is DY, column index is DX.
var shapeTemplates = map[Shape][][]string{
	ShapeS: {
		{".....", ".....", "..OO.", ".OO..", "....."},
		{".....", "..O..", "..OO.", "...O.", "....."},
	},
	ShapeZ: {
		{".....", ".....", ".OO..", "..OO.", "....."},
		{".....", "..O..", ".OO..", ".O...", "....."},
	},
	ShapeI: {
		{"..O..", "..O..", "..O..", "..O..", "....."},
		{".....", ".....", "OOOO.", ".....", "....."},
	},
	ShapeO: {
		{".....", ".....", ".OO..", ".OO..", "....."},
	},
	ShapeJ: {
		{".....", ".O...", ".OOO.", ".....", "....."},
		{".....", "..OO.", "..O..", "..O..", "....."},
		{".....", ".....", ".OOO.", "...O.", "....."},
		{".....", "..O..", "..O..", ".OO..", "....."},
	},
	ShapeL: {
		{".....", "...O.", ".OOO.", ".....", "....."},
		{".....", "..O..", "..O..", "..OO.", "....."},
		{".....", ".....", ".OOO.", ".O...", "....."},
		{".....", ".OO..", "..O..", "..O..", "....."},
	},
	ShapeT: {
		{".....", "..O..", ".OOO.", ".....", "....."},
		{".....", "..O..", "..OO.", "..O..", "....."},
		{".....", ".....", ".OOO.", "..O..", "....."},
		{".....", "..O..", ".OO..", "..O..", "....."},
	},
}

// shapeCells is the parsed form of shapeTemplates, indexed by shape and
// rotation state.
var shapeCells map[Shape][][]Cell

func init() {
	shapeCells = make(map[Shape][][]Cell, len(shapeTemplates))
	for shape, rotations := range shapeTemplates {
		states := make([][]Cell, len(rotations))
		for r, template := range rotations {
			var cells []Cell
			for dy, row := range template {
				for dx, c := range row {
					if byte(c) != blank {
						cells = append(cells, Cell{DX: dx, DY: dy})
					}
				}
			}
			states[r] = cells
		}
		shapeCells[shape] = states
	}
}

// Rotations returns the number of distinct rotation states for a shape.
func Rotations(shape Shape) int {
	return len(shapeCells[shape])
}

// Cells returns the relative cell offsets for a shape at a rotation index.
// The rotation index is taken modulo the shape's rotation count, so any
// integer (including negative values) is valid. The returned slice is
// shared and must not be modified.
func Cells(shape Shape, rotation int) []Cell {
	states := shapeCells[shape]
	r := rotation % len(states)
	if r < 0 {
		r += len(states)
	}
	return states[r]
}

// All returns all seven shapes in a fixed order.
func All() []Shape {
	return []Shape{ShapeI, ShapeO, ShapeT, ShapeS, ShapeZ, ShapeJ, ShapeL}
}
