package constants

const (
	// BoardWidth is the default number of board columns
	BoardWidth int = 10
	// BoardHeight is the default number of board rows
	BoardHeight int = 20

	// SpawnRow is the board row new pieces spawn at. Pieces start partly
	// above the visible grid; cells above row 0 are legal while falling.
	SpawnRow int = -2

	// LinesPerLevel is the default lines-cleared threshold for a level-up
	LinesPerLevel int = 10

	// BaseDropIntervalMS is the level-1 drop interval
	BaseDropIntervalMS int64 = 350
	// DropIntervalStepMS is the per-level drop interval decrease
	DropIntervalStepMS int64 = 10
	// MinDropIntervalMS is the drop interval floor
	MinDropIntervalMS int64 = 50

	// MaxSimultaneousClears is the most rows a single lock can complete
	MaxSimultaneousClears int = 4
)

// ScoringTable is the default base points per simultaneous rows cleared,
// scaled by the current level on award. Clearing more rows at once scores
// strictly more per row cleared.
var ScoringTable = map[int]int{
	1: 40,
	2: 100,
	3: 300,
	4: 1200,
}

// SpawnColumn returns the default spawn column for a board width. It
// centers the 5x5 shape template horizontally.
func SpawnColumn(boardWidth int) int {
	return boardWidth/2 - 2
}

// SpeedCurve returns the default speed curve: BaseDropIntervalMS at level
// 1, decreasing by DropIntervalStepMS per level down to MinDropIntervalMS.
func SpeedCurve() []int64 {
	var curve []int64
	for interval := BaseDropIntervalMS; interval > MinDropIntervalMS; interval -= DropIntervalStepMS {
		curve = append(curve, interval)
	}
	return append(curve, MinDropIntervalMS)
}
