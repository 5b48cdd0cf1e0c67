package types

// Config is the validated engine configuration. It is checked once at
// engine construction; a run never branches on unchecked options.
type Config struct {
	// BoardWidth and BoardHeight are the grid dimensions in cells.
	BoardWidth  int `json:"board_width"`
	BoardHeight int `json:"board_height"`
	// Seed seeds the spawner's randomization source.
	Seed int64 `json:"seed"`
	// SpeedCurve maps level to drop interval: index 0 holds the interval
	// in milliseconds for level 1. Levels beyond the last entry use the
	// last entry, which acts as the interval floor.
	SpeedCurve []int64 `json:"speed_curve"`
	// ScoringTable maps simultaneous rows cleared (1-4) to base points,
	// scaled by the current level on award.
	ScoringTable map[int]int `json:"scoring_table"`
	// LinesPerLevel is the cumulative lines-cleared threshold for a
	// level-up.
	LinesPerLevel int `json:"lines_per_level"`
}

// DropInterval returns the drop interval in milliseconds for a level.
func (c Config) DropInterval(level int) int64 {
	i := level - 1
	if i < 0 {
		i = 0
	}
	if i >= len(c.SpeedCurve) {
		i = len(c.SpeedCurve) - 1
	}
	return c.SpeedCurve[i]
}
