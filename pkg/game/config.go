package game

import (
	"github.com/recallab/tetromino/pkg/game/constants"
	gametypes "github.com/recallab/tetromino/pkg/game/types"
)

// DefaultConfig returns the standard 10x20 configuration with the default
// speed curve, scoring table and level threshold.
func DefaultConfig(seed int64) gametypes.Config {
	table := make(map[int]int, len(constants.ScoringTable))
	for rows, points := range constants.ScoringTable {
		table[rows] = points
	}
	return gametypes.Config{
		BoardWidth:    constants.BoardWidth,
		BoardHeight:   constants.BoardHeight,
		Seed:          seed,
		SpeedCurve:    constants.SpeedCurve(),
		ScoringTable:  table,
		LinesPerLevel: constants.LinesPerLevel,
	}
}
