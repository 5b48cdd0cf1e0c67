package game

// dropTimer accumulates elapsed time and converts it into forced one-row
// descents according to the drop interval for the current level. The
// remainder past each interval is carried forward so long runs keep
// accurate timing.
type dropTimer struct {
	accumulatedMS int64
}

// advance adds elapsed time and returns the number of forced descents due.
func (t *dropTimer) advance(elapsedMS, intervalMS int64) int {
	t.accumulatedMS += elapsedMS
	drops := 0
	for t.accumulatedMS >= intervalMS {
		t.accumulatedMS -= intervalMS
		drops++
	}
	return drops
}

// reset discards accumulated time. Called when a new piece spawns.
func (t *dropTimer) reset() {
	t.accumulatedMS = 0
}
