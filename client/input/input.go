package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/recallab/tetromino/pkg/game/types"
	"github.com/recallab/tetromino/pkg/queue"
)

const (
	// SidewaysRepeatMS is the hold-to-repeat interval for left/right movement.
	SidewaysRepeatMS = 150
	// SoftDropRepeatMS is the hold-to-repeat interval for soft drops.
	SoftDropRepeatMS = 100
)

// Handler polls the keyboard each frame and enqueues input events
// for the session loop to drain.
type Handler struct {
	eventQueue queue.Queue

	leftHeldMS  int64
	rightHeldMS int64
	downHeldMS  int64
}

type NewHandlerOptions struct {
	EventQueue queue.Queue
}

func NewHandler(opts NewHandlerOptions) *Handler {
	return &Handler{
		eventQueue: opts.EventQueue,
	}
}

// Poll reads the current keyboard state and enqueues the events it
// produces. Held movement keys repeat on a timer, rotations and hard
// drops fire only on the initial press.
func (h *Handler) Poll(elapsedMS int64, tick int64) {
	h.leftHeldMS = h.pollHeld(ebiten.KeyLeft, types.InputMoveLeft, h.leftHeldMS, SidewaysRepeatMS, elapsedMS, tick)
	h.rightHeldMS = h.pollHeld(ebiten.KeyRight, types.InputMoveRight, h.rightHeldMS, SidewaysRepeatMS, elapsedMS, tick)
	h.downHeldMS = h.pollHeld(ebiten.KeyDown, types.InputSoftDrop, h.downHeldMS, SoftDropRepeatMS, elapsedMS, tick)

	if inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyX) {
		h.enqueue(types.InputRotateCW, tick)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		h.enqueue(types.InputRotateCCW, tick)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		h.enqueue(types.InputHardDrop, tick)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		h.enqueue(types.InputPause, tick)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.enqueue(types.InputQuit, tick)
	}
}

// pollHeld returns the updated hold accumulator for the key. The event
// fires on the initial press and then every repeatMS while held.
func (h *Handler) pollHeld(key ebiten.Key, inputType types.InputType, heldMS, repeatMS, elapsedMS int64, tick int64) int64 {
	if !ebiten.IsKeyPressed(key) {
		return 0
	}
	if inpututil.IsKeyJustPressed(key) {
		h.enqueue(inputType, tick)
		return 0
	}
	heldMS += elapsedMS
	if heldMS >= repeatMS {
		h.enqueue(inputType, tick)
		heldMS -= repeatMS
	}
	return heldMS
}

func (h *Handler) enqueue(inputType types.InputType, tick int64) {
	h.eventQueue.Enqueue(types.InputEvent{
		Type: inputType,
		Tick: tick,
	})
}
