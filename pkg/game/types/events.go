package types

// InputType identifies a host-supplied input event.
type InputType int

const (
	InputMoveLeft InputType = iota
	InputMoveRight
	InputRotateCW
	InputRotateCCW
	InputSoftDrop
	InputHardDrop
	InputPause
	InputResume
	InputQuit
)

func (t InputType) String() string {
	switch t {
	case InputMoveLeft:
		return "MoveLeft"
	case InputMoveRight:
		return "MoveRight"
	case InputRotateCW:
		return "RotateCW"
	case InputRotateCCW:
		return "RotateCCW"
	case InputSoftDrop:
		return "SoftDrop"
	case InputHardDrop:
		return "HardDrop"
	case InputPause:
		return "Pause"
	case InputResume:
		return "Resume"
	case InputQuit:
		return "Quit"
	}
	return "unknown"
}

// InputEvent is one host input, tagged with the tick it arrived in.
// Events within a tick are processed in arrival order.
type InputEvent struct {
	Type InputType
	Tick int64
}
