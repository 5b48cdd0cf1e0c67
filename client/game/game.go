package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/recallab/tetromino/client/fonts"
	"github.com/recallab/tetromino/client/input"
	"github.com/recallab/tetromino/pkg/game/pieces"
	gametypes "github.com/recallab/tetromino/pkg/game/types"
	"github.com/recallab/tetromino/pkg/log"
	"github.com/recallab/tetromino/pkg/queue"
	"github.com/recallab/tetromino/pkg/sessions"
	"github.com/recallab/tetromino/pkg/state"
	"golang.org/x/image/font"
)

const (
	// CellSize is the pixel size of one board cell.
	CellSize = 30
	// BoardMargin is the padding around the board.
	BoardMargin = 20
	// PanelWidth is the width of the score panel to the right of the board.
	PanelWidth = 180
)

var (
	backgroundColor = color.RGBA{0x10, 0x10, 0x18, 0xff}
	boardColor      = color.RGBA{0x00, 0x00, 0x00, 0xff}
	borderColor     = color.RGBA{0x60, 0x60, 0x70, 0xff}
	textColor       = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}

	shapeColors = map[pieces.Shape]color.RGBA{
		pieces.ShapeS: {0x3c, 0xb4, 0x4b, 0xff},
		pieces.ShapeZ: {0xe6, 0x19, 0x4b, 0xff},
		pieces.ShapeI: {0x46, 0xc8, 0xf0, 0xff},
		pieces.ShapeO: {0xff, 0xe1, 0x19, 0xff},
		pieces.ShapeJ: {0x43, 0x63, 0xd8, 0xff},
		pieces.ShapeL: {0xf5, 0x82, 0x31, 0xff},
		pieces.ShapeT: {0x91, 0x1e, 0xb4, 0xff},
	}
)

// Game implements ebiten.Game, driving one distractor session per window.
type Game struct {
	session       *sessions.Session
	inputHandler  *input.Handler
	eventQueue    queue.Queue
	resultManager state.ResultManager
	onComplete    func(*sessions.Result)

	boardWidth  int
	boardHeight int
	snapshot    *gametypes.Snapshot
	lastUpdate  time.Time
	tick        int64
	completed   bool
	completedAt time.Time
}

// completedLinger is how long the final overlay stays up before the
// window closes and control returns to the experiment.
const completedLinger = 2 * time.Second

type NewGameOptions struct {
	Session       *sessions.Session
	InputHandler  *input.Handler
	EventQueue    queue.Queue
	ResultManager state.ResultManager
	// OnComplete is called once when the session's duration elapses.
	OnComplete func(*sessions.Result)
}

func NewGame(opts NewGameOptions) (*Game, error) {
	snapshot, err := opts.Session.Advance(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get initial snapshot: %v", err)
	}

	return &Game{
		session:       opts.Session,
		inputHandler:  opts.InputHandler,
		eventQueue:    opts.EventQueue,
		resultManager: opts.ResultManager,
		onComplete:    opts.OnComplete,
		boardWidth:    len(snapshot.Grid[0]),
		boardHeight:   len(snapshot.Grid),
		snapshot:      snapshot,
	}, nil
}

func (g *Game) Update() error {
	now := time.Now()
	var elapsedMS int64
	if !g.lastUpdate.IsZero() {
		elapsedMS = now.Sub(g.lastUpdate).Milliseconds()
	}
	g.lastUpdate = now
	g.tick++

	g.inputHandler.Poll(elapsedMS, g.tick)
	events := g.drainEvents()

	snapshot, err := g.session.Advance(events, elapsedMS)
	if err != nil {
		log.Error("Failed to advance session: %v", err)
	}
	if snapshot != nil {
		g.snapshot = snapshot
	}

	if err := g.resultManager.Set(g.session.Progress()); err != nil {
		log.Error("Failed to update session result: %v", err)
	}

	if g.session.Done() && !g.completed {
		g.completed = true
		g.completedAt = now
		if g.onComplete != nil {
			g.onComplete(g.session.Result())
		}
	}
	if g.completed && now.Sub(g.completedAt) >= completedLinger {
		return ebiten.Termination
	}

	return nil
}

// drainEvents empties the input queue. A pause event is flipped to a
// resume when the engine is already paused, so one key toggles both.
func (g *Game) drainEvents() []gametypes.InputEvent {
	var events []gametypes.InputEvent
	for _, message := range g.eventQueue.ReadAllMessages() {
		event, ok := message.(gametypes.InputEvent)
		if !ok {
			log.Warn("Unexpected message type in input queue: %T", message)
			continue
		}
		if event.Type == gametypes.InputPause && g.snapshot.Status == gametypes.StatusPaused {
			event.Type = gametypes.InputResume
		}
		events = append(events, event)
	}
	return events
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.drawBoard(screen)
	g.drawPanel(screen)

	switch g.snapshot.Status {
	case gametypes.StatusPaused:
		g.drawOverlay(screen, "PAUSED")
	case gametypes.StatusTimeExpired:
		g.drawOverlay(screen, "TIME UP")
	case gametypes.StatusGameOver:
		g.drawOverlay(screen, "GAME OVER")
	}
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	boardX := float32(BoardMargin)
	boardY := float32(BoardMargin)
	boardW := float32(g.boardWidth * CellSize)
	boardH := float32(g.boardHeight * CellSize)

	vector.DrawFilledRect(screen, boardX-2, boardY-2, boardW+4, boardH+4, borderColor, false)
	vector.DrawFilledRect(screen, boardX, boardY, boardW, boardH, boardColor, false)

	for y, row := range g.snapshot.Grid {
		for x, cell := range row {
			if cell == gametypes.CellEmpty {
				continue
			}
			g.drawCell(screen, x, y, shapeColors[cell.Shape()])
		}
	}

	if g.snapshot.Active != nil {
		clr := shapeColors[g.snapshot.Active.Shape]
		for _, cell := range g.snapshot.Active.Cells() {
			if cell.DY < 0 {
				continue
			}
			g.drawCell(screen, cell.DX, cell.DY, clr)
		}
	}
}

func (g *Game) drawCell(screen *ebiten.Image, x, y int, clr color.RGBA) {
	px := float32(BoardMargin + x*CellSize)
	py := float32(BoardMargin + y*CellSize)
	vector.DrawFilledRect(screen, px+1, py+1, CellSize-2, CellSize-2, clr, false)
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	panelX := BoardMargin + g.boardWidth*CellSize + BoardMargin

	lines := []string{
		fmt.Sprintf("Score: %d", g.snapshot.Score),
		fmt.Sprintf("Level: %d", g.snapshot.Level),
		fmt.Sprintf("Lines: %d", g.snapshot.Lines),
	}
	for i, line := range lines {
		g.drawText(screen, line, fonts.MPlusSmallFont, panelX, BoardMargin+20+i*28)
	}

	g.drawText(screen, "Next:", fonts.MPlusSmallFont, panelX, BoardMargin+140)
	clr := shapeColors[g.snapshot.Next]
	for _, cell := range pieces.Cells(g.snapshot.Next, 0) {
		px := float32(panelX + cell.DX*CellSize/2)
		py := float32(BoardMargin + 160 + cell.DY*CellSize/2)
		vector.DrawFilledRect(screen, px+1, py+1, CellSize/2-2, CellSize/2-2, clr, false)
	}
}

func (g *Game) drawText(screen *ebiten.Image, t string, f font.Face, x, y int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(textColor)
	text.DrawWithOptions(screen, t, f, op)
}

func (g *Game) drawOverlay(screen *ebiten.Image, t string) {
	f := fonts.TTFLargeFont
	bounds, _ := font.BoundString(f, t)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx())/2-float64(bounds.Max.X>>6)/2, float64(screen.Bounds().Dy())/2-float64(bounds.Max.Y>>6)/2)
	op.ColorScale.ScaleWithColor(color.White)
	text.DrawWithOptions(screen, t, f, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	width := BoardMargin + g.boardWidth*CellSize + BoardMargin + PanelWidth
	height := BoardMargin + g.boardHeight*CellSize + BoardMargin
	return width, height
}
