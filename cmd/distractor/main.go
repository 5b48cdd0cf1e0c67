package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	clientgame "github.com/recallab/tetromino/client/game"
	"github.com/recallab/tetromino/client/input"
	"github.com/recallab/tetromino/pkg/export"
	"github.com/recallab/tetromino/pkg/game"
	"github.com/recallab/tetromino/pkg/game/constants"
	"github.com/recallab/tetromino/pkg/log"
	"github.com/recallab/tetromino/pkg/queue"
	"github.com/recallab/tetromino/pkg/repositories/models"
	"github.com/recallab/tetromino/pkg/sessions"
	"github.com/recallab/tetromino/pkg/state"
	"github.com/recallab/tetromino/pkg/version"
	"github.com/recallab/tetromino/pkg/workers"
)

func main() {
	duration := flag.Duration("duration", 2*time.Minute, "wall-clock length of the distractor phase")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for the piece sequence")
	boardWidth := flag.Int("width", constants.BoardWidth, "board width in cells")
	boardHeight := flag.Int("height", constants.BoardHeight, "board height in cells")
	db := flag.String("db", "", "database URL (sqlite:// or postgresql://), defaults to RECALLAB_DATABASE_URL")
	summaryPath := flag.String("summary", "", "optional path to write a lines/losses summary file")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting distractor version %s", version.Get())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repository, err := newRepository(ctx, *db)
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(ctx)

	cfg := game.DefaultConfig(*seed)
	cfg.BoardWidth = *boardWidth
	cfg.BoardHeight = *boardHeight

	session, err := sessions.NewSession(sessions.NewSessionOptions{
		Seed:     *seed,
		Duration: *duration,
		Config:   cfg,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create session: %v", err))
	}
	log.Info("Session %s: duration %s, seed %d", session.ID(), *duration, *seed)

	resultManager := state.NewInMemoryResultManager()
	saveSessionChan := make(chan workers.SaveSessionRequest, 1)

	saveWorker := workers.NewSaveSessionWorker(workers.NewSaveSessionWorkerOptions{
		Repository:      repository,
		SaveSessionChan: saveSessionChan,
		ResultManager:   resultManager,
		Interval:        10 * time.Second,
	})
	go saveWorker.Start(ctx)

	eventQueue := queue.NewInMemoryQueue(64)
	inputHandler := input.NewHandler(input.NewHandlerOptions{
		EventQueue: eventQueue,
	})

	g, err := clientgame.NewGame(clientgame.NewGameOptions{
		Session:       session,
		InputHandler:  inputHandler,
		EventQueue:    eventQueue,
		ResultManager: resultManager,
		OnComplete: func(result *sessions.Result) {
			saveSessionChan <- workers.SaveSessionRequest{
				Timestamp: time.Now().UnixMilli(),
				Result:    result,
			}
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game: %v", err))
	}

	width := clientgame.BoardMargin*2 + *boardWidth*clientgame.CellSize + clientgame.PanelWidth
	height := clientgame.BoardMargin*2 + *boardHeight*clientgame.CellSize
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Distractor")

	if err := ebiten.RunGame(g); err != nil {
		log.Error("Game exited with error: %v", err)
	}

	// The window may have been closed mid-session. Stop is idempotent,
	// and the repository save is an upsert.
	result := session.Stop()
	if err := repository.SaveSession(ctx, result.Model()); err != nil {
		log.Error("Failed to save session: %v", err)
	}
	log.Info("Session %s: %d lines, %d losses, score %d", result.ID, result.Lines, result.Losses, result.Score)

	if *summaryPath != "" {
		if err := writeSummary(*summaryPath, result); err != nil {
			log.Error("Failed to write summary: %v", err)
		}
	}
}

func writeSummary(path string, result *sessions.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %v", err)
	}
	defer f.Close()

	exporter := export.NewExporter(export.NewExporterOptions{Format: export.FormatSummary})
	return exporter.Export(f, []*models.Session{result.Model()})
}
