package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/recallab/tetromino/pkg/export"
	"github.com/recallab/tetromino/pkg/log"
	"github.com/recallab/tetromino/pkg/repositories"
	"github.com/recallab/tetromino/pkg/repositories/models"
	"github.com/recallab/tetromino/pkg/version"
)

func main() {
	format := flag.String("format", "csv", "export format: csv, json or summary")
	compress := flag.Bool("compress", false, "compress the output with zstd")
	output := flag.String("output", "", "output file, defaults to stdout")
	sessionID := flag.String("session", "", "export a single session by ID")
	db := flag.String("db", "", "database URL (sqlite:// or postgresql://), defaults to RECALLAB_DATABASE_URL")
	logLevel := flag.String("log-level", "error", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stderr, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Debug("Starting results version %s", version.Get())

	parsedFormat, err := export.ParseFormat(*format)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse format: %v", err))
	}

	ctx := context.Background()
	repository, err := newRepository(ctx, *db)
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(ctx)

	var sessionList []*models.Session
	if *sessionID != "" {
		session, err := repository.GetSession(ctx, *sessionID)
		if err != nil {
			if repositories.IsNotFound(err) {
				panic(fmt.Sprintf("Session %s not found", *sessionID))
			}
			panic(fmt.Sprintf("Failed to get session: %v", err))
		}
		sessionList = append(sessionList, session)
	} else {
		sessionList, err = repository.ListSessions(ctx)
		if err != nil {
			panic(fmt.Sprintf("Failed to list sessions: %v", err))
		}
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			panic(fmt.Sprintf("Failed to create output file: %v", err))
		}
		defer f.Close()
		out = f
	}

	exporter := export.NewExporter(export.NewExporterOptions{
		Format:   parsedFormat,
		Compress: *compress,
	})
	if err := exporter.Export(out, sessionList); err != nil {
		panic(fmt.Sprintf("Failed to export sessions: %v", err))
	}
}
