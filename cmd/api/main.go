package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/recallab/tetromino/pkg/api"
	"github.com/recallab/tetromino/pkg/log"
	"github.com/recallab/tetromino/pkg/version"
)

func main() {
	port := flag.Int("port", 9090, "port to listen on")
	db := flag.String("db", "", "database URL (sqlite:// or postgresql://), defaults to RECALLAB_DATABASE_URL")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting api server version %s", version.Get())
	ctx := context.Background()

	repository, err := newRepository(ctx, *db)
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(ctx)

	apiServerOpts := api.NewAPIServerOptions{
		Port:       *port,
		Repository: repository,
	}
	tlsCertFile := os.Getenv("RECALLAB_API_TLS_CERT_FILE")
	tlsKeyFile := os.Getenv("RECALLAB_API_TLS_KEY_FILE")
	if tlsCertFile != "" && tlsKeyFile != "" {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: tlsCertFile,
			KeyFile:  tlsKeyFile,
		}
	}
	server := api.NewAPIServer(apiServerOpts)
	go server.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	if err := server.Stop(ctx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}
}
