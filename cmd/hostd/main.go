package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/visorhq/visor/host/internal/infrastructure/config"
	"github.com/visorhq/visor/host/internal/infrastructure/server"
)

func main() {
	port := flag.String("port", "", "Boundary endpoint port (overrides VISOR_PORT)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *port != "" {
		cfg.Server.Port = *port
	}

	srv, err := server.New(cfg, os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
