package main

import (
	"flag"
	"os"

	"github.com/yigit/hostelsphere/internal/pkg/logger" // Still needed for initial error logging
	"github.com/yigit/hostelsphere/internal/server"
)

// @title HostelSphere API
// @version 1.0
// @description API for running a student hostel: rooms, residents, gate passes, complaints, attendance and fees

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
