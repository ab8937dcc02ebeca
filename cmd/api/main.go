package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/fems12/WBL-Management-Sytem/internal/pkg/logger"
	"github.com/fems12/WBL-Management-Sytem/internal/server"
)

// @title WBL Management API
// @version 1.0
// @description Backend for tracking student work-based learning placements, assignments and assessment

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Optional .env file for local development; real deployments set
	// environment variables directly.
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
