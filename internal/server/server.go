package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/hostelsphere/internal/bootstrap"
	"github.com/yigit/hostelsphere/internal/config"
	"github.com/yigit/hostelsphere/internal/pkg/helpers"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
	http   *http.Server

	stopHub context.CancelFunc
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer(configPath string) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := bootstrap.SetupStateRepository(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup storage: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(ctx, cfg, repo, lgr)
	if err != nil {
		// Close the store if wiring fails
		_ = repo.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return &Server{
		config: cfg,
		router: bootstrap.SetupRouter(cfg, deps, lgr),
		deps:   deps,
		logger: lgr,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	hubCtx, stopHub := context.WithCancel(context.Background())
	s.stopHub = stopHub
	go s.deps.Hub.Run(hubCtx)

	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  helpers.ParseDuration(s.config.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: helpers.ParseDuration(s.config.Server.WriteTimeout, 15*time.Second),
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for errors starting the server
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	// Channel to listen for OS signals
	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive either a server error or an OS signal
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = s.Shutdown(context.Background())
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var errs []error

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			errs = append(errs, err)
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	// Closes every live WebSocket connection
	if s.stopHub != nil {
		s.stopHub()
	}

	s.logger.Info().Msg("Closing hostel store...")
	if err := s.deps.Repo.Close(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to close hostel store")
		errs = append(errs, err)
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	return errors.Join(errs...)
}
