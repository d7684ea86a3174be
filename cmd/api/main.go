package main

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/coder/quartz"
	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/internal/config"
	"github.com/iamasit07/connect4/internal/service/cleanup"
	"github.com/iamasit07/connect4/internal/service/game"
	transportHttp "github.com/iamasit07/connect4/internal/transport/http"
	"github.com/iamasit07/connect4/internal/transport/websocket"
	"github.com/iamasit07/connect4/pkg/auth"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type CLI struct {
	EnvFile  string `help:"Path to a .env file loaded before reading the environment" default:".env" type:"path"`
	Port     string `help:"Listen port (overrides PORT)"`
	LogLevel string `help:"Log level (overrides LOG_LEVEL)"`
	Pretty   bool   `help:"Human readable console logs"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("connect4-api"),
		kong.Description("Connect Four match server.\n\n"+config.Description()),
	)

	envErr := godotenv.Load(cli.EnvFile)

	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}
	if cli.Port != "" {
		cfg.Port = cli.Port
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}

	logger := newLogger(os.Stderr, cfg.LogLevel, cli.Pretty)
	if envErr != nil {
		logger.Debug().Str("path", cli.EnvFile).Msg("no .env file found")
	}
	if cfg.UsesDefaultJWTSecret() {
		logger.Warn().Msg("JWT_SECRET is not set, seat tokens are signed with the public default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		logger.Fatal().Err(err).Str("port", cfg.Port).Msg("failed to listen")
	}

	if err := run(ctx, cfg, logger, ln); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
	logger.Info().Msg("server exited gracefully")
}

func newLogger(out io.Writer, level string, pretty bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: out}).Level(lvl).With().Timestamp().Logger()
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// run serves on ln and runs the cleanup worker until ctx is done, then shuts
// the server down gracefully
func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger, ln net.Listener) error {
	clock := quartz.NewReal()
	hub := websocket.NewHub(logger)
	sessionManager := game.NewSessionManager(clock, logger, hub)
	seats := auth.NewSeatIssuer(cfg.JWTSecret, cfg.SeatTokenTTL)

	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.CleanupInterval, cfg.FinishedSessionTTL, cfg.StaleSessionTTL, clock, logger)

	gin.SetMode(gin.ReleaseMode)
	router := transportHttp.NewRouter(transportHttp.Deps{
		Sessions:       sessionManager,
		Seats:          seats,
		Hub:            hub,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return cleanupWorker.Run(ctx)
	})

	g.Go(func() error {
		logger.Info().Str("addr", ln.Addr().String()).Strs("origins", cfg.AllowedOrigins).Msg("server starting")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("server is shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
