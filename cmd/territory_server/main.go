package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/config"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/monitoring"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/server"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", -1, "The WebSocket port (-1 to use config default)")
	host := flag.String("host", "", "The WebSocket host (empty to use config default)")
	adminPort := flag.Int("admin-port", -1, "The gRPC admin port (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	dumpBoard := flag.Bool("dump-board", false, "Print the board after every resolved action")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	// Flags override the loaded config
	if *port != -1 {
		config.Set("server.listen.port", *port)
	}
	if *host != "" {
		config.Set("server.listen.host", *host)
	}
	if *adminPort != -1 {
		config.Set("admin.port", *adminPort)
	}
	if *logLevel != "" {
		config.Set("server.log_level", *logLevel)
	}
	if *dumpBoard {
		config.Set("development.dump_board", true)
	}

	cfg := config.Get()
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	setupLogging(cfg.Server.LogLevel, cfg.Server.LogFormat)

	if path := config.ConfigFilePath(); path != "" {
		log.Info().Str("path", path).Msg("Loaded config file")
		config.WatchConfig(func(c *config.Config) {
			zerolog.SetGlobalLevel(parseLevel(c.Server.LogLevel))
			log.Info().Str("log_level", c.Server.LogLevel).Msg("Config reloaded")
		})
	}

	log.Info().
		Str("address", cfg.Server.Listen.Address()).
		Str("admin_address", cfg.Admin.Address()).
		Int("protocol_id", cfg.Server.ProtocolID).
		Dur("tick_interval", cfg.Server.TickInterval()).
		Int("max_mountains", cfg.Game.Terrain.MaxMountains).
		Int("max_water", cfg.Game.Terrain.MaxWater).
		Msg("Starting territory server")

	match, err := server.NewMatch(server.MatchConfig{
		MaxMountains: cfg.Game.Terrain.MaxMountains,
		MaxWater:     cfg.Game.Terrain.MaxWater,
		DevMode:      cfg.Development.DumpBoard,
	}, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create match")
	}

	loopCfg := server.LoopConfig{
		TickInterval: cfg.Server.TickInterval(),
		QueueSize:    cfg.Server.InboundQueueSize,
	}
	if cfg.Development.DumpBoard {
		loopCfg.BoardOut = os.Stdout
	}
	loop := server.NewLoop(match, server.NewClientManager(log.Logger), loopCfg, log.Logger)

	monitor := monitoring.NewGoroutineMonitor(log.Logger, 30*time.Second, 500)
	monitor.Start()
	defer monitor.Stop()

	ws := server.NewWSHandler(loop, server.WSConfig{
		ProtocolID:    cfg.Server.ProtocolID,
		SendBuffer:    cfg.Server.ClientSendBuffer,
		RatePerSecond: cfg.Server.RateLimit.PerSecond,
		RateBurst:     cfg.Server.RateLimit.Burst,
	}, monitor, log.Logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.Listen.Address(),
		Handler:           server.NewRouter(ws, loop, log.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer, healthServer := server.NewAdminServer(loop, server.AdminOptions{
		EnableReflection: cfg.Admin.EnableReflection,
	}, log.Logger)

	adminLis, err := net.Listen("tcp", cfg.Admin.Address())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to listen for admin")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		monitor.Add("loop", 1)
		defer monitor.Add("loop", -1)
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Match loop exited")
		}
	}()

	go func() {
		log.Info().Str("address", adminLis.Addr().String()).Msg("gRPC admin server listening")
		if err := grpcServer.Serve(adminLis); err != nil {
			log.Fatal().Err(err).Msg("Failed to serve admin")
		}
	}()

	go func() {
		log.Info().Str("address", httpServer.Addr).Msg("WebSocket server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to serve WebSocket")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(server.AdminServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	// Give ongoing requests time to complete
	time.Sleep(time.Duration(cfg.Admin.GracefulShutdownDelay) * time.Second)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	// Hijacked WebSocket connections are not tracked by Shutdown, stopping the
	// loop closes them
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("WebSocket server shutdown")
	}
	cancel()
	<-loopDone

	log.Info().Msg("Gracefully stopping gRPC server")
	grpcServer.GracefulStop()

	log.Info().Msg("Server shutdown complete")
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func setupLogging(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})
}
