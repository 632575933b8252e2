// Package server defines the Server container that owns the shared
// dependencies of the API and the lifecycle of the HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/workout-api/internal/config"
	"github.com/deppfellow/workout-api/internal/database"
	"github.com/deppfellow/workout-api/internal/lib/email"
	"github.com/deppfellow/workout-api/internal/lib/health"
	"github.com/deppfellow/workout-api/internal/lib/job"
	loggerPkg "github.com/deppfellow/workout-api/internal/logger"
)

const redisPingTimeout = 5 * time.Second

// Server is the application container. It is not the HTTP server itself.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	DB *database.Database

	// Redis and Job are nil when no Redis address is configured.
	Redis *redis.Client
	Job   *job.JobService

	Health  *health.Checker
	monitor *health.Monitor

	httpServer *http.Server
}

// New connects to the database and, when configured, to Redis, and
// starts the background workers and the health monitor.
//
// A Redis outage at startup is logged, not fatal.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(ctx, cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}

	if cfg.Redis.Enabled() {
		s.Redis = redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Address,
		})
		if loggerService.GetApplication() != nil {
			s.Redis.AddHook(nrredis.NewHook(s.Redis.Options()))
		}

		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		if err := s.Redis.Ping(pingCtx).Err(); err != nil {
			logger.Error().Err(err).Msg("failed to connect to Redis, continuing")
		}
		cancel()

		var notifier job.Notifier
		if client := email.NewClient(cfg, logger); client != nil {
			notifier = client
		}

		s.Job = job.NewJobService(logger, cfg, notifier)
		if err := s.Job.Start(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to start job server: %w", err)
		}
	}

	s.Health = health.NewChecker(
		cfg.Primary.Env,
		cfg.Observability.HealthChecks.Timeout,
		logger,
		loggerService.GetApplication(),
		s.healthChecks()...,
	)

	if cfg.Observability.HealthChecks.Enabled {
		s.monitor = health.NewMonitor(s.Health, cfg.Observability.HealthChecks.Interval, logger)
		s.monitor.Start()
	}

	return s, nil
}

// healthChecks builds the configured probes. The database is required;
// Redis only degrades background jobs.
func (s *Server) healthChecks() []health.Check {
	var checks []health.Check
	for _, name := range s.Config.Observability.HealthChecks.Checks {
		switch name {
		case "database":
			checks = append(checks, health.Check{Name: name, Required: true, Pinger: s.DB})
		case "redis":
			if s.Redis == nil {
				continue
			}
			checks = append(checks, health.Check{
				Name: name,
				Pinger: health.PingerFunc(func(ctx context.Context) error {
					return s.Redis.Ping(ctx).Err()
				}),
			})
		}
	}
	return checks
}

// SetupHTTPServer installs handler on a new http.Server.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start serves HTTP until Shutdown. It never returns http.ErrServerClosed.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains the HTTP server, then stops workers and closes
// connections. Every step runs; their errors are joined.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.monitor != nil {
		s.monitor.Stop(ctx)
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if err := s.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
	}

	return errors.Join(errs...)
}
