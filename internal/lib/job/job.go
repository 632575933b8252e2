// Package job runs background work on Asynq, a Redis-backed task queue.
//
// The API enqueues tasks through JobService.Client; the worker server
// started by JobService.Start consumes them.
package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/workout-api/internal/config"
	"github.com/deppfellow/workout-api/internal/model"
)

// JobService holds the Asynq client (enqueue) and server (workers).
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger

	notifier  Notifier
	recipient string
}

// NewJobService configures both ends of the queue against cfg.Redis.
// notifier may be nil.
func NewJobService(logger *zerolog.Logger, cfg *config.Config, notifier Notifier) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   &asynqLogger{logger: logger},
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client:    client,
		server:    server,
		logger:    logger,
		notifier:  notifier,
		recipient: cfg.Integration.NotificationEmail,
	}
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskAthleteRegistered, j.handleAthleteRegisteredTask)
	return mux
}

// Start starts the workers in the background.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.Mux())
}

// Stop waits for running tasks and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// PublishAthleteRegistered enqueues TaskAthleteRegistered for athlete.
func (j *JobService) PublishAthleteRegistered(ctx context.Context, athlete *model.Athlete) error {
	task, err := NewAthleteRegisteredTask(athlete)
	if err != nil {
		return fmt.Errorf("building athlete registered task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueueing athlete registered task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("enqueued athlete registered task")
	return nil
}

// asynqLogger routes asynq's internal logs into zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...any) { l.logger.Fatal().Msg(fmt.Sprint(args...)) }
