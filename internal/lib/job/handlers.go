package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/workout-api/internal/lib/email"
)

// Notifier delivers the staff notification for a new athlete.
// *email.Client satisfies it.
type Notifier interface {
	SendAthleteRegisteredEmail(ctx context.Context, to string, data email.AthleteRegisteredData) error
}

// handleAthleteRegisteredTask logs the registration and, when email is
// configured, notifies staff. A returned error makes asynq retry.
func (j *JobService) handleAthleteRegisteredTask(ctx context.Context, t *asynq.Task) error {
	var p AthleteRegisteredPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal athlete registered payload: %w: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskAthleteRegistered).
		Str("athlete_id", p.AthleteID).
		Logger()

	logger.Info().
		Str("categoria", p.Category).
		Str("centro_treinamento", p.TrainingCenter).
		Msg("processing athlete registered task")

	if j.notifier == nil || j.recipient == "" {
		logger.Debug().Msg("athlete notification email disabled")
		return nil
	}

	err := j.notifier.SendAthleteRegisteredEmail(ctx, j.recipient, email.AthleteRegisteredData{
		AthleteName:    p.Nome,
		CPF:            p.CPF,
		Category:       p.Category,
		TrainingCenter: p.TrainingCenter,
		RegisteredAt:   p.RegisteredAt.Format(time.RFC3339),
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to send athlete registered email")
		return err
	}

	logger.Info().Msg("sent athlete registered email")
	return nil
}
