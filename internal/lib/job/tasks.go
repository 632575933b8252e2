package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/workout-api/internal/model"
)

const (
	// TaskAthleteRegistered is published after an athlete is created.
	TaskAthleteRegistered = "athlete:registered"
)

// AthleteRegisteredPayload is the JSON payload of TaskAthleteRegistered.
type AthleteRegisteredPayload struct {
	AthleteID      string    `json:"athlete_id"`
	Nome           string    `json:"nome"`
	CPF            string    `json:"cpf"`
	Category       string    `json:"categoria"`
	TrainingCenter string    `json:"centro_treinamento"`
	RegisteredAt   time.Time `json:"registered_at"`
}

// NewAthleteRegisteredTask builds the task for a committed athlete.
//
// The athlete id doubles as the task id, so a retried publish never
// enqueues twice.
func NewAthleteRegisteredTask(athlete *model.Athlete) (*asynq.Task, error) {
	payload, err := json.Marshal(AthleteRegisteredPayload{
		AthleteID:      athlete.ID.String(),
		Nome:           athlete.Nome,
		CPF:            athlete.CPF,
		Category:       athlete.Categoria.Nome,
		TrainingCenter: athlete.CentroTreinamento.Nome,
		RegisteredAt:   athlete.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskAthleteRegistered,
		payload,
		asynq.TaskID(TaskAthleteRegistered+":"+athlete.ID.String()),
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
