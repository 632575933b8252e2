package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/workout-api/internal/database"
	"github.com/deppfellow/workout-api/internal/model"
)

const trainingCenterColumns = `pk_id, id, nome, endereco, proprietario`

type TrainingCenterRepository struct{}

func NewTrainingCenterRepository() *TrainingCenterRepository {
	return &TrainingCenterRepository{}
}

// Create inserts tc and fills in its keys.
func (r *TrainingCenterRepository) Create(ctx context.Context, q database.Querier, tc *model.TrainingCenter) error {
	const stmt = `
		INSERT INTO training_centers (id, nome, endereco, proprietario)
		VALUES ($1, $2, $3, $4)
		RETURNING pk_id`

	if tc.ID == uuid.Nil {
		tc.ID = uuid.New()
	}
	err := q.QueryRow(ctx, stmt, tc.ID, tc.Nome, tc.Endereco, tc.Proprietario).Scan(&tc.PkID)
	if err != nil {
		return fmt.Errorf("insert training center: %w", err)
	}
	return nil
}

func (r *TrainingCenterRepository) GetByName(ctx context.Context, q database.Querier, nome string) (*model.TrainingCenter, error) {
	return r.getOne(ctx, q, `SELECT `+trainingCenterColumns+` FROM training_centers WHERE nome = $1`, nome)
}

func (r *TrainingCenterRepository) GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*model.TrainingCenter, error) {
	return r.getOne(ctx, q, `SELECT `+trainingCenterColumns+` FROM training_centers WHERE id = $1`, id)
}

func (r *TrainingCenterRepository) getOne(ctx context.Context, q database.Querier, query string, arg any) (*model.TrainingCenter, error) {
	tc, err := scanTrainingCenter(q.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFound(TableTrainingCenters)
	}
	if err != nil {
		return nil, fmt.Errorf("select training center: %w", err)
	}
	return &tc, nil
}

// List returns one page of training centers ordered by name, and the total count.
func (r *TrainingCenterRepository) List(ctx context.Context, q database.Querier, params model.PageParams) ([]model.TrainingCenter, int64, error) {
	var total int64
	if err := q.QueryRow(ctx, `SELECT count(*) FROM training_centers`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count training centers: %w", err)
	}

	rows, err := q.Query(ctx,
		`SELECT `+trainingCenterColumns+` FROM training_centers ORDER BY nome ASC LIMIT $1 OFFSET $2`,
		params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list training centers: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.TrainingCenter, error) {
		return scanTrainingCenter(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan training centers: %w", err)
	}
	return items, total, nil
}

func scanTrainingCenter(row pgx.Row) (model.TrainingCenter, error) {
	var tc model.TrainingCenter
	err := row.Scan(&tc.PkID, &tc.ID, &tc.Nome, &tc.Endereco, &tc.Proprietario)
	return tc, err
}
