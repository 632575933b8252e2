package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/workout-api/internal/database"
	"github.com/deppfellow/workout-api/internal/model"
)

const athleteSelect = `
	SELECT a.pk_id, a.id, a.nome, a.cpf, a.idade, a.peso, a.altura, a.sexo,
	       a.created_at, a.category_id, a.training_center_id, c.nome, tc.nome
	FROM athletes a
	JOIN categories c ON c.pk_id = a.category_id
	JOIN training_centers tc ON tc.pk_id = a.training_center_id`

type AthleteRepository struct{}

func NewAthleteRepository() *AthleteRepository {
	return &AthleteRepository{}
}

// Create inserts a. The caller sets the public id, the creation time and
// both reference keys.
func (r *AthleteRepository) Create(ctx context.Context, q database.Querier, a *model.Athlete) error {
	const stmt = `
		INSERT INTO athletes (id, nome, cpf, idade, peso, altura, sexo, created_at, category_id, training_center_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING pk_id`

	err := q.QueryRow(ctx, stmt,
		a.ID, a.Nome, a.CPF, a.Idade, a.Peso, a.Altura, a.Sexo,
		a.CreatedAt, a.CategoryID, a.TrainingCenterID,
	).Scan(&a.PkID)
	if err != nil {
		return fmt.Errorf("insert athlete: %w", err)
	}
	return nil
}

func (r *AthleteRepository) GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*model.Athlete, error) {
	return r.getOne(ctx, q, athleteSelect+` WHERE a.id = $1`, id)
}

// GetByIDForUpdate reads the athlete and locks its row until the end of
// the transaction q belongs to.
func (r *AthleteRepository) GetByIDForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*model.Athlete, error) {
	return r.getOne(ctx, q, athleteSelect+` WHERE a.id = $1 FOR UPDATE OF a`, id)
}

func (r *AthleteRepository) getOne(ctx context.Context, q database.Querier, query string, id uuid.UUID) (*model.Athlete, error) {
	a, err := scanAthlete(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFound(TableAthletes)
	}
	if err != nil {
		return nil, fmt.Errorf("select athlete: %w", err)
	}
	return &a, nil
}

// List returns one page of athletes matching filter, ordered by creation
// time then id, and the number of athletes matching filter.
func (r *AthleteRepository) List(ctx context.Context, q database.Querier, filter model.AthleteFilter, params model.PageParams) ([]model.Athlete, int64, error) {
	where, args := athleteWhere(filter)

	var total int64
	if err := q.QueryRow(ctx, `SELECT count(*) FROM athletes a`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count athletes: %w", err)
	}

	limitArg := len(args) + 1
	query := athleteSelect + where +
		` ORDER BY a.created_at ASC, a.id ASC` +
		` LIMIT $` + strconv.Itoa(limitArg) + ` OFFSET $` + strconv.Itoa(limitArg+1)

	rows, err := q.Query(ctx, query, append(args, params.Limit, params.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list athletes: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Athlete, error) {
		return scanAthlete(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan athletes: %w", err)
	}
	return items, total, nil
}

// Update writes the mutable fields of a.
func (r *AthleteRepository) Update(ctx context.Context, q database.Querier, a *model.Athlete) error {
	const stmt = `
		UPDATE athletes
		SET nome = $2, idade = $3, peso = $4, altura = $5, sexo = $6
		WHERE id = $1`

	tag, err := q.Exec(ctx, stmt, a.ID, a.Nome, a.Idade, a.Peso, a.Altura, a.Sexo)
	if err != nil {
		return fmt.Errorf("update athlete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return NotFound(TableAthletes)
	}
	return nil
}

// Delete removes the athlete permanently.
func (r *AthleteRepository) Delete(ctx context.Context, q database.Querier, id uuid.UUID) error {
	tag, err := q.Exec(ctx, `DELETE FROM athletes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete athlete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return NotFound(TableAthletes)
	}
	return nil
}

// athleteWhere builds the conjunction of the equality filters.
func athleteWhere(filter model.AthleteFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Nome != "" {
		args = append(args, filter.Nome)
		conds = append(conds, "a.nome = $"+strconv.Itoa(len(args)))
	}
	if filter.CPF != "" {
		args = append(args, filter.CPF)
		conds = append(conds, "a.cpf = $"+strconv.Itoa(len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanAthlete(row pgx.Row) (model.Athlete, error) {
	var a model.Athlete
	err := row.Scan(
		&a.PkID, &a.ID, &a.Nome, &a.CPF, &a.Idade, &a.Peso, &a.Altura, &a.Sexo,
		&a.CreatedAt, &a.CategoryID, &a.TrainingCenterID,
		&a.Categoria.Nome, &a.CentroTreinamento.Nome,
	)
	a.CreatedAt = a.CreatedAt.UTC()
	return a, err
}
