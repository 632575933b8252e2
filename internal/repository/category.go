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

type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// Create inserts c and fills in its keys.
func (r *CategoryRepository) Create(ctx context.Context, q database.Querier, c *model.Category) error {
	const stmt = `
		INSERT INTO categories (id, nome)
		VALUES ($1, $2)
		RETURNING pk_id`

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if err := q.QueryRow(ctx, stmt, c.ID, c.Nome).Scan(&c.PkID); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, q database.Querier, nome string) (*model.Category, error) {
	return r.getOne(ctx, q, `SELECT pk_id, id, nome FROM categories WHERE nome = $1`, nome)
}

func (r *CategoryRepository) GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*model.Category, error) {
	return r.getOne(ctx, q, `SELECT pk_id, id, nome FROM categories WHERE id = $1`, id)
}

func (r *CategoryRepository) getOne(ctx context.Context, q database.Querier, query string, arg any) (*model.Category, error) {
	var c model.Category
	err := q.QueryRow(ctx, query, arg).Scan(&c.PkID, &c.ID, &c.Nome)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFound(TableCategories)
	}
	if err != nil {
		return nil, fmt.Errorf("select category: %w", err)
	}
	return &c, nil
}

// List returns one page of categories ordered by name, and the total count.
func (r *CategoryRepository) List(ctx context.Context, q database.Querier, params model.PageParams) ([]model.Category, int64, error) {
	var total int64
	if err := q.QueryRow(ctx, `SELECT count(*) FROM categories`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	rows, err := q.Query(ctx,
		`SELECT pk_id, id, nome FROM categories ORDER BY nome ASC LIMIT $1 OFFSET $2`,
		params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Category, error) {
		var c model.Category
		err := row.Scan(&c.PkID, &c.ID, &c.Nome)
		return c, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan categories: %w", err)
	}
	return items, total, nil
}
