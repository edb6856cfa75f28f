package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"coffee-shop/internal/domain/drinks"
)

// código SQLSTATE de unique_violation
const uniqueViolation = "23505"

type DrinksRepo struct {
	db *sql.DB
}

func NewDrinksRepo(db *sql.DB) *DrinksRepo {
	return &DrinksRepo{db: db}
}

func (r *DrinksRepo) List(ctx context.Context) ([]drinks.Drink, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, recipe
		FROM drinks
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]drinks.Drink, 0)
	for rows.Next() {
		d, err := scanDrink(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DrinksRepo) GetByID(ctx context.Context, id int64) (drinks.Drink, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, recipe
		FROM drinks
		WHERE id = $1
	`, id)

	d, err := scanDrink(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return drinks.Drink{}, drinks.ErrNotFound
		}
		return drinks.Drink{}, err
	}
	return d, nil
}

func (r *DrinksRepo) Insert(ctx context.Context, d drinks.Drink) (drinks.Drink, error) {
	recipe, err := encodeRecipe(d.Recipe)
	if err != nil {
		return drinks.Drink{}, err
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO drinks (title, recipe)
		VALUES ($1, $2)
		RETURNING id
	`, d.Title, recipe).Scan(&d.ID)
	if err != nil {
		return drinks.Drink{}, mapErr(err)
	}
	return d, nil
}

func (r *DrinksRepo) Update(ctx context.Context, d drinks.Drink) error {
	recipe, err := encodeRecipe(d.Recipe)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE drinks
		SET title = $2, recipe = $3
		WHERE id = $1
	`, d.ID, d.Title, recipe)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return drinks.ErrNotFound
	}
	return nil
}

func (r *DrinksRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drinks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return drinks.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDrink(s scanner) (drinks.Drink, error) {
	var (
		d   drinks.Drink
		raw []byte
	)
	if err := s.Scan(&d.ID, &d.Title, &raw); err != nil {
		return drinks.Drink{}, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &d.Recipe); err != nil {
			return drinks.Drink{}, fmt.Errorf("decode recipe of drink %d: %w", d.ID, err)
		}
	}
	return d, nil
}

func encodeRecipe(r drinks.Recipe) (string, error) {
	if r == nil {
		r = drinks.Recipe{}
	}
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode recipe: %w", err)
	}
	return string(b), nil
}

func mapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", drinks.ErrTitleTaken, pgErr.ConstraintName)
	}
	return err
}

var _ drinks.Repository = (*DrinksRepo)(nil)
