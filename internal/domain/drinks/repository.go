package drinks

import (
	"context"
	"errors"
)

var (
	// ErrNotFound lo devuelven todos los adapters cuando el id no existe.
	ErrNotFound = errors.New("drink not found")

	// ErrTitleTaken: violación de unicidad de title (termina en 422).
	ErrTitleTaken = errors.New("drink title already exists")
)

// Repository es el DrinkStore. Insert asigna el ID.
type Repository interface {
	List(ctx context.Context) ([]Drink, error)
	GetByID(ctx context.Context, id int64) (Drink, error)
	Insert(ctx context.Context, d Drink) (Drink, error)
	Update(ctx context.Context, d Drink) error
	Delete(ctx context.Context, id int64) error
}
