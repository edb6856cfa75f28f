package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"coffee-shop/internal/domain/drinks"
)

type drinkRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]drinks.Drink
}

func NewDrinkRepo() drinks.Repository {
	return &drinkRepo{
		byID: make(map[int64]drinks.Drink),
	}
}

func (r *drinkRepo) List(ctx context.Context) ([]drinks.Drink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]drinks.Drink, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, clone(d))
	}

	// Orden por id asc, igual que los otros adapters
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *drinkRepo) GetByID(ctx context.Context, id int64) (drinks.Drink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return drinks.Drink{}, drinks.ErrNotFound
	}
	return clone(d), nil
}

func (r *drinkRepo) Insert(ctx context.Context, d drinks.Drink) (drinks.Drink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.titleTaken(d.Title, 0) {
		return drinks.Drink{}, drinks.ErrTitleTaken
	}
	r.nextID++
	d.ID = r.nextID
	r.byID[d.ID] = clone(d)
	return d, nil
}

func (r *drinkRepo) Update(ctx context.Context, d drinks.Drink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[d.ID]; !ok {
		return drinks.ErrNotFound
	}
	if r.titleTaken(d.Title, d.ID) {
		return drinks.ErrTitleTaken
	}
	r.byID[d.ID] = clone(d)
	return nil
}

func (r *drinkRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return drinks.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// titleTaken: requiere lock tomado.
func (r *drinkRepo) titleTaken(title string, except int64) bool {
	for id, d := range r.byID {
		if id != except && d.Title == title {
			return true
		}
	}
	return false
}

// clone evita compartir el backing array de la receta con el caller.
// Una receta vacía sigue siendo vacía (no nil).
func clone(d drinks.Drink) drinks.Drink {
	d.Recipe = slices.Clone(d.Recipe)
	return d
}
