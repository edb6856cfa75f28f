package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffee-shop/internal/domain/drinks"
)

func water() drinks.Drink {
	return drinks.Drink{Title: "water", Recipe: drinks.Recipe{{Name: "water", Color: "blue", Parts: 1}}}
}

func TestDrinkRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewDrinkRepo()

	created, err := repo.Insert(ctx, water())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "water", got.Title)

	got.Title = "sparkling water"
	require.NoError(t, repo.Update(ctx, got))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "sparkling water", list[0].Title)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.True(t, errors.Is(err, drinks.ErrNotFound))
}

func TestDrinkRepo_UniqueTitle(t *testing.T) {
	ctx := context.Background()
	repo := NewDrinkRepo()

	_, err := repo.Insert(ctx, water())
	require.NoError(t, err)
	_, err = repo.Insert(ctx, water())
	assert.True(t, errors.Is(err, drinks.ErrTitleTaken))

	other, err := repo.Insert(ctx, drinks.Drink{Title: "latte", Recipe: drinks.Recipe{}})
	require.NoError(t, err)
	other.Title = "water"
	assert.True(t, errors.Is(repo.Update(ctx, other), drinks.ErrTitleTaken))
}

func TestDrinkRepo_MissingIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewDrinkRepo()

	assert.True(t, errors.Is(repo.Delete(ctx, 999), drinks.ErrNotFound))
	assert.True(t, errors.Is(repo.Update(ctx, drinks.Drink{ID: 999, Title: "x"}), drinks.ErrNotFound))
}

func TestDrinkRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewDrinkRepo()

	created, err := repo.Insert(ctx, water())
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	got.Recipe[0].Color = "red"

	again, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "blue", again.Recipe[0].Color)
}

func TestDrinkRepo_EmptyRecipeStaysEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewDrinkRepo()

	created, err := repo.Insert(ctx, drinks.Drink{Title: "air", Recipe: drinks.Recipe{}})
	require.NoError(t, err)
	assert.NotNil(t, created.Recipe)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Recipe)
	assert.Empty(t, got.Recipe)
}

func TestDrinkRepo_ConcurrentInsert(t *testing.T) {
	ctx := context.Background()
	repo := NewDrinkRepo()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = repo.Insert(ctx, drinks.Drink{Title: string(rune('a' + i)), Recipe: drinks.Recipe{}})
		}(i)
	}
	wg.Wait()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20)
	for i, d := range list {
		assert.Equal(t, int64(i+1), d.ID)
	}
}
