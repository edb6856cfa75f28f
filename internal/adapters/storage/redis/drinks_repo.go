// Package redis guarda bebidas en Redis:
//
//	{prefix}seq          INCR para ids
//	{prefix}drink:{id}   JSON de la bebida
//	{prefix}ids          ZSET id->id (orden de listado)
//	{prefix}titles       HASH title->id (unicidad)
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"coffee-shop/internal/domain/drinks"
)

const DefaultKeyPrefix = "coffee:"

type Config struct {
	Client    *redis.Client
	KeyPrefix string
}

type DrinksRepo struct {
	client *redis.Client
	prefix string
}

type storedDrink struct {
	ID     int64               `json:"id"`
	Title  string              `json:"title"`
	Recipe []drinks.Ingredient `json:"recipe"`
}

// Dial crea el cliente y verifica conectividad.
func Dial(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func New(cfg Config) (*DrinksRepo, error) {
	if cfg.Client == nil {
		return nil, errors.New("redis client is required")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	return &DrinksRepo{client: cfg.Client, prefix: cfg.KeyPrefix}, nil
}

func (r *DrinksRepo) seqKey() string    { return r.prefix + "seq" }
func (r *DrinksRepo) idsKey() string    { return r.prefix + "ids" }
func (r *DrinksRepo) titlesKey() string { return r.prefix + "titles" }
func (r *DrinksRepo) drinkKey(id int64) string {
	return r.prefix + "drink:" + strconv.FormatInt(id, 10)
}

func (r *DrinksRepo) List(ctx context.Context) ([]drinks.Drink, error) {
	ids, err := r.client.ZRange(ctx, r.idsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list ids: %w", err)
	}
	out := make([]drinks.Drink, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, r.prefix+"drink:"+id)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget drinks: %w", err)
	}

	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			// borrado entre ZRANGE y MGET
			continue
		}
		d, err := decode([]byte(s))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *DrinksRepo) GetByID(ctx context.Context, id int64) (drinks.Drink, error) {
	raw, err := r.client.Get(ctx, r.drinkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return drinks.Drink{}, drinks.ErrNotFound
		}
		return drinks.Drink{}, fmt.Errorf("redis get drink %d: %w", id, err)
	}
	return decode(raw)
}

func (r *DrinksRepo) Insert(ctx context.Context, d drinks.Drink) (drinks.Drink, error) {
	id, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return drinks.Drink{}, fmt.Errorf("redis next id: %w", err)
	}
	d.ID = id

	claimed, err := r.client.HSetNX(ctx, r.titlesKey(), d.Title, id).Result()
	if err != nil {
		return drinks.Drink{}, fmt.Errorf("redis claim title: %w", err)
	}
	if !claimed {
		return drinks.Drink{}, drinks.ErrTitleTaken
	}

	payload, err := encode(d)
	if err != nil {
		return drinks.Drink{}, err
	}
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.drinkKey(id), payload, 0)
		p.ZAdd(ctx, r.idsKey(), redis.Z{Score: float64(id), Member: strconv.FormatInt(id, 10)})
		return nil
	})
	if err != nil {
		// liberar el title reservado
		_ = r.client.HDel(ctx, r.titlesKey(), d.Title).Err()
		return drinks.Drink{}, fmt.Errorf("redis insert drink: %w", err)
	}
	return d, nil
}

func (r *DrinksRepo) Update(ctx context.Context, d drinks.Drink) error {
	key := r.drinkKey(d.ID)
	idStr := strconv.FormatInt(d.ID, 10)

	payload, err := encode(d)
	if err != nil {
		return err
	}

	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return drinks.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("redis get drink %d: %w", d.ID, err)
		}
		old, err := decode(raw)
		if err != nil {
			return err
		}

		renamed := old.Title != d.Title
		if renamed {
			owner, err := tx.HGet(ctx, r.titlesKey(), d.Title).Result()
			switch {
			case err == nil && owner != idStr:
				return drinks.ErrTitleTaken
			case err != nil && !errors.Is(err, redis.Nil):
				return fmt.Errorf("redis check title: %w", err)
			}
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, payload, 0)
			if renamed {
				p.HDel(ctx, r.titlesKey(), old.Title)
				p.HSet(ctx, r.titlesKey(), d.Title, idStr)
			}
			return nil
		})
		return err
	}, key, r.titlesKey())
}

func (r *DrinksRepo) Delete(ctx context.Context, id int64) error {
	key := r.drinkKey(id)

	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return drinks.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("redis get drink %d: %w", id, err)
		}
		old, err := decode(raw)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Del(ctx, key)
			p.ZRem(ctx, r.idsKey(), strconv.FormatInt(id, 10))
			p.HDel(ctx, r.titlesKey(), old.Title)
			return nil
		})
		return err
	}, key)
}

func encode(d drinks.Drink) ([]byte, error) {
	recipe := []drinks.Ingredient(d.Recipe)
	if recipe == nil {
		recipe = []drinks.Ingredient{}
	}
	b, err := json.Marshal(storedDrink{ID: d.ID, Title: d.Title, Recipe: recipe})
	if err != nil {
		return nil, fmt.Errorf("encode drink: %w", err)
	}
	return b, nil
}

func decode(raw []byte) (drinks.Drink, error) {
	var s storedDrink
	if err := json.Unmarshal(raw, &s); err != nil {
		return drinks.Drink{}, fmt.Errorf("decode drink: %w", err)
	}
	return drinks.Drink{ID: s.ID, Title: s.Title, Recipe: drinks.Recipe(s.Recipe)}, nil
}

var _ drinks.Repository = (*DrinksRepo)(nil)
