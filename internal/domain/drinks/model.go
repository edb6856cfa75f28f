package drinks

import (
	"bytes"
	"encoding/json"
)

// Permisos que exige cada ruta protegida.
const (
	PermGetDetail = "get:drinks-detail"
	PermPost      = "post:drinks"
	PermPatch     = "patch:drinks"
	PermDelete    = "delete:drinks"
)

// Ingredient es una entrada de la receta.
type Ingredient struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required"`
	Parts int    `json:"parts" validate:"gte=1"`
}

// Recipe acepta un objeto suelto o un array; siempre queda como slice.
type Recipe []Ingredient

func (r *Recipe) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var one Ingredient
		if err := json.Unmarshal(b, &one); err != nil {
			return err
		}
		*r = Recipe{one}
		return nil
	}

	var many []Ingredient
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*r = Recipe(many)
	return nil
}

// Drink es una bebida del menú. Title es único.
type Drink struct {
	ID     int64
	Title  string `validate:"required,max=80"`
	Recipe Recipe `validate:"required,dive"`
}

// ShortIngredient es la vista pública: sin nombre de ingrediente.
type ShortIngredient struct {
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

type ShortDrink struct {
	ID     int64             `json:"id"`
	Title  string            `json:"title"`
	Recipe []ShortIngredient `json:"recipe"`
}

type LongDrink struct {
	ID     int64        `json:"id"`
	Title  string       `json:"title"`
	Recipe []Ingredient `json:"recipe"`
}

func (d Drink) Short() ShortDrink {
	out := ShortDrink{ID: d.ID, Title: d.Title, Recipe: make([]ShortIngredient, 0, len(d.Recipe))}
	for _, in := range d.Recipe {
		out.Recipe = append(out.Recipe, ShortIngredient{Color: in.Color, Parts: in.Parts})
	}
	return out
}

func (d Drink) Long() LongDrink {
	out := LongDrink{ID: d.ID, Title: d.Title, Recipe: make([]Ingredient, 0, len(d.Recipe))}
	out.Recipe = append(out.Recipe, d.Recipe...)
	return out
}
