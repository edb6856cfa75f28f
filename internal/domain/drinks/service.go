package drinks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type CreateInput struct {
	Title  string
	Recipe Recipe // nil = no vino
}

// UpdateInput: punteros para PATCH real, nil = no tocar.
type UpdateInput struct {
	Title  *string
	Recipe *Recipe
}

func (s *Service) List(ctx context.Context) ([]Drink, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drinks: %w", err)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Drink, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Drink, error) {
	d := Drink{
		Title:  strings.TrimSpace(in.Title),
		Recipe: in.Recipe,
	}
	if err := s.check(d); err != nil {
		return Drink{}, err
	}

	created, err := s.repo.Insert(ctx, d)
	if err != nil {
		return Drink{}, fmt.Errorf("insert drink: %w", err)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Drink, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Drink{}, err
	}

	if in.Title != nil {
		d.Title = strings.TrimSpace(*in.Title)
	}
	if in.Recipe != nil {
		d.Recipe = *in.Recipe
	}
	if err := s.check(d); err != nil {
		return Drink{}, err
	}

	if err := s.repo.Update(ctx, d); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Drink{}, err
		}
		return Drink{}, fmt.Errorf("update drink %d: %w", id, err)
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete drink %d: %w", id, err)
	}
	return nil
}

func (s *Service) check(d Drink) error {
	if err := s.validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed on %q", ErrInvalidInput, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
