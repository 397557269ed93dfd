package products

import (
	"context"
	"errors"
	"strings"
	"time"

	"medistock/internal/platform/textsort"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("product not found")
	ErrDuplicateIdentifier = errors.New("unique identifier already in use")
)

type Service struct {
	repo  Repository
	stock StockPropagator
	now   func() time.Time
}

func NewService(repo Repository, stock StockPropagator) *Service {
	return &Service{
		repo:  repo,
		stock: stock,
		now:   time.Now,
	}
}

type Input struct {
	Name             string
	Description      string
	UniqueIdentifier string
}

func (in Input) normalize() (Input, error) {
	out := Input{
		Name:             strings.TrimSpace(in.Name),
		Description:      strings.TrimSpace(in.Description),
		UniqueIdentifier: strings.TrimSpace(in.UniqueIdentifier),
	}
	if out.Name == "" {
		return Input{}, ErrInvalidInput
	}
	return out, nil
}

// Create da de alta el producto y lo agrega con cantidad 0 a todos los ciclos.
func (s *Service) Create(ctx context.Context, in Input) (Product, error) {
	in, err := in.normalize()
	if err != nil {
		return Product{}, err
	}
	if err := s.ensureIdentifierFree(ctx, "", in.UniqueIdentifier); err != nil {
		return Product{}, err
	}

	now := s.now()
	p := Product{
		ID:               uuid.NewString(),
		Name:             in.Name,
		Description:      in.Description,
		UniqueIdentifier: in.UniqueIdentifier,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.stock.AddProduct(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Update solo toca los datos del producto; el stock de los ciclos no cambia.
func (s *Service) Update(ctx context.Context, id string, in Input) (Product, error) {
	in, err := in.normalize()
	if err != nil {
		return Product{}, err
	}

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if err := s.ensureIdentifierFree(ctx, p.ID, in.UniqueIdentifier); err != nil {
		return Product{}, err
	}

	p.Name = in.Name
	p.Description = in.Description
	p.UniqueIdentifier = in.UniqueIdentifier
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Delete quita el producto del catálogo y de todos los ciclos.
// Las visitas históricas conservan la referencia.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.stock.RemoveProduct(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Product{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve el catálogo ordenado por nombre.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	textsort.ByName(items, func(p Product) string { return p.Name })
	return items, nil
}

func (s *Service) ensureIdentifierFree(ctx context.Context, selfID, identifier string) error {
	if identifier == "" {
		return nil
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range items {
		if p.ID != selfID && strings.EqualFold(p.UniqueIdentifier, identifier) {
			return ErrDuplicateIdentifier
		}
	}
	return nil
}
