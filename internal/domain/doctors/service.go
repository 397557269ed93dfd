package doctors

import (
	"context"
	"errors"
	"strings"
	"time"

	"medistock/internal/platform/textsort"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("doctor not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type Input struct {
	Name      string
	Specialty string
	Phone     string
	Email     string
	Interests string
}

func (in Input) normalize() (Input, error) {
	out := Input{
		Name:      strings.TrimSpace(in.Name),
		Specialty: strings.TrimSpace(in.Specialty),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Interests: strings.TrimSpace(in.Interests),
	}
	if out.Name == "" {
		return Input{}, ErrInvalidInput
	}
	if out.Email != "" && !strings.Contains(out.Email, "@") {
		return Input{}, ErrInvalidInput
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, in Input) (Doctor, error) {
	in, err := in.normalize()
	if err != nil {
		return Doctor{}, err
	}

	now := s.now()
	d := Doctor{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Specialty: in.Specialty,
		Phone:     in.Phone,
		Email:     in.Email,
		Interests: in.Interests,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Doctor{}, err
	}
	return d, nil
}

// Update reemplaza los campos editables (PUT semántico).
func (s *Service) Update(ctx context.Context, id string, in Input) (Doctor, error) {
	in, err := in.normalize()
	if err != nil {
		return Doctor{}, err
	}

	d, err := s.GetByID(ctx, id)
	if err != nil {
		return Doctor{}, err
	}

	d.Name = in.Name
	d.Specialty = in.Specialty
	d.Phone = in.Phone
	d.Email = in.Email
	d.Interests = in.Interests
	d.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, d); err != nil {
		return Doctor{}, err
	}
	return d, nil
}

// Delete no cascadea: las visitas que referencian al médico quedan huérfanas.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Doctor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Doctor{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve los médicos ordenados por nombre.
func (s *Service) List(ctx context.Context) ([]Doctor, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	textsort.ByName(items, func(d Doctor) string { return d.Name })
	return items, nil
}
