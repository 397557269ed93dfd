package memory

import (
	"context"
	"errors"
	"strings"

	"medistock/internal/domain/doctors"
)

type doctorRepo struct {
	s *Store
}

func (r *doctorRepo) Create(ctx context.Context, d doctors.Doctor) error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("doctor id required")
	}
	return r.s.write(ctx, func(st *state) error {
		if _, exists := st.doctors[d.ID]; exists {
			return errors.New("doctor already exists")
		}
		st.doctors[d.ID] = d
		return nil
	})
}

func (r *doctorRepo) Update(ctx context.Context, d doctors.Doctor) error {
	return r.s.write(ctx, func(st *state) error {
		if _, exists := st.doctors[d.ID]; !exists {
			return doctors.ErrNotFound
		}
		st.doctors[d.ID] = d
		return nil
	})
}

// Delete no toca las visitas: conservan la referencia al médico.
func (r *doctorRepo) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func(st *state) error {
		if _, exists := st.doctors[id]; !exists {
			return doctors.ErrNotFound
		}
		delete(st.doctors, id)
		return nil
	})
}

func (r *doctorRepo) GetByID(ctx context.Context, id string) (doctors.Doctor, error) {
	var (
		d  doctors.Doctor
		ok bool
	)
	r.s.read(func(st *state) { d, ok = st.doctors[id] })
	if !ok {
		return doctors.Doctor{}, doctors.ErrNotFound
	}
	return d, nil
}

func (r *doctorRepo) List(ctx context.Context) ([]doctors.Doctor, error) {
	var out []doctors.Doctor
	r.s.read(func(st *state) {
		out = make([]doctors.Doctor, 0, len(st.doctors))
		for _, d := range st.doctors {
			out = append(out, d)
		}
	})
	return out, nil
}
