package memory

import (
	"context"
	"errors"

	"medistock/internal/domain/ledger"
	"medistock/internal/domain/products"
)

var _ ledger.Store = (*Store)(nil)

func (s *Store) GetCycle(ctx context.Context, id string) (ledger.Cycle, error) {
	var (
		c   ledger.Cycle
		err error
	)
	s.read(func(st *state) { c, err = (&tx{st: st}).GetCycle(ctx, id) })
	return c, err
}

func (s *Store) ListCycles(ctx context.Context) ([]ledger.Cycle, error) {
	var out []ledger.Cycle
	s.read(func(st *state) { out, _ = (&tx{st: st}).ListCycles(ctx) })
	return out, nil
}

func (s *Store) GetVisit(ctx context.Context, id string) (ledger.Visit, error) {
	var (
		v   ledger.Visit
		err error
	)
	s.read(func(st *state) { v, err = (&tx{st: st}).GetVisit(ctx, id) })
	return v, err
}

func (s *Store) ListVisits(ctx context.Context, f ledger.VisitFilter) ([]ledger.Visit, error) {
	var out []ledger.Visit
	s.read(func(st *state) {
		out = make([]ledger.Visit, 0)
		for _, v := range st.visits {
			if f.CycleID != "" && v.CycleID != f.CycleID {
				continue
			}
			if f.DoctorID != "" && v.DoctorID != f.DoctorID {
				continue
			}
			out = append(out, cloneVisit(v))
		}
	})
	return out, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]products.Product, error) {
	var out []products.Product
	s.read(func(st *state) { out = st.productList() })
	return out, nil
}

func (s *Store) Atomic(ctx context.Context, fn func(tx ledger.Tx) error) error {
	return s.write(ctx, func(st *state) error {
		return fn(&tx{st: st})
	})
}

// tx opera directo sobre el estado en preparación de write.
type tx struct {
	st *state
}

func (t *tx) GetCycle(_ context.Context, id string) (ledger.Cycle, error) {
	c, ok := t.st.cycles[id]
	if !ok {
		return ledger.Cycle{}, ledger.ErrCycleNotFound
	}
	return cloneCycle(c), nil
}

func (t *tx) ListCycles(context.Context) ([]ledger.Cycle, error) {
	out := make([]ledger.Cycle, 0, len(t.st.cycles))
	for _, c := range t.st.cycles {
		out = append(out, cloneCycle(c))
	}
	return out, nil
}

func (t *tx) PutCycle(_ context.Context, c ledger.Cycle) error {
	if c.ID == "" {
		return errors.New("cycle id required")
	}
	t.st.cycles[c.ID] = cloneCycle(c)
	return nil
}

func (t *tx) DeleteCycle(_ context.Context, id string) error {
	if _, ok := t.st.cycles[id]; !ok {
		return ledger.ErrCycleNotFound
	}
	delete(t.st.cycles, id)
	return nil
}

func (t *tx) GetVisit(_ context.Context, id string) (ledger.Visit, error) {
	v, ok := t.st.visits[id]
	if !ok {
		return ledger.Visit{}, ledger.ErrVisitNotFound
	}
	return cloneVisit(v), nil
}

func (t *tx) PutVisit(_ context.Context, v ledger.Visit) error {
	if v.ID == "" {
		return errors.New("visit id required")
	}
	t.st.visits[v.ID] = cloneVisit(v)
	return nil
}

func (t *tx) DeleteVisit(_ context.Context, id string) error {
	if _, ok := t.st.visits[id]; !ok {
		return ledger.ErrVisitNotFound
	}
	delete(t.st.visits, id)
	return nil
}

func (t *tx) DeleteVisitsByCycle(_ context.Context, cycleID string) (int, error) {
	n := 0
	for id, v := range t.st.visits {
		if v.CycleID == cycleID {
			delete(t.st.visits, id)
			n++
		}
	}
	return n, nil
}

func (t *tx) ListProducts(context.Context) ([]products.Product, error) {
	return t.st.productList(), nil
}

func (t *tx) CreateProduct(_ context.Context, p products.Product) error {
	if p.ID == "" {
		return errors.New("product id required")
	}
	if _, exists := t.st.products[p.ID]; exists {
		return errors.New("product already exists")
	}
	if t.st.identifierTaken(p.ID, p.UniqueIdentifier) {
		return products.ErrDuplicateIdentifier
	}
	t.st.products[p.ID] = p
	t.st.order = append(t.st.order, p.ID)
	return nil
}

func (t *tx) DeleteProduct(_ context.Context, id string) error {
	if _, exists := t.st.products[id]; !exists {
		return products.ErrNotFound
	}
	delete(t.st.products, id)
	for i, pid := range t.st.order {
		if pid == id {
			t.st.order = append(t.st.order[:i], t.st.order[i+1:]...)
			break
		}
	}
	return nil
}
