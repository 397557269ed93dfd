package ledger

import (
	"context"
	"errors"
	"sync"

	"medistock/internal/domain/products"
)

// testStore es un Store en memoria: Atomic trabaja sobre una copia y la
// publica solo si fn no falla.
type testStore struct {
	mu    sync.RWMutex
	state testState

	// failOn hace fallar la operación del Tx con ese nombre (p. ej. "PutVisit").
	failOn string
}

type testState struct {
	cycles   map[string]Cycle
	visits   map[string]Visit
	products []products.Product
}

var errInjected = errors.New("injected failure")

func newTestStore() *testStore {
	return &testStore{state: testState{
		cycles: map[string]Cycle{},
		visits: map[string]Visit{},
	}}
}

func (s testState) clone() testState {
	out := testState{
		cycles:   make(map[string]Cycle, len(s.cycles)),
		visits:   make(map[string]Visit, len(s.visits)),
		products: append([]products.Product(nil), s.products...),
	}
	for k, v := range s.cycles {
		out.cycles[k] = cloneCycle(v)
	}
	for k, v := range s.visits {
		out.visits[k] = cloneVisit(v)
	}
	return out
}

func (s *testStore) GetCycle(ctx context.Context, id string) (Cycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&testTx{st: &s.state}).GetCycle(ctx, id)
}

func (s *testStore) ListCycles(ctx context.Context) ([]Cycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&testTx{st: &s.state}).ListCycles(ctx)
}

func (s *testStore) GetVisit(ctx context.Context, id string) (Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&testTx{st: &s.state}).GetVisit(ctx, id)
}

func (s *testStore) ListVisits(_ context.Context, f VisitFilter) ([]Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Visit
	for _, v := range s.state.visits {
		if f.CycleID != "" && v.CycleID != f.CycleID {
			continue
		}
		if f.DoctorID != "" && v.DoctorID != f.DoctorID {
			continue
		}
		out = append(out, cloneVisit(v))
	}
	return out, nil
}

func (s *testStore) ListProducts(ctx context.Context) ([]products.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&testTx{st: &s.state}).ListProducts(ctx)
}

func (s *testStore) Atomic(_ context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.state.clone()
	if err := fn(&testTx{st: &staged, failOn: s.failOn}); err != nil {
		return err
	}
	s.state = staged
	return nil
}

type testTx struct {
	st     *testState
	failOn string
}

func (t *testTx) fail(op string) error {
	if t.failOn == op {
		return errInjected
	}
	return nil
}

func (t *testTx) GetCycle(_ context.Context, id string) (Cycle, error) {
	c, ok := t.st.cycles[id]
	if !ok {
		return Cycle{}, ErrCycleNotFound
	}
	return cloneCycle(c), nil
}

func (t *testTx) ListCycles(context.Context) ([]Cycle, error) {
	out := make([]Cycle, 0, len(t.st.cycles))
	for _, c := range t.st.cycles {
		out = append(out, cloneCycle(c))
	}
	return out, nil
}

func (t *testTx) PutCycle(_ context.Context, c Cycle) error {
	if err := t.fail("PutCycle"); err != nil {
		return err
	}
	t.st.cycles[c.ID] = cloneCycle(c)
	return nil
}

func (t *testTx) DeleteCycle(_ context.Context, id string) error {
	if _, ok := t.st.cycles[id]; !ok {
		return ErrCycleNotFound
	}
	delete(t.st.cycles, id)
	return nil
}

func (t *testTx) GetVisit(_ context.Context, id string) (Visit, error) {
	v, ok := t.st.visits[id]
	if !ok {
		return Visit{}, ErrVisitNotFound
	}
	return cloneVisit(v), nil
}

func (t *testTx) PutVisit(_ context.Context, v Visit) error {
	if err := t.fail("PutVisit"); err != nil {
		return err
	}
	t.st.visits[v.ID] = cloneVisit(v)
	return nil
}

func (t *testTx) DeleteVisit(_ context.Context, id string) error {
	if err := t.fail("DeleteVisit"); err != nil {
		return err
	}
	if _, ok := t.st.visits[id]; !ok {
		return ErrVisitNotFound
	}
	delete(t.st.visits, id)
	return nil
}

func (t *testTx) DeleteVisitsByCycle(_ context.Context, cycleID string) (int, error) {
	n := 0
	for id, v := range t.st.visits {
		if v.CycleID == cycleID {
			delete(t.st.visits, id)
			n++
		}
	}
	return n, nil
}

func (t *testTx) ListProducts(context.Context) ([]products.Product, error) {
	return append([]products.Product(nil), t.st.products...), nil
}

func (t *testTx) CreateProduct(_ context.Context, p products.Product) error {
	if err := t.fail("CreateProduct"); err != nil {
		return err
	}
	t.st.products = append(t.st.products, p)
	return nil
}

func (t *testTx) DeleteProduct(_ context.Context, id string) error {
	for i, p := range t.st.products {
		if p.ID == id {
			t.st.products = append(t.st.products[:i], t.st.products[i+1:]...)
			return nil
		}
	}
	return products.ErrNotFound
}
