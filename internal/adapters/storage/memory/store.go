package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"medistock/internal/domain/doctors"
	"medistock/internal/domain/ledger"
	"medistock/internal/domain/products"
)

// Snapshot es el contenido completo del store en orden estable.
type Snapshot struct {
	Doctors  []doctors.Doctor
	Products []products.Product // en orden de alta
	Cycles   []ledger.Cycle
	Visits   []ledger.Visit
}

// CommitHook se llama con el estado nuevo antes de publicarlo. Si falla, la
// escritura se descarta. Lo usa el backend de archivos.
type CommitHook func(ctx context.Context, s Snapshot) error

// Store guarda médicos, productos, ciclos y visitas en memoria. Cada escritura
// trabaja sobre una copia del estado y la publica al final, así ningún lector
// ve un cambio a medias.
type Store struct {
	mu   sync.RWMutex
	st   *state
	hook CommitHook
}

type state struct {
	doctors  map[string]doctors.Doctor
	products map[string]products.Product
	order    []string
	cycles   map[string]ledger.Cycle
	visits   map[string]ledger.Visit
}

func New() *Store {
	return &Store{st: newState()}
}

// NewFromSnapshot arranca con datos cargados y un hook opcional.
func NewFromSnapshot(snap Snapshot, hook CommitHook) *Store {
	st := newState()
	for _, d := range snap.Doctors {
		st.doctors[d.ID] = d
	}
	for _, p := range snap.Products {
		if _, dup := st.products[p.ID]; dup {
			continue
		}
		st.products[p.ID] = p
		st.order = append(st.order, p.ID)
	}
	for _, c := range snap.Cycles {
		st.cycles[c.ID] = cloneCycle(c)
	}
	for _, v := range snap.Visits {
		st.visits[v.ID] = cloneVisit(v)
	}
	return &Store{st: st, hook: hook}
}

func newState() *state {
	return &state{
		doctors:  make(map[string]doctors.Doctor),
		products: make(map[string]products.Product),
		cycles:   make(map[string]ledger.Cycle),
		visits:   make(map[string]ledger.Visit),
	}
}

func (s *Store) Doctors() doctors.Repository   { return &doctorRepo{s: s} }
func (s *Store) Products() products.Repository { return &productRepo{s: s} }

// Close no hace nada; existe para que todos los backends tengan el mismo ciclo de vida.
func (s *Store) Close() error { return nil }

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.snapshot()
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

// write aplica fn sobre una copia y la publica si fn y el hook no fallan.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.st.clone()
	if err := fn(staged); err != nil {
		return err
	}
	if s.hook != nil {
		if err := s.hook(ctx, staged.snapshot()); err != nil {
			return err
		}
	}
	s.st = staged
	return nil
}

func (st *state) clone() *state {
	out := &state{
		doctors:  make(map[string]doctors.Doctor, len(st.doctors)),
		products: make(map[string]products.Product, len(st.products)),
		order:    append([]string(nil), st.order...),
		cycles:   make(map[string]ledger.Cycle, len(st.cycles)),
		visits:   make(map[string]ledger.Visit, len(st.visits)),
	}
	for k, v := range st.doctors {
		out.doctors[k] = v
	}
	for k, v := range st.products {
		out.products[k] = v
	}
	for k, v := range st.cycles {
		out.cycles[k] = cloneCycle(v)
	}
	for k, v := range st.visits {
		out.visits[k] = cloneVisit(v)
	}
	return out
}

func (st *state) snapshot() Snapshot {
	snap := Snapshot{
		Doctors:  make([]doctors.Doctor, 0, len(st.doctors)),
		Products: st.productList(),
		Cycles:   make([]ledger.Cycle, 0, len(st.cycles)),
		Visits:   make([]ledger.Visit, 0, len(st.visits)),
	}
	for _, d := range st.doctors {
		snap.Doctors = append(snap.Doctors, d)
	}
	sort.Slice(snap.Doctors, func(i, j int) bool {
		return byCreated(snap.Doctors[i].CreatedAt.UnixNano(), snap.Doctors[j].CreatedAt.UnixNano(), snap.Doctors[i].ID, snap.Doctors[j].ID)
	})
	for _, c := range st.cycles {
		snap.Cycles = append(snap.Cycles, cloneCycle(c))
	}
	sort.Slice(snap.Cycles, func(i, j int) bool {
		return byCreated(snap.Cycles[i].CreatedAt.UnixNano(), snap.Cycles[j].CreatedAt.UnixNano(), snap.Cycles[i].ID, snap.Cycles[j].ID)
	})
	for _, v := range st.visits {
		snap.Visits = append(snap.Visits, cloneVisit(v))
	}
	sort.Slice(snap.Visits, func(i, j int) bool {
		return byCreated(snap.Visits[i].CreatedAt.UnixNano(), snap.Visits[j].CreatedAt.UnixNano(), snap.Visits[i].ID, snap.Visits[j].ID)
	})
	return snap
}

// identifierTaken indica si otro producto ya usa identifier (sin distinguir mayúsculas).
func (st *state) identifierTaken(selfID, identifier string) bool {
	if identifier == "" {
		return false
	}
	for id, p := range st.products {
		if id != selfID && strings.EqualFold(p.UniqueIdentifier, identifier) {
			return true
		}
	}
	return false
}

func (st *state) productList() []products.Product {
	out := make([]products.Product, 0, len(st.order))
	for _, id := range st.order {
		out = append(out, st.products[id])
	}
	return out
}

func byCreated(a, b int64, idA, idB string) bool {
	if a != b {
		return a < b
	}
	return idA < idB
}

func cloneCycle(c ledger.Cycle) ledger.Cycle {
	c.Stock = append([]ledger.StockEntry(nil), c.Stock...)
	return c
}

func cloneVisit(v ledger.Visit) ledger.Visit {
	v.Deliveries = append([]ledger.Delivery(nil), v.Deliveries...)
	return v
}
