package ledger

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxRelock acota los reintentos cuando una visita cambia de ciclo entre la
// lectura inicial y la toma de locks.
const maxRelock = 3

var errRelock = errors.New("visit moved to another cycle")

type VisitInput struct {
	DoctorID   string
	CycleID    string
	Date       time.Time
	Notes      string
	Deliveries []Delivery
}

func (in VisitInput) normalize() (VisitInput, error) {
	in.DoctorID = strings.TrimSpace(in.DoctorID)
	in.CycleID = strings.TrimSpace(in.CycleID)
	in.Notes = strings.TrimSpace(in.Notes)
	if in.DoctorID == "" || in.CycleID == "" || in.Date.IsZero() {
		return VisitInput{}, ErrInvalidInput
	}

	deliveries, err := normalizeDeliveries(in.Deliveries)
	if err != nil {
		return VisitInput{}, err
	}
	in.Deliveries = deliveries
	return in, nil
}

// CreateVisit descuenta las entregas del stock del ciclo y guarda la visita
// en la misma transacción. Si una entrega no alcanza, no se descuenta nada.
func (s *Service) CreateVisit(ctx context.Context, in VisitInput) (Visit, error) {
	in, err := in.normalize()
	if err != nil {
		s.reject("create_visit", err)
		return Visit{}, err
	}

	unlock := s.locks.lockCycles(in.CycleID)
	defer unlock()

	var (
		out   Visit
		cycle Cycle
	)
	err = s.store.Atomic(ctx, func(tx Tx) error {
		c, err := tx.GetCycle(ctx, in.CycleID)
		if err != nil {
			return err
		}
		c = cloneCycle(c)
		if err := deduct(&c, in.Deliveries); err != nil {
			return withProductName(ctx, tx, err)
		}

		now := s.now()
		c.UpdatedAt = now
		out = Visit{
			ID:         uuid.NewString(),
			DoctorID:   in.DoctorID,
			CycleID:    in.CycleID,
			Date:       in.Date,
			Notes:      in.Notes,
			Deliveries: in.Deliveries,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.PutCycle(ctx, c); err != nil {
			return err
		}
		cycle = c
		return tx.PutVisit(ctx, out)
	})
	if err != nil {
		s.reject("create_visit", err)
		return Visit{}, err
	}

	s.obs.VisitCommitted("create")
	s.obs.CycleStockChanged(cycle)
	s.log.Info("visit created", map[string]any{"visit_id": out.ID, "cycle_id": out.CycleID, "deliveries": len(out.Deliveries)})
	return out, nil
}

// UpdateVisit revierte la visita sobre su ciclo original, valida las nuevas
// entregas contra el ciclo destino ya revertido y confirma ambos ciclos y la
// visita juntos. Ante cualquier error no queda nada aplicado.
func (s *Service) UpdateVisit(ctx context.Context, id string, in VisitInput) (Visit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Visit{}, ErrInvalidInput
	}
	in, err := in.normalize()
	if err != nil {
		s.reject("update_visit", err)
		return Visit{}, err
	}

	for attempt := 0; attempt < maxRelock; attempt++ {
		current, err := s.store.GetVisit(ctx, id)
		if err != nil {
			return Visit{}, err
		}

		out, touched, err := s.updateVisitLocked(ctx, id, current.CycleID, in)
		if errors.Is(err, errRelock) {
			continue
		}
		if err != nil {
			s.reject("update_visit", err)
			return Visit{}, err
		}

		s.obs.VisitCommitted("update")
		for _, c := range touched {
			s.obs.CycleStockChanged(c)
		}
		s.log.Info("visit updated", map[string]any{"visit_id": id, "from_cycle": current.CycleID, "to_cycle": out.CycleID})
		return out, nil
	}
	return Visit{}, ErrConcurrentChange
}

func (s *Service) updateVisitLocked(ctx context.Context, id, lockedCycleID string, in VisitInput) (Visit, []Cycle, error) {
	unlock := s.locks.lockCycles(lockedCycleID, in.CycleID)
	defer unlock()

	var (
		out     Visit
		touched []Cycle
	)
	err := s.store.Atomic(ctx, func(tx Tx) error {
		prev, err := tx.GetVisit(ctx, id)
		if err != nil {
			return err
		}
		if prev.CycleID != lockedCycleID {
			return errRelock
		}

		st := newStaging(tx)
		if old, err := st.cycle(ctx, prev.CycleID); err == nil {
			if err := restore(old, prev.Deliveries); err != nil {
				return err
			}
		} else if !errors.Is(err, ErrCycleNotFound) {
			return err
		}

		target, err := st.cycle(ctx, in.CycleID)
		if err != nil {
			return err
		}
		if err := deduct(target, in.Deliveries); err != nil {
			return withProductName(ctx, tx, err)
		}

		now := s.now()
		touched, err = st.commit(ctx, now)
		if err != nil {
			return err
		}

		out = prev
		out.DoctorID = in.DoctorID
		out.CycleID = in.CycleID
		out.Date = in.Date
		out.Notes = in.Notes
		out.Deliveries = in.Deliveries
		out.UpdatedAt = now
		return tx.PutVisit(ctx, out)
	})
	if err != nil {
		return Visit{}, nil, err
	}
	return out, touched, nil
}

// DeleteVisit devuelve las entregas al stock del ciclo y borra la visita.
func (s *Service) DeleteVisit(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}

	for attempt := 0; attempt < maxRelock; attempt++ {
		current, err := s.store.GetVisit(ctx, id)
		if err != nil {
			return err
		}

		touched, err := s.deleteVisitLocked(ctx, id, current.CycleID)
		if errors.Is(err, errRelock) {
			continue
		}
		if err != nil {
			return err
		}

		s.obs.VisitCommitted("delete")
		for _, c := range touched {
			s.obs.CycleStockChanged(c)
		}
		s.log.Info("visit deleted", map[string]any{"visit_id": id, "cycle_id": current.CycleID})
		return nil
	}
	return ErrConcurrentChange
}

func (s *Service) deleteVisitLocked(ctx context.Context, id, lockedCycleID string) ([]Cycle, error) {
	unlock := s.locks.lockCycles(lockedCycleID)
	defer unlock()

	var touched []Cycle
	err := s.store.Atomic(ctx, func(tx Tx) error {
		prev, err := tx.GetVisit(ctx, id)
		if err != nil {
			return err
		}
		if prev.CycleID != lockedCycleID {
			return errRelock
		}

		st := newStaging(tx)
		if c, err := st.cycle(ctx, prev.CycleID); err == nil {
			if err := restore(c, prev.Deliveries); err != nil {
				return err
			}
		} else if !errors.Is(err, ErrCycleNotFound) {
			return err
		}

		touched, err = st.commit(ctx, s.now())
		if err != nil {
			return err
		}
		return tx.DeleteVisit(ctx, id)
	})
	return touched, err
}

func (s *Service) GetVisit(ctx context.Context, id string) (Visit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Visit{}, ErrInvalidInput
	}
	return s.store.GetVisit(ctx, id)
}

// ListVisits ordena por fecha descendente.
func (s *Service) ListVisits(ctx context.Context, f VisitFilter) ([]Visit, error) {
	f.CycleID = strings.TrimSpace(f.CycleID)
	f.DoctorID = strings.TrimSpace(f.DoctorID)

	items, err := s.store.ListVisits(ctx, f)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	return items, nil
}

// staging guarda copias de los ciclos tocados dentro de una transacción.
// Nada llega al Tx hasta commit.
type staging struct {
	tx     Tx
	order  []string
	cycles map[string]*Cycle
}

func newStaging(tx Tx) *staging {
	return &staging{tx: tx, cycles: make(map[string]*Cycle)}
}

func (st *staging) cycle(ctx context.Context, id string) (*Cycle, error) {
	if c, ok := st.cycles[id]; ok {
		return c, nil
	}
	c, err := st.tx.GetCycle(ctx, id)
	if err != nil {
		return nil, err
	}
	c = cloneCycle(c)
	st.cycles[id] = &c
	st.order = append(st.order, id)
	return &c, nil
}

func (st *staging) commit(ctx context.Context, now time.Time) ([]Cycle, error) {
	out := make([]Cycle, 0, len(st.order))
	for _, id := range st.order {
		c := st.cycles[id]
		c.UpdatedAt = now
		if err := st.tx.PutCycle(ctx, *c); err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

// withProductName completa el nombre del producto en InsufficientStockError.
func withProductName(ctx context.Context, tx Tx, err error) error {
	var ise *InsufficientStockError
	if !errors.As(err, &ise) {
		return err
	}
	items, lerr := tx.ListProducts(ctx)
	if lerr != nil {
		return err
	}
	for _, p := range items {
		if p.ID == ise.ProductID {
			ise.ProductName = p.Name
			break
		}
	}
	return err
}
