package ledger

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"medistock/internal/domain/products"
	"medistock/internal/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	store Store
	locks *locks
	obs   Observer
	log   logger.Logger
	now   func() time.Time
}

type Option func(*Service)

func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.obs = o
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l.With(map[string]any{"component": "ledger"})
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		locks: newLocks(),
		obs:   nopObserver{},
		log:   logger.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Servicio de stock del catálogo de productos.
var _ products.StockPropagator = (*Service)(nil)

type CycleInput struct {
	Name                string
	StartDate           time.Time
	EndDate             time.Time
	MarketingPriorities string
	Stock               []StockEntry // solo en CreateCycle
}

func (in CycleInput) normalize() (CycleInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.MarketingPriorities = strings.TrimSpace(in.MarketingPriorities)
	if in.Name == "" || in.StartDate.IsZero() || in.EndDate.IsZero() {
		return CycleInput{}, ErrInvalidInput
	}
	if in.EndDate.Before(in.StartDate) {
		return CycleInput{}, ErrInvalidDateRange
	}
	return in, nil
}

// CreateCycle crea el ciclo con stock completo: ids desconocidos se descartan
// y los productos que faltan quedan en 0.
func (s *Service) CreateCycle(ctx context.Context, in CycleInput) (Cycle, error) {
	in, err := in.normalize()
	if err != nil {
		return Cycle{}, err
	}

	unlock := s.locks.lockCycles()
	defer unlock()

	var out Cycle
	err = s.store.Atomic(ctx, func(tx Tx) error {
		ids, set, err := catalogIndex(ctx, tx)
		if err != nil {
			return err
		}
		entries, err := knownEntries(set, in.Stock)
		if err != nil {
			return err
		}

		now := s.now()
		out = Cycle{
			ID:                  uuid.NewString(),
			Name:                in.Name,
			StartDate:           in.StartDate,
			EndDate:             in.EndDate,
			MarketingPriorities: in.MarketingPriorities,
			Stock:               completeStock(ids, entries),
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		return tx.PutCycle(ctx, out)
	})
	if err != nil {
		s.reject("create_cycle", err)
		return Cycle{}, err
	}

	s.obs.CycleStockChanged(out)
	s.log.Info("cycle created", map[string]any{"cycle_id": out.ID, "name": out.Name})
	return out, nil
}

// UpdateCycleMetadata cambia nombre, fechas y prioridades. El stock no se toca.
func (s *Service) UpdateCycleMetadata(ctx context.Context, id string, in CycleInput) (Cycle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Cycle{}, ErrInvalidInput
	}
	in, err := in.normalize()
	if err != nil {
		return Cycle{}, err
	}

	unlock := s.locks.lockCycles(id)
	defer unlock()

	var out Cycle
	err = s.store.Atomic(ctx, func(tx Tx) error {
		c, err := tx.GetCycle(ctx, id)
		if err != nil {
			return err
		}
		c.Name = in.Name
		c.StartDate = in.StartDate
		c.EndDate = in.EndDate
		c.MarketingPriorities = in.MarketingPriorities
		c.UpdatedAt = s.now()

		out = c
		return tx.PutCycle(ctx, c)
	})
	if err != nil {
		return Cycle{}, err
	}
	return out, nil
}

// SetCycleStock reemplaza el stock del ciclo. Todo producto del catálogo
// ausente en entries queda en 0. Valida todo antes de escribir.
func (s *Service) SetCycleStock(ctx context.Context, id string, entries []StockEntry) (Cycle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Cycle{}, ErrInvalidInput
	}

	unlock := s.locks.lockCycles(id)
	defer unlock()

	var out Cycle
	err := s.store.Atomic(ctx, func(tx Tx) error {
		c, err := tx.GetCycle(ctx, id)
		if err != nil {
			return err
		}
		ids, set, err := catalogIndex(ctx, tx)
		if err != nil {
			return err
		}
		if err := validateStockEntries(set, entries); err != nil {
			return err
		}

		c.Stock = completeStock(ids, entries)
		c.UpdatedAt = s.now()

		out = c
		return tx.PutCycle(ctx, c)
	})
	if err != nil {
		s.reject("set_cycle_stock", err)
		return Cycle{}, err
	}

	s.obs.CycleStockChanged(out)
	s.log.Info("cycle stock set", map[string]any{"cycle_id": id, "total_units": out.TotalUnits()})
	return out, nil
}

// DeleteCycle borra el ciclo y todas sus visitas. Devuelve cuántas visitas cayeron.
func (s *Service) DeleteCycle(ctx context.Context, id string) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, ErrInvalidInput
	}

	unlock := s.locks.lockCycles(id)
	defer unlock()

	removed := 0
	err := s.store.Atomic(ctx, func(tx Tx) error {
		if _, err := tx.GetCycle(ctx, id); err != nil {
			return err
		}
		n, err := tx.DeleteVisitsByCycle(ctx, id)
		if err != nil {
			return err
		}
		removed = n
		return tx.DeleteCycle(ctx, id)
	})
	if err != nil {
		return 0, err
	}

	s.obs.CycleDeleted(id)
	s.log.Info("cycle deleted", map[string]any{"cycle_id": id, "visits_removed": removed})
	return removed, nil
}

func (s *Service) GetCycle(ctx context.Context, id string) (Cycle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Cycle{}, ErrInvalidInput
	}
	return s.store.GetCycle(ctx, id)
}

// ListCycles ordena por fecha de inicio descendente.
func (s *Service) ListCycles(ctx context.Context) ([]Cycle, error) {
	items, err := s.store.ListCycles(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].StartDate.Equal(items[j].StartDate) {
			return items[i].StartDate.After(items[j].StartDate)
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// AddProduct da de alta el producto y agrega (id, 0) a todos los ciclos en una sola transacción.
func (s *Service) AddProduct(ctx context.Context, p products.Product) error {
	unlock := s.locks.lockCatalog()
	defer unlock()

	var changed []Cycle
	err := s.store.Atomic(ctx, func(tx Tx) error {
		if err := tx.CreateProduct(ctx, p); err != nil {
			return err
		}
		var err error
		changed, err = s.propagate(ctx, tx, func(c *Cycle) bool {
			if _, ok := c.QuantityOf(p.ID); ok {
				return false
			}
			c.Stock = append(c.Stock, StockEntry{ProductID: p.ID, Quantity: 0})
			return true
		})
		return err
	})
	if err != nil {
		return err
	}

	for _, c := range changed {
		s.obs.CycleStockChanged(c)
	}
	s.log.Info("product added to cycles", map[string]any{"product_id": p.ID, "cycles": len(changed)})
	return nil
}

// RemoveProduct borra el producto del catálogo y su entrada de todos los ciclos.
func (s *Service) RemoveProduct(ctx context.Context, id string) error {
	unlock := s.locks.lockCatalog()
	defer unlock()

	var changed []Cycle
	err := s.store.Atomic(ctx, func(tx Tx) error {
		if err := tx.DeleteProduct(ctx, id); err != nil {
			return err
		}
		var err error
		changed, err = s.propagate(ctx, tx, func(c *Cycle) bool {
			before := len(c.Stock)
			c.Stock = dropEntry(c.Stock, id)
			return len(c.Stock) != before
		})
		return err
	})
	if err != nil {
		return err
	}

	for _, c := range changed {
		s.obs.CycleStockChanged(c)
	}
	s.log.Info("product removed from cycles", map[string]any{"product_id": id, "cycles": len(changed)})
	return nil
}

// OnProductCreated asegura la entrada (id, 0) en todos los ciclos para un
// producto ya persistido (p. ej. cargado por otra vía).
func (s *Service) OnProductCreated(ctx context.Context, productID string) error {
	unlock := s.locks.lockCatalog()
	defer unlock()

	return s.store.Atomic(ctx, func(tx Tx) error {
		_, set, err := catalogIndex(ctx, tx)
		if err != nil {
			return err
		}
		if !set[productID] {
			return productNotFound(productID)
		}
		_, err = s.propagate(ctx, tx, func(c *Cycle) bool {
			if _, ok := c.QuantityOf(productID); ok {
				return false
			}
			c.Stock = append(c.Stock, StockEntry{ProductID: productID})
			return true
		})
		return err
	})
}

// OnProductDeleted quita la entrada del producto de todos los ciclos.
func (s *Service) OnProductDeleted(ctx context.Context, productID string) error {
	unlock := s.locks.lockCatalog()
	defer unlock()

	return s.store.Atomic(ctx, func(tx Tx) error {
		_, err := s.propagate(ctx, tx, func(c *Cycle) bool {
			before := len(c.Stock)
			c.Stock = dropEntry(c.Stock, productID)
			return len(c.Stock) != before
		})
		return err
	})
}

// propagate aplica fn a cada ciclo y persiste los que cambiaron.
func (s *Service) propagate(ctx context.Context, tx Tx, fn func(c *Cycle) bool) ([]Cycle, error) {
	cycles, err := tx.ListCycles(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	changed := make([]Cycle, 0, len(cycles))
	for _, c := range cycles {
		c = cloneCycle(c)
		if !fn(&c) {
			continue
		}
		c.UpdatedAt = now
		if err := tx.PutCycle(ctx, c); err != nil {
			return nil, err
		}
		changed = append(changed, c)
	}
	return changed, nil
}

func (s *Service) reject(op string, err error) {
	reason := rejectionReason(err)
	if reason == "" {
		return
	}
	s.obs.StockRejected(reason)
	s.log.Warn("stock change rejected", map[string]any{"op": op, "reason": reason, "err": err})
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrNegativeQuantity):
		return "negative_quantity"
	case errors.Is(err, ErrProductNotFound):
		return "product_not_found"
	default:
		return ""
	}
}

func catalogIndex(ctx context.Context, tx Tx) ([]string, map[string]bool, error) {
	items, err := tx.ListProducts(ctx)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, 0, len(items))
	set := make(map[string]bool, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
		set[p.ID] = true
	}
	return ids, set, nil
}

func dropEntry(stock []StockEntry, productID string) []StockEntry {
	out := make([]StockEntry, 0, len(stock))
	for _, e := range stock {
		if e.ProductID != productID {
			out = append(out, e)
		}
	}
	return out
}
