package suggestions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"medistock/internal/domain/doctors"
	"medistock/internal/domain/ledger"
	"medistock/internal/domain/products"
	"medistock/internal/platform/logger"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrDisabled         = errors.New("suggestions disabled")
	ErrSuggestionFailed = errors.New("suggestion failed")
)

const (
	defaultInterests   = "Intereses generales en medicina y avances farmacéuticos."
	defaultPriorities  = "Prioridades de marketing generales del ciclo."
	defaultDescription = "Sin descripción."
)

type DoctorGetter interface {
	GetByID(ctx context.Context, id string) (doctors.Doctor, error)
}

type CycleGetter interface {
	GetCycle(ctx context.Context, id string) (ledger.Cycle, error)
}

type ProductLister interface {
	List(ctx context.Context) ([]products.Product, error)
}

type Service struct {
	doctors   DoctorGetter
	cycles    CycleGetter
	products  ProductLister
	suggester Suggester // nil = deshabilitado
	log       logger.Logger
}

func NewService(d DoctorGetter, c CycleGetter, p ProductLister, s Suggester, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		doctors:   d,
		cycles:    c,
		products:  p,
		suggester: s,
		log:       log.With(map[string]any{"component": "suggestions"}),
	}
}

// ForDoctor arma el pedido con los productos con stock del ciclo y consulta al proveedor.
// Médico o ciclo inexistente devuelven doctors.ErrNotFound / ledger.ErrCycleNotFound.
func (s *Service) ForDoctor(ctx context.Context, doctorID, cycleID string) (Result, error) {
	if s.suggester == nil {
		return Result{}, ErrDisabled
	}
	doctorID = strings.TrimSpace(doctorID)
	cycleID = strings.TrimSpace(cycleID)
	if doctorID == "" || cycleID == "" {
		return Result{}, ErrInvalidInput
	}

	req, err := s.buildRequest(ctx, doctorID, cycleID)
	if err != nil {
		return Result{}, err
	}

	res, err := s.suggester.Suggest(ctx, req)
	if err != nil {
		s.log.Error("suggestion provider failed", map[string]any{
			"doctor_id": doctorID,
			"cycle_id":  cycleID,
			"err":       err,
		})
		return Result{}, fmt.Errorf("%w: %v", ErrSuggestionFailed, err)
	}
	if res.SuggestedProducts == nil {
		res.SuggestedProducts = []string{}
	}
	return res, nil
}

func (s *Service) buildRequest(ctx context.Context, doctorID, cycleID string) (Request, error) {
	d, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return Request{}, err
	}
	c, err := s.cycles.GetCycle(ctx, cycleID)
	if err != nil {
		return Request{}, err
	}
	catalog, err := s.products.List(ctx)
	if err != nil {
		return Request{}, err
	}

	byID := make(map[string]products.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	available := make([]string, 0, len(c.Stock))
	for _, e := range c.Stock {
		p, ok := byID[e.ProductID]
		if !ok || e.Quantity <= 0 {
			continue
		}
		available = append(available, formatProduct(p, e.Quantity))
	}

	return Request{
		DoctorID:            d.ID,
		CycleID:             c.ID,
		AvailableProducts:   available,
		DoctorInterests:     orDefault(d.Interests, defaultInterests),
		MarketingPriorities: orDefault(c.MarketingPriorities, defaultPriorities),
	}, nil
}

func formatProduct(p products.Product, qty int) string {
	return p.Name + " (Stock: " + strconv.Itoa(qty) + "): " + orDefault(p.Description, defaultDescription)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
