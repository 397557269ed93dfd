// Package dashboard arma los contadores de la pantalla de inicio.
package dashboard

import (
	"context"

	"medistock/internal/domain/doctors"
	"medistock/internal/domain/ledger"
	"medistock/internal/domain/products"

	"golang.org/x/sync/errgroup"
)

type Summary struct {
	Doctors    int
	Products   int
	Cycles     int
	Visits     int
	StockUnits int
}

type DoctorLister interface {
	List(ctx context.Context) ([]doctors.Doctor, error)
}

type ProductLister interface {
	List(ctx context.Context) ([]products.Product, error)
}

type LedgerReader interface {
	ListCycles(ctx context.Context) ([]ledger.Cycle, error)
	ListVisits(ctx context.Context, f ledger.VisitFilter) ([]ledger.Visit, error)
}

type Service struct {
	doctors  DoctorLister
	products ProductLister
	ledger   LedgerReader
}

func NewService(d DoctorLister, p ProductLister, l LedgerReader) *Service {
	return &Service{doctors: d, products: p, ledger: l}
}

// Summary lee las cuatro colecciones en paralelo; el primer error cancela el resto.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var out Summary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := s.doctors.List(gctx)
		out.Doctors = len(items)
		return err
	})
	g.Go(func() error {
		items, err := s.products.List(gctx)
		out.Products = len(items)
		return err
	})
	g.Go(func() error {
		items, err := s.ledger.ListCycles(gctx)
		out.Cycles = len(items)
		for _, c := range items {
			out.StockUnits += c.TotalUnits()
		}
		return err
	})
	g.Go(func() error {
		items, err := s.ledger.ListVisits(gctx, ledger.VisitFilter{})
		out.Visits = len(items)
		return err
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return out, nil
}
