package router

import (
	"medistock/internal/domain/dashboard"
	"medistock/internal/domain/doctors"
	"medistock/internal/domain/ledger"
	"medistock/internal/domain/products"
	"medistock/internal/domain/suggestions"
	"medistock/internal/platform/logger"
)

// Backend agrupa los puertos de persistencia de un mismo almacenamiento.
type Backend struct {
	Doctors  doctors.Repository
	Products products.Repository
	Ledger   ledger.Store
}

type Services struct {
	Doctors     *doctors.Service
	Products    *products.Service
	Ledger      *ledger.Service
	Suggestions *suggestions.Service
	Dashboard   *dashboard.Service
}

// NewServices arma los servicios de dominio sobre un backend. También lo usa el comando seed.
func NewServices(b Backend, log logger.Logger, sg suggestions.Suggester, ledgerOpts ...ledger.Option) *Services {
	l := ledger.NewService(b.Ledger, append([]ledger.Option{ledger.WithLogger(log)}, ledgerOpts...)...)
	d := doctors.NewService(b.Doctors)
	p := products.NewService(b.Products, l)
	return &Services{
		Doctors:     d,
		Products:    p,
		Ledger:      l,
		Suggestions: suggestions.NewService(d, l, p, sg, log),
		Dashboard:   dashboard.NewService(d, p, l),
	}
}
