package ledger

import (
	"context"

	"medistock/internal/domain/products"
)

// VisitFilter acota ListVisits. Campos vacíos no filtran.
type VisitFilter struct {
	CycleID  string
	DoctorID string
}

// Store es el backend de persistencia del ledger (memoria, archivo o Postgres).
// Las lecturas no bloquean; toda escritura pasa por Atomic.
type Store interface {
	GetCycle(ctx context.Context, id string) (Cycle, error)
	ListCycles(ctx context.Context) ([]Cycle, error)
	GetVisit(ctx context.Context, id string) (Visit, error)
	// ListVisits ordena por fecha descendente.
	ListVisits(ctx context.Context, f VisitFilter) ([]Visit, error)
	// ListProducts devuelve el catálogo en orden de alta.
	ListProducts(ctx context.Context) ([]products.Product, error)

	// Atomic ejecuta fn como una unidad de trabajo: si fn devuelve error
	// no queda ningún cambio visible.
	Atomic(ctx context.Context, fn func(tx Tx) error) error
}

// Tx es la vista transaccional del Store. Los errores de "no encontrado" son
// ErrCycleNotFound, ErrVisitNotFound y ErrProductNotFound.
type Tx interface {
	GetCycle(ctx context.Context, id string) (Cycle, error)
	ListCycles(ctx context.Context) ([]Cycle, error)
	PutCycle(ctx context.Context, c Cycle) error
	DeleteCycle(ctx context.Context, id string) error

	GetVisit(ctx context.Context, id string) (Visit, error)
	PutVisit(ctx context.Context, v Visit) error
	DeleteVisit(ctx context.Context, id string) error
	DeleteVisitsByCycle(ctx context.Context, cycleID string) (int, error)

	ListProducts(ctx context.Context) ([]products.Product, error)
	CreateProduct(ctx context.Context, p products.Product) error
	DeleteProduct(ctx context.Context, id string) error
}
