package products

import "context"

// Repository cubre lecturas y cambios que no afectan el stock.
type Repository interface {
	Update(ctx context.Context, p Product) error
	GetByID(ctx context.Context, id string) (Product, error)
	List(ctx context.Context) ([]Product, error)
}

// StockPropagator da de alta/baja un producto junto con su entrada en el stock
// de todos los ciclos, en la misma transacción. Lo implementa el ledger.
type StockPropagator interface {
	AddProduct(ctx context.Context, p Product) error
	RemoveProduct(ctx context.Context, id string) error
}
