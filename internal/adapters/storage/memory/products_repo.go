package memory

import (
	"context"

	"medistock/internal/domain/products"
)

// productRepo cubre lecturas y Update. Alta y baja pasan por el ledger (Tx)
// para mantener el stock de los ciclos en la misma escritura.
type productRepo struct {
	s *Store
}

func (r *productRepo) Update(ctx context.Context, p products.Product) error {
	return r.s.write(ctx, func(st *state) error {
		prev, exists := st.products[p.ID]
		if !exists {
			return products.ErrNotFound
		}
		if st.identifierTaken(p.ID, p.UniqueIdentifier) {
			return products.ErrDuplicateIdentifier
		}
		p.CreatedAt = prev.CreatedAt
		st.products[p.ID] = p
		return nil
	})
}

func (r *productRepo) GetByID(ctx context.Context, id string) (products.Product, error) {
	var (
		p  products.Product
		ok bool
	)
	r.s.read(func(st *state) { p, ok = st.products[id] })
	if !ok {
		return products.Product{}, products.ErrNotFound
	}
	return p, nil
}

func (r *productRepo) List(ctx context.Context) ([]products.Product, error) {
	var out []products.Product
	r.s.read(func(st *state) { out = st.productList() })
	return out, nil
}
