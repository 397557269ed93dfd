package products

import "time"

// Product es la clave de catálogo referenciada por el stock de cada ciclo
// y por los productos entregados en cada visita.
type Product struct {
	ID string

	Name             string
	Description      string
	UniqueIdentifier string // código externo opcional (p.ej. registro sanitario)

	CreatedAt time.Time
	UpdatedAt time.Time
}
