package ledger

import (
	"context"

	"medistock/internal/platform/textsort"
)

// DeletedProductName se muestra para referencias a productos ya borrados.
const DeletedProductName = "Producto eliminado"

type StockLine struct {
	ProductID         string
	ProductName       string
	ProductIdentifier string
	Description       string
	Quantity          int
}

type StockView struct {
	Cycle Cycle
	Lines []StockLine
}

// CycleStockView arma las líneas de stock del ciclo con datos del producto,
// ordenadas por nombre.
func (s *Service) CycleStockView(ctx context.Context, cycleID string) (StockView, error) {
	c, err := s.GetCycle(ctx, cycleID)
	if err != nil {
		return StockView{}, err
	}
	items, err := s.store.ListProducts(ctx)
	if err != nil {
		return StockView{}, err
	}

	lines := make([]StockLine, 0, len(c.Stock))
	for _, e := range c.Stock {
		line := StockLine{ProductID: e.ProductID, ProductName: DeletedProductName, Quantity: e.Quantity}
		for _, p := range items {
			if p.ID == e.ProductID {
				line.ProductName = p.Name
				line.ProductIdentifier = p.UniqueIdentifier
				line.Description = p.Description
				break
			}
		}
		lines = append(lines, line)
	}
	textsort.ByName(lines, func(l StockLine) string { return l.ProductName })

	return StockView{Cycle: c, Lines: lines}, nil
}

// ProductNames resuelve ids de producto a nombre para mostrar entregas.
// Ids que no están en el catálogo devuelven DeletedProductName.
func (s *Service) ProductNames(ctx context.Context) (func(id string) string, error) {
	items, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(items))
	for _, p := range items {
		names[p.ID] = p.Name
	}
	return func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return DeletedProductName
	}, nil
}
