package ledger

import "math"

// Aritmética pura sobre el stock de un ciclo. No toca el Store.

// maxQuantity acota cualquier cantidad de stock o entrega. Coincide con la
// columna INT de Postgres.
const maxQuantity = math.MaxInt32

// completeStock devuelve una entrada por producto del catálogo, en orden de
// catálogo. Cantidades conocidas se conservan, el resto queda en 0 y las
// entradas de productos fuera del catálogo se descartan.
func completeStock(catalog []string, entries []StockEntry) []StockEntry {
	known := make(map[string]int, len(entries))
	for _, e := range entries {
		if _, dup := known[e.ProductID]; dup {
			continue // gana la primera
		}
		known[e.ProductID] = e.Quantity
	}

	out := make([]StockEntry, 0, len(catalog))
	for _, id := range catalog {
		out = append(out, StockEntry{ProductID: id, Quantity: known[id]})
	}
	return out
}

// checkQuantity rechaza negativos y cantidades por encima de maxQuantity.
func checkQuantity(productID string, qty int) error {
	if qty < 0 {
		return negativeQuantity(productID, qty)
	}
	if qty > maxQuantity {
		return quantityTooLarge(productID, qty)
	}
	return nil
}

// validateStockEntries rechaza productos desconocidos y cantidades fuera de rango.
func validateStockEntries(catalog map[string]bool, entries []StockEntry) error {
	for _, e := range entries {
		if !catalog[e.ProductID] {
			return productNotFound(e.ProductID)
		}
		if err := checkQuantity(e.ProductID, e.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// knownEntries descarta ids fuera del catálogo y rechaza cantidades fuera de rango.
func knownEntries(catalog map[string]bool, entries []StockEntry) ([]StockEntry, error) {
	out := make([]StockEntry, 0, len(entries))
	for _, e := range entries {
		if !catalog[e.ProductID] {
			continue
		}
		if err := checkQuantity(e.ProductID, e.Quantity); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// normalizeDeliveries quita cantidades 0, suma repetidos (respetando el orden
// de la primera aparición) y rechaza negativos. Ni una cantidad ni la suma de
// repetidos puede pasar de maxQuantity.
func normalizeDeliveries(in []Delivery) ([]Delivery, error) {
	idx := make(map[string]int, len(in))
	out := make([]Delivery, 0, len(in))
	for _, d := range in {
		if d.ProductID == "" {
			return nil, ErrInvalidInput
		}
		if err := checkQuantity(d.ProductID, d.Quantity); err != nil {
			return nil, err
		}
		if d.Quantity == 0 {
			continue
		}
		if i, ok := idx[d.ProductID]; ok {
			if out[i].Quantity > maxQuantity-d.Quantity {
				return nil, quantityTooLarge(d.ProductID, out[i].Quantity+d.Quantity)
			}
			out[i].Quantity += d.Quantity
			continue
		}
		idx[d.ProductID] = len(out)
		out = append(out, d)
	}
	return out, nil
}

// restore devuelve al stock las cantidades entregadas. Productos que ya no
// están en el ciclo (borrados del catálogo) se ignoran. Si alguna suma pasa de
// maxQuantity no toca c y devuelve error.
func restore(c *Cycle, deliveries []Delivery) error {
	pos := make(map[string]int, len(c.Stock))
	for i, e := range c.Stock {
		pos[e.ProductID] = i
	}

	for _, d := range deliveries {
		i, ok := pos[d.ProductID]
		if !ok {
			continue
		}
		if c.Stock[i].Quantity > maxQuantity-d.Quantity {
			return quantityTooLarge(d.ProductID, c.Stock[i].Quantity+d.Quantity)
		}
	}

	for _, d := range deliveries {
		if i, ok := pos[d.ProductID]; ok {
			c.Stock[i].Quantity += d.Quantity
		}
	}
	return nil
}

// deduct valida todas las entregas contra c y, solo si todas caben, las descuenta.
func deduct(c *Cycle, deliveries []Delivery) error {
	pos := make(map[string]int, len(c.Stock))
	for i, e := range c.Stock {
		pos[e.ProductID] = i
	}

	for _, d := range deliveries {
		i, ok := pos[d.ProductID]
		if !ok {
			return productNotFound(d.ProductID)
		}
		if avail := c.Stock[i].Quantity; d.Quantity > avail {
			return &InsufficientStockError{
				CycleID:   c.ID,
				ProductID: d.ProductID,
				Available: avail,
				Requested: d.Quantity,
			}
		}
	}

	for _, d := range deliveries {
		c.Stock[pos[d.ProductID]].Quantity -= d.Quantity
	}
	return nil
}
