package ledger

import "time"

// StockEntry es la cantidad disponible de un producto dentro de un ciclo.
type StockEntry struct {
	ProductID string
	Quantity  int
}

// Cycle es un período promocional con su propia asignación de stock.
// Stock contiene exactamente una entrada por producto del catálogo, en orden de alta.
type Cycle struct {
	ID string

	Name      string
	StartDate time.Time
	EndDate   time.Time

	MarketingPriorities string // texto libre para las sugerencias

	Stock []StockEntry

	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuantityOf devuelve la cantidad del producto y si la entrada existe.
func (c Cycle) QuantityOf(productID string) (int, bool) {
	for _, e := range c.Stock {
		if e.ProductID == productID {
			return e.Quantity, true
		}
	}
	return 0, false
}

// TotalUnits suma todas las cantidades del ciclo.
func (c Cycle) TotalUnits() int {
	total := 0
	for _, e := range c.Stock {
		total += e.Quantity
	}
	return total
}

// Delivery es un producto entregado en una visita (Quantity > 0).
type Delivery struct {
	ProductID string
	Quantity  int
}

// Visit registra lo entregado a un médico contra el stock de un ciclo.
type Visit struct {
	ID string

	DoctorID string
	CycleID  string
	Date     time.Time
	Notes    string

	Deliveries []Delivery

	CreatedAt time.Time
	UpdatedAt time.Time
}

func cloneCycle(c Cycle) Cycle {
	out := c
	out.Stock = append([]StockEntry(nil), c.Stock...)
	return out
}

func cloneVisit(v Visit) Visit {
	out := v
	out.Deliveries = append([]Delivery(nil), v.Deliveries...)
	return out
}
