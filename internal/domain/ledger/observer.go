package ledger

// Observer recibe eventos del ledger (métricas). Las implementaciones no deben bloquear.
type Observer interface {
	VisitCommitted(op string)
	StockRejected(reason string)
	CycleStockChanged(c Cycle)
	CycleDeleted(cycleID string)
}

type nopObserver struct{}

func (nopObserver) VisitCommitted(string)   {}
func (nopObserver) StockRejected(string)    {}
func (nopObserver) CycleStockChanged(Cycle) {}
func (nopObserver) CycleDeleted(string)     {}
