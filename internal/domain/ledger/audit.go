package ledger

import (
	"context"
)

type CycleAudit struct {
	CycleID    string
	CycleName  string
	TotalUnits int

	Added    []string // productos que faltaban, agregados en 0
	Removed  []string // entradas de productos fuera del catálogo
	LowStock []StockEntry
}

func (a CycleAudit) Repaired() bool {
	return len(a.Added) > 0 || len(a.Removed) > 0
}

type AuditReport struct {
	Cycles []CycleAudit
}

func (r AuditReport) RepairedCycles() int {
	n := 0
	for _, c := range r.Cycles {
		if c.Repaired() {
			n++
		}
	}
	return n
}

// Audit recorre todos los ciclos, corrige entradas faltantes o sobrantes
// respecto del catálogo y reporta productos con stock menor a lowStock.
// Toma el catálogo en exclusiva: no corre junto a otras mutaciones.
func (s *Service) Audit(ctx context.Context, lowStock int) (AuditReport, error) {
	unlock := s.locks.lockCatalog()
	defer unlock()

	var report AuditReport
	var changed []Cycle
	err := s.store.Atomic(ctx, func(tx Tx) error {
		ids, set, err := catalogIndex(ctx, tx)
		if err != nil {
			return err
		}
		cycles, err := tx.ListCycles(ctx)
		if err != nil {
			return err
		}

		now := s.now()
		report.Cycles = make([]CycleAudit, 0, len(cycles))
		for _, c := range cycles {
			a := CycleAudit{CycleID: c.ID, CycleName: c.Name}

			present := make(map[string]bool, len(c.Stock))
			for _, e := range c.Stock {
				present[e.ProductID] = true
				if !set[e.ProductID] {
					a.Removed = append(a.Removed, e.ProductID)
				}
			}
			for _, id := range ids {
				if !present[id] {
					a.Added = append(a.Added, id)
				}
			}

			if a.Repaired() {
				c = cloneCycle(c)
				c.Stock = completeStock(ids, c.Stock)
				c.UpdatedAt = now
				if err := tx.PutCycle(ctx, c); err != nil {
					return err
				}
				changed = append(changed, c)
			}

			a.TotalUnits = c.TotalUnits()
			for _, e := range c.Stock {
				if e.Quantity < lowStock {
					a.LowStock = append(a.LowStock, e)
				}
			}
			report.Cycles = append(report.Cycles, a)
		}
		return nil
	})
	if err != nil {
		return AuditReport{}, err
	}

	for _, c := range report.Cycles {
		if c.Repaired() {
			s.log.Warn("cycle stock repaired", map[string]any{
				"cycle_id": c.CycleID,
				"added":    len(c.Added),
				"removed":  len(c.Removed),
			})
		}
	}
	for _, c := range changed {
		s.obs.CycleStockChanged(c)
	}
	return report, nil
}
