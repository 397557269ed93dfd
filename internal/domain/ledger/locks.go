package ledger

import (
	"sort"
	"sync"
)

// locks serializa las mutaciones de stock.
//
// catalog: exclusivo para alta/baja de productos y auditoría, compartido para
// el resto. Cada ciclo tiene su propio mutex; varios ciclos se toman en orden
// de id para no generar interbloqueos.
type locks struct {
	catalog sync.RWMutex

	mu     sync.Mutex
	cycles map[string]*cycleLock
}

type cycleLock struct {
	mu   sync.Mutex
	refs int
}

func newLocks() *locks {
	return &locks{cycles: make(map[string]*cycleLock)}
}

func (l *locks) lockCatalog() (unlock func()) {
	l.catalog.Lock()
	return l.catalog.Unlock
}

// lockCycles toma el catálogo en modo compartido y los ciclos indicados.
func (l *locks) lockCycles(ids ...string) (unlock func()) {
	l.catalog.RLock()

	keys := uniqueSorted(ids)
	held := make([]*cycleLock, 0, len(keys))
	for _, id := range keys {
		cl := l.acquire(id)
		cl.mu.Lock()
		held = append(held, cl)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			l.release(keys[i])
		}
		l.catalog.RUnlock()
	}
}

func (l *locks) acquire(id string) *cycleLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.cycles[id]
	if !ok {
		cl = &cycleLock{}
		l.cycles[id] = cl
	}
	cl.refs++
	return cl
}

func (l *locks) release(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl := l.cycles[id]
	cl.refs--
	if cl.refs == 0 {
		delete(l.cycles, id)
	}
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
