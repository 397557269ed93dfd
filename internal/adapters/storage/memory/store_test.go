package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"medistock/internal/domain/doctors"
	"medistock/internal/domain/ledger"
	"medistock/internal/domain/products"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LedgerRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New()
	svc := ledger.NewService(store)
	catalog := products.NewService(store.Products(), svc)

	p1, err := catalog.Create(ctx, products.Input{Name: "Amoxicilina"})
	require.NoError(t, err)
	p2, err := catalog.Create(ctx, products.Input{Name: "Ibuprofeno"})
	require.NoError(t, err)

	c, err := svc.CreateCycle(ctx, ledger.CycleInput{
		Name:      "Q1",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Stock:     []ledger.StockEntry{{ProductID: p1.ID, Quantity: 5}},
	})
	require.NoError(t, err)
	require.Len(t, c.Stock, 2)
	assert.Equal(t, p1.ID, c.Stock[0].ProductID)
	assert.Equal(t, p2.ID, c.Stock[1].ProductID)

	v, err := svc.CreateVisit(ctx, ledger.VisitInput{
		DoctorID: "d1", CycleID: c.ID, Date: time.Now(),
		Deliveries: []ledger.Delivery{{ProductID: p1.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	got, err := store.GetCycle(ctx, c.ID)
	require.NoError(t, err)
	q, _ := got.QuantityOf(p1.ID)
	assert.Equal(t, 3, q)

	visits, err := store.ListVisits(ctx, ledger.VisitFilter{CycleID: c.ID})
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, v.ID, visits[0].ID)

	require.NoError(t, catalog.Delete(ctx, p2.ID))
	got, err = store.GetCycle(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, got.Stock, 1)

	snap := store.Snapshot()
	assert.Len(t, snap.Products, 1)
	assert.Len(t, snap.Cycles, 1)
	assert.Len(t, snap.Visits, 1)
}

func TestStore_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.Atomic(ctx, func(tx ledger.Tx) error {
		return tx.PutCycle(ctx, ledger.Cycle{ID: "c1", Stock: []ledger.StockEntry{{ProductID: "p1", Quantity: 4}}})
	}))

	c, err := store.GetCycle(ctx, "c1")
	require.NoError(t, err)
	c.Stock[0].Quantity = 99

	again, err := store.GetCycle(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 4, again.Stock[0].Quantity)
}

func TestStore_FailedAtomicLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	store := New()
	boom := errors.New("boom")

	err := store.Atomic(ctx, func(tx ledger.Tx) error {
		if err := tx.PutCycle(ctx, ledger.Cycle{ID: "c1"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = store.GetCycle(ctx, "c1")
	assert.ErrorIs(t, err, ledger.ErrCycleNotFound)
}

func TestStore_HookFailureDiscardsWrite(t *testing.T) {
	ctx := context.Background()
	hookErr := errors.New("disk full")
	calls := 0
	store := NewFromSnapshot(Snapshot{}, func(context.Context, Snapshot) error {
		calls++
		return hookErr
	})

	err := store.Doctors().Create(ctx, doctors.Doctor{ID: "d1", Name: "Dra. Ruiz"})
	require.ErrorIs(t, err, hookErr)
	assert.Equal(t, 1, calls)

	_, err = store.Doctors().GetByID(ctx, "d1")
	assert.ErrorIs(t, err, doctors.ErrNotFound)
}

func TestDoctorRepo(t *testing.T) {
	ctx := context.Background()
	repo := New().Doctors()

	require.NoError(t, repo.Create(ctx, doctors.Doctor{ID: "d1", Name: "Dra. Ruiz"}))
	require.Error(t, repo.Create(ctx, doctors.Doctor{ID: "d1", Name: "dup"}))

	require.NoError(t, repo.Update(ctx, doctors.Doctor{ID: "d1", Name: "Dra. Ruiz Paz"}))
	d, err := repo.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Dra. Ruiz Paz", d.Name)

	assert.ErrorIs(t, repo.Update(ctx, doctors.Doctor{ID: "nope"}), doctors.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "d1"))
	assert.ErrorIs(t, repo.Delete(ctx, "d1"), doctors.ErrNotFound)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestProductRepo_UpdateKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := New()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Atomic(ctx, func(tx ledger.Tx) error {
		return tx.CreateProduct(ctx, products.Product{ID: "p1", Name: "Amoxicilina", CreatedAt: created})
	}))

	require.NoError(t, store.Products().Update(ctx, products.Product{ID: "p1", Name: "Amoxicilina 500"}))
	p, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Amoxicilina 500", p.Name)
	assert.Equal(t, created, p.CreatedAt)

	assert.ErrorIs(t, store.Products().Update(ctx, products.Product{ID: "nope"}), products.ErrNotFound)
}

func TestProductRepo_IdentifierIsUnique(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.Atomic(ctx, func(tx ledger.Tx) error {
		return tx.CreateProduct(ctx, products.Product{ID: "p1", Name: "Amoxicilina", UniqueIdentifier: "AMX-500"})
	}))

	err := store.Atomic(ctx, func(tx ledger.Tx) error {
		return tx.CreateProduct(ctx, products.Product{ID: "p2", Name: "Otra", UniqueIdentifier: "amx-500"})
	})
	assert.ErrorIs(t, err, products.ErrDuplicateIdentifier)

	require.NoError(t, store.Atomic(ctx, func(tx ledger.Tx) error {
		return tx.CreateProduct(ctx, products.Product{ID: "p3", Name: "Ibuprofeno"})
	}))
	assert.ErrorIs(t, store.Products().Update(ctx, products.Product{ID: "p3", Name: "Ibuprofeno", UniqueIdentifier: "AMX-500"}),
		products.ErrDuplicateIdentifier)
	require.NoError(t, store.Products().Update(ctx, products.Product{ID: "p1", Name: "Amoxicilina", UniqueIdentifier: "AMX-500"}))
}

func TestProductCreate_ConcurrentSameIdentifier(t *testing.T) {
	ctx := context.Background()
	store := New()

	// Servicios separados: cada uno con sus propios locks, como dos procesos.
	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			catalog := products.NewService(store.Products(), ledger.NewService(store))
			_, errs[i] = catalog.Create(ctx, products.Input{Name: "Amoxicilina", UniqueIdentifier: "AMX-500"})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, products.ErrDuplicateIdentifier)
	}
	assert.Equal(t, 1, ok)

	items, err := store.Products().List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
