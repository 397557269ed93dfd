package postgres

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"medistock/internal/domain/doctors"
	"medistock/internal/domain/ledger"
	"medistock/internal/domain/products"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requiere MEDISTOCK_TEST_DSN apuntando a una base descartable.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("MEDISTOCK_TEST_DSN")
	if dsn == "" {
		t.Skip("MEDISTOCK_TEST_DSN not set")
	}

	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))
	_, err = db.ExecContext(ctx, `TRUNCATE visit_deliveries, visits, cycle_stock, cycles, products, doctors`)
	require.NoError(t, err)
	return db
}

func TestLedgerStore_VisitLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	store := NewLedgerStore(db)
	svc := ledger.NewService(store)
	catalog := products.NewService(NewProductsRepo(db), svc)

	p1, err := catalog.Create(ctx, products.Input{Name: "Amoxicilina"})
	require.NoError(t, err)
	c, err := svc.CreateCycle(ctx, ledger.CycleInput{
		Name:      "Q1",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Stock:     []ledger.StockEntry{{ProductID: p1.ID, Quantity: 10}},
	})
	require.NoError(t, err)

	v, err := svc.CreateVisit(ctx, ledger.VisitInput{
		DoctorID: "d1", CycleID: c.ID, Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Deliveries: []ledger.Delivery{{ProductID: p1.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	_, err = svc.CreateVisit(ctx, ledger.VisitInput{
		DoctorID: "d2", CycleID: c.ID, Date: time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC),
		Deliveries: []ledger.Delivery{{ProductID: p1.ID, Quantity: 7}},
	})
	require.ErrorIs(t, err, ledger.ErrInsufficientStock)

	p2, err := catalog.Create(ctx, products.Input{Name: "Ibuprofeno"})
	require.NoError(t, err)

	got, err := store.GetCycle(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Stock, 2)
	assert.Equal(t, ledger.StockEntry{ProductID: p1.ID, Quantity: 6}, got.Stock[0])
	assert.Equal(t, ledger.StockEntry{ProductID: p2.ID, Quantity: 0}, got.Stock[1])

	require.NoError(t, svc.DeleteVisit(ctx, v.ID))
	got, err = store.GetCycle(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock[0].Quantity)

	n, err := svc.DeleteCycle(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDoctorsRepo(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewDoctorsRepo(db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	require.NoError(t, repo.Create(ctx, doctors.Doctor{ID: "d1", Name: "Dra. Ruiz", CreatedAt: now, UpdatedAt: now}))
	d, err := repo.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Dra. Ruiz", d.Name)

	assert.ErrorIs(t, repo.Update(ctx, doctors.Doctor{ID: "nope"}), doctors.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "d1"))
	_, err = repo.GetByID(ctx, "d1")
	assert.ErrorIs(t, err, doctors.ErrNotFound)
}

func TestLedgerStore_ConcurrentDeleteRestoresOnce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first := ledger.NewService(NewLedgerStore(db))
	catalog := products.NewService(NewProductsRepo(db), first)
	p1, err := catalog.Create(ctx, products.Input{Name: "Amoxicilina"})
	require.NoError(t, err)
	c, err := first.CreateCycle(ctx, ledger.CycleInput{
		Name:      "Q1",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Stock:     []ledger.StockEntry{{ProductID: p1.ID, Quantity: 10}},
	})
	require.NoError(t, err)
	v, err := first.CreateVisit(ctx, ledger.VisitInput{
		DoctorID: "d1", CycleID: c.ID, Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Deliveries: []ledger.Delivery{{ProductID: p1.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	// Un servicio por goroutine: sin locks compartidos en proceso, solo la base.
	const workers = 4
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = ledger.NewService(NewLedgerStore(db)).DeleteVisit(ctx, v.ID)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ledger.ErrVisitNotFound)
	}
	assert.Equal(t, 1, ok)

	got, err := first.GetCycle(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock[0].Quantity)
}

func TestProductsRepo_ConcurrentSameIdentifier(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	const workers = 4
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			catalog := products.NewService(NewProductsRepo(db), ledger.NewService(NewLedgerStore(db)))
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

	other, err := products.NewService(NewProductsRepo(db), ledger.NewService(NewLedgerStore(db))).
		Create(ctx, products.Input{Name: "Ibuprofeno", UniqueIdentifier: "IBU-400"})
	require.NoError(t, err)
	_, err = products.NewService(NewProductsRepo(db), ledger.NewService(NewLedgerStore(db))).
		Update(ctx, other.ID, products.Input{Name: "Ibuprofeno", UniqueIdentifier: "amx-500"})
	assert.ErrorIs(t, err, products.ErrDuplicateIdentifier)
}
