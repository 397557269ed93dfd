package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"medistock/internal/domain/products"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestConcurrentVisits_NeverOversell(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc, _ := newTestService(t)
	ctx := context.Background()
	addProduct(t, svc, "P1", "Amoxicilina")
	q1 := createCycle(t, svc, "Q1", StockEntry{"P1", 50})

	var ok, rejected atomic.Int64
	var g errgroup.Group
	for i := 0; i < 80; i++ {
		doctor := fmt.Sprintf("D%d", i)
		g.Go(func() error {
			_, err := svc.CreateVisit(ctx, visitInput(doctor, q1.ID, Delivery{"P1", 1}))
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, ErrInsufficientStock):
				rejected.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(50), ok.Load())
	assert.Equal(t, int64(30), rejected.Load())
	assert.Equal(t, 0, stockOf(t, svc, q1.ID)["P1"])
}

func TestConcurrentMixedOperations_Conserve(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc, _ := newTestService(t)
	ctx := context.Background()
	addProduct(t, svc, "P1", "Amoxicilina")
	q1 := createCycle(t, svc, "Q1", StockEntry{"P1", 40})
	q2 := createCycle(t, svc, "Q2", StockEntry{"P1", 40})

	seed := make([]Visit, 0, 10)
	for i := 0; i < 10; i++ {
		v, err := svc.CreateVisit(ctx, visitInput("D0", q1.ID, Delivery{"P1", 2}))
		require.NoError(t, err)
		seed = append(seed, v)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, v := range seed {
		target := q1.ID
		if i%2 == 0 {
			target = q2.ID
		}
		g.Go(func() error {
			_, err := svc.UpdateVisit(gctx, v.ID, visitInput("D0", target, Delivery{"P1", 3}))
			return err
		})
		g.Go(func() error {
			_, err := svc.CreateVisit(gctx, visitInput("D1", target, Delivery{"P1", 1}))
			return err
		})
	}
	g.Go(func() error {
		return svc.AddProduct(gctx, products.Product{ID: "P2", Name: "Ibuprofeno"})
	})
	require.NoError(t, g.Wait())

	visits, err := svc.ListVisits(ctx, VisitFilter{})
	require.NoError(t, err)
	used := map[string]int{}
	for _, v := range visits {
		for _, d := range v.Deliveries {
			used[v.CycleID] += d.Quantity
		}
	}
	assert.Equal(t, 40-used[q1.ID], stockOf(t, svc, q1.ID)["P1"])
	assert.Equal(t, 40-used[q2.ID], stockOf(t, svc, q2.ID)["P1"])
	assert.Equal(t, map[string]int{"P1": 40 - used[q2.ID], "P2": 0}, stockOf(t, svc, q2.ID))
}
