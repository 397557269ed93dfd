package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"medistock/internal/domain/products"

	"github.com/cucumber/godog"
)

type ledgerFeatureContext struct {
	svc      *Service
	products map[string]string // nombre -> id
	cycles   map[string]string
	visits   map[string]Visit
	err      error
}

func (c *ledgerFeatureContext) reset() {
	c.svc = NewService(newTestStore())
	c.products = map[string]string{}
	c.cycles = map[string]string{}
	c.visits = map[string]Visit{}
	c.err = nil
}

func (c *ledgerFeatureContext) aProduct(name string) error {
	id := "prod-" + strings.ToLower(name)
	if err := c.svc.AddProduct(context.Background(), products.Product{ID: id, Name: name}); err != nil {
		return err
	}
	c.products[name] = id
	return nil
}

func (c *ledgerFeatureContext) productIsDeleted(name string) error {
	c.err = c.svc.RemoveProduct(context.Background(), c.products[name])
	return c.err
}

func (c *ledgerFeatureContext) aCycleWithStock(name, product string, qty int) error {
	return c.createCycle(name, []StockEntry{{ProductID: c.products[product], Quantity: qty}})
}

func (c *ledgerFeatureContext) anEmptyCycle(name string) error {
	return c.createCycle(name, nil)
}

func (c *ledgerFeatureContext) createCycle(name string, stock []StockEntry) error {
	cy, err := c.svc.CreateCycle(context.Background(), CycleInput{
		Name:      name,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Stock:     stock,
	})
	if err != nil {
		return err
	}
	c.cycles[name] = cy.ID
	return nil
}

func (c *ledgerFeatureContext) visitIsCreated(alias, doctor, cycle string, qty int, product string) error {
	v, err := c.svc.CreateVisit(context.Background(), VisitInput{
		DoctorID:   doctor,
		CycleID:    c.cycles[cycle],
		Date:       time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Deliveries: []Delivery{{ProductID: c.products[product], Quantity: qty}},
	})
	c.err = err
	if err == nil {
		c.visits[alias] = v
	}
	return nil
}

func (c *ledgerFeatureContext) visitIsUpdated(alias string, qty int, product string) error {
	prev, ok := c.visits[alias]
	if !ok {
		return fmt.Errorf("unknown visit %q", alias)
	}
	v, err := c.svc.UpdateVisit(context.Background(), prev.ID, VisitInput{
		DoctorID:   prev.DoctorID,
		CycleID:    prev.CycleID,
		Date:       prev.Date,
		Deliveries: []Delivery{{ProductID: c.products[product], Quantity: qty}},
	})
	c.err = err
	if err == nil {
		c.visits[alias] = v
	}
	return nil
}

func (c *ledgerFeatureContext) visitIsDeleted(alias string) error {
	prev, ok := c.visits[alias]
	if !ok {
		return fmt.Errorf("unknown visit %q", alias)
	}
	c.err = c.svc.DeleteVisit(context.Background(), prev.ID)
	return nil
}

func (c *ledgerFeatureContext) theOperationSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got %v", c.err)
	}
	return nil
}

func (c *ledgerFeatureContext) theOperationFailsWithInsufficientStock(product string, available, requested int) error {
	var ise *InsufficientStockError
	if !errors.As(c.err, &ise) {
		return fmt.Errorf("expected insufficient stock, got %v", c.err)
	}
	if ise.ProductID != c.products[product] || ise.Available != available || ise.Requested != requested {
		return fmt.Errorf("unexpected detail: %+v", ise)
	}
	return nil
}

func (c *ledgerFeatureContext) cycleHasQuantity(cycle string, qty int, product string) error {
	cy, err := c.svc.GetCycle(context.Background(), c.cycles[cycle])
	if err != nil {
		return err
	}
	got, ok := cy.QuantityOf(c.products[product])
	if !ok {
		return fmt.Errorf("cycle %s has no entry for %s", cycle, product)
	}
	if got != qty {
		return fmt.Errorf("cycle %s: expected %d of %s, got %d", cycle, qty, product, got)
	}
	return nil
}

func (c *ledgerFeatureContext) cycleHasExactlyProducts(cycle, list string) error {
	cy, err := c.svc.GetCycle(context.Background(), c.cycles[cycle])
	if err != nil {
		return err
	}

	var want []string
	for _, name := range strings.Split(list, ",") {
		want = append(want, c.products[strings.TrimSpace(name)])
	}
	got := make([]string, 0, len(cy.Stock))
	for _, e := range cy.Stock {
		got = append(got, e.ProductID)
	}
	sort.Strings(want)
	sort.Strings(got)
	if strings.Join(want, ",") != strings.Join(got, ",") {
		return fmt.Errorf("cycle %s: expected products %v, got %v", cycle, want, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &ledgerFeatureContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^a product "([^"]*)"$`, tc.aProduct)
	ctx.Step(`^a product "([^"]*)" is created$`, tc.aProduct)
	ctx.Step(`^product "([^"]*)" is deleted$`, tc.productIsDeleted)
	ctx.Step(`^a cycle "([^"]*)" with "([^"]*)" stock (\d+)$`, tc.aCycleWithStock)
	ctx.Step(`^a cycle "([^"]*)"$`, tc.anEmptyCycle)

	ctx.Step(`^visit "([^"]*)" is created for doctor "([^"]*)" in cycle "([^"]*)" delivering (\d+) of "([^"]*)"$`, tc.visitIsCreated)
	ctx.Step(`^visit "([^"]*)" is updated to deliver (\d+) of "([^"]*)"$`, tc.visitIsUpdated)
	ctx.Step(`^visit "([^"]*)" is deleted$`, tc.visitIsDeleted)

	ctx.Step(`^the operation succeeds$`, tc.theOperationSucceeds)
	ctx.Step(`^the operation fails with insufficient stock for "([^"]*)" available (\d+) requested (\d+)$`, tc.theOperationFailsWithInsufficientStock)
	ctx.Step(`^cycle "([^"]*)" has (\d+) of "([^"]*)"$`, tc.cycleHasQuantity)
	ctx.Step(`^cycle "([^"]*)" has exactly the products "([^"]*)"$`, tc.cycleHasExactlyProducts)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/stock_ledger.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
