package ledger

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompleteStock(t *testing.T) {
	got := completeStock(
		[]string{"p1", "p2", "p3"},
		[]StockEntry{{"p3", 7}, {"ghost", 4}, {"p1", 2}, {"p1", 9}},
	)
	want := []StockEntry{{"p1", 2}, {"p2", 0}, {"p3", 7}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("completeStock mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeDeliveries(t *testing.T) {
	got, err := normalizeDeliveries([]Delivery{{"p1", 2}, {"p2", 0}, {"p3", 1}, {"p1", 3}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := []Delivery{{"p1", 5}, {"p3", 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalizeDeliveries mismatch (-want +got):\n%s", diff)
	}

	if _, err := normalizeDeliveries([]Delivery{{"p1", -1}}); !errors.Is(err, ErrNegativeQuantity) {
		t.Fatalf("expected ErrNegativeQuantity, got %v", err)
	}
}

func TestNormalizeDeliveries_QuantityBounds(t *testing.T) {
	cases := []struct {
		name string
		in   []Delivery
		want error
	}{
		{"at limit", []Delivery{{"p1", maxQuantity}}, nil},
		{"above limit", []Delivery{{"p1", maxQuantity + 1}}, ErrInvalidInput},
		{"duplicates reach limit", []Delivery{{"p1", maxQuantity - 1}, {"p1", 1}}, nil},
		{"duplicates overflow", []Delivery{{"p1", maxQuantity}, {"p1", maxQuantity}}, ErrInvalidInput},
		{"duplicates overflow by one", []Delivery{{"p1", maxQuantity}, {"p1", 1}}, ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeDeliveries(tc.in)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				if len(got) != 1 || got[0].Quantity != maxQuantity {
					t.Fatalf("unexpected result: %+v", got)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDeduct_AllOrNothing(t *testing.T) {
	c := Cycle{ID: "q1", Stock: []StockEntry{{"p1", 5}, {"p2", 1}}}

	err := deduct(&c, []Delivery{{"p1", 3}, {"p2", 2}})
	var ise *InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if ise.ProductID != "p2" || ise.Available != 1 || ise.Requested != 2 {
		t.Fatalf("unexpected error detail: %+v", ise)
	}
	if diff := cmp.Diff([]StockEntry{{"p1", 5}, {"p2", 1}}, c.Stock); diff != "" {
		t.Fatalf("stock changed on failure (-want +got):\n%s", diff)
	}

	if err := deduct(&c, []Delivery{{"p1", 5}}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if q, _ := c.QuantityOf("p1"); q != 0 {
		t.Fatalf("expected p1=0, got %d", q)
	}
}

func TestRestore_SkipsRemovedProducts(t *testing.T) {
	c := Cycle{Stock: []StockEntry{{"p1", 1}}}
	if err := restore(&c, []Delivery{{"p1", 4}, {"gone", 3}}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if diff := cmp.Diff([]StockEntry{{"p1", 5}}, c.Stock); diff != "" {
		t.Fatalf("restore mismatch (-want +got):\n%s", diff)
	}
}

func TestRestore_RejectsOverflowWithoutMutating(t *testing.T) {
	c := Cycle{Stock: []StockEntry{{"p1", 2}, {"p2", maxQuantity}}}

	err := restore(&c, []Delivery{{"p1", 1}, {"p2", 1}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if diff := cmp.Diff([]StockEntry{{"p1", 2}, {"p2", maxQuantity}}, c.Stock); diff != "" {
		t.Fatalf("stock changed on failure (-want +got):\n%s", diff)
	}
}

func TestLocks_UniqueSorted(t *testing.T) {
	got := uniqueSorted([]string{"b", "", "a", "b"})
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("uniqueSorted mismatch (-want +got):\n%s", diff)
	}
}
