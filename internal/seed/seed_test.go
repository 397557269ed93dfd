package seed

import (
	"context"
	"strings"
	"testing"

	"medistock/internal/adapters/storage/memory"
	"medistock/internal/domain/doctors"
	"medistock/internal/domain/ledger"
	"medistock/internal/domain/products"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type services struct {
	doctors  *doctors.Service
	products *products.Service
	ledger   *ledger.Service
}

func newServices() services {
	store := memory.New()
	l := ledger.NewService(store)
	return services{
		doctors:  doctors.NewService(store.Doctors()),
		products: products.NewService(store.Products(), l),
		ledger:   l,
	}
}

func TestApply_Fixtures(t *testing.T) {
	fx, err := LoadFile("testdata/fixtures.yaml")
	require.NoError(t, err)

	s := newServices()
	ctx := context.Background()
	res, err := Apply(ctx, fx, s.doctors, s.products, s.ledger)
	require.NoError(t, err)
	assert.Equal(t, Result{Doctors: 2, Products: 3, Cycles: 1, Visits: 2}, res)

	cycles, err := s.ledger.ListCycles(ctx)
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	// 45 iniciales - 10 entregados
	assert.Equal(t, 35, cycles[0].TotalUnits())
	assert.Len(t, cycles[0].Stock, 3)

	view, err := s.ledger.CycleStockView(ctx, cycles[0].ID)
	require.NoError(t, err)
	got := map[string]int{}
	for _, l := range view.Lines {
		got[l.ProductName] = l.Quantity
	}
	assert.Equal(t, map[string]int{"Amoxil 500": 17, "Vitamina D3": 8, "Losartán 50": 10}, got)
}

func TestApply_Errors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "producto desconocido en stock",
			yaml: "cycles:\n  - key: c\n    name: C\n    start: 2026-01-01\n    end: 2026-02-01\n    stock: {nope: 1}\n",
			want: `unknown product "nope"`,
		},
		{
			name: "fecha inválida",
			yaml: "cycles:\n  - key: c\n    name: C\n    start: 01/01/2026\n    end: 2026-02-01\n",
			want: `cycle "c" start`,
		},
		{
			name: "stock insuficiente",
			yaml: `doctors: [{key: d, name: D}]
products: [{key: p, name: P}]
cycles: [{key: c, name: C, start: 2026-01-01, end: 2026-02-01, stock: {p: 1}}]
visits: [{doctor: d, cycle: c, date: 2026-01-02, deliveries: {p: 2}}]
`,
			want: "insufficient stock",
		},
		{
			name: "médico desconocido",
			yaml: "visits: [{doctor: x, cycle: c, date: 2026-01-02}]\n",
			want: `unknown doctor "x"`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx, err := Parse(strings.NewReader(tc.yaml))
			require.NoError(t, err)

			s := newServices()
			_, err = Apply(context.Background(), fx, s.doctors, s.products, s.ledger)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParse(t *testing.T) {
	_, err := Parse(strings.NewReader("doctors: [{key: d, nombre: D}]"))
	assert.Error(t, err, "campos desconocidos se rechazan")

	fx, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, fx.Doctors)
}
