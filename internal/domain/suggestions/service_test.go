package suggestions

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"medistock/internal/domain/doctors"
	"medistock/internal/domain/ledger"
	"medistock/internal/domain/products"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDoctors map[string]doctors.Doctor

func (f fakeDoctors) GetByID(_ context.Context, id string) (doctors.Doctor, error) {
	d, ok := f[id]
	if !ok {
		return doctors.Doctor{}, doctors.ErrNotFound
	}
	return d, nil
}

type fakeCycles map[string]ledger.Cycle

func (f fakeCycles) GetCycle(_ context.Context, id string) (ledger.Cycle, error) {
	c, ok := f[id]
	if !ok {
		return ledger.Cycle{}, ledger.ErrCycleNotFound
	}
	return c, nil
}

type fakeProducts []products.Product

func (f fakeProducts) List(context.Context) ([]products.Product, error) { return f, nil }

type captureSuggester struct {
	got Request
	res Result
	err error
}

func (c *captureSuggester) Suggest(_ context.Context, req Request) (Result, error) {
	c.got = req
	return c.res, c.err
}

func fixture(s Suggester) *Service {
	return NewService(
		fakeDoctors{
			"d1": {ID: "d1", Name: "Dra. Pérez", Interests: "Cardiología"},
			"d2": {ID: "d2", Name: "Dr. Ruiz"},
		},
		fakeCycles{
			"c1": {ID: "c1", MarketingPriorities: "Lanzamiento X", Stock: []ledger.StockEntry{
				{ProductID: "p1", Quantity: 10},
				{ProductID: "p2", Quantity: 0},
				{ProductID: "p3", Quantity: 4},
				{ProductID: "gone", Quantity: 7},
			}},
			"c2": {ID: "c2"},
		},
		fakeProducts{
			{ID: "p1", Name: "Amoxil", Description: "Antibiótico"},
			{ID: "p2", Name: "Sin stock", Description: "x"},
			{ID: "p3", Name: "Vitamina D"},
		},
		s,
		nil,
	)
}

func TestForDoctor_BuildsRequest(t *testing.T) {
	sg := &captureSuggester{res: Result{SuggestedProducts: []string{"Amoxil"}, Reasoning: "ok"}}
	svc := fixture(sg)

	res, err := svc.ForDoctor(context.Background(), "d1", "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Amoxil"}, res.SuggestedProducts)

	assert.Equal(t, Request{
		DoctorID: "d1",
		CycleID:  "c1",
		AvailableProducts: []string{
			"Amoxil (Stock: 10): Antibiótico",
			"Vitamina D (Stock: 4): Sin descripción.",
		},
		DoctorInterests:     "Cardiología",
		MarketingPriorities: "Lanzamiento X",
	}, sg.got)
}

func TestForDoctor_Defaults(t *testing.T) {
	sg := &captureSuggester{}
	svc := fixture(sg)

	res, err := svc.ForDoctor(context.Background(), "d2", "c2")
	require.NoError(t, err)
	assert.NotNil(t, res.SuggestedProducts)
	assert.Empty(t, sg.got.AvailableProducts)
	assert.Equal(t, defaultInterests, sg.got.DoctorInterests)
	assert.Equal(t, defaultPriorities, sg.got.MarketingPriorities)
}

func TestForDoctor_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := fixture(nil).ForDoctor(ctx, "d1", "c1")
	assert.ErrorIs(t, err, ErrDisabled)

	svc := fixture(&captureSuggester{err: errors.New("quota")})
	_, err = svc.ForDoctor(ctx, "d1", "c1")
	assert.ErrorIs(t, err, ErrSuggestionFailed)
	assert.Contains(t, err.Error(), "quota")

	_, err = svc.ForDoctor(ctx, "nope", "c1")
	assert.ErrorIs(t, err, doctors.ErrNotFound)
	_, err = svc.ForDoctor(ctx, "d1", "nope")
	assert.ErrorIs(t, err, ledger.ErrCycleNotFound)
	_, err = svc.ForDoctor(ctx, " ", "c1")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHandler(t *testing.T) {
	pass := func(next http.Handler) http.Handler { return next }

	cases := []struct {
		name string
		svc  *Service
		body string
		code int
	}{
		{"ok", fixture(&captureSuggester{res: Result{Reasoning: "r"}}), `{"doctor_id":"d1","cycle_id":"c1"}`, http.StatusOK},
		{"json inválido", fixture(&captureSuggester{}), `{`, http.StatusBadRequest},
		{"médico inexistente", fixture(&captureSuggester{}), `{"doctor_id":"x","cycle_id":"c1"}`, http.StatusNotFound},
		{"deshabilitado", fixture(nil), `{"doctor_id":"d1","cycle_id":"c1"}`, http.StatusServiceUnavailable},
		{"proveedor falla", fixture(&captureSuggester{err: errors.New("x")}), `{"doctor_id":"d1","cycle_id":"c1"}`, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := chi.NewRouter()
			RegisterRoutes(r, tc.svc, pass)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/suggestions", bytes.NewBufferString(tc.body)))
			assert.Equal(t, tc.code, rec.Code, rec.Body.String())
		})
	}
}
