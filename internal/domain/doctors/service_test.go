package doctors

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Doctor
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Doctor{}}
}

func (r *testRepo) Create(ctx context.Context, d Doctor) error {
	if _, ok := r.byID[d.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[d.ID] = d
	return nil
}

func (r *testRepo) Update(ctx context.Context, d Doctor) error {
	if _, ok := r.byID[d.ID]; !ok {
		return ErrNotFound
	}
	r.byID[d.ID] = d
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Doctor, error) {
	d, ok := r.byID[id]
	if !ok {
		return Doctor{}, ErrNotFound
	}
	return d, nil
}

func (r *testRepo) List(ctx context.Context) ([]Doctor, error) {
	out := make([]Doctor, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_TrimsAndRequiresName(t *testing.T) {
	svc := NewService(newTestRepo())
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if _, err := svc.Create(context.Background(), Input{Name: "   "}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	d, err := svc.Create(context.Background(), Input{Name: "  Dra. Pérez ", Interests: " cardiología "})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if d.ID == "" || d.Name != "Dra. Pérez" || d.Interests != "cardiología" {
		t.Fatalf("unexpected doctor: %#v", d)
	}
	if d.CreatedAt != now || d.UpdatedAt != now {
		t.Fatalf("expected timestamps to be now")
	}
}

func TestService_Create_RejectsMalformedEmail(t *testing.T) {
	svc := NewService(newTestRepo())
	if _, err := svc.Create(context.Background(), Input{Name: "Dr. Ruiz", Email: "ruiz"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Update_ReplacesFields(t *testing.T) {
	svc := NewService(newTestRepo())
	d, _ := svc.Create(context.Background(), Input{Name: "Dr. Ruiz", Phone: "123"})

	later := d.CreatedAt.Add(time.Hour)
	svc.now = func() time.Time { return later }

	updated, err := svc.Update(context.Background(), d.ID, Input{Name: "Dr. Ruiz", Specialty: "Pediatría"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Phone != "" || updated.Specialty != "Pediatría" {
		t.Fatalf("expected PUT semantics, got %#v", updated)
	}
	if updated.UpdatedAt != later || updated.CreatedAt != d.CreatedAt {
		t.Fatalf("unexpected timestamps: %#v", updated)
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc := NewService(newTestRepo())
	if _, err := svc.Update(context.Background(), "missing", Input{Name: "X"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_List_SortedByName(t *testing.T) {
	svc := NewService(newTestRepo())
	for _, n := range []string{"Zapata", "Ávila", "Núñez", "Benítez"} {
		if _, err := svc.Create(context.Background(), Input{Name: n}); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	got := make([]string, 0, len(items))
	for _, d := range items {
		got = append(got, d.Name)
	}
	want := []string{"Ávila", "Benítez", "Núñez", "Zapata"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
