// Package file persiste el store en memoria como un único documento JSON
// (medistock.json) dentro de un directorio. Cada commit reemplaza el documento
// completo con un solo rename, así que en disco nunca conviven colecciones de
// commits distintos.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"medistock/internal/adapters/storage/memory"
	"medistock/internal/domain/doctors"
	"medistock/internal/domain/ledger"
	"medistock/internal/domain/products"
)

const dataFile = "medistock.json"

// Formato anterior, un archivo por colección. Solo se lee si falta dataFile.
const (
	legacyDoctorsFile  = "doctors.json"
	legacyProductsFile = "products.json"
	legacyCyclesFile   = "cycles.json"
	legacyVisitsFile   = "visits.json"
)

var legacyFiles = []string{legacyDoctorsFile, legacyProductsFile, legacyCyclesFile, legacyVisitsFile}

// Open carga dir (lo crea si no existe) y devuelve un memory.Store que
// reescribe el documento en cada escritura confirmada.
func Open(dir string) (*memory.Store, error) {
	return open(dir, &writer{dir: dir, rename: os.Rename})
}

func open(dir string, w *writer) (*memory.Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	snap, err := load(dir)
	if err != nil {
		return nil, err
	}
	return memory.NewFromSnapshot(snap, w.save), nil
}

type document struct {
	Doctors  []doctorDoc  `json:"doctors"`
	Products []productDoc `json:"products"`
	Cycles   []cycleDoc   `json:"cycles"`
	Visits   []visitDoc   `json:"visits"`
}

type doctorDoc struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Interests string    `json:"interests,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type productDoc struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	UniqueIdentifier string    `json:"unique_identifier,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type quantityDoc struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type cycleDoc struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	StartDate           time.Time     `json:"start_date"`
	EndDate             time.Time     `json:"end_date"`
	MarketingPriorities string        `json:"marketing_priorities,omitempty"`
	Stock               []quantityDoc `json:"stock"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

type visitDoc struct {
	ID         string        `json:"id"`
	DoctorID   string        `json:"doctor_id"`
	CycleID    string        `json:"cycle_id"`
	Date       time.Time     `json:"date"`
	Notes      string        `json:"notes,omitempty"`
	Deliveries []quantityDoc `json:"deliveries"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func load(dir string) (memory.Snapshot, error) {
	doc, err := readDocument(dir)
	if err != nil {
		return memory.Snapshot{}, err
	}
	ds, ps, cs, vs := doc.Doctors, doc.Products, doc.Cycles, doc.Visits

	snap := memory.Snapshot{
		Doctors:  make([]doctors.Doctor, 0, len(ds)),
		Products: make([]products.Product, 0, len(ps)),
		Cycles:   make([]ledger.Cycle, 0, len(cs)),
		Visits:   make([]ledger.Visit, 0, len(vs)),
	}
	for _, d := range ds {
		snap.Doctors = append(snap.Doctors, doctors.Doctor(d))
	}
	for _, p := range ps {
		snap.Products = append(snap.Products, products.Product(p))
	}
	for _, c := range cs {
		cycle := ledger.Cycle{
			ID:                  c.ID,
			Name:                c.Name,
			StartDate:           c.StartDate,
			EndDate:             c.EndDate,
			MarketingPriorities: c.MarketingPriorities,
			Stock:               make([]ledger.StockEntry, 0, len(c.Stock)),
			CreatedAt:           c.CreatedAt,
			UpdatedAt:           c.UpdatedAt,
		}
		for _, q := range c.Stock {
			cycle.Stock = append(cycle.Stock, ledger.StockEntry(q))
		}
		snap.Cycles = append(snap.Cycles, cycle)
	}
	for _, v := range vs {
		visit := ledger.Visit{
			ID:         v.ID,
			DoctorID:   v.DoctorID,
			CycleID:    v.CycleID,
			Date:       v.Date,
			Notes:      v.Notes,
			Deliveries: make([]ledger.Delivery, 0, len(v.Deliveries)),
			CreatedAt:  v.CreatedAt,
			UpdatedAt:  v.UpdatedAt,
		}
		for _, q := range v.Deliveries {
			visit.Deliveries = append(visit.Deliveries, ledger.Delivery(q))
		}
		snap.Visits = append(snap.Visits, visit)
	}
	return snap, nil
}

// readDocument lee dataFile. Si no existe, arma el documento con los archivos
// del formato anterior que haya.
func readDocument(dir string) (document, error) {
	var doc document
	ok, err := readJSON(filepath.Join(dir, dataFile), &doc)
	if err != nil || ok {
		return doc, err
	}

	for name, dst := range map[string]any{
		legacyDoctorsFile:  &doc.Doctors,
		legacyProductsFile: &doc.Products,
		legacyCyclesFile:   &doc.Cycles,
		legacyVisitsFile:   &doc.Visits,
	} {
		if _, err := readJSON(filepath.Join(dir, name), dst); err != nil {
			return document{}, err
		}
	}
	return doc, nil
}

// readJSON devuelve false y deja dst intacto si el archivo no existe o está vacío.
func readJSON(path string, dst any) (bool, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && len(b) == 0) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return true, nil
}

type writer struct {
	dir    string
	rename func(oldpath, newpath string) error
}

// save serializa el snapshot entero en un temporal y lo renombra sobre
// dataFile. Si falla, el documento anterior queda intacto.
func (w *writer) save(_ context.Context, snap memory.Snapshot) error {
	doc := document{
		Doctors:  make([]doctorDoc, 0, len(snap.Doctors)),
		Products: make([]productDoc, 0, len(snap.Products)),
		Cycles:   make([]cycleDoc, 0, len(snap.Cycles)),
		Visits:   make([]visitDoc, 0, len(snap.Visits)),
	}
	for _, d := range snap.Doctors {
		doc.Doctors = append(doc.Doctors, doctorDoc(d))
	}
	for _, p := range snap.Products {
		doc.Products = append(doc.Products, productDoc(p))
	}
	for _, c := range snap.Cycles {
		cd := cycleDoc{
			ID:                  c.ID,
			Name:                c.Name,
			StartDate:           c.StartDate,
			EndDate:             c.EndDate,
			MarketingPriorities: c.MarketingPriorities,
			Stock:               make([]quantityDoc, 0, len(c.Stock)),
			CreatedAt:           c.CreatedAt,
			UpdatedAt:           c.UpdatedAt,
		}
		for _, e := range c.Stock {
			cd.Stock = append(cd.Stock, quantityDoc(e))
		}
		doc.Cycles = append(doc.Cycles, cd)
	}
	for _, v := range snap.Visits {
		vd := visitDoc{
			ID:         v.ID,
			DoctorID:   v.DoctorID,
			CycleID:    v.CycleID,
			Date:       v.Date,
			Notes:      v.Notes,
			Deliveries: make([]quantityDoc, 0, len(v.Deliveries)),
			CreatedAt:  v.CreatedAt,
			UpdatedAt:  v.UpdatedAt,
		}
		for _, d := range v.Deliveries {
			vd.Deliveries = append(vd.Deliveries, quantityDoc(d))
		}
		doc.Visits = append(doc.Visits, vd)
	}

	if err := w.writeJSON(filepath.Join(w.dir, dataFile), doc); err != nil {
		return err
	}

	// Ya migrado: los archivos viejos no se vuelven a leer.
	for _, name := range legacyFiles {
		_ = os.Remove(filepath.Join(w.dir, name))
	}
	return nil
}

func (w *writer) writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := w.rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return syncDir(filepath.Dir(path))
}

// syncDir asienta el rename en el directorio.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
