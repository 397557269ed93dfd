// Package seed carga datos de ejemplo desde un archivo YAML usando los servicios de dominio,
// así el stock pasa por las mismas validaciones que en la API.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"medistock/internal/domain/doctors"
	"medistock/internal/domain/ledger"
	"medistock/internal/domain/products"

	"gopkg.in/yaml.v3"
)

// Fixtures referencia entidades por Key (local al archivo), no por id.
type Fixtures struct {
	Doctors  []Doctor  `yaml:"doctors"`
	Products []Product `yaml:"products"`
	Cycles   []Cycle   `yaml:"cycles"`
	Visits   []Visit   `yaml:"visits"`
}

type Doctor struct {
	Key       string `yaml:"key"`
	Name      string `yaml:"name"`
	Specialty string `yaml:"specialty"`
	Phone     string `yaml:"phone"`
	Email     string `yaml:"email"`
	Interests string `yaml:"interests"`
}

type Product struct {
	Key              string `yaml:"key"`
	Name             string `yaml:"name"`
	Description      string `yaml:"description"`
	UniqueIdentifier string `yaml:"unique_identifier"`
}

type Cycle struct {
	Key                 string         `yaml:"key"`
	Name                string         `yaml:"name"`
	Start               string         `yaml:"start"`
	End                 string         `yaml:"end"`
	MarketingPriorities string         `yaml:"marketing_priorities"`
	Stock               map[string]int `yaml:"stock"` // product key -> cantidad
}

type Visit struct {
	Doctor     string         `yaml:"doctor"`
	Cycle      string         `yaml:"cycle"`
	Date       string         `yaml:"date"`
	Notes      string         `yaml:"notes"`
	Deliveries map[string]int `yaml:"deliveries"`
}

type DoctorCreator interface {
	Create(ctx context.Context, in doctors.Input) (doctors.Doctor, error)
}

type ProductCreator interface {
	Create(ctx context.Context, in products.Input) (products.Product, error)
}

type Ledger interface {
	CreateCycle(ctx context.Context, in ledger.CycleInput) (ledger.Cycle, error)
	CreateVisit(ctx context.Context, in ledger.VisitInput) (ledger.Visit, error)
}

type Result struct {
	Doctors  int
	Products int
	Cycles   int
	Visits   int
}

const dateLayout = "2006-01-02"

func LoadFile(path string) (Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fixtures{}, err
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (Fixtures, error) {
	var fx Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return Fixtures{}, fmt.Errorf("seed: decode yaml: %w", err)
	}
	return fx, nil
}

// Apply crea todo en orden: médicos, productos, ciclos y visitas.
// Se detiene en el primer error; lo ya creado queda creado.
func Apply(ctx context.Context, fx Fixtures, d DoctorCreator, p ProductCreator, l Ledger) (Result, error) {
	var res Result
	doctorIDs := map[string]string{}
	productIDs := map[string]string{}
	cycleIDs := map[string]string{}

	for _, in := range fx.Doctors {
		doc, err := d.Create(ctx, doctors.Input{
			Name:      in.Name,
			Specialty: in.Specialty,
			Phone:     in.Phone,
			Email:     in.Email,
			Interests: in.Interests,
		})
		if err != nil {
			return res, fmt.Errorf("seed: doctor %q: %w", in.Key, err)
		}
		doctorIDs[in.Key] = doc.ID
		res.Doctors++
	}

	for _, in := range fx.Products {
		prod, err := p.Create(ctx, products.Input{
			Name:             in.Name,
			Description:      in.Description,
			UniqueIdentifier: in.UniqueIdentifier,
		})
		if err != nil {
			return res, fmt.Errorf("seed: product %q: %w", in.Key, err)
		}
		productIDs[in.Key] = prod.ID
		res.Products++
	}

	for _, in := range fx.Cycles {
		start, err := time.Parse(dateLayout, in.Start)
		if err != nil {
			return res, fmt.Errorf("seed: cycle %q start: %w", in.Key, err)
		}
		end, err := time.Parse(dateLayout, in.End)
		if err != nil {
			return res, fmt.Errorf("seed: cycle %q end: %w", in.Key, err)
		}
		stock, err := resolve(productIDs, in.Stock)
		if err != nil {
			return res, fmt.Errorf("seed: cycle %q: %w", in.Key, err)
		}

		c, err := l.CreateCycle(ctx, ledger.CycleInput{
			Name:                in.Name,
			StartDate:           start,
			EndDate:             end,
			MarketingPriorities: in.MarketingPriorities,
			Stock:               toStock(stock),
		})
		if err != nil {
			return res, fmt.Errorf("seed: cycle %q: %w", in.Key, err)
		}
		cycleIDs[in.Key] = c.ID
		res.Cycles++
	}

	for i, in := range fx.Visits {
		date, err := time.Parse(dateLayout, in.Date)
		if err != nil {
			return res, fmt.Errorf("seed: visit #%d date: %w", i+1, err)
		}
		doctorID, ok := doctorIDs[in.Doctor]
		if !ok {
			return res, fmt.Errorf("seed: visit #%d: unknown doctor %q", i+1, in.Doctor)
		}
		cycleID, ok := cycleIDs[in.Cycle]
		if !ok {
			return res, fmt.Errorf("seed: visit #%d: unknown cycle %q", i+1, in.Cycle)
		}
		deliveries, err := resolve(productIDs, in.Deliveries)
		if err != nil {
			return res, fmt.Errorf("seed: visit #%d: %w", i+1, err)
		}

		if _, err := l.CreateVisit(ctx, ledger.VisitInput{
			DoctorID:   doctorID,
			CycleID:    cycleID,
			Date:       date,
			Notes:      in.Notes,
			Deliveries: toDeliveries(deliveries),
		}); err != nil {
			return res, fmt.Errorf("seed: visit #%d: %w", i+1, err)
		}
		res.Visits++
	}
	return res, nil
}

type idQty struct {
	id  string
	qty int
}

// resolve traduce keys de producto a ids. El orden no importa: el ledger completa el stock en orden de catálogo.
func resolve(ids map[string]string, byKey map[string]int) ([]idQty, error) {
	out := make([]idQty, 0, len(byKey))
	for key, q := range byKey {
		id, ok := ids[key]
		if !ok {
			return nil, fmt.Errorf("unknown product %q", key)
		}
		out = append(out, idQty{id: id, qty: q})
	}
	return out, nil
}

func toStock(in []idQty) []ledger.StockEntry {
	out := make([]ledger.StockEntry, 0, len(in))
	for _, e := range in {
		out = append(out, ledger.StockEntry{ProductID: e.id, Quantity: e.qty})
	}
	return out
}

func toDeliveries(in []idQty) []ledger.Delivery {
	out := make([]ledger.Delivery, 0, len(in))
	for _, e := range in {
		out = append(out, ledger.Delivery{ProductID: e.id, Quantity: e.qty})
	}
	return out
}
