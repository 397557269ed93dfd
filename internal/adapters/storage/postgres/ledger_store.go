package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"medistock/internal/domain/ledger"
	"medistock/internal/domain/products"
)

// LedgerStore implementa ledger.Store. Cada Atomic es una transacción y las
// lecturas de ciclos y visitas dentro de ella toman FOR UPDATE, así dos
// procesos no pisan la misma fila.
type LedgerStore struct {
	db *sql.DB
}

var _ ledger.Store = (*LedgerStore)(nil)

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) GetCycle(ctx context.Context, id string) (ledger.Cycle, error) {
	return getCycle(ctx, s.db, id, false)
}

func (s *LedgerStore) ListCycles(ctx context.Context) ([]ledger.Cycle, error) {
	return listCycles(ctx, s.db, false)
}

func (s *LedgerStore) GetVisit(ctx context.Context, id string) (ledger.Visit, error) {
	return getVisit(ctx, s.db, id, false)
}

func (s *LedgerStore) ListVisits(ctx context.Context, f ledger.VisitFilter) ([]ledger.Visit, error) {
	return listVisits(ctx, s.db, f)
}

func (s *LedgerStore) ListProducts(ctx context.Context) ([]products.Product, error) {
	return listProducts(ctx, s.db)
}

func (s *LedgerStore) Atomic(ctx context.Context, fn func(tx ledger.Tx) error) (err error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = sqlTx.Rollback()
		}
	}()

	if err = fn(&pgTx{q: sqlTx}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

type pgTx struct {
	q queryer
}

func (t *pgTx) GetCycle(ctx context.Context, id string) (ledger.Cycle, error) {
	return getCycle(ctx, t.q, id, true)
}

func (t *pgTx) ListCycles(ctx context.Context) ([]ledger.Cycle, error) {
	return listCycles(ctx, t.q, true)
}

func (t *pgTx) PutCycle(ctx context.Context, c ledger.Cycle) error {
	_, err := t.q.ExecContext(ctx, `
		INSERT INTO cycles (
			id, name, start_date, end_date, marketing_priorities,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			marketing_priorities = EXCLUDED.marketing_priorities,
			updated_at = EXCLUDED.updated_at
	`,
		c.ID,
		c.Name,
		c.StartDate,
		c.EndDate,
		c.MarketingPriorities,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if _, err := t.q.ExecContext(ctx, `DELETE FROM cycle_stock WHERE cycle_id = $1`, c.ID); err != nil {
		return err
	}
	for i, e := range c.Stock {
		if _, err := t.q.ExecContext(ctx, `
			INSERT INTO cycle_stock (cycle_id, product_id, position, quantity)
			VALUES ($1,$2,$3,$4)
		`, c.ID, e.ProductID, i, e.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// DeleteCycle borra el ciclo; cycle_stock cae por cascada.
func (t *pgTx) DeleteCycle(ctx context.Context, id string) error {
	res, err := t.q.ExecContext(ctx, `DELETE FROM cycles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ledger.ErrCycleNotFound
	}
	return nil
}

// GetVisit bloquea la fila hasta el fin de la transacción, así dos bajas o
// ediciones de la misma visita no devuelven su stock dos veces.
func (t *pgTx) GetVisit(ctx context.Context, id string) (ledger.Visit, error) {
	return getVisit(ctx, t.q, id, true)
}

func (t *pgTx) PutVisit(ctx context.Context, v ledger.Visit) error {
	_, err := t.q.ExecContext(ctx, `
		INSERT INTO visits (
			id, doctor_id, cycle_id, visit_date, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET
			doctor_id = EXCLUDED.doctor_id,
			cycle_id = EXCLUDED.cycle_id,
			visit_date = EXCLUDED.visit_date,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
	`,
		v.ID,
		v.DoctorID,
		v.CycleID,
		v.Date,
		v.Notes,
		v.CreatedAt,
		v.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if _, err := t.q.ExecContext(ctx, `DELETE FROM visit_deliveries WHERE visit_id = $1`, v.ID); err != nil {
		return err
	}
	for i, d := range v.Deliveries {
		if _, err := t.q.ExecContext(ctx, `
			INSERT INTO visit_deliveries (visit_id, product_id, position, quantity)
			VALUES ($1,$2,$3,$4)
		`, v.ID, d.ProductID, i, d.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (t *pgTx) DeleteVisit(ctx context.Context, id string) error {
	res, err := t.q.ExecContext(ctx, `DELETE FROM visits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ledger.ErrVisitNotFound
	}
	return nil
}

func (t *pgTx) DeleteVisitsByCycle(ctx context.Context, cycleID string) (int, error) {
	res, err := t.q.ExecContext(ctx, `DELETE FROM visits WHERE cycle_id = $1`, cycleID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (t *pgTx) ListProducts(ctx context.Context) ([]products.Product, error) {
	return listProducts(ctx, t.q)
}

func (t *pgTx) CreateProduct(ctx context.Context, p products.Product) error {
	_, err := t.q.ExecContext(ctx, `
		INSERT INTO products (
			id, name, description, unique_identifier,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		p.ID,
		p.Name,
		p.Description,
		p.UniqueIdentifier,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return mapProductErr(err)
}

func (t *pgTx) DeleteProduct(ctx context.Context, id string) error {
	res, err := t.q.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return products.ErrNotFound
	}
	return nil
}

const cycleColumns = `id, name, start_date, end_date, marketing_priorities, created_at, updated_at`

func getCycle(ctx context.Context, q queryer, id string, forUpdate bool) (ledger.Cycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM cycles WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	c, err := scanCycle(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Cycle{}, ledger.ErrCycleNotFound
	}
	if err != nil {
		return ledger.Cycle{}, err
	}

	stock, err := loadStock(ctx, q, id)
	if err != nil {
		return ledger.Cycle{}, err
	}
	c.Stock = stock[id]
	if c.Stock == nil {
		c.Stock = []ledger.StockEntry{}
	}
	return c, nil
}

func listCycles(ctx context.Context, q queryer, forUpdate bool) ([]ledger.Cycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM cycles ORDER BY created_at ASC, id ASC`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]ledger.Cycle, 0)
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	stock, err := loadStock(ctx, q, "")
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Stock = stock[out[i].ID]
		if out[i].Stock == nil {
			out[i].Stock = []ledger.StockEntry{}
		}
	}
	return out, nil
}

// loadStock devuelve el stock por ciclo en orden de posición. cycleID vacío trae todos.
func loadStock(ctx context.Context, q queryer, cycleID string) (map[string][]ledger.StockEntry, error) {
	query := `SELECT cycle_id, product_id, quantity FROM cycle_stock`
	var args []any
	if cycleID != "" {
		query += ` WHERE cycle_id = $1`
		args = append(args, cycleID)
	}
	query += ` ORDER BY cycle_id, position`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]ledger.StockEntry)
	for rows.Next() {
		var cid string
		var e ledger.StockEntry
		if err := rows.Scan(&cid, &e.ProductID, &e.Quantity); err != nil {
			return nil, err
		}
		out[cid] = append(out[cid], e)
	}
	return out, rows.Err()
}

func scanCycle(s scanner) (ledger.Cycle, error) {
	var c ledger.Cycle
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.StartDate,
		&c.EndDate,
		&c.MarketingPriorities,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

const visitColumns = `id, doctor_id, cycle_id, visit_date, notes, created_at, updated_at`

func getVisit(ctx context.Context, q queryer, id string, forUpdate bool) (ledger.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	v, err := scanVisit(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Visit{}, ledger.ErrVisitNotFound
	}
	if err != nil {
		return ledger.Visit{}, err
	}

	deliveries, err := loadDeliveries(ctx, q, []string{id})
	if err != nil {
		return ledger.Visit{}, err
	}
	v.Deliveries = deliveries[id]
	return v, nil
}

func listVisits(ctx context.Context, q queryer, f ledger.VisitFilter) ([]ledger.Visit, error) {
	var (
		where []string
		args  []any
	)
	if f.CycleID != "" {
		args = append(args, f.CycleID)
		where = append(where, "cycle_id = $"+strconv.Itoa(len(args)))
	}
	if f.DoctorID != "" {
		args = append(args, f.DoctorID)
		where = append(where, "doctor_id = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + visitColumns + ` FROM visits`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY visit_date DESC, id ASC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out := make([]ledger.Visit, 0)
	ids := make([]string, 0)
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, v)
		ids = append(ids, v.ID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(ids) == 0 {
		return out, nil
	}
	deliveries, err := loadDeliveries(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Deliveries = deliveries[out[i].ID]
	}
	return out, nil
}

func loadDeliveries(ctx context.Context, q queryer, visitIDs []string) (map[string][]ledger.Delivery, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT visit_id, product_id, quantity
		FROM visit_deliveries
		WHERE visit_id = ANY($1)
		ORDER BY visit_id, position
	`, visitIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]ledger.Delivery)
	for rows.Next() {
		var vid string
		var d ledger.Delivery
		if err := rows.Scan(&vid, &d.ProductID, &d.Quantity); err != nil {
			return nil, err
		}
		out[vid] = append(out[vid], d)
	}
	return out, rows.Err()
}

func scanVisit(s scanner) (ledger.Visit, error) {
	var v ledger.Visit
	err := s.Scan(
		&v.ID,
		&v.DoctorID,
		&v.CycleID,
		&v.Date,
		&v.Notes,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}
