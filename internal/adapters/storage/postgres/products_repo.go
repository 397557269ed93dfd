package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"medistock/internal/domain/products"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation            = "23505"
	productIdentifierIndexName = "products_unique_identifier_idx"
)

// mapProductErr traduce la violación del índice de identificador al error de dominio.
func mapProductErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == productIdentifierIndexName {
		return products.ErrDuplicateIdentifier
	}
	return err
}

// ProductsRepo cubre lecturas y Update. Alta y baja van por LedgerStore.Atomic.
type ProductsRepo struct {
	db *sql.DB
}

func NewProductsRepo(db *sql.DB) *ProductsRepo {
	return &ProductsRepo{db: db}
}

func (r *ProductsRepo) Update(ctx context.Context, p products.Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET
			name = $2,
			description = $3,
			unique_identifier = $4,
			updated_at = $5
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Description,
		p.UniqueIdentifier,
		p.UpdatedAt,
	)
	if err != nil {
		return mapProductErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return products.ErrNotFound
	}
	return nil
}

func (r *ProductsRepo) GetByID(ctx context.Context, id string) (products.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return products.Product{}, products.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, unique_identifier, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return products.Product{}, products.ErrNotFound
	}
	return p, err
}

func (r *ProductsRepo) List(ctx context.Context) ([]products.Product, error) {
	return listProducts(ctx, r.db)
}

// listProducts devuelve el catálogo en orden de alta.
func listProducts(ctx context.Context, q queryer) ([]products.Product, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, description, unique_identifier, created_at, updated_at
		FROM products
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]products.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(s scanner) (products.Product, error) {
	var p products.Product
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.UniqueIdentifier,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
