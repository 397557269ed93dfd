package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"medistock/internal/domain/doctors"
)

type DoctorsRepo struct {
	db *sql.DB
}

func NewDoctorsRepo(db *sql.DB) *DoctorsRepo {
	return &DoctorsRepo{db: db}
}

func (r *DoctorsRepo) Create(ctx context.Context, d doctors.Doctor) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO doctors (
			id, name, specialty, phone, email, interests,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		d.ID,
		d.Name,
		d.Specialty,
		d.Phone,
		d.Email,
		d.Interests,
		d.CreatedAt,
		d.UpdatedAt,
	)
	return err
}

func (r *DoctorsRepo) Update(ctx context.Context, d doctors.Doctor) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE doctors
		SET
			name = $2,
			specialty = $3,
			phone = $4,
			email = $5,
			interests = $6,
			updated_at = $7
		WHERE id = $1
	`,
		d.ID,
		d.Name,
		d.Specialty,
		d.Phone,
		d.Email,
		d.Interests,
		d.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return doctors.ErrNotFound
	}
	return nil
}

func (r *DoctorsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return doctors.ErrNotFound
	}
	return nil
}

func (r *DoctorsRepo) GetByID(ctx context.Context, id string) (doctors.Doctor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return doctors.Doctor{}, doctors.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, specialty, phone, email, interests, created_at, updated_at
		FROM doctors
		WHERE id = $1
	`, id)

	d, err := scanDoctor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return doctors.Doctor{}, doctors.ErrNotFound
	}
	return d, err
}

func (r *DoctorsRepo) List(ctx context.Context) ([]doctors.Doctor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, specialty, phone, email, interests, created_at, updated_at
		FROM doctors
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]doctors.Doctor, 0)
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDoctor(s scanner) (doctors.Doctor, error) {
	var d doctors.Doctor
	err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Specialty,
		&d.Phone,
		&d.Email,
		&d.Interests,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}
