package doctors

import "time"

// Doctor es un médico del catálogo visitado por el representante.
type Doctor struct {
	ID string

	Name      string
	Specialty string
	Phone     string
	Email     string
	Interests string // texto libre, se usa para las sugerencias

	CreatedAt time.Time
	UpdatedAt time.Time
}
