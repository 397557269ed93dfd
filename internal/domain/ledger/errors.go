package ledger

import (
	"errors"
	"fmt"

	"medistock/internal/domain/doctors"
	"medistock/internal/domain/products"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrCycleNotFound     = errors.New("cycle not found")
	ErrVisitNotFound     = errors.New("visit not found")
	ErrNegativeQuantity  = errors.New("negative quantity")
	ErrInvalidDateRange  = errors.New("end date before start date")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrConcurrentChange  = errors.New("visit changed concurrently, retry")

	// Compartidos con el catálogo para que los handlers mapeen igual.
	ErrProductNotFound = products.ErrNotFound
	ErrDoctorNotFound  = doctors.ErrNotFound
)

// InsufficientStockError indica que una entrega supera el stock disponible del ciclo.
type InsufficientStockError struct {
	CycleID     string
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d", name, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

func productNotFound(id string) error {
	return fmt.Errorf("%w: %s", ErrProductNotFound, id)
}

func negativeQuantity(productID string, qty int) error {
	return fmt.Errorf("%w: product %s has %d", ErrNegativeQuantity, productID, qty)
}

func quantityTooLarge(productID string, qty int) error {
	return fmt.Errorf("%w: product %s quantity %d exceeds %d", ErrInvalidInput, productID, qty, maxQuantity)
}
