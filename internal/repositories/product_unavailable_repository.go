package repositories

import (
	"context"
	"fmt"

	"productapi/internal/models"
)

// UnavailableProductRepository stands in for a store that could not be reached
// at startup. Every call fails with ErrStoreUnavailable so the process can keep
// serving while the store is down.
type UnavailableProductRepository struct {
	cause error
}

// NewUnavailableProductRepository wraps the connection error that made the store unusable.
func NewUnavailableProductRepository(cause error) *UnavailableProductRepository {
	return &UnavailableProductRepository{cause: cause}
}

func (r *UnavailableProductRepository) err() error {
	if r.cause == nil {
		return ErrStoreUnavailable
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, r.cause)
}

func (r *UnavailableProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	return nil, r.err()
}

func (r *UnavailableProductRepository) GetByID(_ context.Context, _ uint) (*models.Product, error) {
	return nil, r.err()
}

func (r *UnavailableProductRepository) Create(_ context.Context, _ *models.Product) error {
	return r.err()
}

func (r *UnavailableProductRepository) Update(_ context.Context, _ *models.Product) error {
	return r.err()
}

func (r *UnavailableProductRepository) ToggleAvailability(_ context.Context, _ uint) (*models.Product, error) {
	return nil, r.err()
}

func (r *UnavailableProductRepository) Delete(_ context.Context, _ uint) error {
	return r.err()
}

func (r *UnavailableProductRepository) Ping(_ context.Context) error {
	return r.err()
}
