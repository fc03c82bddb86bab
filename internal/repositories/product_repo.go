package repositories

import (
	"context"
	"errors"

	"productapi/internal/models"
)

var (
	// ErrProductNotFound is returned when no product matches the requested ID.
	ErrProductNotFound = errors.New("product not found")
	// ErrStoreUnavailable is returned by every operation of a store that could not be reached.
	ErrStoreUnavailable = errors.New("product store unavailable")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	ToggleAvailability(ctx context.Context, id uint) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
	Ping(ctx context.Context) error
}
