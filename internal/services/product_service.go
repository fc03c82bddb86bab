package services

import (
	"context"
	"time"

	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventPublisher delivers product events to interested consumers.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	log       zerolog.Logger
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log zerolog.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		log:       log.With().Str("component", "product_service").Logger(),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct stores a new product. The store assigns the ID.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}
	s.log.Info().Uint("product_id", product.ID).Msg("product created")
	s.publish(models.EventProductCreated, product.ID, product)
	return nil
}

// UpdateProduct overwrites name, price and availability of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}
	s.log.Info().Uint("product_id", product.ID).Msg("product updated")
	s.publish(models.EventProductUpdated, product.ID, product)
	return nil
}

// ToggleAvailability flips the availability flag of a product.
func (s *ProductService) ToggleAvailability(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.ToggleAvailability(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Uint("product_id", id).
		Bool("availability", product.Availability).
		Msg("product availability toggled")
	s.publish(models.EventProductAvailabilityToggled, id, product)
	return product, nil
}

// DeleteProduct permanently deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("product_id", id).Msg("product deleted")
	s.publish(models.EventProductDeleted, id, nil)
	return nil
}

// Ping reports whether the product store is reachable.
func (s *ProductService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// publish emits an event after a committed mutation. Failures are logged and
// never undo the mutation.
func (s *ProductService) publish(eventType models.EventType, productID uint, product *models.Product) {
	if s.publisher == nil {
		return
	}

	var snapshot *models.Product
	if product != nil {
		p := *product
		snapshot = &p
	}

	event := models.ProductEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		ProductID:  productID,
		Product:    snapshot,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		s.log.Warn().Err(err).
			Str("event_type", string(eventType)).
			Uint("product_id", productID).
			Msg("failed to publish product event")
	}
}
