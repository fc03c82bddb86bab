package models

import "time"

// EventType names a product lifecycle event.
type EventType string

const (
	EventProductCreated             EventType = "product.created"
	EventProductUpdated             EventType = "product.updated"
	EventProductAvailabilityToggled EventType = "product.availability_toggled"
	EventProductDeleted             EventType = "product.deleted"
)

// ProductEvent is emitted after a product mutation has been committed.
type ProductEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	ProductID  uint      `json:"product_id"`
	Product    *Product  `json:"product,omitempty"` // Snapshot after the change, nil for deletions
	OccurredAt time.Time `json:"occurred_at"`
}
