package models

import "time"

// ProductNameMaxLength is the width of the name column.
const ProductNameMaxLength = 100

// Product represents a product in the store.
type Product struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Price        float64   `json:"price" gorm:"not null"`
	Availability bool      `json:"availability" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName pins the table name so the sqlite and postgres schemas match.
func (Product) TableName() string {
	return "products"
}
