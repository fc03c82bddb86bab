package handlers

import (
	"fmt"

	"productapi/internal/models"
	"productapi/internal/validation"
)

// Messages returned by the product validation rules.
const (
	MsgInvalidID           = "invalid ID"
	MsgNameEmpty           = "name cannot be empty"
	MsgPriceNotNumeric     = "invalid value"
	MsgPriceEmpty          = "price cannot be empty"
	MsgPriceInvalid        = "invalid price"
	MsgAvailabilityInvalid = "invalid availability value"
)

// MsgNameTooLong is reported for names wider than the name column.
var MsgNameTooLong = fmt.Sprintf("name cannot exceed %d characters", models.ProductNameMaxLength)

// Chains are built per route so their rule lists are never shared.

func idRule() *validation.Chain {
	return validation.Param("id").IsInt(MsgInvalidID)
}

func nameRule() *validation.Chain {
	return validation.Body("name").
		NotEmpty(MsgNameEmpty).
		MaxLength(models.ProductNameMaxLength, MsgNameTooLong)
}

func priceRule() *validation.Chain {
	return validation.Body("price").
		IsNumeric(MsgPriceNotNumeric).
		NotEmpty(MsgPriceEmpty).
		GreaterThan(0, MsgPriceInvalid)
}

func availabilityRule() *validation.Chain {
	return validation.Body("availability").IsBoolean(MsgAvailabilityInvalid)
}

func createRules() []*validation.Chain {
	return []*validation.Chain{nameRule(), priceRule()}
}

func updateRules() []*validation.Chain {
	return []*validation.Chain{idRule(), nameRule(), priceRule(), availabilityRule()}
}

func idRules() []*validation.Chain {
	return []*validation.Chain{idRule()}
}
