// Package validation declares per-field request rules and the gate that turns
// collected rule failures into a 400 response.
//
// A Chain holds the ordered rules for one field. Mounted as a fiber handler it
// evaluates every rule, appends one FieldError per failed rule to the request
// and always continues. Gate runs after the chains and stops the request when
// anything was collected, so the route handler only ever sees valid input.
package validation

import (
	"productapi/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// Location names where a validated value was read from.
type Location string

const (
	LocationBody   Location = "body"
	LocationParams Location = "params"
)

const errorsLocalsKey = "validation_errors"

// FieldError is one failed rule as reported to the client.
type FieldError struct {
	Type     string      `json:"type"`
	Value    interface{} `json:"value,omitempty"`
	Msg      string      `json:"msg"`
	Path     string      `json:"path"`
	Location Location    `json:"location"`
}

// Predicate reports whether value satisfies a rule. present is false when the
// field was absent from the request.
type Predicate func(value interface{}, present bool) bool

type rule struct {
	check   Predicate
	message string
}

// Chain is the ordered rule list of a single field.
type Chain struct {
	field    string
	location Location
	rules    []rule
}

// Body starts a chain for a JSON body field.
func Body(field string) *Chain {
	return &Chain{field: field, location: LocationBody}
}

// Param starts a chain for a route parameter.
func Param(field string) *Chain {
	return &Chain{field: field, location: LocationParams}
}

// Check appends a custom rule.
func (ch *Chain) Check(p Predicate, message string) *Chain {
	ch.rules = append(ch.rules, rule{check: p, message: message})
	return ch
}

// NotEmpty requires the field to be present with a non-empty value.
func (ch *Chain) NotEmpty(message string) *Chain {
	return ch.Check(NotEmpty, message)
}

// IsNumeric requires a number or a numeric string.
func (ch *Chain) IsNumeric(message string) *Chain {
	return ch.Check(IsNumeric, message)
}

// IsInt requires an integer or an integer string.
func (ch *Chain) IsInt(message string) *Chain {
	return ch.Check(IsInt, message)
}

// IsBoolean requires a boolean or a boolean string.
func (ch *Chain) IsBoolean(message string) *Chain {
	return ch.Check(IsBoolean, message)
}

// GreaterThan requires a numeric value strictly above min.
func (ch *Chain) GreaterThan(min float64, message string) *Chain {
	return ch.Check(GreaterThan(min), message)
}

// MaxLength limits the value to max characters.
func (ch *Chain) MaxLength(max int, message string) *Chain {
	return ch.Check(MaxLength(max), message)
}

// Run evaluates every rule against the request and returns the failures in
// declaration order.
func (ch *Chain) Run(c *fiber.Ctx) []FieldError {
	value, present := ch.lookup(c)

	var failed []FieldError
	for _, r := range ch.rules {
		if r.check(value, present) {
			continue
		}
		failed = append(failed, FieldError{
			Type:     "field",
			Value:    value,
			Msg:      r.message,
			Path:     ch.field,
			Location: ch.location,
		})
	}
	return failed
}

// Handler mounts the chain as a pipeline stage that records failures and continues.
func (ch *Chain) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if failed := ch.Run(c); len(failed) > 0 {
			c.Locals(errorsLocalsKey, append(Errors(c), failed...))
		}
		return c.Next()
	}
}

func (ch *Chain) lookup(c *fiber.Ctx) (interface{}, bool) {
	switch ch.location {
	case LocationParams:
		v := utils.CopyString(c.Params(ch.field))
		return v, v != ""
	default:
		v, ok := middleware.Body(c)[ch.field]
		return v, ok
	}
}

// Errors returns the failures collected so far for the request.
func Errors(c *fiber.Ctx) []FieldError {
	if errs, ok := c.Locals(errorsLocalsKey).([]FieldError); ok {
		return errs
	}
	return nil
}

// Gate responds 400 with every collected failure, or hands over to the next
// stage when there are none.
func Gate(c *fiber.Ctx) error {
	if errs := Errors(c); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": errs,
		})
	}
	return c.Next()
}

// Pipeline orders the stages of a route: every chain, then the gate, then handler.
func Pipeline(handler fiber.Handler, chains ...*Chain) []fiber.Handler {
	stages := make([]fiber.Handler, 0, len(chains)+2)
	for _, ch := range chains {
		stages = append(stages, ch.Handler())
	}
	return append(stages, Gate, handler)
}
