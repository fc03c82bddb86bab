package middleware

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

const bodyLocalsKey = "json_body"

// ErrMalformedJSON is returned for JSON bodies that cannot be decoded.
var ErrMalformedJSON = fiber.NewError(fiber.StatusBadRequest, "malformed JSON body")

// JSONBody decodes JSON request bodies into a generic field map once per
// request so validation rules can inspect raw values, including ones of the
// wrong type. Requests without a JSON content type get an empty map.
func JSONBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fields, err := decodeFields(c)
		if err != nil {
			return err
		}
		c.Locals(bodyLocalsKey, fields)
		return c.Next()
	}
}

// Body returns the decoded request body fields. It decodes lazily when the
// JSONBody middleware did not run, and never returns nil. A malformed body
// yields no fields here; JSONBody is the stage that rejects it.
func Body(c *fiber.Ctx) map[string]interface{} {
	if fields, ok := c.Locals(bodyLocalsKey).(map[string]interface{}); ok {
		return fields
	}

	fields, err := decodeFields(c)
	if err != nil {
		fields = map[string]interface{}{}
	}
	c.Locals(bodyLocalsKey, fields)
	return fields
}

func decodeFields(c *fiber.Ctx) (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	raw := bytes.TrimSpace(c.Body())
	if len(raw) == 0 || !c.Is("json") {
		return fields, nil
	}

	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, ErrMalformedJSON
	}
	// Arrays and scalars carry no named fields.
	if obj, ok := decoded.(map[string]interface{}); ok {
		fields = obj
	}
	return fields, nil
}
