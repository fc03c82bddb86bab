package validation_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"productapi/internal/middleware"
	"productapi/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		name    string
		pred    validation.Predicate
		value   interface{}
		present bool
		want    bool
	}{
		{"not empty string", validation.NotEmpty, "mouse", true, true},
		{"not empty zero", validation.NotEmpty, float64(0), true, true},
		{"not empty blank", validation.NotEmpty, "", true, false},
		{"not empty null", validation.NotEmpty, nil, true, false},
		{"not empty absent", validation.NotEmpty, nil, false, false},
		{"numeric number", validation.IsNumeric, float64(-100), true, true},
		{"numeric decimal string", validation.IsNumeric, "12.50", true, true},
		{"numeric word", validation.IsNumeric, "ten", true, false},
		{"numeric leading dot", validation.IsNumeric, ".5", true, true},
		{"numeric signed", validation.IsNumeric, "+3", true, true},
		{"numeric trailing dot", validation.IsNumeric, "5.", true, false},
		{"numeric exponent", validation.IsNumeric, "1e3", true, false},
		{"numeric bool", validation.IsNumeric, true, true, false},
		{"numeric absent", validation.IsNumeric, nil, false, false},
		{"int string", validation.IsInt, "42", true, true},
		{"int negative", validation.IsInt, "-7", true, true},
		{"int decimal", validation.IsInt, "4.2", true, false},
		{"int word", validation.IsInt, "not-valid-id", true, false},
		{"boolean true", validation.IsBoolean, true, true, true},
		{"boolean false", validation.IsBoolean, false, true, true},
		{"boolean string", validation.IsBoolean, "false", true, true},
		{"boolean digit", validation.IsBoolean, "1", true, true},
		{"boolean word", validation.IsBoolean, "yes", true, false},
		{"boolean absent", validation.IsBoolean, nil, false, false},
		{"greater positive", validation.GreaterThan(0), float64(25), true, true},
		{"greater string", validation.GreaterThan(0), "0.5", true, true},
		{"greater zero", validation.GreaterThan(0), float64(0), true, false},
		{"greater negative", validation.GreaterThan(0), float64(-100), true, false},
		{"greater absent", validation.GreaterThan(0), nil, false, false},
		{"max length fits", validation.MaxLength(5), "mouse", true, true},
		{"max length counts characters", validation.MaxLength(5), "ñandú", true, true},
		{"max length exceeded", validation.MaxLength(5), "mouses", true, false},
		{"max length absent", validation.MaxLength(5), nil, false, true},
		{"greater true", validation.GreaterThan(0), true, true, true},
		{"greater false", validation.GreaterThan(0), false, true, false},
		{"greater blank", validation.GreaterThan(0), "", true, false},
		{"greater leading dot", validation.GreaterThan(0), ".5", true, true},
		{"greater word", validation.GreaterThan(0), "cheap", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred(tt.value, tt.present))
		})
	}
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", validation.Stringify(nil))
	assert.Equal(t, "25", validation.Stringify(float64(25)))
	assert.Equal(t, "0.1", validation.Stringify(0.1))
	assert.Equal(t, "true", validation.Stringify(true))
	assert.Equal(t, `{"a":1}`, validation.Stringify(map[string]interface{}{"a": 1}))
}

func newPipelineApp(chains ...*validation.Chain) *fiber.App {
	app := fiber.New()
	app.Use(middleware.JSONBody())
	app.Post("/items/:id", validation.Pipeline(func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	}, chains...)...)
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestPipeline_CollectsEveryFailureInDeclarationOrder(t *testing.T) {
	app := newPipelineApp(
		validation.Param("id").IsInt("bad id"),
		validation.Body("title").NotEmpty("title required"),
		validation.Body("amount").IsNumeric("amount not numeric").NotEmpty("amount required").GreaterThan(0, "amount too small"),
	)

	status, body := post(t, app, "/items/abc", `{}`)
	require.Equal(t, http.StatusBadRequest, status)

	errs := body["errors"].([]interface{})
	require.Len(t, errs, 5)

	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.(map[string]interface{})["msg"].(string))
	}
	assert.Equal(t, []string{"bad id", "title required", "amount not numeric", "amount required", "amount too small"}, msgs)

	first := errs[0].(map[string]interface{})
	assert.Equal(t, "field", first["type"])
	assert.Equal(t, "id", first["path"])
	assert.Equal(t, "params", first["location"])
	assert.Equal(t, "abc", first["value"])

	second := errs[1].(map[string]interface{})
	assert.Equal(t, "body", second["location"])
	assert.NotContains(t, second, "value", "absent values are omitted")
}

func TestPipeline_ValidRequestReachesHandler(t *testing.T) {
	app := newPipelineApp(
		validation.Param("id").IsInt("bad id"),
		validation.Body("amount").IsNumeric("amount not numeric").GreaterThan(0, "amount too small"),
	)

	status, body := post(t, app, "/items/12", `{"amount": 3}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])
	assert.NotContains(t, body, "errors")
}

func TestPipeline_NoRulesStillPassesGate(t *testing.T) {
	app := newPipelineApp()

	status, body := post(t, app, "/items/anything", `{}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])
}
