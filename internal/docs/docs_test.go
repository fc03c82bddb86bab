package docs_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"productapi/internal/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOpenAPIPath(t *testing.T) {
	assert.Equal(t, "/products/{id}", docs.OpenAPIPath("/products/:id"))
	assert.Equal(t, "/products", docs.OpenAPIPath("/products/"))
	assert.Equal(t, "/", docs.OpenAPIPath("/"))
	assert.Equal(t, "/a/{x}/b/{y_z}", docs.OpenAPIPath("/a/:x/b/:y_z"))
}

func newDocument() *docs.Document {
	doc := docs.New("Items", "1.0.0", "test document", "/api")
	doc.AddTag("items", "Item operations")
	doc.AddTag("items", "duplicate is ignored")
	doc.AddSchema("Item", &docs.Schema{
		Type: "object",
		Properties: map[string]*docs.Schema{
			"id": {Type: "integer"},
		},
	})
	doc.AddOperation(fiber.MethodGet, "/items/:id", &docs.Operation{
		Summary: "Get item",
		Tags:    []string{"items"},
		Parameters: []docs.Parameter{
			{In: "path", Name: "id", Required: true, Schema: &docs.Schema{Type: "integer"}},
		},
		Responses: map[string]docs.Response{
			"200": {Description: "found", Content: docs.JSONContent(docs.Ref("Item"))},
		},
	})
	doc.AddOperation(fiber.MethodDelete, "/items/:id", &docs.Operation{
		Summary:   "Delete item",
		Responses: map[string]docs.Response{"200": {Description: "deleted"}},
	})
	return doc
}

func TestDocument_Builders(t *testing.T) {
	doc := newDocument()

	require.Len(t, doc.Tags, 1)
	assert.Equal(t, "Item operations", doc.Tags[0].Description)

	item, ok := doc.Paths["/items/{id}"]
	require.True(t, ok)
	assert.Contains(t, item, "get")
	assert.Contains(t, item, "delete")
	assert.Equal(t, "#/components/schemas/Item", item["get"].Responses["200"].Content["application/json"].Schema.Ref)
	assert.Equal(t, "/api", doc.Servers[0].URL)
}

func newDocsApp(t *testing.T) *fiber.App {
	t.Helper()

	h, err := docs.NewHandler(newDocument(), "/docs")
	require.NoError(t, err)

	app := fiber.New()
	h.RegisterRoutes(app.Group("/docs"))
	return app
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, []byte) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHandler_ServesJSON(t *testing.T) {
	resp, body := get(t, newDocsApp(t), "/docs/openapi.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "application/json")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "3.0.2", decoded["openapi"])
	paths := decoded["paths"].(map[string]interface{})
	assert.Contains(t, paths, "/items/{id}")
}

func TestHandler_ServesYAML(t *testing.T) {
	resp, body := get(t, newDocsApp(t), "/docs/openapi.yaml")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "yaml")

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(body, &decoded))
	info := decoded["info"].(map[string]interface{})
	assert.Equal(t, "Items", info["title"])
}

func TestHandler_ServesUI(t *testing.T) {
	resp, body := get(t, newDocsApp(t), "/docs")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	assert.Contains(t, string(body), "swagger-ui")
	assert.Contains(t, string(body), `data-spec-url="/docs/openapi.json"`)
	assert.NotContains(t, string(body), `\/docs`, "spec URL must not be JS-escaped")
}
