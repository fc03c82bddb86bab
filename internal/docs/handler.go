package docs

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

const uiTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui" data-spec-url="{{.SpecURL}}"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
  <script>
    window.onload = () => {
      const root = document.getElementById("swagger-ui");
      window.ui = SwaggerUIBundle({ url: root.dataset.specUrl, dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`

// Handler serves a rendered snapshot of a Document.
type Handler struct {
	page     []byte
	jsonSpec []byte
	yamlSpec []byte
}

// NewHandler renders doc once. Operations added to doc afterwards are not served.
// prefix is the mount path of the docs routes, e.g. /docs.
func NewHandler(doc *Document, prefix string) (*Handler, error) {
	doc.mu.Lock()
	defer doc.mu.Unlock()

	jsonSpec, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render OpenAPI JSON: %w", err)
	}
	yamlSpec, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render OpenAPI YAML: %w", err)
	}

	tmpl, err := template.New("docs").Parse(uiTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse docs template: %w", err)
	}
	var page strings.Builder
	if err := tmpl.Execute(&page, map[string]string{
		"Title":   doc.Info.Title,
		"SpecURL": strings.TrimSuffix(prefix, "/") + "/openapi.json",
	}); err != nil {
		return nil, fmt.Errorf("failed to render docs page: %w", err)
	}

	return &Handler{
		page:     []byte(page.String()),
		jsonSpec: jsonSpec,
		yamlSpec: yamlSpec,
	}, nil
}

// RegisterRoutes mounts the UI page and the raw documents on router.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleUI)
	router.Get("/openapi.json", h.HandleJSON)
	router.Get("/openapi.yaml", h.HandleYAML)
}

// HandleUI serves the Swagger UI page.
func (h *Handler) HandleUI(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Type("html", "utf-8")
	return c.Send(h.page)
}

// HandleJSON serves the OpenAPI document as JSON.
func (h *Handler) HandleJSON(c *fiber.Ctx) error {
	c.Type("json", "utf-8")
	return c.Send(h.jsonSpec)
}

// HandleYAML serves the OpenAPI document as YAML.
func (h *Handler) HandleYAML(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/yaml; charset=utf-8")
	return c.Send(h.yamlSpec)
}
