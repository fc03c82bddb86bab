// Package docs assembles the OpenAPI document of the service from the static
// annotations each route registers, and serves it with a Swagger UI page.
package docs

import (
	"regexp"
	"strings"
	"sync"
)

// Document is the subset of an OpenAPI 3.0 document the service produces.
type Document struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       Info                `json:"info" yaml:"info"`
	Servers    []Server            `json:"servers,omitempty" yaml:"servers,omitempty"`
	Tags       []Tag               `json:"tags,omitempty" yaml:"tags,omitempty"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components Components          `json:"components" yaml:"components"`

	mu sync.Mutex
}

type Info struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type Server struct {
	URL string `json:"url" yaml:"url"`
}

type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem maps a lower-case HTTP method to its operation.
type PathItem map[string]*Operation

// Operation documents one endpoint.
type Operation struct {
	Summary     string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

type Parameter struct {
	In          string  `json:"in" yaml:"in"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool    `json:"required" yaml:"required"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

type RequestBody struct {
	Required bool                 `json:"required" yaml:"required"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type MediaType struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Schema is a JSON schema fragment.
type Schema struct {
	Ref         string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        string             `json:"type,omitempty" yaml:"type,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Example     interface{}        `json:"example,omitempty" yaml:"example,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
}

type Components struct {
	Schemas map[string]*Schema `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// New returns an empty document whose paths are relative to basePath.
func New(title, version, description, basePath string) *Document {
	return &Document{
		OpenAPI: "3.0.2",
		Info: Info{
			Title:       title,
			Version:     version,
			Description: description,
		},
		Servers:    []Server{{URL: basePath}},
		Paths:      map[string]PathItem{},
		Components: Components{Schemas: map[string]*Schema{}},
	}
}

var routeParam = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

// OpenAPIPath converts a fiber route path such as /api/products/:id to /api/products/{id}.
func OpenAPIPath(route string) string {
	p := routeParam.ReplaceAllString(route, "{$1}")
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// AddOperation records op for method on the fiber route path.
func (d *Document) AddOperation(method, route string, op *Operation) {
	d.mu.Lock()
	defer d.mu.Unlock()

	path := OpenAPIPath(route)
	item, ok := d.Paths[path]
	if !ok {
		item = PathItem{}
		d.Paths[path] = item
	}
	item[strings.ToLower(method)] = op
}

// AddTag declares a tag once.
func (d *Document) AddTag(name, description string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, t := range d.Tags {
		if t.Name == name {
			return
		}
	}
	d.Tags = append(d.Tags, Tag{Name: name, Description: description})
}

// AddSchema registers a reusable component schema.
func (d *Document) AddSchema(name string, s *Schema) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Components.Schemas[name] = s
}

// Ref builds a reference to a component schema.
func Ref(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

// JSONContent wraps a schema as an application/json body.
func JSONContent(s *Schema) map[string]MediaType {
	return map[string]MediaType{"application/json": {Schema: s}}
}
