package handlers

import (
	"errors"

	"productapi/internal/docs"
	"productapi/internal/middleware"
	"productapi/internal/models"
	"productapi/internal/repositories"
	"productapi/internal/services"
	"productapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Response messages of the product endpoints.
const (
	MsgProductNotFound = "product not found"
	MsgProductDeleted  = "product deleted"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

type productRoute struct {
	method  string
	path    string
	rules   []*validation.Chain
	handler fiber.Handler
	doc     *docs.Operation
}

func (h *ProductHandler) routes() []productRoute {
	return []productRoute{
		{fiber.MethodGet, "/", nil, h.HandleGetProducts, docGetProducts},
		{fiber.MethodGet, "/:id", idRules(), h.HandleGetProductByID, docGetProductByID},
		{fiber.MethodPost, "/", createRules(), h.HandleCreateProduct, docCreateProduct},
		{fiber.MethodPut, "/:id", updateRules(), h.HandleUpdateProduct, docUpdateProduct},
		{fiber.MethodPatch, "/:id", idRules(), h.HandleUpdateAvailability, docUpdateAvailability},
		{fiber.MethodDelete, "/:id", idRules(), h.HandleDeleteProduct, docDeleteProduct},
	}
}

// RegisterRoutes mounts the product routes under /products. Every route runs
// its validation rules, then the validation gate, then the handler. When doc is
// non-nil each route's annotation is recorded in it.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, doc *docs.Document) {
	productRoutes := router.Group("/products")

	if doc != nil {
		doc.AddTag(productsTag, "Product related API")
		doc.AddSchema("Product", productSchema())
	}

	for _, r := range h.routes() {
		productRoutes.Add(r.method, r.path, validation.Pipeline(r.handler, r.rules...)...)
		if doc != nil {
			doc.AddOperation(r.method, "/products"+r.path, r.doc)
		}
	}
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": products})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c)
		}
		return err
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleCreateProduct creates a new product. Availability defaults to true
// unless the body carries a boolean value for it.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	body := middleware.Body(c)
	price, _ := validation.Float(body["price"])

	product := models.Product{
		Name:         validation.Stringify(body["name"]),
		Price:        price,
		Availability: true,
	}
	if raw, present := body["availability"]; present {
		if availability, ok := validation.Bool(raw); ok {
			product.Availability = availability
		}
	}

	if err := h.service.CreateProduct(c.UserContext(), &product); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": product})
}

// HandleUpdateProduct overwrites name, price and availability of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}

	body := middleware.Body(c)
	price, _ := validation.Float(body["price"])
	availability, _ := validation.Bool(body["availability"])

	product := models.Product{
		ID:           id,
		Name:         validation.Stringify(body["name"]),
		Price:        price,
		Availability: availability,
	}
	if err := h.service.UpdateProduct(c.UserContext(), &product); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c)
		}
		return err
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleUpdateAvailability flips the availability of a product.
func (h *ProductHandler) HandleUpdateAvailability(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}

	product, err := h.service.ToggleAvailability(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c)
		}
		return err
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c)
		}
		return err
	}
	return c.JSON(fiber.Map{"message": MsgProductDeleted})
}

// productID reads the already validated id parameter. Integers that cannot
// name a stored product (zero, negative, out of range) report false.
func productID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": MsgProductNotFound,
	})
}
