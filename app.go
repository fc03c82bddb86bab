package main

import (
	"fmt"

	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/docs"
	"productapi/internal/handlers"
	"productapi/internal/middleware"
	"productapi/internal/repositories"
	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

const (
	apiBasePath  = "/api"
	docsBasePath = "/docs"
)

// Dependencies are the collaborators NewApp wires into the HTTP application.
type Dependencies struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Products  repositories.ProductRepository
	Publisher services.EventPublisher // optional
}

// NewApp builds the fiber application: global middleware first, then the
// product routes, the health check and finally the generated docs.
func NewApp(deps Dependencies) (*fiber.App, error) {
	log := deps.Logger

	app := fiber.New(fiber.Config{
		AppName:               "products-api",
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(fiberrecover.New())
	app.Use(middleware.RequestID())
	for _, h := range middleware.CORS(deps.Config.App.FrontendURL) {
		app.Use(h)
	}
	app.Use(middleware.JSONBody())
	app.Use(middleware.RequestLogger(log))

	productService := services.NewProductService(deps.Products, deps.Publisher, log)

	doc := docs.New("Products REST API", "1.0.0", "REST API documentation for products", apiBasePath)
	handlers.NewProductHandler(productService).RegisterRoutes(app.Group(apiBasePath), doc)
	handlers.NewHealthHandler(productService).RegisterRoutes(app)

	docsHandler, err := docs.NewHandler(doc, docsBasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to build API docs: %w", err)
	}
	docsHandler.RegisterRoutes(app.Group(docsBasePath))

	return app, nil
}

// connectStore picks the product repository for the configured driver. A
// database that cannot be reached is logged and replaced by a store that
// fails every call, so the process keeps serving in a degraded state.
func connectStore(cfg config.DatabaseConfig, log zerolog.Logger) repositories.ProductRepository {
	if cfg.Driver == config.DriverMemory {
		log.Info().Msg("using in-memory product store")
		return repositories.NewMemoryProductRepository()
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Driver).Msg("database connection failed")
		return repositories.NewUnavailableProductRepository(err)
	}

	log.Info().Str("driver", cfg.Driver).Msg("database connected")
	return repositories.NewGORMProductRepository(db)
}
