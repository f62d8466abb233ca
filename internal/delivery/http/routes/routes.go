package routes

import (
	"skill-matrix/internal/config"
	"skill-matrix/internal/database"
	"skill-matrix/internal/delivery/http/handler"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(app *fiber.App, cfg config.Config, db database.DB, cache usecase.CatalogCache) error {
	if app == nil {
		return nil
	}

	handler.NewHealthHandler(db).RegisterRoutes(app)

	api := app.Group("/api")
	return RegisterV1(api.Group("/v1"), cfg, db, cache)
}
