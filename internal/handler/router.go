package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/schnauzenportal/server/internal/pipeline"
	"github.com/schnauzenportal/server/internal/service"
)

func RegisterRoutes(app *fiber.App,
	pipe *pipeline.Pipeline,
	catalogSvc service.CatalogService,
) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Schnauzenportal")
	})

	NewSearchHandler(pipe).Register(app)
	NewBrowseHandler(catalogSvc).Register(app)
}
