package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/schnauzenportal/server/internal/models"
	"github.com/schnauzenportal/server/internal/service"
)

// BrowseHandler wires HTTP → CatalogService.
type BrowseHandler struct {
	svc service.CatalogService
}

// NewBrowseHandler returns a handler instance.
func NewBrowseHandler(svc service.CatalogService) *BrowseHandler {
	return &BrowseHandler{svc: svc}
}

// Register mounts GET /browse on the given router group.
func (h *BrowseHandler) Register(r fiber.Router) {
	r.Get("/browse", h.browse)
}

// browse handles GET /browse?type=katze&limit=9&skip=0
func (h *BrowseHandler) browse(c *fiber.Ctx) error {
	var req models.BrowseRequest
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}

	filter := models.Filter{}
	if req.Type != "" {
		filter.Type = &req.Type
	}

	page, err := h.svc.Browse(c.UserContext(), filter, req.Limit, req.Skip)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(page)
}
