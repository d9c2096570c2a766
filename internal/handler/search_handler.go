package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/schnauzenportal/server/internal/models"
	"github.com/schnauzenportal/server/internal/pipeline"
)

// SearchHandler wires HTTP → conversation pipeline.
type SearchHandler struct {
	pipe *pipeline.Pipeline
}

// NewSearchHandler returns a handler instance.
func NewSearchHandler(pipe *pipeline.Pipeline) *SearchHandler {
	return &SearchHandler{pipe: pipe}
}

// Register mounts POST /search on the given router group.
func (h *SearchHandler) Register(r fiber.Router) {
	r.Post("/search", h.search)
}

// search handles POST /search  { "message": "..." }
//
// The pipeline degrades every recoverable failure to fallback content, so a
// well-formed request always yields 200; a 500 only happens when an unguarded
// external call fails.
func (h *SearchHandler) search(c *fiber.Ctx) error {
	var req models.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if req.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message is required")
	}

	answer, err := h.pipe.Run(c.UserContext(), req.Message)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(answer)
}
