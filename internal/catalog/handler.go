package catalog

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/catalog", h.browse)
}

// browse serves the storefront grid.
// Query params: collection, category, sort, pageSize, increment, pages.
// The optional X-Session-ID header keys the revealed-ID cache.
func (h *Handler) browse(c *fiber.Ctx) error {
	req := BrowseRequest{
		Category:  c.Query("category"),
		Policy:    ParseSortPolicy(c.Query("sort")),
		SessionID: c.Get("X-Session-ID"),
	}
	if v := c.Query("collection"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString("invalid collection id")
		}
		req.CollectionID = id
	}
	if v, err := strconv.Atoi(c.Query("pageSize")); err == nil && v > 0 {
		req.PageSize = v
	}
	if v, err := strconv.Atoi(c.Query("increment")); err == nil && v > 0 {
		req.Increment = v
	}
	if v, err := strconv.Atoi(c.Query("pages")); err == nil && v > 0 {
		req.Pages = v
	}

	return c.JSON(h.service.Browse(req))
}
