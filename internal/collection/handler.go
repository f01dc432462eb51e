package collection

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/collections", h.getCollections)
	app.Get("/api/v1/collection/:slug", h.getCollection)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/merchant/collections", h.getAllCollections)
	app.Post("/api/v1/collections", h.createCollection)
	app.Put("/api/v1/collection/:id<[0-9]+>", h.updateCollection)
	app.Delete("/api/v1/collection/:id<[0-9]+>", h.deleteCollection)
}

func (h *Handler) getCollections(c *fiber.Ctx) error {
	limit := 50
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	return c.JSON(h.service.List(limit, false))
}

// getAllCollections is the merchant view: hidden collections included.
func (h *Handler) getAllCollections(c *fiber.Ctx) error {
	return c.JSON(h.service.List(100, true))
}

func (h *Handler) getCollection(c *fiber.Ctx) error {
	col, err := h.service.GetBySlug(c.Params("slug"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Collection not found")
	}
	if !col.Visible {
		return c.Status(fiber.StatusNotFound).SendString("Collection not found")
	}
	return c.JSON(col)
}

func validateCollectionPayload(col *Collection) map[string]string {
	errs := map[string]string{}
	if col.Name == "" {
		errs["collectionName"] = "collectionName is required"
	}
	if col.Slug == "" {
		errs["slug"] = "slug is required"
	}
	return errs
}

func (h *Handler) createCollection(c *fiber.Ctx) error {
	col := new(Collection)
	if err := c.BodyParser(col); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateCollectionPayload(col); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if col.CreatedAt == nil {
		col.CreatedAt = &now
	}
	if col.UpdatedAt == nil {
		col.UpdatedAt = &now
	}

	created, err := h.service.Create(*col)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateCollection(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	col := new(Collection)
	if err := c.BodyParser(col); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateCollectionPayload(col); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	col.UpdatedAt = &now

	updated, err := h.service.Update(id, *col)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Collection not found")
	}
	return c.JSON(updated)
}

func (h *Handler) deleteCollection(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	if err := h.service.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Collection not found")
	}
	return c.SendString("Collection deleted")
}
