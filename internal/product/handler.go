package product

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/product/:id<[0-9]+>", h.getProduct)
	app.Get("/api/v1/product/:id<[0-9]+>/combinations", h.getCombinations)
	app.Get("/api/v1/collections/:id<[0-9]+>/products", h.getCollectionProducts)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/products", h.createProduct)
	app.Put("/api/v1/product/:id<[0-9]+>", h.updateProduct)
	app.Delete("/api/v1/product/:id<[0-9]+>", h.deleteProduct)
	app.Put("/api/v1/product/:id<[0-9]+>/price", h.setVariantPrice)
	app.Post("/api/v1/product/:id<[0-9]+>/prices/apply-base", h.applyBasePrice)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.ListVisible())
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}
	return c.JSON(p)
}

// getCombinations returns one row per valid combination with its resolved
// price — the data behind the merchant pricing table.
func (h *Handler) getCombinations(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}
	return c.JSON(p.Combinations())
}

func (h *Handler) getCollectionProducts(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	all := h.service.ListByCollection(id)
	out := make([]Product, 0, len(all))
	for _, p := range all {
		if p.Visible {
			out = append(out, p)
		}
	}
	return c.JSON(out)
}

// validateProductPayload collects all validation errors in one pass. Empty
// variant names or option values are rejected here, at the form boundary —
// the enumerator itself tolerates them structurally.
func validateProductPayload(p *Product) map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["productName"] = "productName is required"
	}
	if p.BasePrice < 0 {
		errs["basePrice"] = "basePrice must be >= 0"
	}
	if p.PinOrder < 0 {
		errs["pinOrder"] = "pinOrder must be >= 0"
	}
	for i, v := range p.Variants {
		if v.Name == "" {
			errs["variants["+strconv.Itoa(i)+"].name"] = "variant name is required"
		}
		for j, o := range v.Options {
			if o.Value == "" {
				errs["variants["+strconv.Itoa(i)+"].options["+strconv.Itoa(j)+"]"] = "option value is required"
			}
		}
	}
	for key, price := range p.VariantPrices {
		if price < 0 {
			errs["variantPrices."+key] = "price must be >= 0"
		}
	}
	return errs
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// validate payload and return all validation errors together
	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if p.CreatedAt == nil {
		p.CreatedAt = &now
	}
	if p.UpdatedAt == nil {
		p.UpdatedAt = &now
	}

	created, err := h.service.Create(*p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	p.UpdatedAt = &now

	updated, err := h.service.Update(id, *p)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	if err := h.service.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}
	return c.SendString("Product deleted")
}

type setPriceRequest struct {
	Key   string  `json:"key"`
	Price float64 `json:"price"`
}

// setVariantPrice stores one override in the product's pricing table. An
// out-of-range price is not an error to the form: the write is simply not
// applied and the current product is returned.
func (h *Handler) setVariantPrice(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	payload := new(setPriceRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "key is required"})
	}

	updated, err := h.service.SetVariantPrice(id, payload.Key, payload.Price)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).SendString("Product not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

// applyBasePrice bulk-writes the base price over one pricing-table section
// (?section=all|customization|regular, default all).
func (h *Handler) applyBasePrice(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.ApplyBasePrice(id, c.Query("section"))
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).SendString("Product not found")
		case ErrUnknownSection:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}
