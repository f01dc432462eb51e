package coupon

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
	app.Post("/api/v1/coupons/validate", h.validateCoupon)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/coupons", h.getCoupons)
	app.Post("/api/v1/coupons", h.createCoupon)
	app.Put("/api/v1/coupon/:id<[0-9]+>", h.updateCoupon)
	app.Delete("/api/v1/coupon/:id<[0-9]+>", h.deleteCoupon)
}

type validateRequest struct {
	Code         string  `json:"code"`
	Price        float64 `json:"price"`
	CollectionID *int    `json:"collectionId"`
}

// validateCoupon checks a code at checkout time and quotes the discounted
// price so the storefront can show the total before an order exists.
func (h *Handler) validateCoupon(c *fiber.Ctx) error {
	req := new(validateRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": map[string]string{"code": "code is required"}})
	}

	cp, err := h.service.Redeemable(req.Code, req.CollectionID)
	if err != nil {
		status := fiber.StatusNotFound
		if err == ErrInactive || err == ErrWrongCollection {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"coupon":          cp,
		"discount":        cp.Discount(req.Price),
		"discountedPrice": cp.Apply(req.Price),
	})
}

func (h *Handler) getCoupons(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

func validateCouponPayload(cp *Coupon) map[string]string {
	errs := map[string]string{}
	if NormalizeCode(cp.Code) == "" {
		errs["code"] = "code is required"
	}
	if cp.DiscountType != DiscountFixed && cp.DiscountType != DiscountPercentage {
		errs["discountType"] = "discountType must be fixed or percentage"
	}
	if cp.DiscountValue <= 0 {
		errs["discountValue"] = "discountValue must be positive"
	}
	if cp.DiscountType == DiscountPercentage && cp.DiscountValue > 100 {
		errs["discountValue"] = "percentage discount cannot exceed 100"
	}
	if cp.MaxDiscount != nil && *cp.MaxDiscount < 0 {
		errs["maxDiscount"] = "maxDiscount cannot be negative"
	}
	if cp.Status != StatusActive && cp.Status != StatusPaused {
		errs["status"] = "status must be active or paused"
	}
	return errs
}

func (h *Handler) createCoupon(c *fiber.Ctx) error {
	cp := new(Coupon)
	if err := c.BodyParser(cp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if cp.Status == "" {
		cp.Status = StatusActive
	}
	if ves := validateCouponPayload(cp); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if cp.CreatedAt == nil {
		cp.CreatedAt = &now
	}
	if cp.UpdatedAt == nil {
		cp.UpdatedAt = &now
	}

	created, err := h.service.Create(*cp)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateCoupon(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	cp := new(Coupon)
	if err := c.BodyParser(cp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateCouponPayload(cp); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	cp.UpdatedAt = &now

	updated, err := h.service.Update(id, *cp)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Coupon not found")
	}
	return c.JSON(updated)
}

func (h *Handler) deleteCoupon(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	if err := h.service.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Coupon not found")
	}
	return c.SendString("Coupon deleted")
}
