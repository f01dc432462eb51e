package wallet

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	redirector *Redirector
}

func NewHandler(r *Redirector) *Handler {
	return &Handler{redirector: r}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/wallets", h.getWallets)
	app.Post("/api/v1/wallet/:id/redirect", h.redirect)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Delete("/api/v1/wallet/:id/attempts", h.resetAttempts)
}

func (h *Handler) getWallets(c *fiber.Ctx) error {
	return c.JSON(Apps)
}

type redirectRequest struct {
	URL string `json:"url"`
}

// redirect resolves the handoff target for a wallet. The client follows
// the returned URL; the server only does the ordering, validation and
// attempt bookkeeping.
func (h *Handler) redirect(c *fiber.Ctx) error {
	payload := new(redirectRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "url is required"})
	}

	result, err := h.redirector.Redirect(c.Params("id"), payload.URL)
	if err != nil {
		switch err {
		case ErrUnknownWallet:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		case ErrTooManyAttempts:
			return c.Status(fiber.StatusTooManyRequests).JSON(result)
		default:
			return c.Status(fiber.StatusBadGateway).JSON(result)
		}
	}
	return c.JSON(result)
}

func (h *Handler) resetAttempts(c *fiber.Ctx) error {
	if _, ok := Lookup(c.Params("id")); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": ErrUnknownWallet.Error()})
	}
	h.redirector.ResetAttempts(c.Params("id"))
	return c.SendString("attempts reset")
}
