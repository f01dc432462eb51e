package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/bigkatzo/storefun-backend/internal/product"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.createOrder)
	app.Post("/api/v1/order/:id<[0-9]+>/transaction", h.attachTransaction)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/orders", h.getOrders)
	app.Get("/api/v1/order/:id<[0-9]+>", h.getOrder)
	app.Put("/api/v1/order/:id<[0-9]+>/status", h.updateStatus)
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	o, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Order not found")
	}
	return c.JSON(o)
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	req := new(CreateRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	o, err := h.service.Create(*req)
	if err != nil {
		switch err {
		case ErrInvalidQuantity, ErrInvalidCombination:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case product.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

type transactionRequest struct {
	WalletAddress string `json:"walletAddress"`
	TxSignature   string `json:"txSignature"`
}

func (h *Handler) attachTransaction(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	req := new(transactionRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if req.WalletAddress == "" || req.TxSignature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": map[string]string{"txSignature": "walletAddress and txSignature are required"},
		})
	}

	o, err := h.service.AttachTransaction(id, req.WalletAddress, req.TxSignature)
	if err != nil {
		if err == ErrBadTransition {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusNotFound).SendString("Order not found")
	}
	return c.JSON(o)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	req := new(statusRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	o, err := h.service.Transition(id, req.Status)
	if err != nil {
		if err == ErrBadTransition {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusNotFound).SendString("Order not found")
	}
	return c.JSON(o)
}
