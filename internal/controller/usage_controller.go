package controller

import (
	"student-analyzer-be/internal/pkg/serverutils"
	"student-analyzer-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUsageController interface {
	RegisterRoutes(r fiber.Router, jwt fiber.Handler)
	Latest(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type usageController struct {
	service service.IUsageService
}

func NewUsageController(service service.IUsageService) IUsageController {
	return &usageController{service: service}
}

func (c *usageController) RegisterRoutes(r fiber.Router, jwt fiber.Handler) {
	h := r.Group("/usage/v1")
	h.Use(jwt)
	h.Get("/latest", c.Latest)
	h.Get("/history", c.History)
}

func (c *usageController) Latest(ctx *fiber.Ctx) error {
	res, err := c.service.Latest(ctx.Context(), serverutils.UserEmail(ctx))
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "No documents analyzed yet")
	}
	return ctx.JSON(serverutils.SuccessResponse("Latest usage", res))
}

func (c *usageController) History(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.service.History(ctx.Context(), serverutils.UserEmail(ctx), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Usage history", res))
}
