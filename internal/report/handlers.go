package report

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Report
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		req.ReportedBy, _ = c.Locals("user_id").(string)
		created, err := svc.Create(c.Context(), req)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				return fiber.NewError(fiber.StatusBadRequest, "kind incident|sighting and category required")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Get("/nearby", func(c *fiber.Ctx) error {
		lat, _ := strconv.ParseFloat(c.Query("lat"), 64)
		lng, _ := strconv.ParseFloat(c.Query("lng"), 64)
		radius, _ := strconv.ParseFloat(c.Query("radius_km"), 64)
		if radius == 0 {
			radius = 5
		}
		reports, err := svc.Nearby(c.Context(), lat, lng, radius)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if reports == nil {
			reports = []Report{}
		}
		return c.JSON(reports)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit"))
		reports, err := svc.Recent(c.Context(), c.Query("kind"), limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if reports == nil {
			reports = []Report{}
		}
		return c.JSON(reports)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		report, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "report not found")
		}
		return c.JSON(report)
	})

	r.Put("/:id/status", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Status string `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		report, err := svc.UpdateStatus(c.Context(), c.Params("id"), body.Status)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				return fiber.NewError(fiber.StatusBadRequest, "status must be open or resolved")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(report)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
