package checkin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := requireUser(c)
		if err != nil {
			return err
		}
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		ck, err := svc.Create(c.Context(), userID, req)
		if err != nil {
			return statusError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(ck)
	})

	r.Post("/verify", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := requireUser(c)
		if err != nil {
			return err
		}
		var body struct {
			GpsLat *float64 `json:"gps_lat"`
			GpsLng *float64 `json:"gps_lng"`
		}
		if err := c.BodyParser(&body); err != nil || body.GpsLat == nil || body.GpsLng == nil {
			return fiber.NewError(fiber.StatusBadRequest, "gps_lat and gps_lng required")
		}
		ck, checkedOut, err := svc.Verify(c.Context(), userID, *body.GpsLat, *body.GpsLng)
		if err != nil {
			return statusError(err)
		}
		return c.JSON(fiber.Map{"checkin": ck, "checked_out": checkedOut})
	})

	r.Delete("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := requireUser(c)
		if err != nil {
			return err
		}
		if err := svc.Checkout(c.Context(), userID); err != nil {
			return statusError(err)
		}
		return c.JSON(fiber.Map{"checked_out": true})
	})

	r.Get("/active", func(c *fiber.Ctx) error {
		active, err := svc.ListActive(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if active == nil {
			active = []ActiveCheckin{}
		}
		return c.JSON(active)
	})
}

func requireUser(c *fiber.Ctx) (string, error) {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return userID, nil
}

func statusError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
