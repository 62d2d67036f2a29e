package mooring

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

const nightLayout = "2006-01-02"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Put("/fields/:anchorageID", authMiddleware, func(c *fiber.Ctx) error {
		var field Field
		if err := c.BodyParser(&field); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		field.AnchorageID = c.Params("anchorageID")
		saved, err := svc.UpsertField(c.Context(), field)
		if err != nil {
			return statusError(err)
		}
		return c.JSON(saved)
	})

	r.Get("/fields/:anchorageID", func(c *fiber.Ctx) error {
		field, err := svc.GetField(c.Context(), c.Params("anchorageID"))
		if err != nil {
			return statusError(err)
		}
		return c.JSON(field)
	})

	r.Post("/reservations", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		var req ReserveRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		start, err := time.Parse(nightLayout, req.StartNight)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_night must be YYYY-MM-DD")
		}
		end, err := time.Parse(nightLayout, req.EndNight)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "end_night must be YYYY-MM-DD")
		}
		res, err := svc.Reserve(c.Context(), userID, Reservation{
			AnchorageID: req.AnchorageID,
			BoatName:    req.BoatName,
			StartNight:  start,
			EndNight:    end,
		})
		if err != nil {
			return statusError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})

	r.Delete("/reservations/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		if err := svc.Cancel(c.Context(), userID, c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"cancelled": true})
	})

	r.Get("/reservations", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		reservations, err := svc.ForUser(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if reservations == nil {
			reservations = []Reservation{}
		}
		return c.JSON(reservations)
	})

	r.Get("/anchorages/:anchorageID/reservations", func(c *fiber.Ctx) error {
		reservations, err := svc.ForAnchorage(c.Context(), c.Params("anchorageID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if reservations == nil {
			reservations = []Reservation{}
		}
		return c.JSON(reservations)
	})
}

func statusError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrNoCapacity):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
