package social

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/posts", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		var req Post
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		req.UserID = userID
		post, err := svc.CreatePost(c.Context(), req)
		if err != nil {
			return statusError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(post)
	})

	r.Post("/posts/:id/photos", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			PhotoURL string `json:"photo_url"`
		}
		if err := c.BodyParser(&body); err != nil || body.PhotoURL == "" {
			return fiber.NewError(fiber.StatusBadRequest, "photo_url required")
		}
		photo, err := svc.AddPhoto(c.Context(), c.Params("id"), body.PhotoURL)
		if err != nil {
			return statusError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(photo)
	})

	r.Post("/follow", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		if err := svc.Follow(c.Context(), userID, body.UserID); err != nil {
			return statusError(err)
		}
		return c.SendStatus(fiber.StatusCreated)
	})

	r.Delete("/follow/:userID", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if err := svc.Unfollow(c.Context(), userID, c.Params("userID")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/feed", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		feed, err := svc.Feed(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if feed == nil {
			feed = []Post{}
		}
		return c.JSON(feed)
	})

	r.Get("/posts/nearby", func(c *fiber.Ctx) error {
		lat, _ := strconv.ParseFloat(c.Query("lat"), 64)
		lng, _ := strconv.ParseFloat(c.Query("lng"), 64)
		radius, _ := strconv.ParseFloat(c.Query("radius_km"), 64)
		if radius == 0 {
			radius = 5
		}
		posts, err := svc.Nearby(c.Context(), lat, lng, radius)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if posts == nil {
			posts = []Post{}
		}
		return c.JSON(posts)
	})

	r.Get("/anchorages/:anchorageID/posts", func(c *fiber.Ctx) error {
		posts, err := svc.ForAnchorage(c.Context(), c.Params("anchorageID"))
		if err != nil {
			return statusError(err)
		}
		if posts == nil {
			posts = []Post{}
		}
		return c.JSON(posts)
	})
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
