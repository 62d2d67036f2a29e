package anchorage

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const maxSuggestions = 10

func RegisterRoutes(r fiber.Router, catalog *Catalog, resolver *Resolver) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(catalog.All())
	})

	r.Get("/nearest", func(c *fiber.Ctx) error {
		lat, lng, err := coordsFromQuery(c)
		if err != nil {
			return err
		}
		nearest, err := resolver.NearestWithinRadius(lat, lng)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{
			"nearest_anchorage": nearest,
			"within_radius":     nearest != nil,
			"radius_km":         resolver.RadiusKm(),
		})
	})

	r.Get("/suggestions", func(c *fiber.Ctx) error {
		lat, lng, err := coordsFromQuery(c)
		if err != nil {
			return err
		}
		ranked, err := resolver.SortedByDistance(lat, lng)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		nearest, err := resolver.NearestWithinRadius(lat, lng)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if len(ranked) > maxSuggestions {
			ranked = ranked[:maxSuggestions]
		}
		return c.JSON(fiber.Map{
			"suggestions":                 ranked,
			"nearest_within_radius":       nearest,
			"region_restriction_disabled": !resolver.RegionRestricted(),
		})
	})
}

func coordsFromQuery(c *fiber.Ctx) (float64, float64, error) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "lat must be a number")
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "lng must be a number")
	}
	return lat, lng, nil
}
