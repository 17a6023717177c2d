// handlers/routing.go
package handlers

import (
	"errors"

	"gowalking/services"

	"github.com/gofiber/fiber/v2"
)

// CalculateRoute plans a walking route between two coordinates
// POST /api/route/calculate
func CalculateRoute(c *fiber.Ctx) error {
	var req services.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.Start) != 2 || len(req.End) != 2 {
		return c.Status(400).JSON(fiber.Map{"error": "start and end must be [lng, lat] pairs"})
	}

	return c.JSON(routingService.CalculateRoute(req))
}

// GeocodeAddress resolves a free-text address to coordinates
// GET /api/geocode?address=
func GeocodeAddress(c *fiber.Ctx) error {
	address := c.Query("address")
	if address == "" {
		return c.Status(400).JSON(fiber.Map{"error": "address is required"})
	}

	result, err := geocodeService.Geocode(address)
	if err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Address not found"})
		}
		return c.Status(502).JSON(fiber.Map{"error": "Geocoding failed"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"coordinates":  result.Coordinates,
		"display_name": result.DisplayName,
	})
}
