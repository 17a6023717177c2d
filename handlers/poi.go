// handlers/poi.go
package handlers

import (
	"errors"
	"strings"

	"gowalking/services"

	"github.com/gofiber/fiber/v2"
)

type POIRequest struct {
	City        string `json:"city"`
	AmenityType string `json:"amenity_type"`
}

// GetPOIData returns nearby businesses for a supported city
// POST /api/poi
func GetPOIData(c *fiber.Ctx) error {
	var req POIRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.City == "" {
		return c.Status(400).JSON(fiber.Map{"error": "city is required"})
	}
	if req.AmenityType == "" {
		req.AmenityType = "restaurant"
	}

	businesses, source, err := poiService.FindPOIs(req.City, req.AmenityType)
	if err != nil {
		if errors.Is(err, services.ErrCityNotSupported) {
			return c.Status(400).JSON(fiber.Map{
				"error": "City not supported. Supported: " + strings.Join(services.SupportedCities(), ", "),
			})
		}
		return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch POI data"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"city":       strings.ToLower(req.City),
		"businesses": businesses,
		"count":      len(businesses),
		"source":     source,
	})
}

// GetSupportedCities lists the cities POI discovery covers
// GET /api/poi/cities
func GetSupportedCities(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":       true,
		"cities":        services.SupportedCities(),
		"amenity_types": services.AmenityTypes,
		"city_centers":  services.CityCenters(),
	})
}
