// services/overpass.go - POI Discovery
//
// Points of interest come from an Overpass-style map-data interpreter, queried
// per city bounding box and cached in the database for the rest of the UTC
// day. The discount offers attached to each business are rotating teaser
// copy; redemption settlement is out of scope.
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gowalking/metrics"
	"gowalking/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const defaultOverpassEndpoint = "https://overpass-api.de/api/interpreter"

const maxPOIsPerQuery = 20

var ErrCityNotSupported = errors.New("city not supported")

// CityBounds is the bounding box and center of a supported city.
type CityBounds struct {
	South  float64   `json:"south"`
	West   float64   `json:"west"`
	North  float64   `json:"north"`
	East   float64   `json:"east"`
	Center []float64 `json:"center"` // [lng, lat]
}

// cityCoords covers the supported German cities.
var cityCoords = map[string]CityBounds{
	"regensburg": {South: 49.0, West: 12.0, North: 49.1, East: 12.2, Center: []float64{12.12, 49.03}},
	"deggendorf": {South: 48.8, West: 12.9, North: 48.9, East: 13.0, Center: []float64{12.96, 48.84}},
	"passau":     {South: 48.5, West: 13.4, North: 48.6, East: 13.5, Center: []float64{13.43, 48.57}},
}

// AmenityTypes lists the amenity values exposed to clients.
var AmenityTypes = []string{"restaurant", "cafe", "bar", "fast_food", "pub"}

var discountOffers = []string{
	"10% off your next meal",
	"Free coffee with any pastry",
	"Happy Hour: 20% off drinks",
	"Buy 2 get 1 free",
	"Student discount: 15% off",
	"Weekend special: Free dessert",
}

// SupportedCities returns the supported city names, sorted.
func SupportedCities() []string {
	cities := make([]string, 0, len(cityCoords))
	for city := range cityCoords {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}

// CityCenters maps each supported city to its center coordinate.
func CityCenters() map[string][]float64 {
	centers := make(map[string][]float64, len(cityCoords))
	for city, bounds := range cityCoords {
		centers[city] = bounds.Center
	}
	return centers
}

type POIService struct {
	db       *gorm.DB
	endpoint string
	timeout  time.Duration
}

func NewPOIService(db *gorm.DB) *POIService {
	endpoint := os.Getenv("OVERPASS_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultOverpassEndpoint
	}
	return &POIService{db: db, endpoint: endpoint, timeout: 25 * time.Second}
}

// FindPOIs returns businesses for a city+amenity pair, serving the daily
// cache when fresh. The second return value names the source ("cache" or
// "api").
func (s *POIService) FindPOIs(city, amenityType string) ([]models.Business, string, error) {
	city = strings.ToLower(strings.TrimSpace(city))
	bounds, ok := cityCoords[city]
	if !ok {
		return nil, "", ErrCityNotSupported
	}
	if amenityType == "" {
		amenityType = "restaurant"
	}

	var cached models.CachedPOI
	err := s.db.Where("city = ? AND amenity_type = ?", city, amenityType).First(&cached).Error
	if err == nil && sameUTCDay(cached.CachedAt, time.Now().UTC()) {
		var businesses []models.Business
		if jsonErr := json.Unmarshal([]byte(cached.Data), &businesses); jsonErr == nil {
			return businesses, "cache", nil
		}
		// fall through and refresh on a corrupt cache entry
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	businesses, err := s.queryOverpass(city, amenityType, bounds)
	if err != nil {
		metrics.ProviderFailures.WithLabelValues("overpass").Inc()
		return nil, "", err
	}

	if cacheErr := s.cache(city, amenityType, businesses); cacheErr != nil {
		// Caching is an optimization; a failed write never fails the request.
		log.Printf("failed to cache POIs for %s/%s: %v", city, amenityType, cacheErr)
	}

	return businesses, "api", nil
}

// queryOverpass runs an amenity query over the city's bounding box and maps
// the returned nodes to businesses.
func (s *POIService) queryOverpass(city, amenityType string, bounds CityBounds) ([]models.Business, error) {
	bbox := fmt.Sprintf("(%g,%g,%g,%g)", bounds.South, bounds.West, bounds.North, bounds.East)
	query := fmt.Sprintf(`[out:json][timeout:25];
(
  node["amenity"=%q]%s;
  way["amenity"=%q]%s;
);
out body;`, amenityType, bbox, amenityType, bbox)

	agent := fiber.Post(s.endpoint)
	agent.Timeout(s.timeout)
	agent.ContentType("text/plain")
	agent.BodyString(query)

	code, resp, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, errs[0]
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("overpass returned status %d", code)
	}

	var result struct {
		Elements []struct {
			Type string            `json:"type"`
			ID   int64             `json:"id"`
			Lat  float64           `json:"lat"`
			Lon  float64           `json:"lon"`
			Tags map[string]string `json:"tags"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}

	businesses := make([]models.Business, 0, maxPOIsPerQuery)
	for _, element := range result.Elements {
		if element.Type != "node" {
			continue
		}
		if len(businesses) >= maxPOIsPerQuery {
			break
		}

		i := len(businesses)
		name := element.Tags["name"]
		if name == "" {
			name = "Local " + titleCase(amenityType)
		}

		businesses = append(businesses, models.Business{
			ID:            strconv.FormatInt(element.ID, 10),
			Name:          name,
			AmenityType:   element.Tags["amenity"],
			City:          city,
			Coordinates:   []float64{element.Lon, element.Lat},
			Cuisine:       element.Tags["cuisine"],
			OpeningHours:  element.Tags["opening_hours"],
			Phone:         element.Tags["phone"],
			Website:       element.Tags["website"],
			DiscountOffer: discountOffers[i%len(discountOffers)],
			CoinsRequired: (i%3 + 1) * 5, // 5, 10 or 15 coins
		})
	}

	return businesses, nil
}

// cache stores the result set for the current day, replacing any previous
// entry for the city+amenity pair.
func (s *POIService) cache(city, amenityType string, businesses []models.Business) error {
	data, err := json.Marshal(businesses)
	if err != nil {
		return err
	}

	var existing models.CachedPOI
	err = s.db.Where("city = ? AND amenity_type = ?", city, amenityType).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&models.CachedPOI{
			City:        city,
			AmenityType: amenityType,
			Data:        string(data),
			CachedAt:    time.Now().UTC(),
		}).Error
	}
	if err != nil {
		return err
	}

	return s.db.Model(&existing).Updates(map[string]interface{}{
		"data":      string(data),
		"cached_at": time.Now().UTC(),
	}).Error
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// titleCase capitalizes the first letter of each underscore-separated word:
// "fast_food" -> "Fast Food".
func titleCase(s string) string {
	words := strings.Split(s, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
