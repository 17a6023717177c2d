// services/routing.go - Route Planning
//
// Routing is fully delegated to OpenRouteService when an API key is
// configured. Without a key, or when the provider fails, a straight-line
// estimate is substituted so route planning keeps working offline.
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"gowalking/metrics"

	"github.com/gofiber/fiber/v2"
)

const defaultORSEndpoint = "https://api.openrouteservice.org/v2/directions/foot-walking/geojson"

// Rough km per degree at central European latitudes, used by the fallback.
const kmPerDegree = 111.0

// Average walking pace for duration estimates: 12 minutes per km.
const minutesPerKm = 12

type RouteRequest struct {
	Start []float64 `json:"start"` // [lng, lat]
	End   []float64 `json:"end"`   // [lng, lat]
	City  string    `json:"city"`
}

type RouteResult struct {
	Success         bool        `json:"success"`
	DistanceKm      float64     `json:"distance_km"`
	DurationMinutes int         `json:"duration_minutes"`
	RouteGeometry   [][]float64 `json:"route_geometry"`
	CoinsToEarn     int         `json:"coins_to_earn"`
	Source          string      `json:"source"`
}

type RoutingService struct {
	apiKey   string
	endpoint string
	timeout  time.Duration
}

func NewRoutingService() *RoutingService {
	endpoint := os.Getenv("ORS_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultORSEndpoint
	}
	return &RoutingService{
		apiKey:   os.Getenv("ORS_API_KEY"),
		endpoint: endpoint,
		timeout:  10 * time.Second,
	}
}

// CalculateRoute returns a walkable route between two points. It never fails:
// provider errors degrade to the straight-line estimate.
func (s *RoutingService) CalculateRoute(req RouteRequest) RouteResult {
	if s.apiKey != "" {
		result, err := s.orsDirections(req.Start, req.End)
		if err == nil {
			return result
		}
		metrics.ProviderFailures.WithLabelValues("openrouteservice").Inc()
		log.Printf("openrouteservice error, falling back to estimate: %v", err)
	}

	return s.estimate(req.Start, req.End)
}

// orsDirections calls the OpenRouteService GeoJSON directions endpoint.
func (s *RoutingService) orsDirections(start, end []float64) (RouteResult, error) {
	body := map[string]interface{}{
		"coordinates": [][]float64{start, end},
	}

	agent := fiber.Post(s.endpoint)
	agent.Timeout(s.timeout)
	agent.Set("Authorization", s.apiKey)
	agent.JSON(body)

	code, resp, errs := agent.Bytes()
	if len(errs) > 0 {
		return RouteResult{}, errs[0]
	}
	if code != fiber.StatusOK {
		return RouteResult{}, fmt.Errorf("openrouteservice returned status %d", code)
	}

	var geo struct {
		Features []struct {
			Properties struct {
				Summary struct {
					Distance float64 `json:"distance"` // meters
					Duration float64 `json:"duration"` // seconds
				} `json:"summary"`
			} `json:"properties"`
			Geometry struct {
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(resp, &geo); err != nil {
		return RouteResult{}, err
	}
	if len(geo.Features) == 0 {
		return RouteResult{}, errors.New("openrouteservice returned no route")
	}

	feature := geo.Features[0]
	distanceKm := RoundKm(feature.Properties.Summary.Distance / 1000)

	return RouteResult{
		Success:         true,
		DistanceKm:      distanceKm,
		DurationMinutes: int(feature.Properties.Summary.Duration / 60),
		RouteGeometry:   feature.Geometry.Coordinates,
		CoinsToEarn:     CalculateCoins(distanceKm),
		Source:          "openrouteservice",
	}, nil
}

// estimate approximates the route with a straight line.
func (s *RoutingService) estimate(start, end []float64) RouteResult {
	if len(start) < 2 || len(end) < 2 {
		return RouteResult{Success: false, Source: "fallback"}
	}

	dLng := end[0] - start[0]
	dLat := end[1] - start[1]
	distanceKm := RoundKm(math.Hypot(dLng, dLat) * kmPerDegree)

	midpoint := []float64{(start[0] + end[0]) / 2, (start[1] + end[1]) / 2}

	return RouteResult{
		Success:         true,
		DistanceKm:      distanceKm,
		DurationMinutes: int(distanceKm * minutesPerKm),
		RouteGeometry:   [][]float64{start, midpoint, end},
		CoinsToEarn:     CalculateCoins(distanceKm),
		Source:          "fallback",
	}
}
