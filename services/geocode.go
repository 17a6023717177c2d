// services/geocode.go - Address Geocoding (Nominatim)
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gowalking/metrics"

	"github.com/gofiber/fiber/v2"
)

const defaultNominatimEndpoint = "https://nominatim.openstreetmap.org"

const geocodeUserAgent = "gowalking-app"

var ErrAddressNotFound = errors.New("address not found")

type GeocodeResult struct {
	Coordinates []float64 `json:"coordinates"` // [lng, lat]
	DisplayName string    `json:"display_name"`
}

type GeocodeService struct {
	endpoint string
	timeout  time.Duration
}

func NewGeocodeService() *GeocodeService {
	endpoint := os.Getenv("NOMINATIM_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultNominatimEndpoint
	}
	return &GeocodeService{endpoint: endpoint, timeout: 10 * time.Second}
}

// Geocode resolves a German address to coordinates. Searches are scoped to
// Germany, matching the supported cities.
func (s *GeocodeService) Geocode(address string) (*GeocodeResult, error) {
	if address == "" {
		return nil, ErrAddressNotFound
	}

	query := url.Values{}
	query.Set("q", address+", Germany")
	query.Set("format", "json")
	query.Set("limit", "1")

	agent := fiber.Get(s.endpoint + "/search?" + query.Encode())
	agent.Timeout(s.timeout)
	agent.UserAgent(geocodeUserAgent)

	code, resp, errs := agent.Bytes()
	if len(errs) > 0 {
		metrics.ProviderFailures.WithLabelValues("nominatim").Inc()
		return nil, errs[0]
	}
	if code != fiber.StatusOK {
		metrics.ProviderFailures.WithLabelValues("nominatim").Inc()
		return nil, fmt.Errorf("nominatim returned status %d", code)
	}

	// Nominatim encodes coordinates as strings.
	var places []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(resp, &places); err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, err
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, err
	}

	return &GeocodeResult{
		Coordinates: []float64{lng, lat},
		DisplayName: places[0].DisplayName,
	}, nil
}
