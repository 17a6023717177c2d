// services/overpass_test.go
package services

import (
	"encoding/json"
	"testing"
	"time"

	"gowalking/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedCities(t *testing.T) {
	cities := SupportedCities()
	assert.Equal(t, []string{"deggendorf", "passau", "regensburg"}, cities)

	centers := CityCenters()
	require.Contains(t, centers, "regensburg")
	assert.Equal(t, []float64{12.12, 49.03}, centers["regensburg"])
}

func TestFindPOIsUnsupportedCity(t *testing.T) {
	db := newTestDB(t)
	svc := NewPOIService(db)

	_, _, err := svc.FindPOIs("munich", "restaurant")
	assert.ErrorIs(t, err, ErrCityNotSupported)
}

func TestFindPOIsServesFreshCache(t *testing.T) {
	db := newTestDB(t)
	svc := NewPOIService(db)

	businesses := []models.Business{
		{ID: "node-1", Name: "Gasthaus Donau", AmenityType: "restaurant", City: "regensburg"},
		{ID: "node-2", Name: "Cafe Altstadt", AmenityType: "restaurant", City: "regensburg"},
	}
	data, err := json.Marshal(businesses)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.CachedPOI{
		City:        "regensburg",
		AmenityType: "restaurant",
		Data:        string(data),
		CachedAt:    time.Now().UTC(),
	}).Error)

	got, source, err := svc.FindPOIs("Regensburg", "restaurant")
	require.NoError(t, err)
	assert.Equal(t, "cache", source)
	require.Len(t, got, 2)
	assert.Equal(t, "Gasthaus Donau", got[0].Name)
}

func TestSameUTCDay(t *testing.T) {
	noon := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	assert.True(t, sameUTCDay(noon, noon.Add(11*time.Hour)))
	assert.False(t, sameUTCDay(noon, noon.Add(13*time.Hour)))
	assert.False(t, sameUTCDay(noon, noon.Add(-24*time.Hour)))

	// Wall-clock equality in another zone still compares UTC days.
	berlin := time.FixedZone("CEST", 2*3600)
	assert.True(t, sameUTCDay(noon, time.Date(2026, 8, 30, 23, 0, 0, 0, berlin)))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Fast Food", titleCase("fast_food"))
	assert.Equal(t, "Restaurant", titleCase("restaurant"))
	assert.Equal(t, "Pub", titleCase("pub"))
	assert.Equal(t, "", titleCase(""))
}
