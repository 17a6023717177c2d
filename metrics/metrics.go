// metrics/metrics.go - Prometheus counters
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WalksRecorded counts successfully recorded walks.
	WalksRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gowalking_walks_recorded_total",
		Help: "Number of walks recorded.",
	})

	// AchievementsAwarded counts newly awarded achievements.
	AchievementsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gowalking_achievements_awarded_total",
		Help: "Number of achievements awarded.",
	})

	// ProviderFailures counts failed calls to external providers, labelled by
	// provider (openrouteservice, overpass, nominatim).
	ProviderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gowalking_provider_failures_total",
		Help: "Number of failed external provider calls.",
	}, []string{"provider"})
)
