// services/catalog.go - Achievement Catalog
package services

import "gowalking/models"

// Metric names produced by the stat aggregator. businesses_visited,
// offers_redeemed and consecutive_days are placeholders and always report 0
// until those signals are tracked.
const (
	MetricWalksCompleted    = "walks_completed"
	MetricTotalDistanceKm   = "total_distance_km"
	MetricCitiesVisited     = "cities_visited"
	MetricWalksInSingleCity = "walks_in_single_city"
	MetricFriendsCount      = "friends_count"
	MetricInvitationsSent   = "walk_invitations_sent"
	MetricTotalCoinsEarned  = "total_coins_earned"
	MetricBusinessesVisited = "businesses_visited"
	MetricOffersRedeemed    = "offers_redeemed"
	MetricConsecutiveDays   = "consecutive_days"
)

func def(id, name, description, category, tier, icon string, points int, metric string, threshold float64) models.Achievement {
	return models.Achievement{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    category,
		Tier:        tier,
		Icon:        icon,
		Points:      points,
		Criteria:    models.CriteriaList{{Metric: metric, Threshold: threshold}},
	}
}

// DefaultCatalog returns the fixed achievement catalog. It is seeded into the
// database idempotently at startup and injected into the engine; nothing
// mutates it afterwards.
func DefaultCatalog() []models.Achievement {
	return []models.Achievement{
		// Distance
		def("first-steps", "First Steps", "Complete your first walk", models.CategoryDistance, models.TierBronze, "👟", 10, MetricWalksCompleted, 1),
		def("kilometer-king", "Kilometer King", "Walk a total of 10 km", models.CategoryDistance, models.TierBronze, "🚶", 20, MetricTotalDistanceKm, 10),
		def("distance-champion", "Distance Champion", "Walk a total of 50 km", models.CategoryDistance, models.TierSilver, "🏅", 50, MetricTotalDistanceKm, 50),
		def("marathon-spirit", "Marathon Spirit", "Walk a total of 100 km", models.CategoryDistance, models.TierGold, "🏃", 100, MetricTotalDistanceKm, 100),
		def("walking-legend", "Walking Legend", "Walk a total of 500 km", models.CategoryDistance, models.TierPlatinum, "🌟", 250, MetricTotalDistanceKm, 500),

		// Explorer
		def("city-explorer", "City Explorer", "Walk in 2 different cities", models.CategoryExplorer, models.TierBronze, "🗺️", 25, MetricCitiesVisited, 2),
		def("tri-city-wanderer", "Tri-City Wanderer", "Walk in all 3 supported cities", models.CategoryExplorer, models.TierSilver, "🧭", 75, MetricCitiesVisited, 3),
		def("local-hero", "Local Hero", "Complete 10 walks in the same city", models.CategoryExplorer, models.TierSilver, "🏘️", 60, MetricWalksInSingleCity, 10),
		def("hometown-legend", "Hometown Legend", "Complete 25 walks in the same city", models.CategoryExplorer, models.TierGold, "🏰", 150, MetricWalksInSingleCity, 25),

		// Social
		def("friendly-walker", "Friendly Walker", "Make your first friend", models.CategorySocial, models.TierBronze, "🤝", 15, MetricFriendsCount, 1),
		def("social-butterfly", "Social Butterfly", "Have 5 friends", models.CategorySocial, models.TierSilver, "🦋", 50, MetricFriendsCount, 5),
		def("walk-organizer", "Walk Organizer", "Send 5 walk invitations", models.CategorySocial, models.TierSilver, "📨", 40, MetricInvitationsSent, 5),
		def("community-builder", "Community Builder", "Have 15 friends", models.CategorySocial, models.TierGold, "🏛️", 120, MetricFriendsCount, 15),

		// Business
		def("shop-scout", "Shop Scout", "Visit 5 partner businesses", models.CategoryBusiness, models.TierBronze, "🛍️", 30, MetricBusinessesVisited, 5),
		def("deal-hunter", "Deal Hunter", "Redeem 3 discount offers", models.CategoryBusiness, models.TierSilver, "🏷️", 50, MetricOffersRedeemed, 3),

		// Streak
		def("consistent-walker", "Consistent Walker", "Walk 3 days in a row", models.CategoryStreak, models.TierBronze, "📆", 30, MetricConsecutiveDays, 3),
		def("week-warrior", "Week Warrior", "Walk 7 days in a row", models.CategoryStreak, models.TierGold, "🔥", 100, MetricConsecutiveDays, 7),

		// Coins
		def("coin-collector", "Coin Collector", "Earn 50 WalkCoins", models.CategoryCoins, models.TierBronze, "🪙", 25, MetricTotalCoinsEarned, 50),
		def("coin-hoarder", "Coin Hoarder", "Earn 250 WalkCoins", models.CategoryCoins, models.TierGold, "💰", 100, MetricTotalCoinsEarned, 250),
	}
}
