// handlers/handlers.go - Handler wiring
package handlers

import (
	"gowalking/services"

	"gorm.io/gorm"
)

var (
	achievementService *services.AchievementService
	walkService        *services.WalkService
	groupService       *services.GroupService
	routingService     *services.RoutingService
	poiService         *services.POIService
	geocodeService     *services.GeocodeService
	feedHub            *services.FeedHub
)

// Init builds the service layer. Must be called after database.InitDB and
// before any route is served.
func Init(db *gorm.DB) {
	feedHub = services.NewFeedHub()
	achievementService = services.NewAchievementService(db, services.DefaultCatalog())
	walkService = services.NewWalkService(db, achievementService, feedHub)
	groupService = services.NewGroupService(db)
	routingService = services.NewRoutingService()
	poiService = services.NewPOIService(db)
	geocodeService = services.NewGeocodeService()
}

// Achievements exposes the achievement engine for startup seeding.
func Achievements() *services.AchievementService {
	return achievementService
}
