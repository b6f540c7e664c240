package router

import (
	"pulseMontreal/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/me", handler.GetMe, authRequired)
	users.PUT("/me/personalization", handler.SetPersonalization, authRequired)
}

func SetupEventRoutes(api *echo.Group, handler *rest.EventHandler, authRequired echo.MiddlewareFunc, organizerOnly echo.MiddlewareFunc) {
	events := api.Group("/events")

	events.GET("", handler.ListUpcoming)
	events.GET("/:id", handler.GetEventByID)

	events.POST("", handler.CreateEvent, authRequired, organizerOnly)
	events.PUT("/:id", handler.UpdateEvent, authRequired, organizerOnly)
	events.POST("/:id/cancel", handler.CancelEvent, authRequired, organizerOnly)
	events.POST("/:id/archive", handler.ArchiveEvent, authRequired, organizerOnly)
}

func SetupActivityRoutes(api *echo.Group, handler *rest.ActivityHandler, authRequired echo.MiddlewareFunc) {
	api.POST("/interactions", handler.RecordInteraction, authRequired)

	favorites := api.Group("/favorites", authRequired)
	favorites.GET("", handler.GetFavorites)
	favorites.PUT("/:eventId", handler.AddFavorite)
	favorites.DELETE("/:eventId", handler.RemoveFavorite)

	interests := api.Group("/interests", authRequired)
	interests.GET("", handler.GetInterestTags)
	interests.PUT("", handler.UpsertInterestTag)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)
	reco.GET("", handler.GetRecommendations)
	reco.GET("/:eventId/explain", handler.Explain)
}

func SetupTrendingRoutes(api *echo.Group, handler *rest.TrendingHandler) {
	api.GET("/trending", handler.GetTrending)
}

func SetupTasteRoutes(api *echo.Group, handler *rest.TasteHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	taste := api.Group("/taste", authRequired)
	taste.GET("/profile", handler.GetMyProfile)
	taste.POST("/profile/rebuild", handler.RebuildMyProfile)

	api.POST("/admin/taste/rebuild", handler.RebuildAllProfiles, authRequired, adminOnly)
}

func SetupEnrichRoutes(api *echo.Group, handler *rest.EnrichHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin/enrich", authRequired, adminOnly)
	admin.POST("/events/:eventId", handler.EnrichEvent)
	admin.POST("/batch", handler.SubmitEnrichBatch)

	api.GET("/jobs/:id", handler.GetJob, authRequired, adminOnly)
}
