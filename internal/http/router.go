// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyant/internal/http/handlers"
	"voyant/internal/http/middleware"
	"voyant/internal/infra"
	"voyant/internal/modules/aiusage"
	"voyant/internal/modules/trip"
	"voyant/internal/modules/weather"
	"voyant/internal/service"
)

type RouterDeps struct {
	Planner    *service.Planner
	Trips      *trip.Service
	Quota      *aiusage.Service // optional
	Weather    *weather.Service // optional
	Verifier   infra.TokenVerifier
	Logger     *zap.Logger
	Production bool
}

// NewRouter wires the gin engine: middleware, auth, and all API routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))

	// Unmatched methods on known paths must answer 405, not 404.
	r.HandleMethodNotAllowed = true
	methodNotAllowed := func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	}
	r.NoMethod(methodNotAllowed)

	// GET/PATCH/DELETE on the exact ai-plan path would otherwise fall into
	// the /trips/:id wildcard with id="ai-plan" and answer 400; the path is
	// POST-only, so reserve the other registered methods explicitly.
	r.GET("/api/trips/ai-plan", methodNotAllowed)
	r.PATCH("/api/trips/ai-plan", methodNotAllowed)
	r.DELETE("/api/trips/ai-plan", methodNotAllowed)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	api.Use(middleware.Auth(deps.Verifier))

	planHandler := handlers.NewPlanHandler(deps.Planner, deps.Quota)
	api.POST("/trips/ai-plan", planHandler.Generate)
	api.POST("/trips/ai-plan/alternatives", planHandler.Alternatives)
	api.POST("/trips/ai-plan/replace-activity", planHandler.ReplaceActivity)

	tripHandler := handlers.NewTripHandler(deps.Trips)
	api.POST("/trips", tripHandler.Create)
	api.GET("/trips", tripHandler.List)
	api.GET("/trips/:id", tripHandler.Get)
	api.PATCH("/trips/:id", tripHandler.Update)
	api.DELETE("/trips/:id", tripHandler.Delete)
	api.POST("/trips/:id/itinerary", tripHandler.SaveItinerary)
	api.POST("/trips/:id/days/:dayID/activities", tripHandler.AddActivity)
	api.PATCH("/activities/:id", tripHandler.UpdateActivity)
	api.DELETE("/activities/:id", tripHandler.DeleteActivity)

	collabHandler := handlers.NewCollaboratorHandler(deps.Trips)
	api.POST("/trips/:id/collaborators", collabHandler.Add)
	api.GET("/trips/:id/collaborators", collabHandler.List)
	api.DELETE("/trips/:id/collaborators/:uid", collabHandler.Remove)

	if deps.Weather != nil {
		weatherHandler := handlers.NewWeatherHandler(deps.Weather)
		api.GET("/weather/:destination", weatherHandler.Get)
	}

	return r
}
