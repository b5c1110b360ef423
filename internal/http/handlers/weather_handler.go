// README: Weather snapshot read handler.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"voyant/internal/modules/weather"
)

type WeatherHandler struct {
	weather *weather.Service
}

func NewWeatherHandler(svc *weather.Service) *WeatherHandler {
	return &WeatherHandler{weather: svc}
}

// Get handles GET /api/weather/:destination.
func (h *WeatherHandler) Get(c *gin.Context) {
	dest := c.Param("destination")
	if dest == "" {
		writeError(c, http.StatusBadRequest, "missing destination")
		return
	}
	snap, err := h.weather.Get(c.Request.Context(), dest)
	if errors.Is(err, weather.ErrNoSnapshot) {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, snap)
}
