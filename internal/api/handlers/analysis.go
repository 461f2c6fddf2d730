package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brodyman30/YourFM/internal/analysis"
)

// AnalysisHandler serves audio features for the visualizer. It never
// errors outward; an unresolvable track gets the default profile.
type AnalysisHandler struct {
	analysis *analysis.Client
}

func NewAnalysisHandler(client *analysis.Client) *AnalysisHandler {
	return &AnalysisHandler{analysis: client}
}

func (h *AnalysisHandler) GetTrackFeatures(c *gin.Context) {
	song := c.Query("song")
	artist := c.Query("artist")
	if song == "" || artist == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing song or artist"})
		return
	}
	c.JSON(http.StatusOK, h.analysis.TrackFeatures(c.Request.Context(), song, artist))
}
