package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brodyman30/YourFM/internal/models"
)

// StationHandler owns the station CRUD surface.
type StationHandler struct {
	db *gorm.DB
}

func NewStationHandler(db *gorm.DB) *StationHandler {
	return &StationHandler{db: db}
}

type stationInput struct {
	Name         string            `json:"name" binding:"required"`
	Genres       []string          `json:"genres"`
	Artists      models.ArtistList `json:"artists"`
	BumperTopics []string          `json:"bumper_topics"`
	VoiceID      string            `json:"voice_id"`
	VoiceName    string            `json:"voice_name"`
}

func userID(c *gin.Context) string {
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "default_user"
}

func (h *StationHandler) CreateStation(c *gin.Context) {
	var input stationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	station := models.Station{
		Name:      input.Name,
		Artists:   input.Artists,
		VoiceID:   input.VoiceID,
		VoiceName: input.VoiceName,
		UserID:    userID(c),
	}
	station.SetGenres(input.Genres)
	station.SetTopics(input.BumperTopics)

	if err := h.db.Create(&station).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create station"})
		return
	}
	c.JSON(http.StatusCreated, station)
}

func (h *StationHandler) GetStations(c *gin.Context) {
	var stations []models.Station
	result := h.db.Where("user_id = ?", userID(c)).Order("created_at desc").Find(&stations)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stations})
}

func (h *StationHandler) GetStation(c *gin.Context) {
	var station models.Station
	if err := h.db.First(&station, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}
	c.JSON(http.StatusOK, station)
}

func (h *StationHandler) UpdateStation(c *gin.Context) {
	var station models.Station
	if err := h.db.First(&station, "id = ? AND user_id = ?", c.Param("id"), userID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}

	var input stationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	station.Name = input.Name
	station.Artists = input.Artists
	station.VoiceID = input.VoiceID
	station.VoiceName = input.VoiceName
	station.SetGenres(input.Genres)
	station.SetTopics(input.BumperTopics)

	if err := h.db.Save(&station).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update station"})
		return
	}
	c.JSON(http.StatusOK, station)
}

func (h *StationHandler) DeleteStation(c *gin.Context) {
	result := h.db.Delete(&models.Station{}, "id = ? AND user_id = ?", c.Param("id"), userID(c))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete station"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Station deleted successfully"})
}
