package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brodyman30/YourFM/internal/bumper"
	"github.com/brodyman30/YourFM/internal/models"
)

// BumperHandler produces bumper clips on demand for web clients; the
// embedded session engine calls the same service directly.
type BumperHandler struct {
	db      *gorm.DB
	service *bumper.Service
}

func NewBumperHandler(db *gorm.DB, service *bumper.Service) *BumperHandler {
	return &BumperHandler{db: db, service: service}
}

type bumperInput struct {
	StationID          string `json:"station_id" binding:"required"`
	CurrentTrackName   string `json:"current_track_name"`
	CurrentTrackArtist string `json:"current_track_artist"`
	NextTrackName      string `json:"next_track_name"`
	NextTrackArtist    string `json:"next_track_artist"`
	ListenerLocation   string `json:"listener_location"`
}

// GenerateBumper scripts and synthesizes one clip for a station,
// returning the audio inline so the player can start it immediately.
func (h *BumperHandler) GenerateBumper(c *gin.Context) {
	var input bumperInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var station models.Station
	if err := h.db.First(&station, "id = ?", input.StationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}

	clip, err := h.service.Generate(c.Request.Context(), bumper.Request{
		StationID:          station.ID,
		Topics:             station.TopicList(),
		Genres:             station.GenreList(),
		VoiceID:            station.VoiceID,
		VoiceName:          station.VoiceName,
		CurrentTrackName:   input.CurrentTrackName,
		CurrentTrackArtist: input.CurrentTrackArtist,
		NextTrackName:      input.NextTrackName,
		NextTrackArtist:    input.NextTrackArtist,
		ListenerLocation:   input.ListenerLocation,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Bumper generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    clip.ID,
		"text":  clip.Text,
		"audio": base64.StdEncoding.EncodeToString(clip.Audio),
	})
}

// GetBumpers lists a station's archived bumper records.
func (h *BumperHandler) GetBumpers(c *gin.Context) {
	var bumpers []models.Bumper
	result := h.db.Where("station_id = ?", c.Param("id")).
		Order("created_at desc").Find(&bumpers)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bumpers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bumpers})
}
