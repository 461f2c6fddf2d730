package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brodyman30/YourFM/internal/voice"
)

// VoiceHandler lists the selectable bumper voices.
type VoiceHandler struct {
	voices *voice.Client
}

func NewVoiceHandler(voices *voice.Client) *VoiceHandler {
	return &VoiceHandler{voices: voices}
}

func (h *VoiceHandler) GetVoices(c *gin.Context) {
	voices, err := h.voices.Voices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch voices"})
		return
	}
	if voices == nil {
		voices = []voice.Info{}
	}
	c.JSON(http.StatusOK, gin.H{"data": voices})
}
