package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brodyman30/YourFM/internal/catalog"
	database "github.com/brodyman30/YourFM/internal/db"
	"github.com/brodyman30/YourFM/internal/models"
)

const tokenProvider = "spotify"

// CatalogHandler exposes the music catalog to the station editor:
// genres, artist lookup, queue building, and the OAuth grant that makes
// all of it possible.
type CatalogHandler struct {
	db          *database.Client
	oauth       *catalog.OAuth
	client      *catalog.Client
	mixer       *catalog.Mixer
	frontendURL string
}

func NewCatalogHandler(db *database.Client, oauth *catalog.OAuth, client *catalog.Client, mixer *catalog.Mixer, frontendURL string) *CatalogHandler {
	return &CatalogHandler{
		db:          db,
		oauth:       oauth,
		client:      client,
		mixer:       mixer,
		frontendURL: frontendURL,
	}
}

// AuthURL hands the frontend the provider's consent page URL.
func (h *CatalogHandler) AuthURL(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"auth_url": h.oauth.AuthURL()})
}

// AuthCallback is the OAuth redirect target: trade the code for tokens,
// persist them, and bounce back to the frontend.
func (h *CatalogHandler) AuthCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing code"})
		return
	}

	tokens, err := h.oauth.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Token exchange failed"})
		return
	}

	if err := h.db.SaveToken(tokenProvider, userID(c),
		tokens.AccessToken, tokens.RefreshToken, tokens.ExpiresAt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store tokens"})
		return
	}

	if h.frontendURL != "" {
		c.Redirect(http.StatusFound, h.frontendURL+"?connected=1")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Connected"})
}

// AuthStatus reports whether a usable grant exists for the caller.
func (h *CatalogHandler) AuthStatus(c *gin.Context) {
	token, err := h.db.TokenFor(tokenProvider, userID(c))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"connected": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": true, "expired": token.Expired()})
}

func (h *CatalogHandler) GetGenres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": catalog.Genres()})
}

func (h *CatalogHandler) SearchArtists(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query"})
		return
	}

	artists, err := h.client.SearchArtists(c.Request.Context(), query, c.Query("genre"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Artist search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": artists})
}

func (h *CatalogHandler) ArtistsByGenre(c *gin.Context) {
	genres := strings.Split(c.Query("genres"), ",")
	var cleaned []string
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			cleaned = append(cleaned, g)
		}
	}
	if len(cleaned) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing genres"})
		return
	}

	artists, err := h.client.ArtistsByGenre(c.Request.Context(), cleaned)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Artist lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": artists})
}

// MixStation builds a fresh queue for one station. Each call rebuilds
// the pools, so re-entering a station yields a different mix.
func (h *CatalogHandler) MixStation(c *gin.Context) {
	var station models.Station
	err := h.db.DB.First(&station, "id = ?", c.Param("id")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load station"})
		return
	}

	var ids, names []string
	for _, a := range station.Artists {
		ids = append(ids, a.ID)
		names = append(names, a.Name)
	}

	tracks, err := h.mixer.Mix(c.Request.Context(), ids, names)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Mix failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tracks})
}
