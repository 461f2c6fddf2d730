package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/brodyman30/YourFM/internal/analysis"
	"github.com/brodyman30/YourFM/internal/bumper"
	"github.com/brodyman30/YourFM/internal/catalog"
	"github.com/brodyman30/YourFM/internal/config"
	database "github.com/brodyman30/YourFM/internal/db"
	"github.com/brodyman30/YourFM/internal/voice"

	"github.com/brodyman30/YourFM/internal/api/handlers"
	"github.com/brodyman30/YourFM/internal/api/middleware"
)

// Deps bundles the service clients the API surfaces.
type Deps struct {
	Catalog  *catalog.Client
	OAuth    *catalog.OAuth
	Mixer    *catalog.Mixer
	Voices   *voice.Client
	Analysis *analysis.Client
	Bumpers  *bumper.Service
}

type Server struct {
	cfg    *config.Config
	db     *database.Client
	deps   Deps
	router *gin.Engine
}

func New(cfg *config.Config, db *database.Client, deps Deps) *Server {
	if cfg.Server.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:    cfg,
		db:     db,
		deps:   deps,
		router: gin.Default(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}

	// "Authorization" must be allowed so the frontend can send the JWT
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	secret := []byte(s.cfg.Server.JWTSecret)

	authHandler := handlers.NewAuthHandler(s.db.DB, secret)
	stationHandler := handlers.NewStationHandler(s.db.DB)
	catalogHandler := handlers.NewCatalogHandler(s.db, s.deps.OAuth, s.deps.Catalog, s.deps.Mixer, s.cfg.Server.FrontendURL)
	voiceHandler := handlers.NewVoiceHandler(s.deps.Voices)
	analysisHandler := handlers.NewAnalysisHandler(s.deps.Analysis)
	bumperHandler := handlers.NewBumperHandler(s.db.DB, s.deps.Bumpers)

	// Health Check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "yourfm"})
	})

	v1 := s.router.Group("/api/v1")
	{
		// ==========================================
		// PUBLIC ROUTES (No Token Required)
		// ==========================================
		v1.POST("/auth/login", authHandler.Login)

		// The OAuth redirect comes from the provider, not our frontend,
		// so it cannot carry a JWT.
		v1.GET("/spotify/callback", catalogHandler.AuthCallback)

		// ==========================================
		// PROTECTED ROUTES (JWT Token Required)
		// ==========================================
		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(secret))
		{
			// --- ADMIN ONLY ---
			protected.POST("/auth/register", middleware.RequireRole("admin"), authHandler.Register)

			// --- CATALOG GRANT
			protected.GET("/spotify/auth-url", catalogHandler.AuthURL)
			protected.GET("/spotify/status", catalogHandler.AuthStatus)

			// --- STATION EDITOR
			protected.GET("/genres", catalogHandler.GetGenres)
			protected.GET("/artists/search", catalogHandler.SearchArtists)
			protected.GET("/artists/by-genre", catalogHandler.ArtistsByGenre)
			protected.GET("/voices", voiceHandler.GetVoices)

			// --- STATIONS
			protected.GET("/stations", stationHandler.GetStations)
			protected.POST("/stations", stationHandler.CreateStation)
			protected.GET("/stations/:id", stationHandler.GetStation)
			protected.PUT("/stations/:id", stationHandler.UpdateStation)
			protected.DELETE("/stations/:id", stationHandler.DeleteStation)

			// --- PLAYBACK SUPPORT
			protected.GET("/stations/:id/tracks", catalogHandler.MixStation)
			protected.GET("/stations/:id/bumpers", bumperHandler.GetBumpers)
			protected.POST("/bumpers", bumperHandler.GenerateBumper)
			protected.GET("/track-analysis", analysisHandler.GetTrackFeatures)
		}
	}
}

// Start runs the server on the configured port
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
