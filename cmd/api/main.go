package main

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brodyman30/YourFM/internal/analysis"
	"github.com/brodyman30/YourFM/internal/announcer"
	"github.com/brodyman30/YourFM/internal/bumper"
	"github.com/brodyman30/YourFM/internal/catalog"
	"github.com/brodyman30/YourFM/internal/config"
	database "github.com/brodyman30/YourFM/internal/db"
	"github.com/brodyman30/YourFM/internal/storage"
	"github.com/brodyman30/YourFM/internal/voice"

	// Use an alias to prevent naming collisions with the 'server' variable
	apiserver "github.com/brodyman30/YourFM/internal/api/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting YourFM API Server...")

	// 1. Setup Configuration
	cfg := config.Load()

	// 2. Initialize Infrastructure
	db := database.New(cfg)

	// 3. Run Database Migrations
	db.AutoMigrate()
	database.SeedAdminUser(db.DB)

	// 4. Storage
	store := storage.New(cfg)

	// 5. Service Clients
	oauth := catalog.NewOAuth(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.RedirectURI)
	spotify := catalog.NewClient(catalog.StoredTokenFunc(oauth, db.SpotifyTokens("default_user")))

	mixer := catalog.NewMixer(spotify)
	mixer.TargetSize = cfg.Radio.QueueSize
	mixer.DiscoveryFraction = cfg.Radio.DiscoveryFraction

	voices := voice.NewClient(cfg.ElevenLabs.APIKey, cfg.ElevenLabs.Model)
	scripts := announcer.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)
	features := analysis.NewClient(cfg.SoundStat.APIKey)
	bumpers := bumper.NewService(scripts, voices, store, db.DB, "")

	// 6. Setup Metrics
	bumper.RegisterMetrics()
	go func() {
		http.Handle("/_metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/_metrics", cfg.Server.MetricsPort)
		if err := http.ListenAndServe(cfg.Server.MetricsPort, nil); err != nil {
			log.Printf("⚠️ Metrics server error: %v", err)
		}
	}()

	// 7. Start Server
	srv := apiserver.New(cfg, db, apiserver.Deps{
		Catalog:  spotify,
		OAuth:    oauth,
		Mixer:    mixer,
		Voices:   voices,
		Analysis: features,
		Bumpers:  bumpers,
	})

	log.Printf("🚀 API Server starting on %s", cfg.Server.Port)
	if err := srv.Start(cfg.Server.Port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
