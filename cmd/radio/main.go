package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/brodyman30/YourFM/internal/analysis"
	"github.com/brodyman30/YourFM/internal/announcer"
	"github.com/brodyman30/YourFM/internal/bumper"
	"github.com/brodyman30/YourFM/internal/catalog"
	"github.com/brodyman30/YourFM/internal/config"
	database "github.com/brodyman30/YourFM/internal/db"
	"github.com/brodyman30/YourFM/internal/models"
	"github.com/brodyman30/YourFM/internal/player"
	"github.com/brodyman30/YourFM/internal/session"
	"github.com/brodyman30/YourFM/internal/storage"
	"github.com/brodyman30/YourFM/internal/visualizer"
	"github.com/brodyman30/YourFM/internal/voice"
)

func main() {
	// 1. Parse Flags
	// We add flags to override config.yaml values
	stationID := flag.String("station", "", "Station ID to play (required)")
	deviceID := flag.String("device", "", "Override playback device ID")
	location := flag.String("location", "", "Listener location hint for the announcer")
	noViz := flag.Bool("no-viz", false, "Disable the terminal visualizer")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if *stationID == "" {
		log.Fatal("❌ -station is required")
	}

	// 2. Load Config
	cfg := config.Load()
	if *deviceID != "" {
		cfg.Spotify.DeviceID = *deviceID
	}

	log.Println("🚀 Starting YourFM Playback Engine...")

	// 3. Init Infrastructure
	db := database.New(cfg)
	db.AutoMigrate()
	store := storage.New(cfg)

	bumper.RegisterMetrics()
	session.RegisterMetrics()

	// 4. Load the Station
	var station models.Station
	if err := db.DB.First(&station, "id = ?", *stationID).Error; err != nil {
		log.Fatalf("❌ Station %s not found: %v", *stationID, err)
	}
	log.Printf("📻 Station: %s (%d artists)", station.Name, len(station.Artists))

	// 5. Service Clients
	oauth := catalog.NewOAuth(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.RedirectURI)
	spotify := catalog.NewClient(catalog.StoredTokenFunc(oauth, db.SpotifyTokens(station.UserID)))

	mixer := catalog.NewMixer(spotify)
	mixer.TargetSize = cfg.Radio.QueueSize
	mixer.DiscoveryFraction = cfg.Radio.DiscoveryFraction

	var ids, names []string
	for _, a := range station.Artists {
		ids = append(ids, a.ID)
		names = append(names, a.Name)
	}

	voices := voice.NewClient(cfg.ElevenLabs.APIKey, cfg.ElevenLabs.Model)
	scripts := announcer.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)
	features := analysis.NewClient(cfg.SoundStat.APIKey)
	bumpers := bumper.NewService(scripts, voices, store, db.DB, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connect := catalog.NewConnect(ctx, spotify, cfg.Spotify.DeviceID)
	clips := player.NewSpeakerPlayer()

	// 6. Build the Session
	sess := session.New(session.Config{
		StationID:        station.ID,
		Topics:           station.TopicList(),
		Genres:           station.GenreList(),
		VoiceID:          station.VoiceID,
		VoiceName:        station.VoiceName,
		ListenerLocation: *location,
		Threshold:        cfg.Radio.BumperThreshold,
		Timing: session.Timing{
			DuckVolume:   cfg.Radio.DuckVolume,
			DuckDelay:    cfg.DuckDelay(),
			SettleDelay:  cfg.SettleDelay(),
			FadeStep:     cfg.Radio.FadeStep,
			FadeInterval: cfg.FadeInterval(),
			PollInterval: cfg.PollInterval(),
			FrameRate:    cfg.Radio.FrameRate,
		},
	}, connect, catalog.NewStationSource(mixer, ids, names), bumpers, clips)

	go func() {
		for n := range sess.Notices() {
			log.Printf("⚠️ Session notice [%s]: %v", n.Stage, n.Err)
		}
	}()

	if err := sess.Start(ctx); err != nil {
		log.Fatalf("❌ Session failed to start: %v", err)
	}

	// 7. Visualizer
	var loop *visualizer.Loop
	if !*noViz {
		loop = visualizer.NewLoop(
			visualizer.NewTermSurface(os.Stdout),
			sess,
			trackFeatures(sess, features),
			cfg.Radio.FrameRate,
		)
		loop.Start(ctx)
	}

	// 8. Wait for Shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("👋 Shutting down...")
	if loop != nil {
		loop.Stop()
	}
	sess.Stop()
}

// trackFeatures caches one analysis result per track so the 60fps loop
// never blocks on HTTP. A track change kicks off a background fetch;
// frames fall back to simulation until it lands.
func trackFeatures(sess *session.Session, client *analysis.Client) visualizer.FeatureFunc {
	var mu sync.Mutex
	var cachedURI string
	var cached visualizer.Features
	var ready, fetching bool

	return func() (visualizer.Features, bool) {
		cursor := sess.Cursor()
		if cursor.URI == "" {
			return visualizer.Features{}, false
		}

		mu.Lock()
		defer mu.Unlock()

		if cursor.URI == cachedURI {
			return cached, ready
		}
		if fetching {
			return visualizer.Features{}, false
		}
		fetching = true

		go func(uri, name, artist string) {
			feats := client.TrackFeatures(context.Background(), name, artist)
			mu.Lock()
			cachedURI = uri
			cached = visualizer.Features{
				Tempo:        feats.Tempo,
				Energy:       feats.Energy,
				Danceability: feats.Danceability,
			}
			ready = true
			fetching = false
			mu.Unlock()
		}(cursor.URI, cursor.Name, cursor.Artist)

		return visualizer.Features{}, false
	}
}
