package bumper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/bogem/id3v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/brodyman30/YourFM/internal/models"
)

// Metrics
var (
	bumpersGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "radio_bumpers_generated_total", Help: "Bumper clips produced"},
	)
	generateFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "radio_bumper_generate_failures_total", Help: "Bumper production failures"},
		[]string{"stage"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(bumpersGenerated, generateFailures)
}

// Scripter writes the on-air text for one request.
type Scripter interface {
	Script(ctx context.Context, req Request) string
}

// Synthesizer renders text to MP3 bytes in a given voice.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}

// AssetStore archives produced clips.
type AssetStore interface {
	UploadAsset(key string, body io.ReadSeeker, contentType string) error
}

// Service produces bumper clips: script, synthesize, tag, archive.
type Service struct {
	scripter Scripter
	synth    Synthesizer
	store    AssetStore
	db       *gorm.DB
	tempDir  string
}

func NewService(scripter Scripter, synth Synthesizer, store AssetStore, db *gorm.DB, tempDir string) *Service {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Service{
		scripter: scripter,
		synth:    synth,
		store:    store,
		db:       db,
		tempDir:  tempDir,
	}
}

// Generate produces one clip. The script step cannot fail (it falls
// back to a template); synthesis failure aborts the whole request.
// Tagging, archiving, and the DB record are best-effort: a clip that
// can play beats a clip that is perfectly catalogued.
func (s *Service) Generate(ctx context.Context, req Request) (*Clip, error) {
	text := s.scripter.Script(ctx, req)

	audio, err := s.synth.Synthesize(ctx, text, req.VoiceID)
	if err != nil {
		generateFailures.WithLabelValues("synthesis").Inc()
		return nil, fmt.Errorf("synthesize bumper: %w", err)
	}

	clip := &Clip{
		ID:    uuid.NewString(),
		Text:  text,
		Audio: audio,
	}
	clip.StorageKey = "bumpers/" + clip.ID + ".mp3"

	if tagged, err := s.stampClip(clip, req); err == nil {
		clip.Audio = tagged
	} else {
		generateFailures.WithLabelValues("tagging").Inc()
		log.Printf("⚠️ Bumper tag failed: %v", err)
	}

	if s.store != nil {
		if err := s.store.UploadAsset(clip.StorageKey, bytes.NewReader(clip.Audio), "audio/mpeg"); err != nil {
			generateFailures.WithLabelValues("storage").Inc()
			log.Printf("⚠️ Bumper upload failed: %v", err)
		}
	}

	if s.db != nil {
		record := models.Bumper{
			ID:         clip.ID,
			StationID:  req.StationID,
			Text:       text,
			VoiceID:    req.VoiceID,
			StorageKey: clip.StorageKey,
			SizeBytes:  len(clip.Audio),
		}
		if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
			generateFailures.WithLabelValues("db").Inc()
			log.Printf("⚠️ Bumper record failed: %v", err)
		}
	}

	bumpersGenerated.Inc()
	return clip, nil
}

// stampClip writes ID3 tags so archived clips stay identifiable when
// browsed straight out of the bucket.
func (s *Service) stampClip(clip *Clip, req Request) ([]byte, error) {
	path := filepath.Join(s.tempDir, clip.ID+".mp3")
	if err := os.WriteFile(path, clip.Audio, 0644); err != nil {
		return nil, err
	}
	defer os.Remove(path)

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}

	title := clip.Text
	if len(title) > 60 {
		title = title[:60]
	}
	tag.SetTitle(title)
	tag.SetArtist(req.VoiceName)
	tag.SetAlbum("YourFM Bumpers")

	if err := tag.Save(); err != nil {
		tag.Close()
		return nil, err
	}
	tag.Close()

	return os.ReadFile(path)
}
