package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArtistRef is a catalog artist pinned to a station.
type ArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ArtistList stores the station's artists as a JSON column.
type ArtistList []ArtistRef

func (a ArtistList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	return string(b), err
}

func (a *ArtistList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = nil
		return nil
	}
	return fmt.Errorf("unsupported artist list type %T", value)
}

// Station is a user-defined radio station: the seed artists and genres
// for the mix, plus the bumper voice and talking points.
type Station struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name         string     `gorm:"not null;index" json:"name"`
	Genres       string     `json:"-"` // comma-separated
	Artists      ArtistList `gorm:"type:text" json:"artists"`
	BumperTopics string     `json:"-"` // comma-separated
	VoiceID      string     `json:"voice_id"`
	VoiceName    string     `json:"voice_name"`
	UserID       string     `gorm:"index;default:'default_user'" json:"user_id"`
}

func (s *Station) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// GenreList splits the stored comma-separated genres.
func (s *Station) GenreList() []string {
	return splitCSV(s.Genres)
}

// TopicList splits the stored comma-separated bumper topics.
func (s *Station) TopicList() []string {
	return splitCSV(s.BumperTopics)
}

func (s *Station) SetGenres(genres []string) { s.Genres = joinCSV(genres) }
func (s *Station) SetTopics(topics []string) { s.BumperTopics = joinCSV(topics) }

// MarshalJSON exposes genres/topics as arrays, plus a legacy singular
// "genre" field kept for old clients.
func (s Station) MarshalJSON() ([]byte, error) {
	type alias Station
	genres := s.GenreList()
	legacy := ""
	if len(genres) > 0 {
		legacy = genres[0]
	}
	return json.Marshal(struct {
		alias
		Genres       []string `json:"genres"`
		BumperTopics []string `json:"bumper_topics"`
		Genre        string   `json:"genre,omitempty"`
	}{alias(s), genres, s.TopicList(), legacy})
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func joinCSV(parts []string) string {
	var clean []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			clean = append(clean, trimmed)
		}
	}
	return strings.Join(clean, ",")
}
