package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bumper records one generated spoken segment: the script the announcer
// wrote and where the synthesized clip lives in storage.
type Bumper struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	StationID  string `gorm:"index;not null" json:"station_id"`
	Text       string `gorm:"type:text" json:"text"`
	VoiceID    string `json:"voice_id"`
	StorageKey string `json:"storage_key"` // bumpers/<id>.mp3 in the assets bucket
	SizeBytes  int    `json:"size_bytes"`
}

func (b *Bumper) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// ServiceToken holds OAuth credentials for an external provider.
// One row per (provider, user).
type ServiceToken struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Provider     string    `gorm:"uniqueIndex:idx_provider_user;size:32" json:"provider"`
	UserID       string    `gorm:"uniqueIndex:idx_provider_user;default:'default_user'" json:"user_id"`
	AccessToken  string    `gorm:"type:text" json:"-"`
	RefreshToken string    `gorm:"type:text" json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the access token needs a refresh, with a
// minute of slack so we never hand out a token about to die mid-request.
func (t *ServiceToken) Expired() bool {
	return time.Now().After(t.ExpiresAt.Add(-time.Minute))
}
