package database

import (
	"time"

	"gorm.io/gorm/clause"

	"github.com/brodyman30/YourFM/internal/models"
)

// SaveToken upserts the OAuth credentials for one (provider, user).
func (c *Client) SaveToken(provider, userID, access, refresh string, expiresAt time.Time) error {
	token := models.ServiceToken{
		Provider:     provider,
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}
	return c.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"access_token", "refresh_token", "expires_at", "updated_at",
		}),
	}).Create(&token).Error
}

// TokenFor loads the stored credentials, if any.
func (c *Client) TokenFor(provider, userID string) (*models.ServiceToken, error) {
	var token models.ServiceToken
	err := c.DB.Where("provider = ? AND user_id = ?", provider, userID).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}
