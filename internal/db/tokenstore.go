package database

import (
	"context"

	"github.com/brodyman30/YourFM/internal/catalog"
)

// SpotifyTokens adapts the service_tokens table to the catalog's
// TokenStore contract for one user.
func (c *Client) SpotifyTokens(userID string) catalog.TokenStore {
	return &spotifyTokenStore{client: c, userID: userID}
}

type spotifyTokenStore struct {
	client *Client
	userID string
}

func (s *spotifyTokenStore) Load(_ context.Context) (*catalog.TokenSet, error) {
	token, err := s.client.TokenFor("spotify", s.userID)
	if err != nil {
		return nil, err
	}
	return &catalog.TokenSet{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.ExpiresAt,
	}, nil
}

func (s *spotifyTokenStore) Save(_ context.Context, set *catalog.TokenSet) error {
	return s.client.SaveToken("spotify", s.userID, set.AccessToken, set.RefreshToken, set.ExpiresAt)
}
