package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// TokenStore persists one user's grant across restarts.
type TokenStore interface {
	Load(ctx context.Context) (*TokenSet, error)
	Save(ctx context.Context, set *TokenSet) error
}

// StoredTokenFunc builds a TokenFunc that serves the persisted access
// token and transparently refreshes it when it is about to expire.
func StoredTokenFunc(oauth *OAuth, store TokenStore) TokenFunc {
	var mu sync.Mutex
	return func(ctx context.Context) (string, error) {
		mu.Lock()
		defer mu.Unlock()

		set, err := store.Load(ctx)
		if err != nil {
			return "", fmt.Errorf("no catalog grant: %w", err)
		}
		if time.Now().Before(set.ExpiresAt.Add(-time.Minute)) {
			return set.AccessToken, nil
		}

		renewed, err := oauth.Refresh(ctx, set.RefreshToken)
		if err != nil {
			return "", fmt.Errorf("token refresh: %w", err)
		}
		if err := store.Save(ctx, renewed); err != nil {
			return "", err
		}
		return renewed.AccessToken, nil
	}
}
