package catalog

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	authorizeURL = "https://accounts.spotify.com/authorize"
	tokenURL     = "https://accounts.spotify.com/api/token"

	// Scopes the playback engine needs: streaming control plus read
	// access to the live player state.
	oauthScope = "streaming user-read-email user-read-private user-modify-playback-state user-read-playback-state user-read-recently-played"
)

// OAuth handles the catalog's authorization-code flow.
type OAuth struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	http *http.Client
}

func NewOAuth(clientID, clientSecret, redirectURI string) *OAuth {
	return &OAuth{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

// TokenSet is one grant's worth of credentials.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// AuthURL is where the user goes to approve the app.
func (o *OAuth) AuthURL() string {
	params := url.Values{}
	params.Set("client_id", o.ClientID)
	params.Set("response_type", "code")
	params.Set("redirect_uri", o.RedirectURI)
	params.Set("scope", oauthScope)
	return authorizeURL + "?" + params.Encode()
}

// Exchange trades the callback code for tokens.
func (o *OAuth) Exchange(ctx context.Context, code string) (*TokenSet, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", o.RedirectURI)
	return o.tokenRequest(ctx, form)
}

// Refresh renews an expired access token. The provider may or may not
// rotate the refresh token; keep the old one when it doesn't.
func (o *OAuth) Refresh(ctx context.Context, refreshToken string) (*TokenSet, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	tokens, err := o.tokenRequest(ctx, form)
	if err != nil {
		return nil, err
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}
	return tokens, nil
}

func (o *OAuth) tokenRequest(ctx context.Context, form url.Values) (*TokenSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(o.ClientID + ":" + o.ClientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := o.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return &TokenSet{
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(body.ExpiresIn) * time.Second),
	}, nil
}
