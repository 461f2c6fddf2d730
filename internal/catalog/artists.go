package catalog

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Genres is the curated genre list shown in the station editor. The
// catalog's own seed-genre endpoint is deprecated, so this mirrors the
// genres the mixer actually handles well.
func Genres() []string {
	return []string{
		"pop", "rock", "hip-hop", "jazz", "classical", "electronic",
		"country", "r-n-b", "indie", "metal", "folk", "blues",
		"reggae", "latin", "alternative", "dance", "soul", "funk",
	}
}

// SearchArtists looks up artists by name, optionally constrained to a
// genre.
func (c *Client) SearchArtists(ctx context.Context, query, genre string) ([]Artist, error) {
	q := query
	if genre != "" {
		q = fmt.Sprintf("%s genre:%s", query, genre)
	}
	params := url.Values{}
	params.Set("q", q)
	params.Set("type", "artist")
	params.Set("limit", "20")

	var result struct {
		Artists struct {
			Items []struct {
				ID     string   `json:"id"`
				Name   string   `json:"name"`
				Genres []string `json:"genres"`
				Images []struct {
					URL string `json:"url"`
				} `json:"images"`
				Popularity int `json:"popularity"`
			} `json:"items"`
		} `json:"artists"`
	}
	if err := c.get(ctx, "/search", params, &result); err != nil {
		return nil, err
	}

	artists := make([]Artist, 0, len(result.Artists.Items))
	for _, item := range result.Artists.Items {
		a := Artist{
			ID:         item.ID,
			Name:       item.Name,
			Genres:     item.Genres,
			Popularity: item.Popularity,
		}
		if len(item.Images) > 0 {
			a.Image = item.Images[0].URL
		}
		artists = append(artists, a)
	}
	return artists, nil
}

// ArtistsByGenre surfaces popular artists for the given genres by
// sampling popular tracks per genre and keeping artists whose own
// genre tags overlap. Capped at 12, sorted by popularity.
func (c *Client) ArtistsByGenre(ctx context.Context, genres []string) ([]Artist, error) {
	var all []Artist
	seen := make(map[string]bool)

	limit := genres
	if len(limit) > 3 {
		limit = limit[:3]
	}
	for _, genre := range limit {
		params := url.Values{}
		params.Set("q", "genre:"+genre)
		params.Set("type", "track")
		params.Set("limit", "10")

		var result struct {
			Tracks struct {
				Items []apiTrack `json:"items"`
			} `json:"tracks"`
		}
		if err := c.get(ctx, "/search", params, &result); err != nil {
			log.Printf("⚠️ Genre sample failed for %q: %v", genre, err)
			continue
		}

		for _, track := range result.Tracks.Items {
			for _, ta := range track.Artists {
				if seen[ta.ID] {
					continue
				}
				seen[ta.ID] = true
				info, err := c.artist(ctx, ta.ID)
				if err != nil {
					continue
				}
				if genreOverlaps(info.Genres, genre) {
					all = append(all, info)
				}
			}
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Popularity > all[j].Popularity
	})
	if len(all) > 12 {
		all = all[:12]
	}
	return all, nil
}

func genreOverlaps(tags []string, genre string) bool {
	g := strings.ToLower(genre)
	for _, tag := range tags {
		t := strings.ToLower(tag)
		if strings.Contains(t, g) || strings.Contains(g, t) {
			return true
		}
	}
	return false
}

func (c *Client) artist(ctx context.Context, id string) (Artist, error) {
	var result struct {
		ID     string   `json:"id"`
		Name   string   `json:"name"`
		Genres []string `json:"genres"`
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
		Popularity int `json:"popularity"`
	}
	if err := c.get(ctx, "/artists/"+id, nil, &result); err != nil {
		return Artist{}, err
	}
	a := Artist{
		ID:         result.ID,
		Name:       result.Name,
		Genres:     result.Genres,
		Popularity: result.Popularity,
	}
	if len(result.Images) > 0 {
		a.Image = result.Images[0].URL
	}
	return a, nil
}

// TopTracks returns an artist's current top tracks.
func (c *Client) TopTracks(ctx context.Context, artistID string) ([]Track, error) {
	params := url.Values{}
	params.Set("market", "US")

	var result struct {
		Tracks []apiTrack `json:"tracks"`
	}
	if err := c.get(ctx, "/artists/"+artistID+"/top-tracks", params, &result); err != nil {
		return nil, err
	}
	tracks := make([]Track, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		tracks = append(tracks, t.toTrack())
	}
	return tracks, nil
}

// RelatedArtists returns artists similar to the given one.
func (c *Client) RelatedArtists(ctx context.Context, artistID string) ([]Artist, error) {
	var result struct {
		Artists []struct {
			ID         string   `json:"id"`
			Name       string   `json:"name"`
			Genres     []string `json:"genres"`
			Popularity int      `json:"popularity"`
		} `json:"artists"`
	}
	if err := c.get(ctx, "/artists/"+artistID+"/related-artists", nil, &result); err != nil {
		return nil, err
	}
	artists := make([]Artist, 0, len(result.Artists))
	for _, a := range result.Artists {
		artists = append(artists, Artist{
			ID:         a.ID,
			Name:       a.Name,
			Genres:     a.Genres,
			Popularity: a.Popularity,
		})
	}
	return artists, nil
}

// Recommendations asks the catalog for tracks seeded by up to five
// artists, with a popularity floor and an energy target to vary the
// pool between calls.
func (c *Client) Recommendations(ctx context.Context, seedArtists []string, minPopularity int, targetEnergy float64) ([]Track, error) {
	if len(seedArtists) > 5 {
		seedArtists = seedArtists[:5]
	}
	params := url.Values{}
	params.Set("seed_artists", strings.Join(seedArtists, ","))
	params.Set("limit", "50")
	params.Set("market", "US")
	params.Set("min_popularity", strconv.Itoa(minPopularity))
	params.Set("target_energy", strconv.FormatFloat(targetEnergy, 'f', 2, 64))

	var result struct {
		Tracks []apiTrack `json:"tracks"`
	}
	if err := c.get(ctx, "/recommendations", params, &result); err != nil {
		return nil, err
	}
	tracks := make([]Track, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		tracks = append(tracks, t.toTrack())
	}
	return tracks, nil
}
