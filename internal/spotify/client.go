// Package spotify resolves generated song recommendations against the
// Spotify catalog and attaches verified metadata to the ones it can match.
package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"
	tokenURL       = "https://accounts.spotify.com/api/token"
)

// ErrNoMatch indicates neither the exact nor the loose search returned a
// track. Callers treat it as a per-song miss, never a pipeline failure.
var ErrNoMatch = errors.New("no matching track")

// Client is an authenticated Spotify Web API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a Client using the client-credentials flow. The returned
// client refreshes its app token transparently.
func NewClient(ctx context.Context, clientID, clientSecret string) *Client {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := conf.Client(ctx)
	httpClient.Timeout = 15 * time.Second
	return &Client{httpClient: httpClient, baseURL: defaultBaseURL}
}

// NewClientWithHTTP builds a Client around an existing HTTP client and base
// URL. Tests use this to point at a local server.
func NewClientWithHTTP(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// Track is a catalog match with the metadata the enricher attaches.
type Track struct {
	Name       string
	Artist     string
	URL        string
	PreviewURL string
	DurationMs int
	Popularity int
}

// Length renders the track duration as MM:SS.
func (t Track) Length() string {
	return FormatLength(t.DurationMs)
}

// FormatLength converts milliseconds to an MM:SS string, seconds zero-padded.
func FormatLength(ms int) string {
	totalSeconds := ms / 1000
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

type searchResponse struct {
	Tracks struct {
		Items []wireTrack `json:"items"`
	} `json:"tracks"`
}

type wireTrack struct {
	Name         string `json:"name"`
	DurationMs   int    `json:"duration_ms"`
	Popularity   int    `json:"popularity"`
	PreviewURL   string `json:"preview_url"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
}

func (w wireTrack) toTrack() Track {
	artist := ""
	if len(w.Artists) > 0 {
		artist = w.Artists[0].Name
	}
	return Track{
		Name:       w.Name,
		Artist:     artist,
		URL:        w.ExternalURLs.Spotify,
		PreviewURL: w.PreviewURL,
		DurationMs: w.DurationMs,
		Popularity: w.Popularity,
	}
}

// SearchTrack looks a song up by name and artist. It tries an exact field
// query first, then falls back to a loose concatenated query; generated
// titles are frequently close-but-not-exact, and the loose pass recovers a
// good share of them. Returns ErrNoMatch when both come back empty.
func (c *Client) SearchTrack(ctx context.Context, name, artist string) (Track, error) {
	exact := fmt.Sprintf("track:%q artist:%q", name, artist)
	track, found, err := c.search(ctx, exact)
	if err != nil {
		return Track{}, err
	}
	if found {
		return track, nil
	}

	track, found, err = c.search(ctx, name+" "+artist)
	if err != nil {
		return Track{}, err
	}
	if !found {
		return Track{}, fmt.Errorf("%w: %s - %s", ErrNoMatch, artist, name)
	}
	return track, nil
}

func (c *Client) search(ctx context.Context, query string) (Track, bool, error) {
	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return Track{}, false, fmt.Errorf("spotify: invalid search url: %w", err)
	}
	q := searchURL.Query()
	q.Set("q", query)
	q.Set("type", "track")
	q.Set("limit", "1")
	searchURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return Track{}, false, fmt.Errorf("spotify: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Track{}, false, fmt.Errorf("spotify: search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Track{}, false, fmt.Errorf("spotify: search status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Track{}, false, fmt.Errorf("spotify: decode search response: %w", err)
	}
	if len(body.Tracks.Items) == 0 {
		return Track{}, false, nil
	}
	return body.Tracks.Items[0].toTrack(), true, nil
}
