package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultCryptoPanicURL = "https://cryptopanic.com"
	maxHeadlines          = 5
)

// Keywords a headline must mention to count as relevant.
var relevantKeywords = []string{"memecoin", "defi", "ai", "defiai", "btc", "eth", "solana"}

// Source supplies trending headlines.
type Source interface {
	Trending(ctx context.Context) ([]string, error)
}

// CryptoPanicSource fetches trending posts from the CryptoPanic API.
type CryptoPanicSource struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewCryptoPanicSource creates a CryptoPanic headline source.
func NewCryptoPanicSource(apiKey, apiURL string) (*CryptoPanicSource, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("cryptopanic api key is required")
	}
	if strings.TrimSpace(apiURL) == "" {
		apiURL = defaultCryptoPanicURL
	}
	return &CryptoPanicSource{
		apiKey: apiKey,
		apiURL: strings.TrimRight(apiURL, "/"),
		client: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type cryptoPanicResponse struct {
	Results []struct {
		Title string `json:"title"`
	} `json:"results"`
}

// Trending returns up to five relevant headlines from the latest posts.
func (s *CryptoPanicSource) Trending(ctx context.Context) ([]string, error) {
	endpoint, err := url.Parse(s.apiURL + "/api/v1/posts/")
	if err != nil {
		return nil, fmt.Errorf("parse cryptopanic url: %w", err)
	}
	q := endpoint.Query()
	q.Set("auth_token", s.apiKey)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create cryptopanic request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cryptopanic request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("cryptopanic request failed with status %d", resp.StatusCode)
	}

	var decoded cryptoPanicResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode cryptopanic response: %w", err)
	}

	var headlines []string
	for _, item := range decoded.Results {
		if !relevantHeadline(item.Title) {
			continue
		}
		headlines = append(headlines, item.Title)
		if len(headlines) == maxHeadlines {
			break
		}
	}
	return headlines, nil
}

func relevantHeadline(title string) bool {
	lower := strings.ToLower(title)
	for _, keyword := range relevantKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
