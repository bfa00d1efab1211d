package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
)

const (
	defaultAPIBaseURL    = "https://api.twitter.com"
	defaultUploadBaseURL = "https://upload.twitter.com"
)

// APIError is a non-2xx response from the Twitter API.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("twitter returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("twitter returned status %d: %s", e.StatusCode, e.Detail)
}

// IsAuthError reports whether err is a credential rejection (401 or 403).
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// IsRateLimited reports whether err is a 429 from the API.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}

// Credentials holds the OAuth 1.0a user context keys for the bot account.
type Credentials struct {
	APIKey            string
	APISecretKey      string
	AccessToken       string
	AccessTokenSecret string
}

// Client talks to the Twitter API with OAuth1-signed requests. Tweet
// creation goes through the v2 API, media upload through v1.1 (v2 has no
// media upload endpoint).
type Client struct {
	apiBaseURL    string
	uploadBaseURL string
	client        *http.Client
}

type Option func(*Client)

func NewClient(creds Credentials, opts ...Option) *Client {
	config := oauth1.NewConfig(creds.APIKey, creds.APISecretKey)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	httpClient.Timeout = 15 * time.Second

	c := &Client{
		apiBaseURL:    defaultAPIBaseURL,
		uploadBaseURL: defaultUploadBaseURL,
		client:        httpClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithBaseURLs overrides the API and upload hosts.
func WithBaseURLs(apiBaseURL, uploadBaseURL string) Option {
	return func(c *Client) {
		if apiBaseURL != "" {
			c.apiBaseURL = apiBaseURL
		}
		if uploadBaseURL != "" {
			c.uploadBaseURL = uploadBaseURL
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.client = httpClient
		}
	}
}

type tweetRequest struct {
	Text  string      `json:"text"`
	Media *tweetMedia `json:"media,omitempty"`
}

type tweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}

type tweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// CreateTweet posts a tweet, optionally referencing previously uploaded
// media, and returns the new tweet ID.
func (c *Client) CreateTweet(ctx context.Context, text string, mediaIDs []string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("tweet text is empty")
	}

	reqBody := tweetRequest{Text: text}
	if len(mediaIDs) > 0 {
		reqBody.Media = &tweetMedia{MediaIDs: mediaIDs}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/2/tweets", c.apiBaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", apiErrorFrom(resp)
	}

	var result tweetResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Data.ID == "" {
		return "", fmt.Errorf("tweet response contained no id")
	}

	return result.Data.ID, nil
}

type mediaUploadResponse struct {
	MediaID       int64  `json:"media_id"`
	MediaIDString string `json:"media_id_string"`
}

// UploadMedia uploads an image through the v1.1 simple upload endpoint and
// returns the media ID to reference from a tweet.
func (c *Client) UploadMedia(ctx context.Context, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("media", filepath.Base(filename))
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/1.1/media/upload.json", c.uploadBaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", apiErrorFrom(resp)
	}

	var result mediaUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.MediaIDString == "" {
		return "", fmt.Errorf("upload response contained no media id")
	}

	return result.MediaIDString, nil
}

// apiErrorFrom drains the error body. v2 errors carry "detail", v1.1 errors
// an "errors" array.
func apiErrorFrom(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Detail string `json:"detail"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	detail := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Detail != "":
			detail = payload.Detail
		case len(payload.Errors) > 0:
			detail = payload.Errors[0].Message
		}
	}
	if detail == "" {
		detail = strings.TrimSpace(string(body))
	}

	return &APIError{StatusCode: resp.StatusCode, Detail: detail}
}
