package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/daiimus/paracord/internal/domain"
	"github.com/daiimus/paracord/internal/ports"
)

const (
	defaultBaseURL = "https://discord.com/api/v9"
	defaultTimeout = 30 * time.Second

	// Browser user agent: the message-search endpoints answer user
	// tokens, not bot tokens, and expect client-shaped traffic.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// Fallback waits when a 429/202 body carries no retry_after.
	fallbackRateLimitWait = 40 * time.Second
	fallbackIndexingWait  = 5 * time.Second
)

type Config struct {
	Token     string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
}

var _ ports.MessageClient = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, fmt.Errorf("discord token is empty")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func (c *Client) Me(ctx context.Context) (domain.Identity, error) {
	resp, err := c.do(ctx, http.MethodGet, "/users/@me", nil, nil)
	if err != nil {
		return domain.Identity{}, err
	}
	defer drainClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return domain.Identity{}, c.classify(resp)
	}

	var payload struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Identity{}, &domain.TransientError{Err: fmt.Errorf("decode identity: %w", err)}
	}

	return domain.Identity{ID: payload.ID, Username: payload.Username}, nil
}

func (c *Client) Delete(ctx context.Context, channelID, messageID string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	resp, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	defer drainClose(resp.Body)

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return c.classify(resp)
}

func (c *Client) Edit(ctx context.Context, channelID, messageID, content string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	body := map[string]string{"content": content}

	resp, err := c.do(ctx, http.MethodPatch, path, nil, body)
	if err != nil {
		return err
	}
	defer drainClose(resp.Body)

	if resp.StatusCode == http.StatusOK {
		return nil
	}
	return c.classify(resp)
}

func (c *Client) React(ctx context.Context, channelID, messageID, emoji string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s/reactions/%s/@me",
		channelID, messageID, url.PathEscape(emoji))

	resp, err := c.do(ctx, http.MethodPut, path, nil, struct{}{})
	if err != nil {
		return err
	}
	defer drainClose(resp.Body)

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return c.classify(resp)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", c.token)
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &domain.TransientError{Err: err}
	}

	return resp, nil
}

// classify maps a non-success response to the domain error taxonomy.
// The body is consumed.
func (c *Client) classify(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: status %d", domain.ErrAuthFailed, resp.StatusCode)
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusTooManyRequests:
		return &domain.RateLimitedError{RetryAfter: retryAfter(body, fallbackRateLimitWait)}
	case http.StatusAccepted:
		return &domain.IndexingError{RetryAfter: retryAfter(body, fallbackIndexingWait)}
	default:
		return &domain.TransientError{Status: resp.StatusCode}
	}
}

func retryAfter(body []byte, fallback time.Duration) time.Duration {
	var payload struct {
		RetryAfter float64 `json:"retry_after"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.RetryAfter <= 0 {
		return fallback
	}
	return time.Duration(payload.RetryAfter * float64(time.Second))
}

func drainClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}
