// Package newsapi talks to the top-headlines endpoint of newsapi.org
// (or anything that speaks the same JSON).
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/headlines/internal/model"
)

const (
	topHeadlinesPath = "v2/top-headlines"
	maxBodyBytes     = 4 << 20
)

// Client fetches headlines. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	country    string
	timeout    time.Duration
	logger     *slog.Logger
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithCountry(code string) Option {
	return func(c *Client) { c.country = code }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each request. Zero keeps the transport default.
// It applies to whichever *http.Client the client ends up with.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for apiKey. The key is not validated here; a bad key
// comes back from the server as a *StatusError.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    "https://newsapi.org",
		apiKey:     apiKey,
		country:    "us",
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.timeout > 0 {
		// copy so a caller-supplied client is left alone
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// wire shapes
type headlinesResponse struct {
	Status   string       `json:"status"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Articles []apiArticle `json:"articles"`
}

type apiArticle struct {
	Title      *string `json:"title"`
	URLToImage *string `json:"urlToImage"`
}

// TopHeadlines performs one GET and returns the articles in server order.
// It is all-or-nothing: on error the returned slice is nil.
func (c *Client) TopHeadlines(ctx context.Context) ([]model.Article, error) {
	endpoint, err := c.endpoint()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrNetwork, stripURL(err))
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("top headlines request failed",
			slog.String("country", c.country),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", stripURL(err).Error()))
		return nil, fmt.Errorf("%w: %w", ErrNetwork, stripURL(err))
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxBodyBytes)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{StatusCode: resp.StatusCode}
		var apiErr headlinesResponse
		if b, rerr := io.ReadAll(body); rerr == nil && json.Unmarshal(b, &apiErr) == nil {
			se.Code, se.Message = apiErr.Code, apiErr.Message
		}
		c.logger.Warn("top headlines bad status",
			slog.Int("status", resp.StatusCode),
			slog.String("code", se.Code))
		return nil, se
	}

	var payload headlinesResponse
	dec := json.NewDecoder(body)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	// The body must be exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON body", ErrMalformedResponse)
	}
	if payload.Articles == nil {
		// e.g. {"status":"error","code":"apiKeyInvalid"} with a 200
		if payload.Code != "" || payload.Message != "" {
			return nil, fmt.Errorf("%w: no articles (status %q, code %q): %s",
				ErrMalformedResponse, payload.Status, payload.Code, payload.Message)
		}
		return nil, fmt.Errorf("%w: no articles field", ErrMalformedResponse)
	}

	out := make([]model.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		out = append(out, toArticle(a))
	}
	c.logger.Debug("top headlines fetched",
		slog.String("country", c.country),
		slog.Int("articles", len(out)),
		slog.Duration("elapsed", time.Since(start)))
	return out, nil
}

func (c *Client) endpoint() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: invalid base URL %q", ErrNetwork, c.baseURL)
	}
	u = u.JoinPath(topHeadlinesPath)
	q := url.Values{}
	q.Set("country", c.country)
	q.Set("apiKey", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func toArticle(a apiArticle) model.Article {
	var out model.Article
	if a.Title != nil {
		out.Title = sanitize(*a.Title)
	}
	if out.Title == "" {
		out.Title = model.Untitled
	}
	if a.URLToImage != nil {
		out.ImageURL = sanitize(*a.URLToImage)
	}
	return out
}

// sanitize removes terminal escape sequences and control characters from
// server text before it can reach the screen. Line breaks and tabs become
// spaces.
func sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// stripURL drops the *url.Error wrapper so the request URL, which carries
// the API key, never reaches logs or the screen.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
