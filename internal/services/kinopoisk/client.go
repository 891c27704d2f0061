package kinopoisk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kinosync/internal/activity"
	"kinosync/internal/logging"
)

const (
	defaultBaseURL     = "https://kinopoiskapiunofficial.tech"
	defaultHTTPTimeout = 180 * time.Second

	// cacheHint asks intermediate caches to keep responses for 12 hours.
	// Caching is a performance optimization, not a correctness
	// requirement.
	cacheHint = "max-age=43200"

	// rateLimitDelay is the fixed wait before retrying a per-second
	// rate-limited request. maxRateRetries caps the retry loop so a
	// misbehaving upstream cannot stall a run longer than about a
	// minute.
	rateLimitDelay = 2 * time.Second
	maxRateRetries = 30

	// maxTopPages bounds the Top 250 page walk. 250 entries at 20 per
	// page need 13 pages.
	maxTopPages = 15
)

// ErrNoToken reports that no credential is configured. Callers are
// expected to short-circuit before reaching the network; the client
// double-checks and never issues an unauthenticated request.
var ErrNoToken = errors.New("kinopoisk: api token is not configured")

// API defines the catalog operations consumed by resolution and
// collection sync. All methods absorb NotFound, rate limiting and
// transport failures into empty results; errors carry cancellation and
// decode defects only.
type API interface {
	FilmByID(ctx context.Context, id int64) (*Film, error)
	FilmsByName(ctx context.Context, name string, year int) (SearchResult[Film], error)
	StaffByFilmID(ctx context.Context, filmID int64) ([]FilmStaff, error)
	VideosByFilmID(ctx context.Context, filmID int64) ([]Video, error)
	SeasonsBySeriesID(ctx context.Context, seriesID int64) (SearchResult[Season], error)
	PersonByID(ctx context.Context, personID int64) (*Person, error)
	PersonsByName(ctx context.Context, name string) (SearchResult[Person], error)
	Top250Films(ctx context.Context) ([]Film, error)
}

// Config describes the client configuration.
type Config struct {
	Token      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
	Activity   activity.Recorder
	RetryDelay time.Duration
}

// Client talks to the Kinopoisk unofficial API. It carries no mutable
// state beyond its configuration and is safe to share across
// concurrent resolution requests.
type Client struct {
	token      string
	baseURL    string
	http       *http.Client
	logger     *slog.Logger
	activity   activity.Recorder
	retryDelay time.Duration
}

var _ API = (*Client)(nil)

// New creates a Client. An empty token is legal: requests fail fast
// with ErrNoToken instead of going to the network.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("kinopoisk: parse base url: %w", err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	recorder := cfg.Activity
	if recorder == nil {
		recorder = activity.Nop{}
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = rateLimitDelay
	}
	return &Client{
		token:      strings.TrimSpace(cfg.Token),
		baseURL:    base,
		http:       httpClient,
		logger:     logging.WithComponent(cfg.Logger, "kinopoisk"),
		activity:   recorder,
		retryDelay: delay,
	}, nil
}

// FilmByID fetches the full film record.
func (c *Client) FilmByID(ctx context.Context, id int64) (*Film, error) {
	return fetchOptional[Film](ctx, c, fmt.Sprintf("%s/api/v2.2/films/%d", c.baseURL, id))
}

// FilmsByName searches films by keyword, optionally pinned to a year.
// Only the first result page is consumed.
func (c *Client) FilmsByName(ctx context.Context, name string, year int) (SearchResult[Film], error) {
	params := url.Values{}
	params.Set("keyword", name)
	if year > 0 {
		params.Set("yearFrom", strconv.Itoa(year))
		params.Set("yearTo", strconv.Itoa(year))
	}
	return fetchList[Film](ctx, c, c.baseURL+"/api/v2.2/films?"+params.Encode())
}

// StaffByFilmID fetches the staff list for a film.
func (c *Client) StaffByFilmID(ctx context.Context, filmID int64) ([]FilmStaff, error) {
	return fetchSlice[FilmStaff](ctx, c, fmt.Sprintf("%s/api/v1/staff?filmId=%d", c.baseURL, filmID))
}

// VideosByFilmID fetches the trailer/teaser list for a film.
func (c *Client) VideosByFilmID(ctx context.Context, filmID int64) ([]Video, error) {
	res, err := fetchList[Video](ctx, c, fmt.Sprintf("%s/api/v2.2/films/%d/videos", c.baseURL, filmID))
	return res.Items, err
}

// SeasonsBySeriesID fetches the full season/episode tree of a series.
func (c *Client) SeasonsBySeriesID(ctx context.Context, seriesID int64) (SearchResult[Season], error) {
	return fetchList[Season](ctx, c, fmt.Sprintf("%s/api/v2.2/films/%d/seasons", c.baseURL, seriesID))
}

// PersonByID fetches the full person record.
func (c *Client) PersonByID(ctx context.Context, personID int64) (*Person, error) {
	return fetchOptional[Person](ctx, c, fmt.Sprintf("%s/api/v1/staff/%d", c.baseURL, personID))
}

// PersonsByName searches persons by name.
func (c *Client) PersonsByName(ctx context.Context, name string) (SearchResult[Person], error) {
	params := url.Values{}
	params.Set("name", name)
	return fetchList[Person](ctx, c, c.baseURL+"/api/v1/persons?"+params.Encode())
}

// Top250Films walks the ranked Top 250 pages and returns the entries in
// rank order. An upstream without the feature yields an empty list.
func (c *Client) Top250Films(ctx context.Context) ([]Film, error) {
	var films []Film
	for page := 1; page <= maxTopPages; page++ {
		target := fmt.Sprintf("%s/api/v2.2/films/top?type=TOP_250_BEST_FILMS&page=%d", c.baseURL, page)
		result, err := fetchList[Film](ctx, c, target)
		if err != nil {
			return nil, err
		}
		if len(result.Items) == 0 {
			break
		}
		films = append(films, result.Items...)
		if page >= result.TotalPages {
			break
		}
	}
	c.logger.Info("fetched top 250 films", logging.Int("count", len(films)))
	return films, nil
}

func fetchOptional[T any](ctx context.Context, c *Client, target string) (*T, error) {
	body, err := c.request(ctx, target)
	if err != nil || body == "" {
		return nil, err
	}
	var record T
	if err := json.Unmarshal([]byte(body), &record); err != nil {
		return nil, fmt.Errorf("kinopoisk: decode response from %s: %w", target, err)
	}
	return &record, nil
}

func fetchList[T any](ctx context.Context, c *Client, target string) (SearchResult[T], error) {
	body, err := c.request(ctx, target)
	if err != nil || body == "" {
		return SearchResult[T]{}, err
	}
	var result SearchResult[T]
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return SearchResult[T]{}, fmt.Errorf("kinopoisk: decode response from %s: %w", target, err)
	}
	return result, nil
}

func fetchSlice[T any](ctx context.Context, c *Client, target string) ([]T, error) {
	body, err := c.request(ctx, target)
	if err != nil || body == "" {
		return nil, err
	}
	var records []T
	if err := json.Unmarshal([]byte(body), &records); err != nil {
		return nil, fmt.Errorf("kinopoisk: decode response from %s: %w", target, err)
	}
	return records, nil
}

// request issues a classified GET. The returned body is either entity
// JSON or empty; every non-success classification collapses to "".
func (c *Client) request(ctx context.Context, target string) (string, error) {
	if c.token == "" {
		c.logger.Error("api token is not configured, skipping request", logging.String("url", target))
		return "", ErrNoToken
	}

	for attempt := 0; attempt < maxRateRetries; attempt++ {
		body, err := c.send(ctx, target)
		if err != nil {
			return "", err
		}
		if body == "" {
			return "", nil
		}

		// The upstream echoes the HTTP status as the whole body on
		// non-2xx outcomes: exactly 3 characters that parse as an
		// integer. Anything else is entity JSON.
		if len(body) != 3 {
			return body, nil
		}
		code, convErr := strconv.Atoi(body)
		if convErr != nil {
			return body, nil
		}

		switch code {
		case http.StatusUnauthorized:
			c.logger.Error("api token is invalid", logging.String("token", c.token))
			_ = c.activity.Record(ctx, fmt.Sprintf("Kinopoisk API token '%s' is invalid", c.token), "Invalid API token")
			return "", nil
		case http.StatusPaymentRequired:
			c.logger.Warn("request limit exceeded for the current window")
			_ = c.activity.Record(ctx, "Kinopoisk API request limit exceeded (daily limit is 500 requests)", "Request limit exceeded")
			return "", nil
		case http.StatusNotFound:
			c.logger.Debug("no data found", logging.String("url", target))
			return "", nil
		case http.StatusTooManyRequests:
			c.logger.Debug("too many requests per second, waiting", logging.Duration("delay", c.retryDelay))
			if err := sleepContext(ctx, c.retryDelay); err != nil {
				return "", err
			}
		default:
			c.logger.Debug("unhandled status from api", logging.Int("status", code), logging.String("url", target))
			return "", nil
		}
	}

	c.logger.Warn("rate limit retries exhausted", logging.String("url", target))
	return "", nil
}

// send performs a single HTTP round trip. On 2xx the body is returned
// verbatim; otherwise the status code is returned as the body, matching
// the upstream convention the classifier expects. Transport failures
// degrade to an empty body unless the context ended.
func (c *Client) send(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("kinopoisk: build request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", cacheHint)

	c.logger.Debug("sending request", logging.String("url", target))
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		c.logger.Warn("request failed", logging.String("url", target), logging.Error(err))
		return "", nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		c.logger.Warn("read response failed", logging.String("url", target), logging.Error(err))
		return "", nil
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return string(body), nil
	}
	c.logger.Debug("received non-success status", logging.Int("status", resp.StatusCode), logging.String("url", target))
	return strconv.Itoa(resp.StatusCode), nil
}

// sleepContext blocks for d, returning early if the context ends.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
