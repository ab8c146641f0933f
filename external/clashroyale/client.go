package clashroyale

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/battlelog/cr-tracker/internal/platform/logging"
	"github.com/battlelog/cr-tracker/internal/platform/resilience"
	"github.com/battlelog/cr-tracker/internal/usecase"
)

const (
	defaultBaseURL     = "https://api.clashroyale.com/v1"
	maxResponseBody    = 4 << 20
	defaultHTTPTimeout = 15 * time.Second
)

var bearerTokenRegex = regexp.MustCompile(`(?i)bearer\s+\S+`)
var errProviderTransient = crerr.New("clashroyale transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the game API's battle log endpoint. It retries transient
// failures with linear backoff, trips a circuit breaker on repeated failures
// and collapses concurrent fetches for the same tag.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	backoffUnit    time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultHTTPTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxRetries,
		backoffUnit:    time.Second,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// battleEntry mirrors the provider's battle log element, decoded leniently so
// partial records survive until normalization decides their fate.
type battleEntry struct {
	BattleTime string `json:"battleTime"`
	Type       string `json:"type"`
	GameMode   struct {
		Name string `json:"name"`
	} `json:"gameMode"`
	Team     []battleParticipant `json:"team"`
	Opponent []battleParticipant `json:"opponent"`
}

type battleParticipant struct {
	Tag    string `json:"tag"`
	Name   string `json:"name"`
	Crowns *int   `json:"crowns"`
}

func (c *Client) FetchBattleLog(ctx context.Context, playerTag string) ([]usecase.ExternalBattle, []byte, error) {
	if c.token == "" {
		return nil, nil, fmt.Errorf("%w: missing API token", usecase.ErrUpstreamAuth)
	}

	fullURL := c.baseURL + "/players/" + url.PathEscape(playerTag) + "/battlelog"

	out, err, _ := c.flight.Do("battlelog:"+playerTag, func() (any, error) {
		return c.fetch(ctx, fullURL)
	})
	if err != nil {
		return nil, nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	var entries []battleEntry
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		return nil, nil, fmt.Errorf("%w: decode battle log: %v", usecase.ErrUpstreamPayload, err)
	}

	battles := make([]usecase.ExternalBattle, 0, len(entries))
	for _, entry := range entries {
		battles = append(battles, usecase.ExternalBattle{
			BattleTime: entry.BattleTime,
			GameMode:   resolveMode(entry),
			Team:       mapParticipants(entry.Team),
			Opponent:   mapParticipants(entry.Opponent),
		})
	}
	return battles, raw, nil
}

func resolveMode(entry battleEntry) string {
	if mode := strings.TrimSpace(entry.Type); mode != "" {
		return mode
	}
	return strings.TrimSpace(entry.GameMode.Name)
}

func mapParticipants(in []battleParticipant) []usecase.ExternalBattlePlayer {
	out := make([]usecase.ExternalBattlePlayer, 0, len(in))
	for _, p := range in {
		out = append(out, usecase.ExternalBattlePlayer{
			Tag:    strings.TrimSpace(p.Tag),
			Name:   strings.TrimSpace(p.Name),
			Crowns: p.Crowns,
		})
	}
	return out
}

func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return nil, fmt.Errorf("%w: provider circuit open", usecase.ErrDependencyUnavailable)
		}
	}

	raw, err := c.executeRequest(ctx, fullURL)
	if c.circuitEnabled {
		if err != nil && isTransient(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		if isTransient(err) {
			return nil, fmt.Errorf("%w: %s", usecase.ErrDependencyUnavailable, c.redact(err.Error()))
		}
		return nil, err
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("authorization", "Bearer "+c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errProviderTransient, c.redact(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errProviderTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			default:
				classified, retryable := classifyStatus(resp.StatusCode, raw)
				if !retryable {
					return nil, classified
				}
				lastErr = classified
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.backoffUnit
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "battle log request failed", "url", fullURL, "error_detail", c.redact(lastErr.Error()))
	return nil, lastErr
}

// classifyStatus maps a non-2xx provider status to a failure class. Only 5xx
// is retryable; credential and quota problems never fix themselves mid-loop.
func classifyStatus(status int, body []byte) (error, bool) {
	switch {
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: provider status=401", usecase.ErrUpstreamAuth), false
	case status == http.StatusForbidden || status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: provider status=%d", usecase.ErrUpstreamThrottled, status), false
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: player has no battle log upstream", usecase.ErrNotFound), false
	case status >= 500:
		return fmt.Errorf("%w: provider status=%d body=%s", errProviderTransient, status, abbreviateBody(body)), true
	default:
		return fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(body)), false
	}
}

func isTransient(err error) bool {
	return stderrors.Is(err, errProviderTransient)
}

func (c *Client) redact(value string) string {
	if c.token != "" {
		value = strings.ReplaceAll(value, c.token, "REDACTED")
	}
	return bearerTokenRegex.ReplaceAllString(value, "Bearer REDACTED")
}

func abbreviateBody(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return body
}
