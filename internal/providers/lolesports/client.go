package lolesports

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
	"github.com/preston-bernstein/esports-hub-service/internal/providers"
)

// Config controls how the client reaches the persisted gateway.
type Config struct {
	BaseURL    string
	APIKey     string
	Locale     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches raw snapshots from esports-api.lolesports.com.
type Client struct {
	baseURL    string
	apiKey     string
	locale     string
	httpClient httpDoer
	now        func() time.Time
}

var _ providers.Source = (*Client)(nil)

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		locale:     resolveLocale(cfg.Locale),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}
}

func (c *Client) Leagues(ctx context.Context) (lolapi.LeaguesResponse, error) {
	var resp lolapi.LeaguesResponse
	err := c.get(ctx, providers.EndpointLeagues, nil, &resp)
	return resp, err
}

func (c *Client) Schedule(ctx context.Context, leagueIDs []string, pageToken string) (lolapi.ScheduleResponse, error) {
	params := url.Values{}
	for _, id := range leagueIDs {
		params.Add("leagueId", id)
	}
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}
	var resp lolapi.ScheduleResponse
	err := c.get(ctx, providers.EndpointSchedule, params, &resp)
	return resp, err
}

func (c *Client) Live(ctx context.Context) (lolapi.LiveResponse, error) {
	var resp lolapi.LiveResponse
	err := c.get(ctx, providers.EndpointLive, nil, &resp)
	return resp, err
}

func (c *Client) Tournaments(ctx context.Context, leagueID string) (lolapi.TournamentsResponse, error) {
	var resp lolapi.TournamentsResponse
	err := c.get(ctx, providers.EndpointTournaments, url.Values{"leagueId": {leagueID}}, &resp)
	return resp, err
}

func (c *Client) Standings(ctx context.Context, tournamentIDs []string) (lolapi.StandingsResponse, error) {
	params := url.Values{}
	for _, id := range tournamentIDs {
		params.Add("tournamentId", id)
	}
	var resp lolapi.StandingsResponse
	err := c.get(ctx, providers.EndpointStandings, params, &resp)
	return resp, err
}

func (c *Client) EventDetails(ctx context.Context, id string) (lolapi.EventDetailsResponse, error) {
	var resp lolapi.EventDetailsResponse
	err := c.get(ctx, providers.EndpointEventDetails, url.Values{"id": {id}}, &resp)
	return resp, err
}

func (c *Client) Teams(ctx context.Context, slug string) (lolapi.TeamsResponse, error) {
	var resp lolapi.TeamsResponse
	err := c.get(ctx, providers.EndpointTeams, url.Values{"id": {slug}}, &resp)
	return resp, err
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, dst any) error {
	req, err := c.buildRequest(ctx, endpoint, params)
	if err != nil {
		return providers.Unavailable(endpoint, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return providers.Unavailable(endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    "lolesports: rate limited on " + endpoint,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.UpstreamError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return providers.Unavailable(endpoint, fmt.Errorf("decode: %w", err))
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, endpoint string, params url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint, nil)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("hl", c.locale)
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	req.URL.RawQuery = q.Encode()

	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}
