package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/evetabi/betboard/internal/config"
)

// Client fetches odds and scores from The Odds API. Every request is bounded
// by the configured fetch timeout; callers treat any returned error as a
// transient provider failure and degrade to an empty batch.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	region  string
}

// NewClient constructs a Client from the provider config.
func NewClient(cfg *config.OddsAPIConfig) *Client {
	return &Client{
		client:  &http.Client{Timeout: cfg.FetchTimeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		region:  cfg.Region,
	}
}

// FetchOdds retrieves the current odds batch for one sport.
//
//	GET /sports/{sport}/odds?regions=us&markets=h2h,spreads,totals&oddsFormat=american
//
// An empty slice with a nil error is a valid response (no games offered).
func (c *Client) FetchOdds(ctx context.Context, sport string) ([]GamePayload, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", c.region)
	params.Set("markets", MarketMoneyline+","+MarketSpreads+","+MarketTotals)
	params.Set("oddsFormat", "american")

	endpoint := fmt.Sprintf("%s/sports/%s/odds?%s", c.baseURL, url.PathEscape(sport), params.Encode())
	body, err := c.doGet(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("oddsapi.FetchOdds %s: %w", sport, err)
	}

	var games []GamePayload
	if err = json.Unmarshal(body, &games); err != nil {
		return nil, fmt.Errorf("oddsapi.FetchOdds %s: parse: %w", sport, err)
	}
	return games, nil
}

// FetchScores retrieves scores for one sport covering the last daysFrom days.
//
//	GET /sports/{sport}/scores?daysFrom=1
func (c *Client) FetchScores(ctx context.Context, sport string, daysFrom int) ([]ScorePayload, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("daysFrom", strconv.Itoa(daysFrom))

	endpoint := fmt.Sprintf("%s/sports/%s/scores?%s", c.baseURL, url.PathEscape(sport), params.Encode())
	body, err := c.doGet(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("oddsapi.FetchScores %s: %w", sport, err)
	}

	var scores []ScorePayload
	if err = json.Unmarshal(body, &scores); err != nil {
		return nil, fmt.Errorf("oddsapi.FetchScores %s: parse: %w", sport, err)
	}
	return scores, nil
}

// doGet performs an HTTP GET with the client's bounded timeout and returns the
// body bytes, or an error for any non-200 status code.
func (c *Client) doGet(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "evetabi-betboard/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
