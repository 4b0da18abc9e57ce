// Package wordpress is the outbound client for a WordPress site running The
// Events Calendar. It speaks the tribe/events/v1 REST API with Basic auth and
// normalizes the API's polymorphic payload shapes at the unmarshal boundary.
package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"brewmeet.app/server/core/config"
)

const apiBasePath = "/wp-json/tribe/events/v1"

// EventQuery narrows a paginated event fetch.
type EventQuery struct {
	StartAfter  *time.Time
	StartBefore *time.Time
	Statuses    []string
}

type Client struct {
	httpClient *http.Client
	cfg        config.WordPressConfig
	baseURL    string
}

func NewClient(cfg config.WordPressConfig) (*Client, error) {
	if cfg.SiteURL == "" {
		return nil, fmt.Errorf("wordpress site url is required")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}

	return &Client{
		cfg:        cfg,
		baseURL:    strings.TrimSuffix(cfg.SiteURL, "/") + apiBasePath,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}, nil
}

// PageSize returns the per_page value this client requests. A page shorter
// than this signals end-of-data to the caller.
func (c *Client) PageSize() int {
	return c.cfg.PageSize
}

// PageDelay returns the pause callers must insert between page requests.
func (c *Client) PageDelay() time.Duration {
	return c.cfg.PageDelay
}

// FetchEventsPage fetches one page of events. Pages are 1-based.
func (c *Client) FetchEventsPage(ctx context.Context, page int, q EventQuery) ([]RemoteEvent, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(c.cfg.PageSize))
	if q.StartAfter != nil {
		params.Set("start_date_after", q.StartAfter.Format(TimeLayout))
	}
	if q.StartBefore != nil {
		params.Set("start_date_before", q.StartBefore.Format(TimeLayout))
	}
	if len(q.Statuses) > 0 {
		params.Set("status", strings.Join(q.Statuses, ","))
	}

	var body eventsPage
	if err := c.get(ctx, "/events", params, &body); err != nil {
		if isPastLastPage(err) {
			return nil, nil
		}
		return nil, err
	}
	return body.Events, nil
}

// FetchVenuesPage fetches one page of venues. Pages are 1-based.
func (c *Client) FetchVenuesPage(ctx context.Context, page int) ([]RemoteVenue, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(c.cfg.PageSize))

	var body venuesPage
	if err := c.get(ctx, "/venues", params, &body); err != nil {
		if isPastLastPage(err) {
			return nil, nil
		}
		return nil, err
	}
	return body.Venues, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, into any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Authenticated() {
		req.SetBasicAuth(c.cfg.Username, c.cfg.AppPassword)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wordpress request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Tribe paginates past the end with a 400; treat it as an empty page
		// so fetch loops terminate instead of failing the whole import.
		if resp.StatusCode == http.StatusBadRequest && params.Get("page") != "" && params.Get("page") != "1" {
			return errPastLastPage
		}
		return fmt.Errorf("WordPress API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

var errPastLastPage = fmt.Errorf("page past end of collection")

func isPastLastPage(err error) bool {
	return err == errPastLastPage
}
