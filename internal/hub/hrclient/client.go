// Package hrclient is the hub's read-only HTTP client for the authoritative
// HR service. Network failures are absorbed at this layer: callers get
// whatever data was retrieved plus a completeness flag, never an error.
// Retry, if any, happens upstream when the rebuild is re-triggered by a
// later event or read request.
package hrclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hrhub/internal/hub/models"
	"hrhub/pkg/platform/sentinel"
)

const (
	// fullFetchPageSize is the page size used when collecting a country's
	// entire employee set for a rebuild.
	fullFetchPageSize = 100

	requestTimeout = 10 * time.Second
)

// Meta is the pagination envelope of the HR list endpoint.
type Meta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// Page is one page of employees.
type Page struct {
	Data []models.Employee `json:"data"`
	Meta Meta              `json:"meta"`
}

// Client fetches employee records from the HR service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client for the given base URL.
func New(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

// FetchPage retrieves a single bounded page. On any failure it logs and
// returns an empty page rather than propagating the error.
func (c *Client) FetchPage(ctx context.Context, country string, page, perPage int) Page {
	p, err := c.fetch(ctx, country, page, perPage)
	if err != nil {
		c.logger.Error("employee page fetch failed",
			"country", country, "page", page, "error", err)
		return Page{Data: []models.Employee{}}
	}
	return p
}

// FetchByCountry collects every employee of a country in page order.
// A failed page aborts the loop and returns what was accumulated so far
// with complete=false, so callers can tell "definitely empty country" from
// "fetch failed empty".
func (c *Client) FetchByCountry(ctx context.Context, country string) (employees []models.Employee, complete bool) {
	employees = []models.Employee{}
	page := 1
	lastPage := 1

	for page <= lastPage {
		p, err := c.fetch(ctx, country, page, fullFetchPageSize)
		if err != nil {
			c.logger.Error("aborting employee fetch on failed page",
				"country", country, "page", page, "fetched", len(employees), "error", err)
			return employees, false
		}

		employees = append(employees, p.Data...)
		if p.Meta.LastPage > 0 {
			lastPage = p.Meta.LastPage
		}
		page++
	}

	return employees, true
}

// FetchEmployee retrieves one employee by ID. Unlike the list fetches the
// error is returned: callers need to distinguish "gone upstream" from a
// transport failure.
func (c *Client) FetchEmployee(ctx context.Context, id int64) (models.Employee, error) {
	endpoint := fmt.Sprintf("%s/employees/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, sentinel.ErrNotFound
	default:
		return nil, fmt.Errorf("request %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	var body struct {
		Data models.Employee `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return body.Data, nil
}

func (c *Client) fetch(ctx context.Context, country string, page, perPage int) (Page, error) {
	q := url.Values{}
	q.Set("country", country)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	endpoint := c.baseURL + "/employees?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Page{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("request %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	var p Page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Page{}, fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	if p.Data == nil {
		p.Data = []models.Employee{}
	}
	return p, nil
}
