package wiki

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spacedump/spacedump/internal/model"
)

// maxErrorBody limits how much of an error response body is kept for
// the APIError message. Error pages can be full HTML documents.
const maxErrorBody = 512

// Client is the HTTP transport for the wiki REST API. It resolves API
// paths against a fixed base URL and attaches credentials and custom
// headers to every request.
//
// The client performs one discrete request per call and holds no
// resources between calls, so a single Client can be shared across
// concurrently exported spaces.
type Client struct {
	// baseURL is the root of the wiki instance, without a trailing slash.
	baseURL *url.URL

	// httpClient is built once in NewClient with the configured proxy,
	// TLS, and timeout settings.
	httpClient *http.Client

	// username and apiToken configure HTTP basic authentication.
	// Both empty disables authentication.
	username string
	apiToken string

	// headers are additional headers sent with every request.
	headers map[string]string
}

// Options configures a Client.
type Options struct {
	// BaseURL is the root URL of the wiki instance (required).
	BaseURL string

	// Username and APIToken enable HTTP basic authentication.
	Username string
	APIToken string

	// Headers are additional HTTP headers for every request.
	Headers map[string]string

	// ProxyURL routes requests through the given proxy. Empty falls
	// back to the standard environment proxy settings.
	ProxyURL string

	// InsecureTLS disables certificate verification, for instances
	// with self-signed certificates.
	InsecureTLS bool

	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// NewClient creates a Client from the given options. It validates the
// base URL but performs no network traffic; the first API call reveals
// connectivity problems.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, ErrNoBaseURL
	}

	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}

	proxyFunc := http.ProxyFromEnvironment
	if opts.ProxyURL != "" {
		proxyURL, err := url.Parse(opts.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", opts.ProxyURL, err)
		}
		proxyFunc = http.ProxyURL(proxyURL)
	}

	transport := &http.Transport{
		Proxy: proxyFunc,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: opts.InsecureTLS, //nolint:gosec // Explicit user opt-in for self-signed instances
		},
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     30 * time.Second,
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		username: opts.Username,
		apiToken: opts.APIToken,
		headers:  opts.Headers,
	}, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// getJSON performs a GET against the given API path (or absolute URL,
// as returned in pagination links) and decodes the JSON response into v.
// Non-2xx responses become an *APIError.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	requestURL := path
	if strings.HasPrefix(path, "/") {
		requestURL = c.baseURL.String() + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if c.username != "" || c.apiToken != "" {
		req.SetBasicAuth(c.username, c.apiToken)
	}
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck // Best-effort error context
		return &APIError{
			StatusCode: resp.StatusCode,
			URL:        requestURL,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// Spaces returns all spaces visible to the account, following the
// listing's continuation cursors until the service reports no more.
func (c *Client) Spaces(ctx context.Context, limit int) ([]SpaceRef, error) {
	var spaces []SpaceRef

	next := fmt.Sprintf("/wiki/api/v2/spaces?limit=%d", limit)
	for next != "" {
		var page spacesResponse
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, err
		}
		spaces = append(spaces, page.Results...)
		next = page.Links.Next
	}

	return spaces, nil
}

// Space fetches the detail view of a single space, including its
// homepage identifier.
func (c *Client) Space(ctx context.Context, spaceID string) (*model.Space, error) {
	var resp spaceResponse
	path := fmt.Sprintf("/wiki/api/v2/spaces/%s?expand=homepage", url.PathEscape(spaceID))
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}

	return &model.Space{
		ID:         spaceID,
		Name:       resp.Name,
		HomepageID: resp.HomepageID,
	}, nil
}

// Content fetches a single page with its title and rendered HTML body.
func (c *Client) Content(ctx context.Context, pageID string) (*model.Page, error) {
	var resp contentResponse
	path := fmt.Sprintf("/wiki/rest/api/content/%s?expand=children.page,body.view.value", url.PathEscape(pageID))
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}

	return &model.Page{
		ID:    pageID,
		Title: resp.Title,
		Body:  resp.Body.View.Value,
	}, nil
}

// ChildPages fetches one page of a content node's child listing.
// cursor is the opaque continuation link from a previous call; pass ""
// for the first page. The returned next cursor is "" when the listing
// is exhausted. Child order is the service's order and is preserved.
func (c *Client) ChildPages(ctx context.Context, pageID, cursor string, limit int) (ids []string, next string, err error) {
	path := cursor
	if path == "" {
		path = fmt.Sprintf("/wiki/rest/api/content/%s/child/page?limit=%d", url.PathEscape(pageID), limit)
	}

	var resp childrenResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, "", err
	}

	ids = make([]string, 0, len(resp.Results))
	for _, child := range resp.Results {
		ids = append(ids, child.ID)
	}

	return ids, resp.Links.Next, nil
}
