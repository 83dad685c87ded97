package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"asyncpfs/internal/domain"
)

// Client talks to a directory Server over HTTP.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a Client for base. A nil httpClient uses
// http.DefaultClient.
func NewClient(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: httpClient}
}

// Register publishes bundle.
func (c *Client) Register(ctx context.Context, bundle domain.ResponderBundle) error {
	return c.post(ctx, "/register", bundle, nil)
}

// FetchBundle fetches username's bundle, consuming one of its one-time keys.
func (c *Client) FetchBundle(ctx context.Context, username domain.Username) (domain.PublishedBundle, error) {
	var out domain.PublishedBundle
	if err := c.getJSON(ctx, "/bundle/"+url.PathEscape(username.String()), &out); err != nil {
		return domain.PublishedBundle{}, err
	}
	return out, nil
}

// Healthy reports whether the directory answers its health check.
func (c *Client) Healthy(ctx context.Context) error {
	var out map[string]string
	return c.getJSON(ctx, "/healthz", &out)
}

func (c *Client) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error != "" {
			return fmt.Errorf("directory %s %s: %s: %s", req.Method, req.URL, resp.Status, e.Error)
		}
		return fmt.Errorf("directory %s %s: %s", req.Method, req.URL, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

var _ domain.DirectoryClient = (*Client)(nil)
