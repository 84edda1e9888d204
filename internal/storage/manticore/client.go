package manticore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type ClientOption func(client *Client)

// Client talks to the Manticore /sql HTTP endpoint in raw mode, which accepts
// any statement and answers with one result set per statement. Requests are
// bounded only by the caller's context.
type Client struct {
	base url.URL
	http *http.Client
}

func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid manticore url: %q", baseURL)
	}

	client := &Client{
		base: *base,
		http: &http.Client{},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(client *Client) {
		client.http = httpClient
	}
}

// ResultSet is one statement's answer. Rows are objects keyed by column name.
type ResultSet struct {
	Columns []map[string]json.RawMessage `json:"columns"`
	Data    []json.RawMessage            `json:"data"`
	Total   int64                        `json:"total"`
	Error   string                       `json:"error"`
	Warning string                       `json:"warning"`
}

// Query runs a single statement and returns its result set. A statement level
// error reported by Manticore is returned as an error.
func (c *Client) Query(ctx context.Context, sql string) (*ResultSet, error) {
	var sets []ResultSet
	if err := c.do(ctx, sql, &sets); err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return &ResultSet{}, nil
	}

	set := sets[0]
	if set.Error != "" {
		return nil, fmt.Errorf("manticore: %s", set.Error)
	}
	return &set, nil
}

func (c *Client) do(ctx context.Context, sql string, respData any) error {
	form := url.Values{}
	form.Set("query", sql)
	form.Set("mode", "raw")

	reqURL := c.base.JoinPath("/sql")
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	// Errors on a single statement come back as an object instead of a list.
	trimmed := strings.TrimSpace(string(respBody))
	if strings.HasPrefix(trimmed, "{") {
		var single ResultSet
		if err := json.Unmarshal(respBody, &single); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
		if single.Error != "" {
			return fmt.Errorf("manticore: %s", single.Error)
		}
		respBody = []byte("[" + trimmed + "]")
	}

	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

// Ping issues a trivial statement to check reachability.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Query(ctx, "SHOW STATUS LIKE 'uptime'")
	return err
}
