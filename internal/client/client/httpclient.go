package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/wotracker/internal/common"
)

// HTTPClient implements Client over the REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient validates baseURL and returns a client with the given
// per-request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) LoggedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

func (c *HTTPClient) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) getToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *HTTPClient) Login(ctx context.Context, userName string, password []byte) (*Session, error) {
	body, err := json.Marshal(map[string]string{"userName": userName, "password": string(password)})
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(body)

	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &s); err != nil {
		return nil, err
	}
	c.setToken(s.Token)
	return &s, nil
}

// Logout asks the server to revoke the session and forgets the token even
// when the server cannot be reached.
func (c *HTTPClient) Logout(ctx context.Context) error {
	defer c.setToken("")
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *HTTPClient) WhoAmI(ctx context.Context) (*Identity, error) {
	var out struct {
		User Identity `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/session", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) ListWorkOrders(ctx context.Context, page, pageSize int) (*WorkOrderPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))

	var out WorkOrderPage
	if err := c.do(ctx, http.MethodGet, "/api/workorders?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) History(ctx context.Context, number string) ([]HistoryEntry, error) {
	q := url.Values{}
	q.Set("WO_NUMBER", number)

	var out struct {
		Items []HistoryEntry `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/workOrderHistory?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte, out any) error {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.getToken(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg := readError(resp.Body)
		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			c.setToken("")
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		case resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrUnavailable, msg)
		case resp.StatusCode < 500:
			return fmt.Errorf("%w: %s", ErrBadRequest, msg)
		default:
			return fmt.Errorf("%w: %s", ErrServer, msg)
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readError(r io.Reader) string {
	var e struct {
		Error string `json:"error"`
	}
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	if json.Unmarshal(b, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(b))
}
