package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kongenga/kongenga/internal/client/models"
	"github.com/kongenga/kongenga/internal/common"
)

type HTTPClient struct {
	baseURL string
	hc      *http.Client

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do sends in as JSON (when non-nil) and decodes a 2xx body into out (when
// non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.bearer(); tok != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	e := &APIError{Status: resp.StatusCode}

	var body struct {
		Detail  any    `json:"detail"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &body) == nil {
		// validation errors may carry a list instead of a string
		if s, ok := body.Detail.(string); ok {
			e.Detail = s
		}
		e.Message = body.Message
	}
	return e
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password, userType string) (*AuthResponse, error) {
	in := map[string]string{"email": email, "password": password, "userType": userType}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, r RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateMe(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, "/users/me", upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ToggleFavorite(ctx context.Context, jobID string) (*ToggleResponse, error) {
	var out ToggleResponse
	if err := c.do(ctx, http.MethodPost, "/users/favorites/"+url.PathEscape(jobID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Favorites(ctx context.Context) ([]*models.Job, error) {
	var out struct {
		Favorites []*models.Job `json:"favorites"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/favorites", nil, &out); err != nil {
		return nil, err
	}
	return out.Favorites, nil
}

// UpdateProgress sends only the given counters; the server merges them and
// returns the whole record.
func (c *HTTPClient) UpdateProgress(ctx context.Context, partial map[string]int) (models.Progress, error) {
	var out struct {
		Status   string          `json:"status"`
		Progress models.Progress `json:"progress"`
	}
	if err := c.do(ctx, http.MethodPut, "/users/progress", partial, &out); err != nil {
		return models.Progress{}, err
	}
	return out.Progress, nil
}

func (c *HTTPClient) PresignAvatar(ctx context.Context) (*AvatarUpload, error) {
	var out AvatarUpload
	if err := c.do(ctx, http.MethodPost, "/users/me/avatar", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Sectors(ctx context.Context) ([]*models.Sector, error) {
	var out []*models.Sector
	if err := c.do(ctx, http.MethodGet, "/sectors", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Jobs(ctx context.Context, q models.JobQuery) ([]*models.Job, error) {
	v := url.Values{}
	if q.Sector != "" {
		v.Set("sector", q.Sector)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	path := "/jobs"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}

	var out []*models.Job
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Job(ctx context.Context, id string) (*models.Job, error) {
	var out models.Job
	if err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
