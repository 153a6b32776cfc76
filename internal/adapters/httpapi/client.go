package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/bnema/petcare-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL     = "http://localhost:3333/api"
	DefaultTimeout     = 30 * time.Second
	DefaultRefreshPath = "/auth/refresh"
	DefaultUserAgent   = "pc"

	DefaultMaxResponseBytes = 64 << 20

	requestIDHeader = "X-Request-ID"
)

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	RefreshPath string
	UserAgent   string
	// RateLimit is in requests per second; zero disables limiting.
	RateLimit float64
	RateBurst int
	// MaxResponseBytes bounds a response body; larger bodies fail with
	// ErrResponseTooLarge instead of being cut short.
	MaxResponseBytes int64
	HTTPClient       *http.Client
	Logger           logrus.FieldLogger
}

// Client executes API requests on behalf of the session held in a
// SessionStore and recovers once from an expired access token.
type Client struct {
	baseURL     *url.URL
	timeout     time.Duration
	refreshPath string
	userAgent   string
	maxBody     int64
	httpClient  *http.Client
	limiter     *rate.Limiter
	sessions    ports.SessionStore
	logger      logrus.FieldLogger

	refreshes singleflight.Group
}

var _ ports.APIClient = (*Client)(nil)

func New(cfg Config, sessions ports.SessionStore) (*Client, error) {
	if sessions == nil {
		return nil, errors.New("session store is required")
	}

	rawBase := strings.TrimSpace(cfg.BaseURL)
	if rawBase == "" {
		rawBase = DefaultBaseURL
	}
	baseURL, err := url.Parse(rawBase)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if (baseURL.Scheme != "http" && baseURL.Scheme != "https") || baseURL.Host == "" {
		return nil, fmt.Errorf("base url %q must be an absolute http(s) url", rawBase)
	}

	client := &Client{
		baseURL:     baseURL,
		timeout:     cfg.Timeout,
		refreshPath: strings.TrimSpace(cfg.RefreshPath),
		userAgent:   strings.TrimSpace(cfg.UserAgent),
		maxBody:     cfg.MaxResponseBytes,
		httpClient:  cfg.HTTPClient,
		sessions:    sessions,
		logger:      cfg.Logger,
	}
	if client.timeout <= 0 {
		client.timeout = DefaultTimeout
	}
	if client.refreshPath == "" {
		client.refreshPath = DefaultRefreshPath
	}
	if client.maxBody <= 0 {
		client.maxBody = DefaultMaxResponseBytes
	}
	if client.userAgent == "" {
		client.userAgent = DefaultUserAgent
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}
	if client.logger == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		client.logger = logger
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		client.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return client, nil
}

// Do runs the request and, when an authenticated call is rejected with 401,
// refreshes the session once and replays it once. The replay's outcome is
// returned unchanged.
func (c *Client) Do(ctx context.Context, req ports.Request, out any) (*ports.Response, error) {
	body, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	token, err := c.bearerToken(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.attempt(ctx, req, body, token, out, 1)
	if !c.shouldRecover(req, token, err) {
		return resp, err
	}

	replayToken, err := c.recoverSession(ctx, token)
	if err != nil {
		return nil, err
	}

	return c.attempt(ctx, req, body, replayToken, out, 2)
}

func (c *Client) bearerToken(ctx context.Context, req ports.Request) (string, error) {
	if req.Anonymous {
		return "", nil
	}

	session, err := c.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return "", nil
		}
		return "", fmt.Errorf("load session: %w", err)
	}

	return session.AccessToken, nil
}

// shouldRecover is true only for a 401 answered to a request that carried a
// bearer token.
func (c *Client) shouldRecover(req ports.Request, token string, err error) bool {
	if req.Anonymous || token == "" || err == nil {
		return false
	}
	return StatusCode(err) == http.StatusUnauthorized
}

func (c *Client) attempt(ctx context.Context, req ports.Request, body encodedBody, token string, out any, attempt int) (*ports.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	target, err := c.resolve(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, method, target, body.reader())
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(requestIDHeader, requestID)
	if body.contentType != "" {
		httpReq.Header.Set("Content-Type", body.contentType)
	}
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	logger := c.logger.WithFields(logrus.Fields{
		"method":     method,
		"path":       req.Path,
		"attempt":    attempt,
		"request_id": requestID,
		"auth":       maskToken(token),
	})

	started := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		err = c.classify(ctx, attemptCtx, err)
		logger.WithError(err).Debug("api request failed")
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, c.maxBody+1))
	if err != nil {
		err = c.classify(ctx, attemptCtx, err)
		logger.WithError(err).Debug("api response read failed")
		return nil, err
	}
	if int64(len(data)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s %s returned more than %d bytes", ErrResponseTooLarge, method, req.Path, c.maxBody)
	}

	logger.WithFields(logrus.Fields{
		"status":   httpResp.StatusCode,
		"duration": time.Since(started).Round(time.Millisecond),
	}).Debug("api request")

	resp := &ports.Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header.Clone(),
		Body:       data,
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, newHTTPError(httpResp.StatusCode, data)
	}

	if out != nil && len(data) > 0 && isJSON(httpResp.Header.Get("Content-Type")) {
		if err := json.Unmarshal(data, out); err != nil {
			return resp, fmt.Errorf("decode response: %w", err)
		}
	}

	return resp, nil
}

// classify maps transport failures onto the package error taxonomy. Caller
// cancellation keeps the context error so errors.Is(err, context.Canceled)
// still holds.
func (c *Client) classify(parent, attemptCtx context.Context, err error) error {
	if parentErr := parent.Err(); parentErr != nil {
		return fmt.Errorf("request aborted: %w", parentErr)
	}
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, c.timeout)
	}
	return fmt.Errorf("%w: %w", ErrUnknownRequest, err)
}

func (c *Client) resolve(path string, query url.Values) (string, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse request path %q: %w", path, err)
	}
	if rel.IsAbs() || rel.Host != "" {
		return "", fmt.Errorf("request path %q must be relative", path)
	}

	target := c.baseURL.JoinPath(rel.EscapedPath())

	values := rel.Query()
	for key, items := range query {
		for _, item := range items {
			values.Add(key, item)
		}
	}
	target.RawQuery = values.Encode()
	target.Fragment = ""

	return target.String(), nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****" + token[len(token)-4:]
}
