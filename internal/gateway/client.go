// Package gateway is the HTTP client for the SOJUS REST API. Every call goes
// through Client.Do, which attaches the session credential and turns a 401
// into a forced invalidation of the session.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/sojus-client/internal/api/dto"
	"github.com/spec-kit/sojus-client/internal/observability"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

const (
	headerRequestID = "X-Request-ID"
	defaultTimeout  = 15 * time.Second
)

type ctxKey int

const publicRequestKey ctxKey = iota

// SessionBinding is the part of the session the gateway needs.
type SessionBinding interface {
	Token() string
	ForceInvalidate(ctx context.Context)
}

// Config configures a Client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Debug     bool
	Logger    *zap.Logger
	Metrics   *observability.Metrics
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// Public requests carry no credential and a 401 does not invalidate
	// the session. Only login uses it.
	Public bool
}

// Client represents the SOJUS API client.
type Client struct {
	httpClient *resty.Client
	baseURL    string
	logger     *zap.Logger
	metrics    *observability.Metrics

	mu      sync.RWMutex
	session SessionBinding

	Auth      *AuthService
	Tickets   *TicketsService
	Inventory *InventoryService
	Contracts *ContractsService
	Dashboard *DashboardService
	Directory *DirectoryService
	Audit     *AuditService
}

// NewClient creates a client. Retries are disabled: a failed call is reported
// to the caller unchanged.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "sojus-client/1.0"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("gateway")

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetLogger(logger.Sugar()).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if cfg.Debug {
		httpClient.SetDebug(true)
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		logger:     logger,
		metrics:    cfg.Metrics,
	}

	client.Auth = &AuthService{client: client}
	client.Tickets = &TicketsService{client: client}
	client.Inventory = &InventoryService{client: client}
	client.Contracts = &ContractsService{client: client}
	client.Dashboard = &DashboardService{client: client}
	client.Directory = &DirectoryService{client: client}
	client.Audit = &AuditService{client: client}

	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		client.setAuth(req)
		if req.Header.Get(headerRequestID) == "" {
			req.SetHeader(headerRequestID, uuid.NewString())
		}
		return nil
	})

	httpClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		path := requestPath(resp.Request)
		client.metrics.RecordRequest(path, resp.Request.Method, resp.StatusCode(), resp.Time())
		client.logger.Debug("api response",
			zap.String("method", resp.Request.Method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("duration", resp.Time()),
			zap.String("request_id", resp.Request.Header.Get(headerRequestID)),
		)
		return nil
	})

	httpClient.OnError(func(req *resty.Request, err error) {
		path := requestPath(req)
		client.metrics.RecordError(path, req.Method, classifyTransport(err))
		client.logger.Debug("api request failed", zap.String("method", req.Method), zap.String("path", path), zap.Error(err))
	})

	return client
}

// UseSession binds the session whose token is attached and which is
// invalidated on 401.
func (c *Client) UseSession(session SessionBinding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
}

// BaseURL returns the configured API address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) boundSession() SessionBinding {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) setAuth(req *resty.Request) {
	if public, _ := req.Context().Value(publicRequestKey).(bool); public {
		return
	}
	session := c.boundSession()
	if session == nil {
		return
	}
	if token := session.Token(); token != "" {
		req.SetAuthToken(token)
	}
}

// Do performs one request and decodes a successful JSON body into out, which
// may be nil. Failures are DomainErrors: UNAUTHORIZED after a 401 (the session
// has already been invalidated), TIMEOUT when the deadline expired, TRANSPORT
// when no response arrived, and a status-derived code otherwise.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	if r.Public {
		ctx = context.WithValue(ctx, publicRequestKey, true)
	}

	req := c.httpClient.R().SetContext(ctx)
	if r.Query != nil {
		req.SetQueryParamsFromValues(r.Query)
	}
	if r.Body != nil {
		req.SetBody(r.Body)
	}

	resp, err := req.Execute(r.Method, r.Path)
	if err != nil {
		if isTimeout(err) {
			return apperrors.NewTimeoutError(r.Method, r.Path, err)
		}
		return apperrors.NewTransportError(r.Method, r.Path, err)
	}

	if resp.StatusCode() == http.StatusUnauthorized && !r.Public {
		if session := c.boundSession(); session != nil {
			session.ForceInvalidate(context.WithoutCancel(ctx))
		}
		c.metrics.RecordError(r.Path, r.Method, apperrors.CodeUnauthorized)
		return apperrors.NewAPIError(resp.StatusCode(), serverMessage(resp.Body()))
	}

	if !resp.IsSuccess() {
		apiErr := apperrors.NewAPIError(resp.StatusCode(), serverMessage(resp.Body()))
		c.metrics.RecordError(r.Path, r.Method, apperrors.ToDomainError(apiErr).Code)
		return apiErr
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return apperrors.NewTransportError(r.Method, r.Path, err)
	}
	return nil
}

func requestPath(req *resty.Request) string {
	if req.RawRequest != nil && req.RawRequest.URL != nil {
		return req.RawRequest.URL.Path
	}
	if u, err := url.Parse(req.URL); err == nil && u.Path != "" {
		return u.Path
	}
	return req.URL
}

func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload dto.ErrorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.ServerMessage()
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func classifyTransport(err error) string {
	if isTimeout(err) {
		return apperrors.CodeTimeout
	}
	return apperrors.CodeTransport
}
