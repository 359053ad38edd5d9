package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sqlagent/sqlagent-cli/internal/logging"
)

const (
	// APIKeyHeader carries the credential on every authenticated request.
	APIKeyHeader = "X-API-Key"
	// RequestIDHeader carries a client-generated id for log correlation.
	RequestIDHeader = "X-Request-Id"
)

// CredentialSource supplies the current credential for outgoing
// requests. An empty string means "dispatch unauthenticated" (login,
// registration and the plans listing are reachable that way).
type CredentialSource interface {
	Credential() string
}

// TeardownFunc is invoked when the backend rejects the credential.
// It must be idempotent: a slow in-flight request racing a logout may
// trigger it a second time.
type TeardownFunc func(ctx context.Context)

// HTTPClient implements Client over the backend's REST contract.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client rooted at baseURL (which includes the
// /api/v1 prefix). creds is consulted on every request; teardown runs
// on every 401-class response, regardless of which operation was in
// flight, before the error propagates.
func NewHTTPClient(baseURL string, creds CredentialSource, teardown TeardownFunc, log logging.Logger, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
		hc: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				next:     http.DefaultTransport,
				creds:    creds,
				teardown: teardown,
				log:      log,
			},
		},
	}
}

// authTransport is the one place request credentials are attached and
// auth failures are handled, mirroring an interceptor composed once
// around the client rather than per-call logic.
type authTransport struct {
	next     http.RoundTripper
	creds    CredentialSource
	teardown TeardownFunc
	log      logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.creds != nil {
		if key := t.creds.Credential(); key != "" {
			req.Header.Set(APIKeyHeader, key)
		}
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && t.teardown != nil {
		t.log.Warn(req.Context(), "credential rejected, tearing down session",
			"method", req.Method, "path", req.URL.Path)
		t.teardown(req.Context())
	}
	return resp, nil
}

// doJSON performs one request with an optional JSON body and decodes the
// payload into out (which may be nil when the caller only cares about
// success).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindDecode, Message: fmt.Sprintf("encode request: %v", err)}
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

// doForm performs one form-encoded request (the token endpoint is the
// only caller).
func (c *HTTPClient) doForm(ctx context.Context, method, path string, form url.Values, out any) error {
	return c.do(ctx, method, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", out)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return &Error{Kind: KindTransport, Message: "could not reach the server"}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error()}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Teardown already ran in the transport.
		return &Error{Kind: KindAuth, Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	if resp.StatusCode >= 400 {
		msg := errorMessage(raw)
		if msg == "" {
			msg = resp.Status
		}
		return &Error{Kind: KindAPI, Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload(raw), out); err != nil {
		c.log.Warn(ctx, "unexpected payload shape", "method", method, "path", path, "error", err)
		return &Error{Kind: KindDecode, Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// authResponse accepts both credential field names the backend has
// emitted over time.
type authResponse struct {
	APIKey      string `json:"api_key"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

func (c *HTTPClient) Authenticate(ctx context.Context, email, password string) (string, *User, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp authResponse
	if err := c.doForm(ctx, http.MethodPost, "/auth/token", form, &resp); err != nil {
		return "", nil, err
	}
	key := resp.APIKey
	if key == "" {
		key = resp.AccessToken
	}
	if key == "" {
		return "", nil, &Error{Kind: KindDecode, Message: "login response carried no credential"}
	}
	return key, &resp.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) error {
	in := map[string]string{"email": email, "password": password}
	return c.doJSON(ctx, http.MethodPost, "/auth/register", in, nil)
}

func (c *HTTPClient) RefreshAPIKey(ctx context.Context) (string, error) {
	var resp struct {
		APIKey string `json:"api_key"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/users/refresh-api-key", nil, &resp); err != nil {
		return "", err
	}
	if resp.APIKey == "" {
		return "", &Error{Kind: KindDecode, Message: "refresh response carried no credential"}
	}
	return resp.APIKey, nil
}

func (c *HTTPClient) ListTemplates(ctx context.Context) ([]Template, error) {
	var out []Template
	if err := c.doJSON(ctx, http.MethodGet, "/templates", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetTemplate(ctx context.Context, id int64) (*Template, error) {
	var out Template
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/templates/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateTemplate(ctx context.Context, in TemplateInput) (*Template, error) {
	var out Template
	if err := c.doJSON(ctx, http.MethodPost, "/templates", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateTemplate(ctx context.Context, id int64, in TemplateUpdate) (*Template, error) {
	var out Template
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/templates/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteTemplate(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/templates/%d", id), nil, nil)
}

func (c *HTTPClient) ExecuteQuery(ctx context.Context, templateID int64, question string) (*QueryResult, error) {
	in := map[string]string{"question": question}
	var out QueryResult
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/queries/%d", templateID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) QueryHistory(ctx context.Context) ([]QueryRecord, error) {
	var out []QueryRecord
	if err := c.doJSON(ctx, http.MethodGet, "/queries/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UsageStats(ctx context.Context) (*UsageStats, error) {
	var out UsageStats
	if err := c.doJSON(ctx, http.MethodGet, "/usage/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DetailedUsage(ctx context.Context) ([]QueryRecord, error) {
	var out struct {
		RecentQueries []QueryRecord `json:"recent_queries"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/usage/detailed", nil, &out); err != nil {
		return nil, err
	}
	return out.RecentQueries, nil
}

func (c *HTTPClient) UpdateSettings(ctx context.Context, in SettingsUpdate) (*User, error) {
	var out User
	if err := c.doJSON(ctx, http.MethodPut, "/users/settings", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SubscriptionPlans(ctx context.Context) ([]Plan, error) {
	var out []Plan
	if err := c.doJSON(ctx, http.MethodGet, "/subscriptions/plans", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CurrentSubscription(ctx context.Context) (*Subscription, error) {
	var out *Subscription
	if err := c.doJSON(ctx, http.MethodGet, "/subscriptions/current", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, priceID string) (string, error) {
	in := map[string]string{"price_id": priceID}
	var out struct {
		SessionURL string `json:"sessionUrl"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/subscriptions/create-checkout-session", in, &out); err != nil {
		return "", err
	}
	return out.SessionURL, nil
}

func (c *HTTPClient) CreatePortalSession(ctx context.Context) (string, error) {
	var out struct {
		PortalURL string `json:"portalUrl"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/subscriptions/create-portal-session", nil, &out); err != nil {
		return "", err
	}
	return out.PortalURL, nil
}

func (c *HTTPClient) ListInvoices(ctx context.Context) ([]Invoice, error) {
	var out []Invoice
	if err := c.doJSON(ctx, http.MethodGet, "/subscriptions/invoices", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
