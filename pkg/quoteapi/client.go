// Package quoteapi provides a client for the drawing-to-quotation
// backend REST API.
package quoteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/inada-mfg/quote-cli/internal/model"
)

// Default base URL for a local backend.
const defaultBaseURL = "http://localhost:5001/api"

// Client defines the quotation backend operations.
type Client interface {
	// UploadDrawing submits one drawing and returns the generated quote.
	UploadDrawing(ctx context.Context, up Upload) (*UploadResponse, error)
	// UploadBatch submits up to ten drawings in one request.
	UploadBatch(ctx context.Context, ups []Upload) (*BatchResponse, error)
	// GetQuote fetches a single quote by id.
	GetQuote(ctx context.Context, id string) (*QuoteResponse, error)
	// ListQuotes fetches a page of quotes.
	ListQuotes(ctx context.Context, params ListParams) (*ListResponse, error)
	// UpdateStatus moves a quote to a new lifecycle status.
	UpdateStatus(ctx context.Context, id string, status model.QuoteStatus) (*StatusUpdateResponse, error)
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
}

// Upload is one drawing to submit.
type Upload struct {
	FileName    string
	ContentType string
	Data        io.Reader
	Description string
}

// ListParams are the query parameters of ListQuotes.
type ListParams struct {
	Page   int
	Limit  int
	Status string
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTokenSource sets the bearer credential source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *httpClient) {
		c.tokens = ts
	}
}

// WithRateLimit overrides the default request rate limit.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
}

// NewClient creates a new quotation API client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(10, 10),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) UploadDrawing(ctx context.Context, up Upload) (*UploadResponse, error) {
	body, contentType, err := multipartBody([]formFile{{field: "drawing", up: up}}, up.Description)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/quotes/upload", body)
	if err != nil {
		return nil, eris.Wrap(err, "quoteapi: create upload request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Idempotency-Key", uuid.NewString())

	var resp UploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) UploadBatch(ctx context.Context, ups []Upload) (*BatchResponse, error) {
	files := make([]formFile, 0, len(ups))
	for _, up := range ups {
		files = append(files, formFile{field: "drawings", up: up})
	}
	body, contentType, err := multipartBody(files, "")
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/quotes/batch", body)
	if err != nil {
		return nil, eris.Wrap(err, "quoteapi: create batch request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Idempotency-Key", uuid.NewString())

	var resp BatchResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) GetQuote(ctx context.Context, id string) (*QuoteResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/quotes/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, eris.Wrap(err, "quoteapi: create get request")
	}

	var resp QuoteResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) ListQuotes(ctx context.Context, params ListParams) (*ListResponse, error) {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	reqURL := c.baseURL + "/quotes"
	if len(q) > 0 {
		reqURL += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "quoteapi: create list request")
	}

	var resp ListResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) UpdateStatus(ctx context.Context, id string, status model.QuoteStatus) (*StatusUpdateResponse, error) {
	payload, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return nil, eris.Wrap(err, "quoteapi: marshal status")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/quotes/"+url.PathEscape(id)+"/status", bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "quoteapi: create status request")
	}
	req.Header.Set("Content-Type", "application/json")

	var resp StatusUpdateResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, eris.Wrap(err, "quoteapi: marshal credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "quoteapi: create login request")
	}
	req.Header.Set("Content-Type", "application/json")

	var resp LoginResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type formFile struct {
	field string
	up    Upload
}

// multipartBody assembles the upload form. Each file part carries its
// detected content type rather than the octet-stream default.
func multipartBody(files []formFile, description string) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, f := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.up.FileName))
		h.Set("Content-Type", f.up.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", eris.Wrap(err, "quoteapi: create form part")
		}
		if _, err := io.Copy(part, f.up.Data); err != nil {
			return nil, "", eris.Wrap(err, "quoteapi: copy file data")
		}
	}
	if description != "" {
		if err := w.WriteField("description", description); err != nil {
			return nil, "", eris.Wrap(err, "quoteapi: write description field")
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", eris.Wrap(err, "quoteapi: close form")
	}
	return buf, w.FormDataContentType(), nil
}

// authorize attaches the bearer token when one is available. A failed
// token lookup is logged and the request proceeds unauthenticated; an
// already-degraded session must not turn into a request failure.
func (c *httpClient) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Token(req.Context())
	if err != nil {
		zap.L().Warn("quoteapi: token retrieval failed, continuing unauthenticated", zap.Error(err))
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *httpClient) do(req *http.Request, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return eris.Wrap(err, "quoteapi: rate limiter wait")
	}

	c.authorize(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "quoteapi: execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "quoteapi: read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
			Message:    serverMessage(data),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "quoteapi: decode response")
	}

	return nil
}
