// Package graph executes requests against the versioned Graph HTTP API.
//
// The client is a transparent pipe: it attaches credentials, performs exactly
// one outbound call per invocation, and hands back whatever JSON the remote
// returned. API-level errors ({"error": ...} bodies) are normal responses
// here — only network failures and non-JSON bodies surface as Go errors.
// Callers that care inspect the "error" key themselves.
package graph

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

	"go.uber.org/zap"
)

// RequestSpec describes one logical API request. Ephemeral: constructed per
// call by the ops builders and consumed immediately by the transport.
type RequestSpec struct {
	// Method is the HTTP method.
	Method string

	// Path is the endpoint path below the version segment, starting with
	// "/", e.g. "/1001/feed".
	Path string

	// Query holds flat string parameters. Builders flatten every value
	// (numbers, booleans, comma-joined lists, compact JSON) before the
	// spec reaches the transport.
	Query map[string]string

	// Body, when non-nil, is serialized as a JSON request body.
	Body any

	// Upload routes the request to the media-upload host instead of the
	// regular REST host.
	Upload bool
}

// Client issues authenticated requests. It holds no per-page state; the
// credential for each call is passed in explicitly.
type Client struct {
	baseURL   string
	uploadURL string
	version   string
	http      *http.Client
	log       *zap.Logger
}

// NewClient creates a Graph API client. The logger may not be nil; pass
// zap.NewNop() when diagnostics are unwanted.
func NewClient(baseURL, uploadURL, version string, log *zap.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		uploadURL: strings.TrimRight(uploadURL, "/"),
		version:   version,
		http:      &http.Client{},
		log:       log,
	}
}

// Do executes one request and returns the parsed JSON body verbatim.
//
// The access token always travels as the access_token query parameter. A
// non-2xx status is not an error: the remote signals failures inside the
// JSON body and this client preserves that contract. An error return means
// the call itself failed (network, or a body that is not JSON).
func (c *Client) Do(ctx context.Context, token string, spec RequestSpec) (json.RawMessage, error) {
	host := c.baseURL
	if spec.Upload {
		host = c.uploadURL
	}

	q := url.Values{}
	for k, v := range spec.Query {
		q.Set(k, v)
	}
	q.Set("access_token", token)

	u := host + "/" + c.version + spec.Path + "?" + q.Encode()

	var body io.Reader
	if spec.Body != nil {
		data, err := json.Marshal(spec.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if spec.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("graph request",
		zap.String("method", spec.Method),
		zap.String("path", spec.Path),
		zap.Bool("upload_host", spec.Upload))

	return c.roundTrip(req)
}

// UploadBytes posts raw bytes to the media-upload host. The token travels as
// a query parameter like Do; transfer-specific parameters (upload phase,
// session id, byte offset) are the caller's to supply in query.
func (c *Client) UploadBytes(ctx context.Context, token, path string, query map[string]string, data []byte) (json.RawMessage, error) {
	q := url.Values{}
	for k, v := range query {
		q.Set(k, v)
	}
	q.Set("access_token", token)
	u := c.uploadURL + "/" + c.version + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create transfer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	c.log.Debug("graph transfer",
		zap.String("path", path),
		zap.Int("size", len(data)))

	return c.roundTrip(req)
}

// DoUpload transfers raw bytes to an upload endpoint on the REST host.
//
// Upload endpoints authenticate via an Authorization header rather than a
// query parameter and take the byte offset as a header. Offset is always 0
// in practice — there is no resume support — but the parameter keeps the
// wire protocol explicit.
func (c *Client) DoUpload(ctx context.Context, token, path string, offset int64, data []byte) (json.RawMessage, error) {
	u := c.baseURL + "/" + c.version + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+token)
	req.Header.Set("file_offset", strconv.FormatInt(offset, 10))
	req.Header.Set("Content-Type", "application/octet-stream")

	c.log.Debug("graph upload",
		zap.String("path", path),
		zap.Int64("offset", offset),
		zap.Int("size", len(data)))

	return c.roundTrip(req)
}

// roundTrip performs the HTTP exchange and parses the response as JSON.
func (c *Client) roundTrip(req *http.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("non-JSON response (status %d): %s", resp.StatusCode, truncate(raw, 200))
	}
	return json.RawMessage(raw), nil
}

// IsAPIError reports whether a response body carries the remote API's error
// envelope. Used by the multi-step flows to decide whether to short-circuit.
func IsAPIError(body json.RawMessage) bool {
	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	return len(probe.Error) > 0 && string(probe.Error) != "null"
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
