package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// BatchLimit is the remote API's hard ceiling on sub-requests per composite
// call. Not configurable.
const BatchLimit = 50

// BatchItem is one logical sub-request inside a composite call. Unlike
// RequestSpec it supports only form-encoded bodies, because that is all the
// composite envelope carries.
type BatchItem struct {
	Method      string
	RelativeURL string
	Form        map[string]string
}

// BatchResult is the outcome of one sub-request. Body holds the inner JSON
// decoded a second time, or the raw string when that inner decode fails.
// Success is derived from Code == 200. A sub-request the remote never
// completed (a null slot) yields Code 0 and a synthetic timeout body.
type BatchResult struct {
	Code    int  `json:"code"`
	Body    any  `json:"body"`
	Success bool `json:"success"`
}

// batchEntry is the wire shape of one sub-request in the envelope.
type batchEntry struct {
	Method      string `json:"method"`
	RelativeURL string `json:"relative_url"`
	Body        string `json:"body,omitempty"`
}

// batchSlot is the wire shape of one sub-response. Slots arrive positionally
// and may be null.
type batchSlot struct {
	Code int    `json:"code"`
	Body string `json:"body"`
}

// RunBatch executes the logical requests through the composite endpoint,
// ⌈N/50⌉ sequential calls, and fans the responses back out.
//
// Result order matches input order within and across chunks, so callers may
// zip inputs to outputs positionally. One slot's failure or timeout never
// aborts the rest; only a transport-level failure of a composite call does.
func (c *Client) RunBatch(ctx context.Context, token string, items []BatchItem) ([]BatchResult, error) {
	results := make([]BatchResult, 0, len(items))

	for start := 0; start < len(items); start += BatchLimit {
		end := start + BatchLimit
		if end > len(items) {
			end = len(items)
		}

		chunk, err := c.runChunk(ctx, token, items[start:end])
		if err != nil {
			return nil, fmt.Errorf("batch chunk %d: %w", start/BatchLimit, err)
		}
		results = append(results, chunk...)
	}
	return results, nil
}

// runChunk encodes one chunk as a composite POST and decodes the positional
// response array.
func (c *Client) runChunk(ctx context.Context, token string, items []BatchItem) ([]BatchResult, error) {
	entries := make([]batchEntry, 0, len(items))
	for _, it := range items {
		e := batchEntry{Method: it.Method, RelativeURL: it.RelativeURL}
		if len(it.Form) > 0 {
			form := url.Values{}
			for k, v := range it.Form {
				form.Set(k, v)
			}
			e.Body = form.Encode()
		}
		entries = append(entries, e)
	}

	envelope, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("marshal batch envelope: %w", err)
	}

	form := url.Values{}
	form.Set("batch", string(envelope))
	form.Set("include_headers", "false")
	form.Set("access_token", token)

	u := c.baseURL + "/" + c.version + "/"
	req, err := newFormPost(ctx, u, form)
	if err != nil {
		return nil, err
	}

	c.log.Debug("graph batch", zap.Int("items", len(items)))

	raw, err := c.roundTrip(req)
	if err != nil {
		return nil, err
	}

	var slots []*batchSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, fmt.Errorf("decode batch response: %w", err)
	}
	if len(slots) != len(items) {
		return nil, fmt.Errorf("batch response has %d slots for %d requests", len(slots), len(items))
	}

	results := make([]BatchResult, 0, len(slots))
	for _, slot := range slots {
		results = append(results, decodeSlot(slot))
	}
	return results, nil
}

// decodeSlot normalizes one positional slot. Null slots mean the remote
// timed the sub-request out; they become a synthetic failure result rather
// than an error. The slot body is JSON-in-a-string and gets decoded a second
// time; a body that is not valid JSON passes through verbatim.
func decodeSlot(slot *batchSlot) BatchResult {
	if slot == nil {
		return BatchResult{
			Code:    0,
			Body:    map[string]any{"error": "timed out"},
			Success: false,
		}
	}

	res := BatchResult{Code: slot.Code, Success: slot.Code == 200}
	var inner any
	if err := json.Unmarshal([]byte(slot.Body), &inner); err != nil {
		res.Body = slot.Body
	} else {
		res.Body = inner
	}
	return res
}

func newFormPost(ctx context.Context, u string, form url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create batch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}
