// Package publish drives the short, strictly-ordered media publishing flows.
//
// Each flow is a sequential chain of two or three requests where every step
// depends on an identifier returned by the previous one. A failing step
// short-circuits the chain and reports the step's response tagged with a
// step discriminator plus any identifiers minted so far — there is no
// rollback, deliberately: a dangling unpublished resource on the remote side
// can be reused by retrying the final step alone.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"pagectl/internal/graph"
)

// Step discriminators used in flow results.
const (
	StepInit    = "init"
	StepUpload  = "upload"
	StepPublish = "publish"
)

// StepResult is the outcome of a multi-step flow: the response body of
// whichever step ended the flow, tagged with the step name and the
// identifiers available at that point. OK reports whether the flow
// completed; callers use it for exit-code decisions, it is not part of the
// printed shape.
type StepResult struct {
	Step            string   `json:"step"`
	UploadSessionID string   `json:"upload_session_id,omitempty"`
	VideoID         string   `json:"video_id,omitempty"`
	PhotoIDs        []string `json:"photo_ids,omitempty"`
	Body            any      `json:"body"`

	OK bool `json:"-"`
}

// VideoMeta carries the optional finalize-step metadata.
type VideoMeta struct {
	Title       string
	Description string
	// Unpublished finalizes the video without publishing it to the feed.
	Unpublished bool
}

// Publisher sequences publishing flows over a graph client.
type Publisher struct {
	client *graph.Client
	log    *zap.Logger
}

// New creates a Publisher.
func New(client *graph.Client, log *zap.Logger) *Publisher {
	return &Publisher{client: client, log: log}
}

// videoSession is the remote's answer to an upload start call.
type videoSession struct {
	UploadSessionID string `json:"upload_session_id"`
	VideoID         string `json:"video_id"`
}

// VideoFromURL runs the three-step video flow with a remotely-hosted source:
// start a session, hand the remote the source URL, finalize with metadata.
func (p *Publisher) VideoFromURL(ctx context.Context, token, pageID, fileURL string, meta VideoMeta) (*StepResult, error) {
	sess, step, err := p.startVideo(ctx, token, pageID, nil)
	if step != nil || err != nil {
		return step, err
	}

	transfer := graph.RequestSpec{
		Method: "POST",
		Path:   "/" + pageID + "/videos",
		Query: map[string]string{
			"upload_phase":      "transfer",
			"upload_session_id": sess.UploadSessionID,
			"start_offset":      "0",
			"file_url":          fileURL,
		},
		Upload: true,
	}
	raw, err := p.client.Do(ctx, token, transfer)
	if err != nil {
		return nil, fmt.Errorf("video transfer: %w", err)
	}
	if graph.IsAPIError(raw) {
		return sess.failed(StepUpload, raw), nil
	}

	return p.finishVideo(ctx, token, pageID, sess, meta)
}

// VideoFromBytes runs the three-step flow streaming local bytes through the
// transfer step. The byte offset is always zero: there is no partial-retry
// support, a failed transfer starts over.
func (p *Publisher) VideoFromBytes(ctx context.Context, token, pageID string, data []byte, meta VideoMeta) (*StepResult, error) {
	sess, step, err := p.startVideo(ctx, token, pageID, map[string]string{
		"file_size": strconv.Itoa(len(data)),
	})
	if step != nil || err != nil {
		return step, err
	}

	raw, err := p.client.UploadBytes(ctx, token, "/"+pageID+"/videos", map[string]string{
		"upload_phase":      "transfer",
		"upload_session_id": sess.UploadSessionID,
		"start_offset":      "0",
	}, data)
	if err != nil {
		return nil, fmt.Errorf("video transfer: %w", err)
	}
	if graph.IsAPIError(raw) {
		return sess.failed(StepUpload, raw), nil
	}

	return p.finishVideo(ctx, token, pageID, sess, meta)
}

// VideoFromHandle publishes a video from an opaque file handle produced by
// the resumable upload protocol (see Uploader). Single publish call; the
// session work already happened under the app credential.
func (p *Publisher) VideoFromHandle(ctx context.Context, token, pageID, handle string, meta VideoMeta) (*StepResult, error) {
	q := map[string]string{"fbuploader_video_file_chunk": handle}
	addVideoMeta(q, meta)

	raw, err := p.client.Do(ctx, token, graph.RequestSpec{
		Method: "POST",
		Path:   "/" + pageID + "/videos",
		Query:  q,
	})
	if err != nil {
		return nil, fmt.Errorf("video publish: %w", err)
	}
	return &StepResult{
		Step: StepPublish,
		Body: decodeBody(raw),
		OK:   !graph.IsAPIError(raw),
	}, nil
}

// startVideo issues the session-start call. On an API error there is no
// session to report yet; the init-tagged result carries only the error body.
func (p *Publisher) startVideo(ctx context.Context, token, pageID string, extra map[string]string) (*videoSession, *StepResult, error) {
	q := map[string]string{"upload_phase": "start"}
	for k, v := range extra {
		q[k] = v
	}

	raw, err := p.client.Do(ctx, token, graph.RequestSpec{
		Method: "POST",
		Path:   "/" + pageID + "/videos",
		Query:  q,
		Upload: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("video start: %w", err)
	}
	if graph.IsAPIError(raw) {
		return nil, &StepResult{Step: StepInit, Body: decodeBody(raw)}, nil
	}

	var sess videoSession
	if err := json.Unmarshal(raw, &sess); err != nil || sess.UploadSessionID == "" {
		return nil, nil, fmt.Errorf("video start: response carried no upload_session_id: %s", raw)
	}
	p.log.Debug("video session started",
		zap.String("session", sess.UploadSessionID),
		zap.String("video", sess.VideoID))
	return &sess, nil, nil
}

// finishVideo issues the finalize call. Its result, success or error, is the
// flow's final output either way.
func (p *Publisher) finishVideo(ctx context.Context, token, pageID string, sess *videoSession, meta VideoMeta) (*StepResult, error) {
	q := map[string]string{
		"upload_phase":      "finish",
		"upload_session_id": sess.UploadSessionID,
	}
	addVideoMeta(q, meta)

	raw, err := p.client.Do(ctx, token, graph.RequestSpec{
		Method: "POST",
		Path:   "/" + pageID + "/videos",
		Query:  q,
		Upload: true,
	})
	if err != nil {
		return nil, fmt.Errorf("video finish: %w", err)
	}

	res := sess.failed(StepPublish, raw)
	res.OK = !graph.IsAPIError(raw)
	return res, nil
}

func addVideoMeta(q map[string]string, meta VideoMeta) {
	if meta.Title != "" {
		q["title"] = meta.Title
	}
	if meta.Description != "" {
		q["description"] = meta.Description
	}
	if meta.Unpublished {
		q["published"] = "false"
	}
}

// failed builds a step-tagged result preserving the session identifiers, so
// the caller can inspect or retry against them manually.
func (s *videoSession) failed(step string, raw json.RawMessage) *StepResult {
	return &StepResult{
		Step:            step,
		UploadSessionID: s.UploadSessionID,
		VideoID:         s.VideoID,
		Body:            decodeBody(raw),
	}
}

// decodeBody turns a raw JSON response into a generic value for embedding in
// a StepResult. The response was already validated as JSON by the transport.
func decodeBody(raw json.RawMessage) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}
