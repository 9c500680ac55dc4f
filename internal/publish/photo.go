package publish

import (
	"context"
	"encoding/json"
	"fmt"

	"pagectl/internal/graph"
	"pagectl/internal/ops"
)

// PhotoPost runs the two-step photo flow: create each photo unpublished,
// then publish one feed post attaching them all.
//
// A failure while creating photos reports the ids created so far; a failure
// at the publish step reports every created id. Either way the photos remain
// on the remote side unpublished — that is accepted behavior, the caller can
// attach them manually or retry just the publish step.
func (p *Publisher) PhotoPost(ctx context.Context, token, pageID string, photoURLs []string, message string) (*StepResult, error) {
	created := make([]string, 0, len(photoURLs))

	for _, u := range photoURLs {
		raw, err := p.client.Do(ctx, token, ops.PublishPhoto(pageID, u, "", false))
		if err != nil {
			return nil, fmt.Errorf("photo upload: %w", err)
		}
		if graph.IsAPIError(raw) {
			// Before anything was created there is no partial resource to
			// report, which makes the failure an init failure.
			step := StepUpload
			if len(created) == 0 {
				step = StepInit
			}
			return &StepResult{
				Step:     step,
				PhotoIDs: created,
				Body:     decodeBody(raw),
			}, nil
		}

		var obj struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil || obj.ID == "" {
			return nil, fmt.Errorf("photo upload: response carried no id: %s", raw)
		}
		created = append(created, obj.ID)
	}

	spec, err := ops.AttachMedia(pageID, message, created)
	if err != nil {
		return nil, err
	}
	raw, err := p.client.Do(ctx, token, spec)
	if err != nil {
		return nil, fmt.Errorf("photo publish: %w", err)
	}

	return &StepResult{
		Step:     StepPublish,
		PhotoIDs: created,
		Body:     decodeBody(raw),
		OK:       !graph.IsAPIError(raw),
	}, nil
}
