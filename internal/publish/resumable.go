package publish

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"pagectl/internal/graph"
)

// UploadLocalFile runs the app-scoped resumable upload sub-protocol:
// open a session under the app id, then transfer the bytes at offset zero.
// On success it returns the opaque file handle that the normal video publish
// call accepts (see Publisher.VideoFromHandle).
//
// This path needs the separately-configured app credential pair, not a page
// token. Despite the protocol's name there is no resume logic here: a failed
// transfer is reported with the session id and retried from scratch (or
// manually, against that session) by the caller.
func (p *Publisher) UploadLocalFile(ctx context.Context, appID, appToken, fileName, fileType string, data []byte) (string, *StepResult, error) {
	raw, err := p.client.Do(ctx, appToken, graph.RequestSpec{
		Method: "POST",
		Path:   "/" + appID + "/uploads",
		Query: map[string]string{
			"file_name":   fileName,
			"file_length": fmt.Sprintf("%d", len(data)),
			"file_type":   fileType,
		},
	})
	if err != nil {
		return "", nil, fmt.Errorf("upload session: %w", err)
	}
	if graph.IsAPIError(raw) {
		return "", &StepResult{Step: StepInit, Body: decodeBody(raw)}, nil
	}

	var sess struct {
		ID string `json:"id"` // "upload:<opaque>"
	}
	if err := json.Unmarshal(raw, &sess); err != nil || sess.ID == "" {
		return "", nil, fmt.Errorf("upload session: response carried no id: %s", raw)
	}
	p.log.Debug("upload session opened", zap.String("session", sess.ID))

	raw, err = p.client.DoUpload(ctx, appToken, "/"+sess.ID, 0, data)
	if err != nil {
		return "", nil, fmt.Errorf("upload transfer: %w", err)
	}
	if graph.IsAPIError(raw) {
		return "", &StepResult{
			Step:            StepUpload,
			UploadSessionID: sess.ID,
			Body:            decodeBody(raw),
		}, nil
	}

	var out struct {
		Handle string `json:"h"`
	}
	if err := json.Unmarshal(raw, &out); err != nil || out.Handle == "" {
		return "", nil, fmt.Errorf("upload transfer: response carried no file handle: %s", raw)
	}
	return out.Handle, nil, nil
}
