package publish

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// photoAPI fakes /photos and /feed. failAt: 1-based index of the photo
// create call that should return an API error (0 = none). failPublish makes
// the attach call fail instead.
type photoAPI struct {
	created     int
	failAt      int
	failPublish bool

	attachedMedia string
	message       string
}

func (a *photoAPI) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/photos"):
			a.created++
			if a.failAt != 0 && a.created == a.failAt {
				io.WriteString(w, apiError)
				return
			}
			fmt.Fprintf(w, `{"id":"photo-%d"}`, a.created)
		case strings.HasSuffix(r.URL.Path, "/feed"):
			a.attachedMedia = r.URL.Query().Get("attached_media")
			a.message = r.URL.Query().Get("message")
			if a.failPublish {
				io.WriteString(w, apiError)
				return
			}
			io.WriteString(w, `{"id":"post-1"}`)
		}
	}
}

func TestPhotoPost_Success(t *testing.T) {
	api := &photoAPI{}
	p := newPublisher(t, api.handler())

	res, err := p.PhotoPost(context.Background(), "tok", "1001",
		[]string{"https://x/a.jpg", "https://x/b.jpg"}, "two photos")
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, StepPublish, res.Step)
	assert.Equal(t, []string{"photo-1", "photo-2"}, res.PhotoIDs)
	assert.JSONEq(t, `[{"media_fbid":"photo-1"},{"media_fbid":"photo-2"}]`, api.attachedMedia)
	assert.Equal(t, "two photos", api.message)
}

func TestPhotoPost_UploadFailureReportsCreatedSoFar(t *testing.T) {
	api := &photoAPI{failAt: 2}
	p := newPublisher(t, api.handler())

	res, err := p.PhotoPost(context.Background(), "tok", "1001",
		[]string{"https://x/a.jpg", "https://x/b.jpg", "https://x/c.jpg"}, "m")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, StepUpload, res.Step)
	assert.Equal(t, []string{"photo-1"}, res.PhotoIDs, "only the first photo was created")
	assert.Equal(t, 2, api.created, "the third photo must not be attempted")
	assert.Empty(t, api.attachedMedia, "publish step must not run")
}

func TestPhotoPost_FirstCreateFailureIsInitStep(t *testing.T) {
	api := &photoAPI{failAt: 1}
	p := newPublisher(t, api.handler())

	res, err := p.PhotoPost(context.Background(), "tok", "1001", []string{"https://x/a.jpg"}, "m")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, StepInit, res.Step, "nothing was created, so there is nothing to resume")
	assert.Empty(t, res.PhotoIDs)
	assert.Empty(t, api.attachedMedia, "publish step must not run")
}

func TestPhotoPost_PublishFailureReportsDanglingPhotos(t *testing.T) {
	api := &photoAPI{failPublish: true}
	p := newPublisher(t, api.handler())

	res, err := p.PhotoPost(context.Background(), "tok", "1001", []string{"https://x/a.jpg"}, "m")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, StepPublish, res.Step)
	assert.Equal(t, []string{"photo-1"}, res.PhotoIDs,
		"the unpublished photo id must be reported so the caller can retry the publish alone")
}
