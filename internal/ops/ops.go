// Package ops maps typed operation arguments onto request shapes.
//
// Builders here are pure: no I/O, no validation beyond what the dispatch
// layer already enforced. Malformed input is the remote API's to reject —
// its validation errors come back as ordinary response bodies. Every
// parameter value is flattened to a string before transmission; list-valued
// arguments are comma-joined unless the target parameter is itself a
// JSON-encoded structure.
package ops

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"pagectl/internal/graph"
)

// PageInfo fetches a page object, optionally narrowing to specific fields.
func PageInfo(pageID string, fields []string) graph.RequestSpec {
	q := map[string]string{}
	if len(fields) > 0 {
		q["fields"] = strings.Join(fields, ",")
	}
	return graph.RequestSpec{Method: "GET", Path: "/" + pageID, Query: q}
}

// PostParams carries the optional pieces of a feed post.
type PostParams struct {
	Message string
	Link    string
	// ScheduledAt, when non-zero, schedules the post for the given Unix
	// time instead of publishing immediately.
	ScheduledAt int64
}

// CreatePost publishes (or schedules) a post on a page's feed.
func CreatePost(pageID string, p PostParams) graph.RequestSpec {
	q := map[string]string{}
	if p.Message != "" {
		q["message"] = p.Message
	}
	if p.Link != "" {
		q["link"] = p.Link
	}
	if p.ScheduledAt != 0 {
		q["published"] = "false"
		q["scheduled_publish_time"] = strconv.FormatInt(p.ScheduledAt, 10)
	}
	return graph.RequestSpec{Method: "POST", Path: "/" + pageID + "/feed", Query: q}
}

// ListPosts fetches a page's recent posts.
func ListPosts(pageID string, limit int) graph.RequestSpec {
	q := map[string]string{}
	if limit > 0 {
		q["limit"] = strconv.Itoa(limit)
	}
	return graph.RequestSpec{Method: "GET", Path: "/" + pageID + "/posts", Query: q}
}

// DeleteObject removes any object (post, comment) by id.
func DeleteObject(id string) graph.RequestSpec {
	return graph.RequestSpec{Method: "DELETE", Path: "/" + id}
}

// CreateComment replies to an object with a comment.
func CreateComment(objectID, message string) graph.RequestSpec {
	return graph.RequestSpec{
		Method: "POST",
		Path:   "/" + objectID + "/comments",
		Query:  map[string]string{"message": message},
	}
}

// InsightsParams narrows an insights query.
type InsightsParams struct {
	Metrics []string
	Period  string
	Since   string
	Until   string
}

// Insights queries page metrics. Metric names are comma-joined into the
// single metric parameter the remote expects.
func Insights(pageID string, p InsightsParams) graph.RequestSpec {
	q := map[string]string{
		"metric": strings.Join(p.Metrics, ","),
	}
	if p.Period != "" {
		q["period"] = p.Period
	}
	if p.Since != "" {
		q["since"] = p.Since
	}
	if p.Until != "" {
		q["until"] = p.Until
	}
	return graph.RequestSpec{Method: "GET", Path: "/" + pageID + "/insights", Query: q}
}

// SetCommentsHidden builds batch items hiding or unhiding each comment.
// Even a single id travels through the batch path, so the caller gets a
// uniform per-item success flag.
func SetCommentsHidden(ids []string, hidden bool) []graph.BatchItem {
	items := make([]graph.BatchItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, graph.BatchItem{
			Method:      "POST",
			RelativeURL: id,
			Form:        map[string]string{"is_hidden": strconv.FormatBool(hidden)},
		})
	}
	return items
}

// DeleteObjects builds batch items deleting each object.
func DeleteObjects(ids []string) []graph.BatchItem {
	items := make([]graph.BatchItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, graph.BatchItem{Method: "DELETE", RelativeURL: id})
	}
	return items
}

// PublishPhoto posts a hosted photo to a page. With published=false the
// photo is created unpublished, for later attachment to a feed post.
func PublishPhoto(pageID, photoURL, caption string, published bool) graph.RequestSpec {
	q := map[string]string{
		"url":       photoURL,
		"published": strconv.FormatBool(published),
	}
	if caption != "" {
		q["caption"] = caption
	}
	return graph.RequestSpec{Method: "POST", Path: "/" + pageID + "/photos", Query: q}
}

// AttachMedia publishes a feed post referencing previously-uploaded
// unpublished media. The attached_media parameter is a JSON-encoded
// structure, so it is serialized to compact JSON rather than comma-joined.
func AttachMedia(pageID, message string, mediaIDs []string) (graph.RequestSpec, error) {
	refs := make([]map[string]string, 0, len(mediaIDs))
	for _, id := range mediaIDs {
		refs = append(refs, map[string]string{"media_fbid": id})
	}
	encoded, err := json.Marshal(refs)
	if err != nil {
		return graph.RequestSpec{}, fmt.Errorf("encode attached_media: %w", err)
	}
	q := map[string]string{"attached_media": string(encoded)}
	if message != "" {
		q["message"] = message
	}
	return graph.RequestSpec{Method: "POST", Path: "/" + pageID + "/feed", Query: q}, nil
}
