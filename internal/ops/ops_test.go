package ops

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagectl/internal/graph"
)

func TestPageInfo(t *testing.T) {
	spec := PageInfo("1001", []string{"name", "fan_count"})
	assert.Equal(t, "GET", spec.Method)
	assert.Equal(t, "/1001", spec.Path)
	assert.Equal(t, "name,fan_count", spec.Query["fields"])

	spec = PageInfo("1001", nil)
	_, ok := spec.Query["fields"]
	assert.False(t, ok, "no fields argument should mean no fields parameter")
}

func TestCreatePost(t *testing.T) {
	t.Run("immediate", func(t *testing.T) {
		spec := CreatePost("1001", PostParams{Message: "hi", Link: "https://example.com"})
		assert.Equal(t, "POST", spec.Method)
		assert.Equal(t, "/1001/feed", spec.Path)
		assert.Equal(t, "hi", spec.Query["message"])
		assert.Equal(t, "https://example.com", spec.Query["link"])
		_, ok := spec.Query["published"]
		assert.False(t, ok)
	})

	t.Run("scheduled", func(t *testing.T) {
		spec := CreatePost("1001", PostParams{Message: "later", ScheduledAt: 1735689600})
		assert.Equal(t, "false", spec.Query["published"])
		assert.Equal(t, "1735689600", spec.Query["scheduled_publish_time"])
	})
}

func TestInsights(t *testing.T) {
	spec := Insights("1001", InsightsParams{
		Metrics: []string{"page_impressions", "page_fans"},
		Period:  "day",
		Since:   "2026-01-01",
	})
	assert.Equal(t, "/1001/insights", spec.Path)
	assert.Equal(t, "page_impressions,page_fans", spec.Query["metric"])
	assert.Equal(t, "day", spec.Query["period"])
	assert.Equal(t, "2026-01-01", spec.Query["since"])
	_, ok := spec.Query["until"]
	assert.False(t, ok)
}

func TestSetCommentsHidden(t *testing.T) {
	items := SetCommentsHidden([]string{"c1", "c2"}, true)
	want := []graph.BatchItem{
		{Method: "POST", RelativeURL: "c1", Form: map[string]string{"is_hidden": "true"}},
		{Method: "POST", RelativeURL: "c2", Form: map[string]string{"is_hidden": "true"}},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}

	items = SetCommentsHidden([]string{"c1"}, false)
	assert.Equal(t, "false", items[0].Form["is_hidden"])
}

func TestDeleteObjects(t *testing.T) {
	items := DeleteObjects([]string{"a", "b", "c"})
	require.Len(t, items, 3)
	for i, id := range []string{"a", "b", "c"} {
		assert.Equal(t, "DELETE", items[i].Method)
		assert.Equal(t, id, items[i].RelativeURL)
		assert.Nil(t, items[i].Form)
	}
}

func TestAttachMedia_EncodesJSONParameter(t *testing.T) {
	spec, err := AttachMedia("1001", "album drop", []string{"p1", "p2"})
	require.NoError(t, err)
	assert.Equal(t, "/1001/feed", spec.Path)
	assert.Equal(t, "album drop", spec.Query["message"])
	assert.JSONEq(t, `[{"media_fbid":"p1"},{"media_fbid":"p2"}]`, spec.Query["attached_media"])
}

func TestSummarizeInsights(t *testing.T) {
	raw := json.RawMessage(`{
		"data": [
			{
				"name": "page_impressions",
				"period": "day",
				"values": [
					{"value": 10, "end_time": "2026-08-28T07:00:00+0000"},
					{"value": 25, "end_time": "2026-08-29T07:00:00+0000"}
				]
			},
			{"name": "page_fans", "period": "lifetime", "values": []}
		]
	}`)

	sum, err := SummarizeInsights("1001", raw)
	require.NoError(t, err)
	assert.Equal(t, "1001", sum.PageID)
	require.Len(t, sum.Metrics, 2)

	assert.Equal(t, "page_impressions", sum.Metrics[0].Metric)
	assert.Equal(t, float64(25), sum.Metrics[0].Latest, "latest value wins")
	assert.Equal(t, "2026-08-29T07:00:00+0000", sum.Metrics[0].EndTime)

	assert.Equal(t, "page_fans", sum.Metrics[1].Metric)
	assert.Nil(t, sum.Metrics[1].Latest, "empty values keeps the metric with nil latest")
}

func TestSummarizeInsights_Malformed(t *testing.T) {
	_, err := SummarizeInsights("1001", json.RawMessage(`[not json`))
	require.Error(t, err)
}
