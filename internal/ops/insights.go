package ops

import (
	"encoding/json"
	"fmt"
)

// MetricSummary is the locally-shaped view of one insights metric: the most
// recent value the remote reported for it.
type MetricSummary struct {
	Metric  string `json:"metric"`
	Period  string `json:"period"`
	Latest  any    `json:"latest"`
	EndTime string `json:"end_time,omitempty"`
}

// InsightsSummary is the derived-metrics output object. Unlike every other
// operation, which prints the remote response verbatim, the insights summary
// reshapes the response locally into something scripts can consume without
// digging through the values arrays.
type InsightsSummary struct {
	PageID  string          `json:"page_id"`
	Metrics []MetricSummary `json:"metrics"`
}

// insightsEnvelope mirrors just enough of the remote insights shape. The
// upstream response is otherwise treated as untyped: it may gain or lose
// fields at any time.
type insightsEnvelope struct {
	Data []struct {
		Name   string `json:"name"`
		Period string `json:"period"`
		Values []struct {
			Value   any    `json:"value"`
			EndTime string `json:"end_time"`
		} `json:"values"`
	} `json:"data"`
}

// SummarizeInsights reduces a raw insights response to the latest value per
// metric. Metrics with no reported values are kept with a nil latest value
// so the caller can tell "metric absent" from "metric zero".
func SummarizeInsights(pageID string, raw json.RawMessage) (*InsightsSummary, error) {
	var env insightsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("parse insights response: %w", err)
	}

	summary := &InsightsSummary{PageID: pageID, Metrics: make([]MetricSummary, 0, len(env.Data))}
	for _, d := range env.Data {
		m := MetricSummary{Metric: d.Name, Period: d.Period}
		if n := len(d.Values); n > 0 {
			m.Latest = d.Values[n-1].Value
			m.EndTime = d.Values[n-1].EndTime
		}
		summary.Metrics = append(summary.Metrics, m)
	}
	return summary, nil
}
