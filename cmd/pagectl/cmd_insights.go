package main

import (
	"os"

	"github.com/spf13/cobra"

	"pagectl/internal/graph"
	"pagectl/internal/ops"
)

var (
	insightsPeriod  string
	insightsSince   string
	insightsUntil   string
	insightsSummary bool
)

// insightsCmd queries page metrics. Metric names come from one delimited
// argument or stdin, like id lists.
var insightsCmd = &cobra.Command{
	Use:   "insights <page> [metrics]",
	Short: "Query page metrics",
	Long: `Query page metrics. Metric names are a comma- or newline-delimited list,
from the argument or from stdin.

By default the remote response is printed verbatim. With --summary it is
reduced locally to the latest value per metric:

  pagectl insights shop page_impressions,page_fans --period day --summary`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		cred, err := a.cfg.ResolvePage(args[0])
		if err != nil {
			return err
		}
		metrics, err := resolveIDList(args[1:], os.Stdin, stdinIsTerminal())
		if err != nil {
			return err
		}

		raw, err := a.client.Do(cmd.Context(), cred.AccessToken, ops.Insights(cred.PageID, ops.InsightsParams{
			Metrics: metrics,
			Period:  insightsPeriod,
			Since:   insightsSince,
			Until:   insightsUntil,
		}))
		if err != nil {
			return err
		}

		if !insightsSummary || graph.IsAPIError(raw) {
			return printRaw(raw)
		}
		summary, err := ops.SummarizeInsights(cred.PageID, raw)
		if err != nil {
			return err
		}
		return printJSON(summary)
	},
}

func init() {
	insightsCmd.Flags().StringVar(&insightsPeriod, "period", "", "aggregation period (day, week, days_28, month, lifetime)")
	insightsCmd.Flags().StringVar(&insightsSince, "since", "", "range start (date or Unix time)")
	insightsCmd.Flags().StringVar(&insightsUntil, "until", "", "range end (date or Unix time)")
	insightsCmd.Flags().BoolVar(&insightsSummary, "summary", false, "reduce to the latest value per metric")
}
