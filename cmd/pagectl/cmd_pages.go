package main

import (
	"strings"

	"github.com/spf13/cobra"

	"pagectl/internal/ops"
)

var pageFields string

// pagesCmd lists the configured pages. Local only — no network call, and no
// tokens in the output.
var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List configured pages",
	Long:  `List the configured pages as {slug, page_id, name} records. Tokens never appear in this output.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		return printJSON(a.cfg.Summaries())
	},
}

// pageCmd fetches the remote page object.
var pageCmd = &cobra.Command{
	Use:   "page <page>",
	Short: "Fetch a page object from the remote API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		cred, err := a.cfg.ResolvePage(args[0])
		if err != nil {
			return err
		}

		var fields []string
		if pageFields != "" {
			fields = splitIDs(strings.ReplaceAll(pageFields, " ", ""))
		}
		raw, err := a.client.Do(cmd.Context(), cred.AccessToken, ops.PageInfo(cred.PageID, fields))
		if err != nil {
			return err
		}
		return printRaw(raw)
	},
}

func init() {
	pageCmd.Flags().StringVar(&pageFields, "fields", "", "comma-separated field names to request")
}
