package main

import (
	"os"

	"github.com/spf13/cobra"

	"pagectl/internal/graph"
	"pagectl/internal/ops"
)

// commentCmd replies to a post or comment as the page.
var commentCmd = &cobra.Command{
	Use:   "comment <page> <object-id> [message...]",
	Short: "Reply to a post or comment as the page",
	Long: `Reply to a post or comment as the page. The message is the joined
positional arguments after the object id, or stdin when omitted.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		cred, err := a.cfg.ResolvePage(args[0])
		if err != nil {
			return err
		}
		message, err := resolveText(args[2:], os.Stdin, stdinIsTerminal())
		if err != nil {
			return err
		}
		raw, err := a.client.Do(cmd.Context(), cred.AccessToken, ops.CreateComment(args[1], message))
		if err != nil {
			return err
		}
		return printRaw(raw)
	},
}

// hideCmd hides comments in bulk. Ids come from one delimited argument or
// stdin; even a single id goes through the batch path so the output shape is
// uniform.
var hideCmd = &cobra.Command{
	Use:   "hide <page> [ids]",
	Short: "Hide comments in bulk",
	Long: `Hide comments in bulk. Ids are a comma- or newline-delimited list, from the
argument or from stdin:

  pagectl hide shop "c1,c2,c3"
  cut -f1 spam.tsv | pagectl hide shop

One result per id is returned, in input order, each with a success flag.
Individual failures and timeouts never abort the rest of the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommentBatch(cmd, args, func(ids []string) []graph.BatchItem {
			return ops.SetCommentsHidden(ids, true)
		})
	},
}

// unhideCmd is the inverse of hide.
var unhideCmd = &cobra.Command{
	Use:   "unhide <page> [ids]",
	Short: "Unhide comments in bulk",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommentBatch(cmd, args, func(ids []string) []graph.BatchItem {
			return ops.SetCommentsHidden(ids, false)
		})
	},
}

// deleteCommentsCmd deletes comments in bulk.
var deleteCommentsCmd = &cobra.Command{
	Use:   "delete-comments <page> [ids]",
	Short: "Delete comments in bulk",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommentBatch(cmd, args, ops.DeleteObjects)
	},
}

// runCommentBatch is the shared dispatch for the bulk moderation commands:
// resolve the page, normalize the id list, run the items through the batch
// transport, print the per-item results.
func runCommentBatch(cmd *cobra.Command, args []string, build func([]string) []graph.BatchItem) error {
	a, err := setup()
	if err != nil {
		return err
	}
	cred, err := a.cfg.ResolvePage(args[0])
	if err != nil {
		return err
	}
	ids, err := resolveIDList(args[1:], os.Stdin, stdinIsTerminal())
	if err != nil {
		return err
	}

	results, err := a.client.RunBatch(cmd.Context(), cred.AccessToken, build(ids))
	if err != nil {
		return err
	}
	return printJSON(results)
}
