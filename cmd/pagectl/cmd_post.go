package main

import (
	"os"

	"github.com/spf13/cobra"

	"pagectl/internal/ops"
)

var (
	postLink     string
	postSchedule int64
	postsLimit   int
)

// postCmd publishes a feed post. The message comes from the positional
// arguments or, when omitted, from stdin.
var postCmd = &cobra.Command{
	Use:   "post <page> [message...]",
	Short: "Publish a post on a page's feed",
	Long: `Publish a post on a page's feed.

The message is the joined positional arguments after the page slug. When no
message is given (or "-" is), it is read from stdin instead:

  echo "Release day!" | pagectl post shop
  pagectl post shop "Release day!" --link https://example.com/release
  pagectl post shop "Scheduled" --schedule 1735689600`,
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
		message, err := resolveText(args[1:], os.Stdin, stdinIsTerminal())
		if err != nil {
			return err
		}

		raw, err := a.client.Do(cmd.Context(), cred.AccessToken, ops.CreatePost(cred.PageID, ops.PostParams{
			Message:     message,
			Link:        postLink,
			ScheduledAt: postSchedule,
		}))
		if err != nil {
			return err
		}
		return printRaw(raw)
	},
}

// postsCmd lists a page's recent posts.
var postsCmd = &cobra.Command{
	Use:   "posts <page>",
	Short: "List a page's recent posts",
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
		raw, err := a.client.Do(cmd.Context(), cred.AccessToken, ops.ListPosts(cred.PageID, postsLimit))
		if err != nil {
			return err
		}
		return printRaw(raw)
	},
}

// deleteCmd deletes one object owned by the page (a post, typically).
var deleteCmd = &cobra.Command{
	Use:   "delete <page> <object-id>",
	Short: "Delete an object (post) by id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		cred, err := a.cfg.ResolvePage(args[0])
		if err != nil {
			return err
		}
		raw, err := a.client.Do(cmd.Context(), cred.AccessToken, ops.DeleteObject(args[1]))
		if err != nil {
			return err
		}
		return printRaw(raw)
	},
}

func init() {
	postCmd.Flags().StringVar(&postLink, "link", "", "link to attach to the post")
	postCmd.Flags().Int64Var(&postSchedule, "schedule", 0, "Unix time to schedule the post for (leaves it unpublished until then)")
	postsCmd.Flags().IntVar(&postsLimit, "limit", 0, "maximum number of posts to return")
}
