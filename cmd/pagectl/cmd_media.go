package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pagectl/internal/publish"
)

var (
	photoMessage string

	videoURL         string
	videoFile        string
	videoTitle       string
	videoDescription string
	videoDirect      bool
)

// photoCmd publishes a feed post with attached photos via the two-step
// unpublished-then-attach flow.
var photoCmd = &cobra.Command{
	Use:   "photo <page> <url> [url...]",
	Short: "Publish a feed post attaching hosted photos",
	Long: `Publish a feed post attaching one or more hosted photos.

Each photo is first created unpublished, then a single feed post attaches
them all. If the attach step fails, the created photo ids are reported so
the post can be retried without re-uploading:

  pagectl photo shop https://cdn.example.com/a.jpg https://cdn.example.com/b.jpg --message "Album"`,
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

		res, err := a.pub.PhotoPost(cmd.Context(), cred.AccessToken, cred.PageID, args[1:], photoMessage)
		if err != nil {
			return err
		}
		return printStep(res)
	},
}

// videoCmd publishes a video from a hosted URL or a local file.
var videoCmd = &cobra.Command{
	Use:   "video <page>",
	Short: "Publish a video from a URL or a local file",
	Long: `Publish a video through the multi-step upload flow.

With --url the remote fetches the source itself (start, transfer by
reference, finish). With --file the bytes are uploaded first through the
app-scoped upload protocol, which requires the app credentials to be
configured; --direct instead streams the bytes through the transfer step
under the page token alone.

A mid-flow failure prints the failing step's response tagged with the step
name and the upload session id, so the remaining steps can be retried
manually. Only a failure of the very first step is a hard error — at that
point nothing exists to resume.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (videoURL == "") == (videoFile == "") {
			return fmt.Errorf("exactly one of --url or --file is required")
		}

		a, err := setup()
		if err != nil {
			return err
		}
		cred, err := a.cfg.ResolvePage(args[0])
		if err != nil {
			return err
		}
		meta := publish.VideoMeta{Title: videoTitle, Description: videoDescription}

		if videoURL != "" {
			res, err := a.pub.VideoFromURL(cmd.Context(), cred.AccessToken, cred.PageID, videoURL, meta)
			if err != nil {
				return err
			}
			return printStep(res)
		}

		data, err := os.ReadFile(videoFile)
		if err != nil {
			return fmt.Errorf("read video file: %w", err)
		}

		if videoDirect {
			res, err := a.pub.VideoFromBytes(cmd.Context(), cred.AccessToken, cred.PageID, data, meta)
			if err != nil {
				return err
			}
			return printStep(res)
		}

		if !a.cfg.HasAppUpload() {
			return fmt.Errorf("local file upload needs an app id (PAGECTL_APP_ID); use --direct to stream under the page token instead")
		}

		handle, step, err := a.pub.UploadLocalFile(cmd.Context(), a.cfg.App.AppID, a.cfg.UploadToken(),
			filepath.Base(videoFile), videoMIME(videoFile), data)
		if err != nil {
			return err
		}
		if step != nil {
			return printStep(step)
		}

		res, err := a.pub.VideoFromHandle(cmd.Context(), cred.AccessToken, cred.PageID, handle, meta)
		if err != nil {
			return err
		}
		return printStep(res)
	},
}

// printStep prints a multi-step flow result. Partial failures are ordinary
// output — the caller got the identifiers needed to resume — but a failed
// first step has nothing to resume and is a hard error.
func printStep(res *publish.StepResult) error {
	if !res.OK && res.Step == publish.StepInit {
		return fmt.Errorf("upload failed at the init step: %v", res.Body)
	}
	return printJSON(res)
}

func videoMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mov":
		return "video/quicktime"
	case ".avi":
		return "video/x-msvideo"
	default:
		return "video/mp4"
	}
}

func init() {
	photoCmd.Flags().StringVar(&photoMessage, "message", "", "post text")

	videoCmd.Flags().StringVar(&videoURL, "url", "", "publicly reachable video URL")
	videoCmd.Flags().StringVar(&videoFile, "file", "", "local video file")
	videoCmd.Flags().StringVar(&videoTitle, "title", "", "video title")
	videoCmd.Flags().StringVar(&videoDescription, "description", "", "video description")
	videoCmd.Flags().BoolVar(&videoDirect, "direct", false, "stream local bytes through the transfer step instead of the app upload protocol")
}
