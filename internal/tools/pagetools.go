package tools

import (
	"context"

	"go.uber.org/zap"

	"pagectl/internal/config"
	"pagectl/internal/graph"
	"pagectl/internal/ops"
	"pagectl/internal/publish"
)

// Deps bundles what the page tools need to run: the credential store, the
// transport, and the publishing orchestrator.
type Deps struct {
	Cfg    *config.Config
	Client *graph.Client
	Pub    *publish.Publisher
	Log    *zap.Logger
}

// RegisterPageTools registers every page operation as a tool.
func RegisterPageTools(reg *Registry, deps Deps) {
	reg.MustRegister(pagesListTool(deps))
	reg.MustRegister(pageInfoTool(deps))
	reg.MustRegister(postCreateTool(deps))
	reg.MustRegister(postsListTool(deps))
	reg.MustRegister(commentCreateTool(deps))
	reg.MustRegister(commentsHideTool(deps))
	reg.MustRegister(commentsDeleteTool(deps))
	reg.MustRegister(insightsTool(deps))
	reg.MustRegister(photoPublishTool(deps))
	reg.MustRegister(videoPublishURLTool(deps))
}

// pageProp is the schema fragment shared by every page-scoped tool.
func pageProp() Property {
	return Property{Type: "string", Description: "Configured page slug identifying the page to act as"}
}

func idListProp(desc string) Property {
	return Property{Type: "array", Description: desc, Items: &PropertyItems{Type: "string"}}
}

// resolvePage narrows the page argument to a credential.
func resolvePage(deps Deps, args map[string]any) (*config.PageCredential, error) {
	slug, err := stringArg(args, "page")
	if err != nil {
		return nil, err
	}
	return deps.Cfg.ResolvePage(slug)
}

func pagesListTool(deps Deps) *Tool {
	return &Tool{
		Name:        "pages_list",
		Description: "List the configured pages (slug, page id, display name). Never includes tokens.",
		Category:    CategoryPages,
		Schema:      Schema{Required: []string{}, Properties: map[string]Property{}},
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			return deps.Cfg.Summaries(), nil
		},
	}
}

func pageInfoTool(deps Deps) *Tool {
	return &Tool{
		Name:        "page_info",
		Description: "Fetch a page object from the remote API, optionally narrowed to specific fields.",
		Category:    CategoryPages,
		Schema: Schema{
			Required: []string{"page"},
			Properties: map[string]Property{
				"page":   pageProp(),
				"fields": idListProp("Field names to request"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			cred, err := resolvePage(deps, args)
			if err != nil {
				return nil, err
			}
			fields, err := stringListArg(args, "fields")
			if err != nil {
				return nil, err
			}
			return deps.Client.Do(ctx, cred.AccessToken, ops.PageInfo(cred.PageID, fields))
		},
	}
}

func postCreateTool(deps Deps) *Tool {
	return &Tool{
		Name:        "post_create",
		Description: "Publish a post on a page's feed, immediately or scheduled for a Unix timestamp.",
		Category:    CategoryPublishing,
		Schema: Schema{
			Required: []string{"page", "message"},
			Properties: map[string]Property{
				"page":         pageProp(),
				"message":      {Type: "string", Description: "Post text"},
				"link":         {Type: "string", Description: "Optional link to attach"},
				"scheduled_at": {Type: "number", Description: "Optional Unix time to schedule the post for"},
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			cred, err := resolvePage(deps, args)
			if err != nil {
				return nil, err
			}
			message, err := stringArg(args, "message")
			if err != nil {
				return nil, err
			}
			link, err := stringArg(args, "link")
			if err != nil {
				return nil, err
			}
			scheduledAt, err := intArg(args, "scheduled_at")
			if err != nil {
				return nil, err
			}
			return deps.Client.Do(ctx, cred.AccessToken, ops.CreatePost(cred.PageID, ops.PostParams{
				Message:     message,
				Link:        link,
				ScheduledAt: scheduledAt,
			}))
		},
	}
}

func postsListTool(deps Deps) *Tool {
	return &Tool{
		Name:        "posts_list",
		Description: "Fetch a page's recent posts.",
		Category:    CategoryPages,
		Schema: Schema{
			Required: []string{"page"},
			Properties: map[string]Property{
				"page":  pageProp(),
				"limit": {Type: "number", Description: "Maximum number of posts"},
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			cred, err := resolvePage(deps, args)
			if err != nil {
				return nil, err
			}
			limit, err := intArg(args, "limit")
			if err != nil {
				return nil, err
			}
			return deps.Client.Do(ctx, cred.AccessToken, ops.ListPosts(cred.PageID, int(limit)))
		},
	}
}

func commentCreateTool(deps Deps) *Tool {
	return &Tool{
		Name:        "comment_create",
		Description: "Reply to a post or comment with a new comment, as the page.",
		Category:    CategoryModeration,
		Schema: Schema{
			Required: []string{"page", "object_id", "message"},
			Properties: map[string]Property{
				"page":      pageProp(),
				"object_id": {Type: "string", Description: "Id of the post or comment to reply to"},
				"message":   {Type: "string", Description: "Comment text"},
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			cred, err := resolvePage(deps, args)
			if err != nil {
				return nil, err
			}
			objectID, err := stringArg(args, "object_id")
			if err != nil {
				return nil, err
			}
			message, err := stringArg(args, "message")
			if err != nil {
				return nil, err
			}
			return deps.Client.Do(ctx, cred.AccessToken, ops.CreateComment(objectID, message))
		},
	}
}

func commentsHideTool(deps Deps) *Tool {
	return &Tool{
		Name:        "comments_hide",
		Description: "Hide (or unhide) comments in bulk through the batch endpoint. Returns one result per id, in order, with a per-item success flag.",
		Category:    CategoryModeration,
		Schema: Schema{
			Required: []string{"page", "ids"},
			Properties: map[string]Property{
				"page":   pageProp(),
				"ids":    idListProp("Comment ids to hide"),
				"hidden": {Type: "boolean", Description: "false to unhide", Default: true},
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			cred, err := resolvePage(deps, args)
			if err != nil {
				return nil, err
			}
			ids, err := stringListArg(args, "ids")
			if err != nil {
				return nil, err
			}
			hidden, err := boolArg(args, "hidden", true)
			if err != nil {
				return nil, err
			}
			return deps.Client.RunBatch(ctx, cred.AccessToken, ops.SetCommentsHidden(ids, hidden))
		},
	}
}

func commentsDeleteTool(deps Deps) *Tool {
	return &Tool{
		Name:        "comments_delete",
		Description: "Delete comments in bulk through the batch endpoint. Returns one result per id, in order, with a per-item success flag.",
		Category:    CategoryModeration,
		Schema: Schema{
			Required: []string{"page", "ids"},
			Properties: map[string]Property{
				"page": pageProp(),
				"ids":  idListProp("Comment ids to delete"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			cred, err := resolvePage(deps, args)
			if err != nil {
				return nil, err
			}
			ids, err := stringListArg(args, "ids")
			if err != nil {
				return nil, err
			}
			return deps.Client.RunBatch(ctx, cred.AccessToken, ops.DeleteObjects(ids))
		},
	}
}

func insightsTool(deps Deps) *Tool {
	return &Tool{
		Name:        "insights_query",
		Description: "Query page metrics. With summary=true the response is reduced to the latest value per metric.",
		Category:    CategoryInsights,
		Schema: Schema{
			Required: []string{"page", "metrics"},
			Properties: map[string]Property{
				"page":    pageProp(),
				"metrics": idListProp("Metric names"),
				"period":  {Type: "string", Description: "Aggregation period", Enum: []any{"day", "week", "days_28", "month", "lifetime"}},
				"since":   {Type: "string", Description: "Range start (date or Unix time)"},
				"until":   {Type: "string", Description: "Range end (date or Unix time)"},
				"summary": {Type: "boolean", Description: "Reduce to latest value per metric", Default: false},
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			cred, err := resolvePage(deps, args)
			if err != nil {
				return nil, err
			}
			metrics, err := stringListArg(args, "metrics")
			if err != nil {
				return nil, err
			}
			period, err := stringArg(args, "period")
			if err != nil {
				return nil, err
			}
			since, err := stringArg(args, "since")
			if err != nil {
				return nil, err
			}
			until, err := stringArg(args, "until")
			if err != nil {
				return nil, err
			}
			summary, err := boolArg(args, "summary", false)
			if err != nil {
				return nil, err
			}

			raw, err := deps.Client.Do(ctx, cred.AccessToken, ops.Insights(cred.PageID, ops.InsightsParams{
				Metrics: metrics,
				Period:  period,
				Since:   since,
				Until:   until,
			}))
			if err != nil {
				return nil, err
			}
			if !summary || graph.IsAPIError(raw) {
				return raw, nil
			}
			return ops.SummarizeInsights(cred.PageID, raw)
		},
	}
}

func photoPublishTool(deps Deps) *Tool {
	return &Tool{
		Name:        "photo_publish",
		Description: "Publish one feed post attaching hosted photos: each photo is created unpublished, then attached. A partial failure reports the photo ids created so far.",
		Category:    CategoryPublishing,
		Schema: Schema{
			Required: []string{"page", "urls"},
			Properties: map[string]Property{
				"page":    pageProp(),
				"urls":    idListProp("Photo URLs to attach"),
				"message": {Type: "string", Description: "Post text"},
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			cred, err := resolvePage(deps, args)
			if err != nil {
				return nil, err
			}
			urls, err := stringListArg(args, "urls")
			if err != nil {
				return nil, err
			}
			message, err := stringArg(args, "message")
			if err != nil {
				return nil, err
			}
			return deps.Pub.PhotoPost(ctx, cred.AccessToken, cred.PageID, urls, message)
		},
	}
}

func videoPublishURLTool(deps Deps) *Tool {
	return &Tool{
		Name:        "video_publish_url",
		Description: "Publish a video from a hosted URL via the three-step upload flow. On a mid-flow failure the result carries the step name and the upload session id.",
		Category:    CategoryPublishing,
		Schema: Schema{
			Required: []string{"page", "file_url"},
			Properties: map[string]Property{
				"page":        pageProp(),
				"file_url":    {Type: "string", Description: "Publicly reachable video URL"},
				"title":       {Type: "string", Description: "Video title"},
				"description": {Type: "string", Description: "Video description"},
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			cred, err := resolvePage(deps, args)
			if err != nil {
				return nil, err
			}
			fileURL, err := stringArg(args, "file_url")
			if err != nil {
				return nil, err
			}
			title, err := stringArg(args, "title")
			if err != nil {
				return nil, err
			}
			description, err := stringArg(args, "description")
			if err != nil {
				return nil, err
			}
			return deps.Pub.VideoFromURL(ctx, cred.AccessToken, cred.PageID, fileURL, publish.VideoMeta{
				Title:       title,
				Description: description,
			})
		},
	}
}
