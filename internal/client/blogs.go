package client

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/internal/http"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

const (
	blogsPath     = "/content/api/v2/blogs"
	blogPath      = "/content/api/v2/blogs/:blog_id"
	blogPostsPath = "/content/api/v2/blog-posts"
	blogPostPath  = "/content/api/v2/blog-posts/:blog_post_id"

	defaultPostsOrder = "-created"
	defaultPostsAge   = 2
)

// BlogsClient implements hubspot.BlogsClient.
type BlogsClient struct {
	httpClient *http.Client
	topics     hubspot.TopicsClient
	now        func() time.Time
}

// NewBlogsClient creates a new blogs client. topics resolves post topics.
func NewBlogsClient(httpClient *http.Client, topics hubspot.TopicsClient) *BlogsClient {
	return &BlogsClient{
		httpClient: httpClient,
		topics:     topics,
		now:        time.Now,
	}
}

// List implements hubspot.BlogsClient.List.
func (c *BlogsClient) List(ctx context.Context) ([]hubspot.Blog, error) {
	resp, err := c.httpClient.Get(ctx, blogsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("listing blogs: %w", err)
	}

	var list hubspot.ObjectList[hubspot.Blog]

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing blogs list: %w", err)
	}

	return list.Objects, nil
}

// FindByID implements hubspot.BlogsClient.FindByID.
func (c *BlogsClient) FindByID(ctx context.Context, blogID int64) (*hubspot.Blog, error) {
	resp, err := c.httpClient.Get(ctx, blogPath, hubspot.NewParams("blog_id", blogID))
	if err != nil {
		return nil, fmt.Errorf("getting blog: %w", err)
	}

	var blog hubspot.Blog

	err = json.Unmarshal(resp.Body, &blog)
	if err != nil {
		return nil, fmt.Errorf("parsing blog: %w", err)
	}

	return &blog, nil
}

// Posts implements hubspot.BlogsClient.Posts. Without options it returns
// posts published in the last two months, newest first.
func (c *BlogsClient) Posts(ctx context.Context, blogID int64, opts *hubspot.BlogPostOptions) ([]hubspot.BlogPost, error) {
	params, err := c.postParams(blogID, opts)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, blogPostsPath, params)
	if err != nil {
		return nil, fmt.Errorf("listing blog posts: %w", err)
	}

	var list hubspot.ObjectList[hubspot.BlogPost]

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing blog posts list: %w", err)
	}

	return list.Objects, nil
}

func (c *BlogsClient) postParams(blogID int64, opts *hubspot.BlogPostOptions) (hubspot.Params, error) {
	var options hubspot.BlogPostOptions
	if opts != nil {
		options = *opts
	}

	state := options.State
	if state == "" {
		state = constants.BlogPostStatePublished
	}

	switch state {
	case constants.BlogPostStateDraft, constants.BlogPostStatePublished, constants.BlogPostStateScheduled:
	default:
		return nil, fmt.Errorf("%w: state %q was invalid", hubspot.ErrInvalidParams, state)
	}

	orderBy := options.OrderBy
	if orderBy == "" {
		orderBy = defaultPostsOrder
	}

	createdAfter := options.CreatedAfter
	if createdAfter.IsZero() {
		createdAfter = c.now().AddDate(0, -defaultPostsAge, 0)
	}

	params := hubspot.NewParams(
		"content_group_id", blogID,
		"order_by", orderBy,
		"created__gt", createdAfter,
		"state", state,
	)

	if options.Limit > 0 {
		params = params.With("limit", options.Limit)
	}

	return params, nil
}

// FindPost implements hubspot.BlogsClient.FindPost.
func (c *BlogsClient) FindPost(ctx context.Context, postID int64) (*hubspot.BlogPost, error) {
	resp, err := c.httpClient.Get(ctx, blogPostPath, hubspot.NewParams("blog_post_id", postID))
	if err != nil {
		return nil, fmt.Errorf("getting blog post: %w", err)
	}

	var post hubspot.BlogPost

	err = json.Unmarshal(resp.Body, &post)
	if err != nil {
		return nil, fmt.Errorf("parsing blog post: %w", err)
	}

	return &post, nil
}

// PostTopics implements hubspot.BlogsClient.PostTopics.
func (c *BlogsClient) PostTopics(ctx context.Context, post *hubspot.BlogPost) ([]hubspot.Topic, error) {
	topics := make([]hubspot.Topic, 0, len(post.TopicIDs))

	for _, topicID := range post.TopicIDs {
		topic, err := c.topics.FindByID(ctx, topicID)
		if err != nil {
			return nil, err
		}

		topics = append(topics, *topic)
	}

	return topics, nil
}
