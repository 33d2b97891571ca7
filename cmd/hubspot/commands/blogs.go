package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
)

// NewBlogsCommand creates the blogs command group.
func NewBlogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "blogs",
		Aliases: []string{"blog"},
		Short:   "Inspect blogs",
		Long:    "List blogs and their posts",
	}

	cmd.AddCommand(newBlogsListCommand())
	cmd.AddCommand(newBlogsPostsCommand())

	return cmd
}

func newBlogsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List blogs",
		Long:  "List every blog of the portal",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			blogs, err := client.Blogs().List(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to list blogs: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), blogs, func(w io.Writer) error {
				if len(blogs) == 0 {
					_, _ = fmt.Fprintln(w, "No blogs found")

					return nil
				}

				table := tablewriter.NewWriter(w)
				table.Header("ID", "Name", "Description")

				for _, blog := range blogs {
					_ = table.Append(strconv.FormatInt(blog.ID, 10), blog.Name, blog.Description)
				}

				return renderTable(table)
			})
		},
	}
}

func newBlogsPostsCommand() *cobra.Command {
	var (
		state string
		since time.Duration
		limit int
	)

	cmd := &cobra.Command{
		Use:   "posts <blog-id>",
		Short: "List blog posts",
		Long:  "List the posts of a blog, by default the published ones of the last two months",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blogID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			opts := &hubspot.BlogPostOptions{State: state, Limit: limit}
			if since > 0 {
				opts.CreatedAfter = time.Now().Add(-since)
			}

			posts, err := client.Blogs().Posts(commandContext(cmd), blogID, opts)
			if err != nil {
				return fmt.Errorf("failed to list blog posts: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), posts, func(w io.Writer) error {
				if len(posts) == 0 {
					_, _ = fmt.Fprintln(w, "No posts found")

					return nil
				}

				table := tablewriter.NewWriter(w)
				table.Header("ID", "Name", "State", "Created")

				for _, post := range posts {
					_ = table.Append(
						strconv.FormatInt(post.ID, 10),
						post.Name,
						post.State,
						post.CreatedAt().UTC().Format(time.RFC3339),
					)
				}

				return renderTable(table)
			})
		},
	}

	cmd.Flags().StringVar(&state, "state", constants.BlogPostStatePublished, "post state (DRAFT, PUBLISHED or SCHEDULED)")
	cmd.Flags().DurationVar(&since, "since", 0, "only posts created within this duration (default two months)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of posts")

	return cmd
}

func renderTable(table *tablewriter.Table) error {
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
