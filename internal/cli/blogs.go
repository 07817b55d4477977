package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/dealerdesk/internal/api"
	"github.com/rshade/dealerdesk/internal/config"
	"github.com/rshade/dealerdesk/internal/listschema"
	"github.com/rshade/dealerdesk/internal/model"
)

func newBlogsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "blogs", Short: "Manage blog posts"}
	cmd.AddCommand(
		newListCmd(listSpec[model.Blog]{
			Use:      "list",
			Short:    "List blog posts",
			Example:  `  dealerdesk blogs list --search "winter tyres"`,
			Schema:   listschema.Blogs(),
			Columns:  blogColumns(),
			PageSize: func(lc config.ListConfig) int { return lc.BlogsPageSize },
			Load: func(ctx context.Context, deps *appDeps, _ []string) ([]model.Blog, error) {
				return deps.client.ListBlogs(ctx)
			},
		}),
		newBlogCreateCmd(), newBlogUpdateCmd(), newBlogDeleteCmd(),
	)
	return cmd
}

type blogFlags struct {
	title       string
	description string
	image       string
}

func (f *blogFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "post title")
	cmd.Flags().StringVar(&f.description, "description", "", "post body")
	cmd.Flags().StringVar(&f.image, "image", "", "cover image file")
}

func (f *blogFlags) input() (api.BlogInput, error) {
	if f.image != "" {
		if _, err := os.Stat(f.image); err != nil {
			return api.BlogInput{}, fmt.Errorf("%w: %s", ErrMissingImage, f.image)
		}
	}
	return api.BlogInput{
		Title:       strings.TrimSpace(f.title),
		Description: f.description,
		ImagePath:   f.image,
	}, nil
}

func newBlogCreateCmd() *cobra.Command {
	var flags blogFlags
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Publish a blog post",
		Example: `  dealerdesk blogs create --title "Spring service offer" --description "..." --image cover.jpg`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			deps, err := newAuthedDeps(cmd)
			if err != nil {
				return err
			}
			in, err := flags.input()
			if err != nil {
				return err
			}
			msg, err := deps.client.CreateBlog(ctx, in)
			if err != nil {
				return err
			}
			logger.Info().Ctx(ctx).Str("operation", "create_blog").Msg("blog created")
			printMessage(cmd, msg.Text())
			return nil
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func newBlogUpdateCmd() *cobra.Command {
	var flags blogFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a blog post",
		Long:  "Updates a post. Fields without a flag keep their current value; the image is kept unless --image is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps, err := newAuthedDeps(cmd)
			if err != nil {
				return err
			}
			blogs, err := deps.client.ListBlogs(ctx)
			if err != nil {
				return err
			}
			current, err := findRecord(blogs, args[0], func(b model.Blog) string { return b.ID }, "blog")
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("title") {
				flags.title = current.Title
			}
			if !cmd.Flags().Changed("description") {
				flags.description = current.Description
			}
			in, err := flags.input()
			if err != nil {
				return err
			}

			updated, err := deps.client.UpdateBlog(ctx, current.ID, in)
			if err != nil {
				return err
			}
			logger.Info().Ctx(ctx).Str("operation", "update_blog").Str("blog_id", current.ID).Msg("blog updated")

			title := in.Title
			if updated != nil {
				title = updated.Title
			}
			printMessage(cmd, fmt.Sprintf("Updated %q", title))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newBlogDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newAuthedDeps(cmd)
			if err != nil {
				return err
			}
			if err := confirmDestructive(cmd, yes, fmt.Sprintf("Delete blog %s?", args[0])); err != nil {
				return err
			}
			msg, err := deps.client.DeleteBlog(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			logger.Info().Ctx(cmd.Context()).Str("operation", "delete_blog").Str("blog_id", args[0]).Msg("blog deleted")
			printMessage(cmd, msg.Text())
			return nil
		},
	}
	addYesFlag(cmd, &yes)
	return cmd
}
