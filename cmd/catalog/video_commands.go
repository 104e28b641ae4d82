package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"videocatalog/internal/catalog"
	"videocatalog/internal/service"
)

func newVideoCommand(ctx *commandContext) *cobra.Command {
	videoCmd := &cobra.Command{
		Use:   "video",
		Short: "Create and manage videos",
	}

	videoCmd.AddCommand(newVideoCreateCommand(ctx))
	videoCmd.AddCommand(newVideoShowCommand(ctx))
	videoCmd.AddCommand(newVideoUpdateCommand(ctx))
	videoCmd.AddCommand(newVideoValidateCommand(ctx))
	videoCmd.AddCommand(newVideoDeleteCommand(ctx))
	videoCmd.AddCommand(newVideoImportCommand(ctx))
	for _, cmd := range newArtworkCommands(ctx) {
		videoCmd.AddCommand(cmd)
	}
	for _, cmd := range newMediaCommands(ctx) {
		videoCmd.AddCommand(cmd)
	}
	for _, cmd := range newAssociationCommands(ctx) {
		videoCmd.AddCommand(cmd)
	}

	return videoCmd
}

// videoFlags binds the scalar attribute flags shared by create and update.
type videoFlags struct {
	title       string
	description string
	year        int
	duration    int
	opened      bool
	published   bool
	rating      string
}

func (f *videoFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Video title")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Video description")
	cmd.Flags().IntVar(&f.year, "year", 0, "Year launched")
	cmd.Flags().IntVar(&f.duration, "duration", 0, "Duration in minutes")
	cmd.Flags().BoolVar(&f.opened, "opened", false, "Mark the video as opened")
	cmd.Flags().BoolVar(&f.published, "published", false, "Mark the video as published")
	cmd.Flags().StringVarP(&f.rating, "rating", "r", "", ratingUsage())
}

func (f *videoFlags) parseRating() (*catalog.Rating, error) {
	if f.rating == "" {
		return nil, nil
	}
	rating, err := catalog.ParseRating(f.rating)
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// input merges the flags the user set over the current values of video.
// A nil video means every field comes from the flags.
func (f *videoFlags) input(cmd *cobra.Command, video *catalog.Video) (service.VideoInput, error) {
	rating, err := f.parseRating()
	if err != nil {
		return service.VideoInput{}, err
	}
	in := service.VideoInput{
		Title:        f.title,
		Description:  f.description,
		YearLaunched: f.year,
		Duration:     f.duration,
		Opened:       f.opened,
		Published:    f.published,
		Rating:       rating,
	}
	if video == nil {
		return in, nil
	}
	changed := cmd.Flags().Changed
	if !changed("title") {
		in.Title = video.Title()
	}
	if !changed("description") {
		in.Description = video.Description()
	}
	if !changed("year") {
		in.YearLaunched = video.YearLaunched()
	}
	if !changed("duration") {
		in.Duration = video.Duration()
	}
	if !changed("opened") {
		in.Opened = video.Opened()
	}
	if !changed("published") {
		in.Published = video.Published()
	}
	return in, nil
}

func newVideoCreateCommand(ctx *commandContext) *cobra.Command {
	var flags videoFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input(cmd, nil)
			if err != nil {
				return err
			}
			if in.Rating == nil {
				return errors.New("--rating is required")
			}
			return ctx.withService(cmd, func(c context.Context, svc *service.VideoService) error {
				video, err := svc.Create(c, in)
				if err != nil {
					return err
				}
				return ctx.printVideo(cmd, video)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newVideoShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(c context.Context, svc *service.VideoService) error {
				video, err := svc.Get(c, id)
				if err != nil {
					return err
				}
				return ctx.printVideo(cmd, video)
			})
		},
	}
}

func newVideoUpdateCommand(ctx *commandContext) *cobra.Command {
	var flags videoFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a video's attributes; unset flags keep their values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(c context.Context, svc *service.VideoService) error {
				current, err := svc.Get(c, id)
				if err != nil {
					return err
				}
				in, err := flags.input(cmd, current)
				if err != nil {
					return err
				}
				video, err := svc.Update(c, id, in)
				if err != nil {
					return err
				}
				return ctx.printVideo(cmd, video)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newVideoValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <id>",
		Short: "Check a stored video against the catalog rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(c context.Context, svc *service.VideoService) error {
				if err := svc.Validate(c, id); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{"id": id.String(), "valid": true})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Video %s is valid\n", id)
				return nil
			})
		},
	}
}

func newVideoDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(c context.Context, svc *service.VideoService) error {
				if err := svc.Delete(c, id); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{"id": id.String(), "deleted": true})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted video %s\n", id)
				return nil
			})
		},
	}
}

func newVideoImportCommand(ctx *commandContext) *cobra.Command {
	var (
		title       string
		description string
		year        int
		ratingFlag  string
		copyMedia   bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create a video from a media file",
		Long: "Create a video from a media file. The title is derived from the file name " +
			"unless --title is given, and the file becomes the pending primary media.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating := catalog.RatingL
			if ratingFlag != "" {
				parsed, err := catalog.ParseRating(ratingFlag)
				if err != nil {
					return err
				}
				rating = parsed
			}
			opts := service.ImportOptions{
				Title:        title,
				Description:  description,
				YearLaunched: year,
				Rating:       rating,
			}
			if copyMedia {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				opts.LibraryDir = filepath.Join(cfg.Paths.DataDir, "media")
			}
			return ctx.withService(cmd, func(c context.Context, svc *service.VideoService) error {
				video, err := svc.ImportFile(c, args[0], opts)
				if err != nil {
					return err
				}
				return ctx.printVideo(cmd, video)
			})
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "Override the derived title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Video description")
	cmd.Flags().IntVar(&year, "year", 0, "Year launched (defaults to the current year)")
	cmd.Flags().StringVarP(&ratingFlag, "rating", "r", "", ratingUsage()+", default L")
	cmd.Flags().BoolVar(&copyMedia, "copy", false, "Copy the file into the catalog's media directory")
	return cmd
}
