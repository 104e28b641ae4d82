package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"videocatalog/internal/catalog"
	"videocatalog/internal/service"
)

type pathSetter func(*service.VideoService, context.Context, uuid.UUID, string) (*catalog.Video, error)

func newPathCommand(ctx *commandContext, use, short string, set pathSetter) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id> <path>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(c context.Context, svc *service.VideoService) error {
				video, err := set(svc, c, id, args[1])
				if err != nil {
					return err
				}
				return ctx.printVideo(cmd, video)
			})
		},
	}
}

func newArtworkCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newPathCommand(ctx, "thumb", "Set the thumbnail image", (*service.VideoService).SetThumb),
		newPathCommand(ctx, "thumb-half", "Set the half-size thumbnail image", (*service.VideoService).SetThumbHalf),
		newPathCommand(ctx, "banner", "Set the banner image", (*service.VideoService).SetBanner),
	}
}

func newMediaCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newPathCommand(ctx, "media", "Attach the primary media file", (*service.VideoService).SetMedia),
		newPathCommand(ctx, "trailer", "Attach the trailer file", (*service.VideoService).SetTrailer),
		newPathCommand(ctx, "encoded", "Record the encoded output of the primary media", (*service.VideoService).MarkEncoded),
		newSendToEncodeCommand(ctx),
	}
}

func newSendToEncodeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "send-to-encode <id>",
		Short: "Mark the primary media as processing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(c context.Context, svc *service.VideoService) error {
				video, err := svc.MarkSentToEncode(c, id)
				if err != nil {
					return err
				}
				return ctx.printVideo(cmd, video)
			})
		},
	}
}
