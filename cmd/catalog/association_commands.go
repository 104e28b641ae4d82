package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"videocatalog/internal/catalog"
	"videocatalog/internal/service"
)

func newAssociationCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newAssociationCommand(ctx, "category", service.AssociationCategory),
		newAssociationCommand(ctx, "genre", service.AssociationGenre),
		newAssociationCommand(ctx, "cast", service.AssociationCastMember),
	}
}

type associationChange func(c context.Context, svc *service.VideoService, id uuid.UUID, args []string) (*catalog.Video, error)

func newAssociationCommand(ctx *commandContext, use string, kind service.Association) *cobra.Command {
	parent := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Manage a video's %s references", kind),
	}

	parent.AddCommand(newAssociationSubcommand(ctx, kind, "add <id> <ref>",
		fmt.Sprintf("Append a %s reference (duplicates are kept)", kind), 2,
		func(c context.Context, svc *service.VideoService, id uuid.UUID, args []string) (*catalog.Video, error) {
			ref, err := parseRef(args[1])
			if err != nil {
				return nil, err
			}
			return svc.AddAssociation(c, id, kind, ref)
		}))

	parent.AddCommand(newAssociationSubcommand(ctx, kind, "remove <id> <ref>",
		fmt.Sprintf("Remove the first matching %s reference", kind), 2,
		func(c context.Context, svc *service.VideoService, id uuid.UUID, args []string) (*catalog.Video, error) {
			ref, err := parseRef(args[1])
			if err != nil {
				return nil, err
			}
			return svc.RemoveAssociation(c, id, kind, ref)
		}))

	parent.AddCommand(newAssociationSubcommand(ctx, kind, "clear <id>",
		fmt.Sprintf("Remove every %s reference", kind), 1,
		func(c context.Context, svc *service.VideoService, id uuid.UUID, _ []string) (*catalog.Video, error) {
			return svc.ClearAssociation(c, id, kind)
		}))

	return parent
}

func newAssociationSubcommand(ctx *commandContext, kind service.Association, use, short string, nargs int, change associationChange) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(c context.Context, svc *service.VideoService) error {
				video, err := change(c, svc, id, args)
				if err != nil {
					return err
				}
				ids, err := service.IDs(video, kind)
				if err != nil {
					return err
				}
				return ctx.printRefs(cmd, id, kind, idStrings(ids))
			})
		},
	}
}

// printRefs lists one association of a video in insertion order.
func (c *commandContext) printRefs(cmd *cobra.Command, id uuid.UUID, kind service.Association, refs []string) error {
	if c.jsonOutput() {
		return writeJSON(cmd, map[string]any{"id": id.String(), string(kind): refs})
	}
	out := cmd.OutOrStdout()
	if len(refs) == 0 {
		fmt.Fprintf(out, "No %s references\n", kind)
		return nil
	}
	rows := make([][]string, 0, len(refs))
	for i, ref := range refs {
		rows = append(rows, []string{strconv.Itoa(i + 1), ref})
	}
	fmt.Fprintln(out, renderTable([]string{"#", "Reference"}, rows, []columnAlignment{alignRight, alignLeft}))
	return nil
}
