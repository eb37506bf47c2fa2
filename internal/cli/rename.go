package cli

import (
	"context"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/albumtag/internal/rename"
	"github.com/listenupapp/albumtag/internal/report"
)

func newRenameCmd(g *globalFlags) *cobra.Command {
	var apply, asJSON bool

	cmd := &cobra.Command{
		Use:   "rename DIR",
		Short: "Rename track files after their title tags",
		Long: `Rename every track to "<prefix> - <title><ext>", where prefix is the part
of the current file name before its first "-" (usually the track number).

Existing files are never overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, g.overrides(), apply, asJSON)
			if err != nil {
				return err
			}
			defer a.close()

			return runRename(cmd.Context(), a, args[0])
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Rename the files")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}

func runRename(ctx context.Context, a *app, dir string) error {
	files, err := a.openAlbum(ctx, dir)
	if err != nil {
		return err
	}
	defer files.close(a.log)

	proposals, err := rename.Propose(files.tracks)
	if err != nil {
		return err
	}
	files.closeTracks()

	out := report.Renames{Album: dir, Proposals: proposals, Applied: a.apply}
	if a.apply {
		renamer, err := do.Invoke[*rename.Renamer](a.injector)
		if err != nil {
			return err
		}
		out.Renamed, err = renamer.Execute(ctx, proposals)
		if err != nil {
			return err
		}
	}

	return a.printer.Renames(out)
}
