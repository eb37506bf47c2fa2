package cli

import (
	"context"
	"strconv"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/albumtag/internal/movement"
	"github.com/listenupapp/albumtag/internal/report"
	"github.com/listenupapp/albumtag/internal/tagging"
)

type worksOptions struct {
	catalog string
	strict  bool
	apply   bool
	asJSON  bool
}

func newWorksCmd(g *globalFlags) *cobra.Command {
	opts := &worksOptions{}

	cmd := &cobra.Command{
		Use:   "works DIR START:ID [START:ID...]",
		Short: "Assign work and movement tags from a composition catalog",
		Long: `Expand compositions into per-track work and movement tags.

Each anchor START:ID places the first movement of composition ID on track
START; its remaining movements follow on consecutive tracks. Tracks are
numbered from 1 in filename order. Every assigned track gets its title set to
"<work> - <movement>".

When two anchors claim the same track the later anchor wins and a warning is
printed, unless --strict turns the overlap into an error.`,
		Example: `  # Sonatas 24 and 25 starting on tracks 1 and 3 (dry run)
  albumtag works ~/Music/Sonatas 1:24 3:25

  # Write the tags
  albumtag works ~/Music/Sonatas 1:24 3:25 --apply

  # Use a catalog file
  albumtag works ~/Music/Quartets 1:op18-1 --catalog quartets.toml`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := g.overrides()
			o.Catalog = opts.catalog
			if cmd.Flags().Changed("strict") {
				o.StrictOverlap = strconv.FormatBool(opts.strict)
			}
			a, err := newApp(cmd, o, opts.apply, opts.asJSON)
			if err != nil {
				return err
			}
			defer a.close()

			return runWorks(cmd.Context(), a, args[0], args[1:])
		},
	}

	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "Builtin catalog name or YAML/TOML catalog file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail when two anchors claim the same track")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Write the tags")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the report as JSON")

	return cmd
}

func runWorks(ctx context.Context, a *app, dir string, rawAnchors []string) error {
	anchors, err := movement.ParseAnchors(rawAnchors)
	if err != nil {
		return err
	}

	catalog, err := do.Invoke[movement.Catalog](a.injector)
	if err != nil {
		return err
	}
	expander, err := do.Invoke[*movement.Expander](a.injector)
	if err != nil {
		return err
	}

	assignment, err := expander.Expand(anchors)
	if err != nil {
		return err
	}

	log := a.log.WithField("album", dir)
	overlaps := movement.Overlaps(anchors, catalog)
	for _, o := range overlaps {
		log.Warn("track claimed by two compositions",
			"track", o.Track, "first", o.First, "second", o.Second)
	}

	files, err := a.openAlbum(ctx, dir)
	if err != nil {
		return err
	}
	defer files.close(a.log)

	applier, err := do.Invoke[*tagging.Applier](a.injector)
	if err != nil {
		return err
	}
	result, err := applier.ApplyWorks(ctx, files.tracks, assignment)
	if err != nil {
		return err
	}
	log.Info("works assigned", "anchors", len(anchors), "tracks", len(assignment), "saved", result.Saved)

	return a.printer.Works(report.Works{
		Album:    dir,
		Result:   result,
		Overlaps: overlaps,
	})
}
