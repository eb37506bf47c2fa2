package cli

import (
	"context"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/albumtag/internal/album"
	"github.com/listenupapp/albumtag/internal/errors"
	"github.com/listenupapp/albumtag/internal/report"
	"github.com/listenupapp/albumtag/internal/tagging"
)

type auditOptions struct {
	fields []string
	fix    bool
	apply  bool
	asJSON bool
}

func newAuditCmd(g *globalFlags) *cobra.Command {
	opts := &auditOptions{}

	cmd := &cobra.Command{
		Use:   "audit DIR",
		Short: "Find the canonical album-level tags and the tracks that disagree",
		Long: `Reconcile album-level fields across every track of an album directory.

For each field the value carried by most tracks is canonical; ties go to the
value seen first in track order. Tracks with a different value, including
tracks without the field, are listed as dissenting.`,
		Example: `  # Audit the default fields
  albumtag audit ~/Music/Beethoven/Sonatas

  # Only check two fields and show the repairs
  albumtag audit ~/Music/Beethoven/Sonatas --field album --field genre --fix

  # Write the canonical values to dissenting tracks
  albumtag audit ~/Music/Beethoven/Sonatas --fix --apply`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.apply && !opts.fix {
				return errors.Validation("--apply only takes effect with --fix")
			}
			o := g.overrides()
			o.Fields = opts.fields
			a, err := newApp(cmd, o, opts.apply, opts.asJSON)
			if err != nil {
				return err
			}
			defer a.close()

			return runAudit(cmd.Context(), a, args[0], opts.fix)
		},
	}

	cmd.Flags().StringSliceVar(&opts.fields, "field", nil, "Field to reconcile (repeatable; default album, albumartist, genre, discnumber, disctotal)")
	cmd.Flags().BoolVar(&opts.fix, "fix", false, "Propose canonical values for dissenting tracks")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Write the canonical values (requires --fix)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the report as JSON")

	return cmd
}

func runAudit(ctx context.Context, a *app, dir string, fix bool) error {
	files, err := a.openAlbum(ctx, dir)
	if err != nil {
		return err
	}
	defer files.close(a.log)

	sources := make([]album.FieldSource, len(files.tracks))
	for i, t := range files.tracks {
		sources[i] = t
	}
	fields := a.cfg.Library.Fields
	results := album.Reconcile(sources, fields)
	summary := album.Summarize(results)

	log := a.log.WithField("album", dir)
	log.Info("album reconciled",
		"tracks", len(files.tracks),
		"fields", summary.Fields,
		"agreeing", summary.FieldsInAgreement,
		"dissenting_tracks", summary.DissentingTracks,
	)

	out := report.Audit{
		Album:   dir,
		Tracks:  files.paths,
		Fields:  fields,
		Results: results,
		Summary: summary,
	}

	if fix {
		applier, err := do.Invoke[*tagging.Applier](a.injector)
		if err != nil {
			return err
		}
		out.Fixes, err = applier.ApplyFixes(ctx, files.tracks, album.Fixes(results))
		if err != nil {
			return err
		}
		out.Applied = !applier.DryRun()
	}

	return a.printer.Audit(out)
}
