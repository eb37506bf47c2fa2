// Package cli builds the albumtag command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/listenupapp/albumtag/internal/config"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	env        string
	logLevel   string
	logFormat  string
	envFile    string
	extensions []string
}

func (g *globalFlags) overrides() config.Overrides {
	return config.Overrides{
		Environment: g.env,
		LogLevel:    g.logLevel,
		LogFormat:   g.logFormat,
		EnvFile:     g.envFile,
		Extensions:  g.extensions,
	}
}

// NewRootCmd creates the albumtag root command.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "albumtag",
		Short: "Reconcile album-level tags and expand classical works into movements",
		Long: `albumtag audits the tags of an album directory and repairs them.

It finds the value of each album-level field (album, albumartist, genre, ...)
that most tracks agree on and lists the tracks that disagree. For classical
recordings it assigns work and movement tags from a catalog of compositions,
and renames files after their titles.

Commands that modify files only report what they would do unless --apply is given.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&g.env, "env", "", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "Log format (auto, pretty, json)")
	cmd.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "Path to .env file")
	cmd.PersistentFlags().StringSliceVar(&g.extensions, "ext", nil, "Track file extensions (default .flac)")

	cmd.AddCommand(newAuditCmd(g))
	cmd.AddCommand(newWorksCmd(g))
	cmd.AddCommand(newRenameCmd(g))
	cmd.AddCommand(newCatalogCmd(g))

	return cmd
}
