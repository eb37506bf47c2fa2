package cli

import (
	"github.com/spf13/cobra"

	"github.com/listenupapp/albumtag/internal/errors"
	"github.com/listenupapp/albumtag/internal/movement"
)

func newCatalogCmd(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect composition catalogs",
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print as JSON")

	list := &cobra.Command{
		Use:   "list [NAME|PATH]",
		Short: "List builtin catalogs, or the compositions of one catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, g.overrides(), false, asJSON)
			if err != nil {
				return err
			}
			defer a.close()

			if len(args) == 0 {
				return a.printer.Catalogs(movement.BuiltinNames())
			}
			catalog, err := movement.Resolve(args[0])
			if err != nil {
				return err
			}
			return a.printer.Compositions(catalog)
		},
	}

	show := &cobra.Command{
		Use:   "show NAME|PATH ID",
		Short: "Show the movements of one composition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, g.overrides(), false, asJSON)
			if err != nil {
				return err
			}
			defer a.close()

			catalog, err := movement.Resolve(args[0])
			if err != nil {
				return err
			}
			comp, ok := catalog[args[1]]
			if !ok {
				return errors.UnknownComposition(args[1])
			}
			return a.printer.Composition(args[1], comp)
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
