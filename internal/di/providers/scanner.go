package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/albumtag/internal/config"
	"github.com/listenupapp/albumtag/internal/logger"
	"github.com/listenupapp/albumtag/internal/rename"
	"github.com/listenupapp/albumtag/internal/scanner"
	"github.com/listenupapp/albumtag/internal/tagging"
	"github.com/listenupapp/albumtag/internal/tags"
)

// ProvideWalker provides album file discovery.
func ProvideWalker(i do.Injector) (*scanner.Walker, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return scanner.NewWalker(log.Logger, cfg.Library.Extensions...), nil
}

// ProvideTagReader provides the tag reader.
func ProvideTagReader(i do.Injector) (*tags.Reader, error) {
	log := do.MustInvoke[*logger.Logger](i)

	return tags.NewReader(log.Logger), nil
}

// ProvideApplier provides the tag writer. It only saves files in apply mode.
func ProvideApplier(i do.Injector) (*tagging.Applier, error) {
	opts := do.MustInvoke[Options](i)
	log := do.MustInvoke[*logger.Logger](i)

	return tagging.NewApplier(log.Logger, !opts.Apply), nil
}

// ProvideRenamer provides the file renamer.
func ProvideRenamer(i do.Injector) (*rename.Renamer, error) {
	log := do.MustInvoke[*logger.Logger](i)

	return rename.NewRenamer(log.Logger), nil
}
