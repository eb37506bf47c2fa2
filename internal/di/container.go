// Package di provides dependency injection configuration for albumtag.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/albumtag/internal/config"
	"github.com/listenupapp/albumtag/internal/di/providers"
)

// NewContainer creates and configures the DI container for one command run.
// Collaborators are built lazily on first invoke.
func NewContainer(cfg *config.Config, opts providers.Options) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, opts)
	do.Provide(injector, providers.ProvideLogger)

	// Album files
	do.Provide(injector, providers.ProvideWalker)
	do.Provide(injector, providers.ProvideTagReader)

	// Works
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideExpander)

	// Writers
	do.Provide(injector, providers.ProvideApplier)
	do.Provide(injector, providers.ProvideRenamer)

	return injector
}
