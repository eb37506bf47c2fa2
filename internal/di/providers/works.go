package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/albumtag/internal/config"
	"github.com/listenupapp/albumtag/internal/logger"
	"github.com/listenupapp/albumtag/internal/movement"
)

// ProvideCatalog resolves the configured catalog, builtin or from a file.
func ProvideCatalog(i do.Injector) (movement.Catalog, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	catalog, err := movement.Resolve(cfg.Works.Catalog)
	if err != nil {
		return nil, err
	}
	log.Debug("catalog loaded", "catalog", cfg.Works.Catalog, "compositions", len(catalog))
	return catalog, nil
}

// ProvideExpander provides the movement expander over the configured catalog.
func ProvideExpander(i do.Injector) (*movement.Expander, error) {
	cfg := do.MustInvoke[*config.Config](i)

	catalog, err := do.Invoke[movement.Catalog](i)
	if err != nil {
		return nil, err
	}

	var opts []movement.Option
	if cfg.Works.StrictOverlap {
		opts = append(opts, movement.WithStrictOverlap())
	}
	return movement.NewExpander(catalog, opts...), nil
}
