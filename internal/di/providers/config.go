// Package providers contains dependency injection providers for albumtag.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/albumtag/internal/config"
	"github.com/listenupapp/albumtag/internal/logger"
)

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	opts := do.MustInvoke[Options](i)

	log := logger.New(logger.Config{
		Writer:      opts.LogWriter,
		Format:      cfg.Logger.Format,
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.Logger.Level == "debug",
		Environment: cfg.App.Environment,
	})

	log.Debug("configuration loaded",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"extensions", cfg.Library.Extensions,
		"catalog", cfg.Works.Catalog,
	)

	return log, nil
}
