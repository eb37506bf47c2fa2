package cli

import (
	"context"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/listenupapp/albumtag/internal/config"
	"github.com/listenupapp/albumtag/internal/di"
	"github.com/listenupapp/albumtag/internal/di/providers"
	"github.com/listenupapp/albumtag/internal/logger"
	"github.com/listenupapp/albumtag/internal/report"
	"github.com/listenupapp/albumtag/internal/scanner"
	"github.com/listenupapp/albumtag/internal/tags"
)

// app is the wiring for one command invocation.
type app struct {
	cfg      *config.Config
	injector *do.RootScope
	log      *logger.Logger
	printer  *report.Printer
	apply    bool
}

func newApp(cmd *cobra.Command, o config.Overrides, apply, asJSON bool) (*app, error) {
	cfg, err := config.Load(o)
	if err != nil {
		return nil, err
	}

	injector := di.NewContainer(cfg, providers.Options{
		LogWriter: cmd.ErrOrStderr(),
		Apply:     apply,
	})
	log, err := do.Invoke[*logger.Logger](injector)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		injector: injector,
		log:      log,
		printer:  report.NewPrinter(cmd.OutOrStdout(), asJSON),
		apply:    apply,
	}, nil
}

func (a *app) close() {
	_ = a.injector.Shutdown() //nolint:errcheck // no collaborator holds resources past the command
}

// albumFiles is an open album directory: its tracks in order and, in apply
// mode, the lock that keeps other runs out.
type albumFiles struct {
	dir    string
	paths  []string
	tracks []tags.Track
	lock   *scanner.AlbumLock
}

// openAlbum discovers and opens the tracks of dir. In apply mode the album
// lock is taken first so no other run modifies the files concurrently.
func (a *app) openAlbum(ctx context.Context, dir string) (*albumFiles, error) {
	walker, err := do.Invoke[*scanner.Walker](a.injector)
	if err != nil {
		return nil, err
	}
	reader, err := do.Invoke[*tags.Reader](a.injector)
	if err != nil {
		return nil, err
	}

	paths, err := walker.Discover(ctx, dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		a.log.Warn("no tracks found", "album", dir, "extensions", a.cfg.Library.Extensions)
	}

	al := &albumFiles{dir: dir, paths: paths}
	if a.apply {
		if al.lock, err = scanner.LockAlbum(dir); err != nil {
			return nil, err
		}
	}

	if al.tracks, err = reader.OpenAll(ctx, paths); err != nil {
		al.close(a.log)
		return nil, err
	}
	return al, nil
}

// closeTracks releases the open files but keeps the lock.
func (al *albumFiles) closeTracks() {
	tags.CloseAll(al.tracks)
	al.tracks = nil
}

func (al *albumFiles) close(log *logger.Logger) {
	al.closeTracks()
	if al.lock == nil {
		return
	}
	if err := al.lock.Unlock(); err != nil {
		log.WithError(err).Warn("failed to release album lock", "album", al.dir)
	}
	al.lock = nil
}
