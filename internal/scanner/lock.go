package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/listenupapp/albumtag/internal/errors"
)

// LockFile is the name of the lock held inside an album directory while
// its files are being modified. It is hidden, so Discover ignores it.
const LockFile = ".albumtag.lock"

// AlbumLock is an exclusive advisory lock on an album directory.
type AlbumLock struct {
	lock *flock.Flock
	path string
}

// LockAlbum takes the album lock without blocking. It fails with a
// conflict when another process holds it.
func LockAlbum(dir string) (*AlbumLock, error) {
	path := filepath.Join(dir, LockFile)
	l := flock.New(path)

	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, errors.Conflictf("album %s is locked by another albumtag run", dir)
	}
	return &AlbumLock{lock: l, path: path}, nil
}

// Path returns the lock file path.
func (a *AlbumLock) Path() string {
	return a.path
}

// Unlock releases the lock and removes the lock file.
func (a *AlbumLock) Unlock() error {
	if err := a.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", a.path, err)
	}
	if err := os.Remove(a.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove lock %s: %w", a.path, err)
	}
	return nil
}
