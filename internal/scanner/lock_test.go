package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	domainerrors "github.com/listenupapp/albumtag/internal/errors"
)

func TestLockAlbum_ExclusiveAndRemovedOnUnlock(t *testing.T) {
	dir := t.TempDir()

	lock, err := LockAlbum(dir)
	if err != nil {
		t.Fatalf("LockAlbum: %v", err)
	}
	if lock.Path() != filepath.Join(dir, LockFile) {
		t.Errorf("unexpected lock path %s", lock.Path())
	}

	if _, err := LockAlbum(dir); !errors.Is(err, domainerrors.ErrConflict) {
		t.Fatalf("expected conflict while locked, got %v", err)
	}

	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Errorf("lock file should be removed, stat err = %v", err)
	}

	again, err := LockAlbum(dir)
	if err != nil {
		t.Fatalf("relock: %v", err)
	}
	if err := again.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
}

func TestLockAlbum_MissingDirectory(t *testing.T) {
	if _, err := LockAlbum(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
