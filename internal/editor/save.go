package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"

	"ccaviewer/internal/fileutil"
	"ccaviewer/internal/logging"
)

const lockRetryDelay = 100 * time.Millisecond

// SaveOptions controls how an archive is written back.
type SaveOptions struct {
	// Backup copies the on-disk archive to <path>.bak before overwriting.
	Backup bool
	// LockTimeout bounds the wait for <path>.lock. Zero tries once.
	LockTimeout time.Duration
	Logger      *slog.Logger
}

// LockPath returns the advisory lock file guarding path.
func LockPath(path string) string { return path + ".lock" }

// BackupPath returns the backup written before an overwrite.
func BackupPath(path string) string { return path + ".bak" }

// Save writes the archive content back to its path atomically while holding
// the advisory lock. It refuses to overwrite a file that changed on disk
// since Open.
func (a *Archive) Save(ctx context.Context, opts SaveOptions) error {
	logger := logging.NewComponentLogger(opts.Logger, "editor")
	logger = logging.WithContext(logging.WithArchive(ctx, a.Path), logger)

	lock := flock.New(LockPath(a.Path))
	locked, err := tryLock(ctx, lock, opts.LockTimeout)
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLocked, lock.Path())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release archive lock", logging.Args(logging.Error(err))...)
		}
	}()

	info, err := os.Stat(a.Path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", a.Path, err)
	}
	if info.Size() != a.size || !info.ModTime().Equal(a.modTime) {
		return fmt.Errorf("%w: %s", ErrConcurrentlyChanged, a.Path)
	}

	if opts.Backup {
		if err := fileutil.CopyFile(a.Path, BackupPath(a.Path)); err != nil {
			return fmt.Errorf("backup %s: %w", a.Path, err)
		}
		logger.Debug("backup written", logging.Args(logging.String("backup", BackupPath(a.Path)))...)
	}

	if err := fileutil.WriteFileAtomic(a.Path, a.Content, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", a.Path, err)
	}

	if info, err := os.Stat(a.Path); err == nil {
		a.size = info.Size()
		a.modTime = info.ModTime()
	}
	a.dirty = false
	logger.Info("archive saved", logging.Args(logging.Int64("bytes", int64(len(a.Content))))...)
	return nil
}

func tryLock(ctx context.Context, lock *flock.Flock, timeout time.Duration) (bool, error) {
	if timeout <= 0 {
		return lock.TryLock()
	}
	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ok, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return false, nil
	}
	return ok, err
}
