// Package marker writes the advisory flag file that tells external tooling a
// notification went out. The file is overwritten on every success and never
// read back by the monitor.
//
// Writes are serialised across overlapping runs through an flock on
// path+".lock". That lock file stays next to the marker after a write.
package marker

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/multierr"

	"github.com/hamed0406/cafwatch/internal/domain"
)

const DefaultPath = "site_accessible.flag"

var (
	// LockTimeout bounds how long Write waits for another run to release the lock.
	LockTimeout    = 5 * time.Second
	lockRetryDelay = 50 * time.Millisecond
)

// Content is the exact text stored in the marker for a given time.
func Content(at time.Time) string {
	return "Site accessible détecté le " + domain.FormatTimestamp(at)
}

// LockPath is the advisory lock file guarding path.
func LockPath(path string) string {
	return path + ".lock"
}

// Write truncates path and stores Content(at) while holding the marker lock.
// It fails without touching the marker if the lock is not acquired before
// ctx ends or LockTimeout elapses.
func Write(ctx context.Context, path string, at time.Time) (err error) {
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()

	lock := flock.New(LockPath(path))
	locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock marker: %w", err)
	}
	if !locked {
		return fmt.Errorf("lock marker: %s is held by another run", LockPath(path))
	}
	defer func() {
		err = multierr.Append(err, lock.Unlock())
	}()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open marker: %w", err)
	}
	_, werr := f.WriteString(Content(at))
	if werr = multierr.Append(werr, f.Close()); werr != nil {
		return fmt.Errorf("write marker: %w", werr)
	}
	return nil
}

// Read returns the marker text, or ok=false when no marker exists.
func Read(path string) (content string, ok bool, err error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}
