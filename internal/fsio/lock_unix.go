//go:build !windows

package fsio

import (
	"fmt"
	"os"
	"syscall"
)

// FileLock is an advisory lock held on a sibling "<path>.lock" file. The lock
// file is never removed, so every process contends on the same inode.
type FileLock struct {
	path string
	f    *os.File
}

func NewFileLock(targetPath string) *FileLock {
	return &FileLock{path: targetPath + ".lock"}
}

func (l *FileLock) Lock() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	// Exclusive lock (blocks).
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		_ = f.Close()
		return fmt.Errorf("flock %s: %w", l.path, err)
	}

	l.f = f
	return nil
}

func (l *FileLock) Unlock() error {
	if l.f == nil {
		return nil
	}

	_ = syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
	err := l.f.Close()
	l.f = nil
	return err
}
