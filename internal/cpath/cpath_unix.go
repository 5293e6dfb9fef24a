//go:build unix

package cpath

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncAndClose flushes f to disk via fsync before closing it, so the
// rename in WriteFile can never land ahead of the data it points at (§3:
// output is "flushed before exit").
func syncAndClose(f *os.File) error {
	if err := unix.Fsync(int(f.Fd())); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
