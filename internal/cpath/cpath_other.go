//go:build !unix

package cpath

import "os"

// syncAndClose closes f. Non-unix platforms here rely on Close's own
// flush semantics; unix.Fsync is used only by the unix build (cpath_unix.go).
func syncAndClose(f *os.File) error {
	return f.Close()
}
