// Package cpath writes a compiler's generated output atomically: the
// caller never observes a partially-written file, even if stradac is
// killed mid-write or the process crashes before the rename lands (§6:
// the output file is "written atomically (write + close)").
package cpath

import (
	"os"
	"path/filepath"
)

// WriteFile atomically replaces path with data: it writes to a temp file
// in the same directory (so the final rename is same-filesystem and thus
// atomic on every platform Go supports), flushes it, then renames over
// path. perm is applied to the temp file before the rename so the final
// file's permissions match what the caller asked for.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".stradac-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := syncAndClose(tmp); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
