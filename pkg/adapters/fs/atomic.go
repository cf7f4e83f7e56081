package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix marks in-flight slot writes. The watcher ignore rules
// filter on it, so a crash mid-write leaves an inert pocket-tmp-* file
// behind, never a torn slot.
const TempFilePrefix = "pocket-tmp-"

// writeFileAtomic replaces the target file in one step: the payload is
// staged in a sibling temp file, fsynced, then renamed over the target.
// Concurrent readers see either the old content or the new, never a mix.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("stage %s: %w", filepath.Base(filename), err)
	}
	tmpName := tmp.Name()

	stageErr := func() error {
		if _, err := tmp.Write(data); err != nil {
			return err
		}
		// CreateTemp opens 0600; take the caller's mode before the
		// rename makes the file visible under its real name.
		if err := tmp.Chmod(perm); err != nil {
			return err
		}
		if err := tmp.Sync(); err != nil {
			return err
		}
		return tmp.Close()
	}()
	if stageErr != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("stage %s: %w", filepath.Base(filename), stageErr)
	}

	if err := os.Rename(tmpName, filename); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish %s: %w", filepath.Base(filename), err)
	}
	return nil
}
