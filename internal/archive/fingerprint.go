package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Fingerprint calculates a stable fingerprint for the archive tree from
// the relative path, size and modification time of every export file.
// Two scans over an unchanged tree produce the same value, which lets
// callers skip a rescan. An empty tree fingerprints to the empty
// string.
func (a *Archive) Fingerprint() (string, error) {
	type fileMeta struct {
		rel  string
		size int64
		mod  int64
	}

	entries := make([]fileMeta, 0)
	err := filepath.WalkDir(a.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		info, statErr := d.Info()
		if statErr != nil {
			if os.IsNotExist(statErr) {
				return nil
			}
			return statErr
		}
		rel := path
		if relPath, relErr := filepath.Rel(a.root, path); relErr == nil {
			rel = relPath
		}
		entries = append(entries, fileMeta{
			rel:  filepath.ToSlash(rel),
			size: info.Size(),
			mod:  info.ModTime().UnixNano(),
		})
		return nil
	})
	if err != nil {
		return "", err
	}

	if len(entries) == 0 {
		return "", nil
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].rel < entries[j].rel })

	hasher := sha256.New()
	for _, e := range entries {
		fmt.Fprintf(hasher, "%s|%d|%d;", e.rel, e.size, e.mod)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
