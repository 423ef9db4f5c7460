package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultWorkDir returns the per-user work directory for the app,
// optionally with a subdirectory appended.
func DefaultWorkDir(sub string) string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	dir := filepath.Join(base, "cfm")
	if sub != "" {
		dir = filepath.Join(dir, sub)
	}
	return dir
}

// PrepareDir creates the directory if it does not exist yet.
func PrepareDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// GetDirSize walks the directory and returns a human-readable total of
// the regular files inside it. Errors while walking are ignored; the
// result is informational only.
func GetDirSize(dir string) string {
	var total int64
	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return HumanSize(total)
}

// HumanSize renders a byte count with a binary unit suffix.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
