package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/menta2k/bulk-cropper/internal/utils"
)

// DefaultExtensions returns the extensions scanned when none are configured.
func DefaultExtensions() []string {
	return []string{"jpg", "jpeg", "png"}
}

// Scan lists the image files directly inside dir, using the default
// extension set.
func Scan(dir string) ([]string, error) {
	return ScanExtensions(dir, DefaultExtensions())
}

// ScanExtensions lists the files in dir whose extension matches one of exts
// (case-insensitive, with or without the leading dot). The scan does not
// recurse into subdirectories. Results are sorted in natural order, so
// page_2.jpg comes before page_10.jpg in scanned page sequences.
func ScanExtensions(dir string, exts []string) ([]string, error) {
	if !utils.DirExists(dir) {
		return nil, fmt.Errorf("input directory does not exist: %s", dir)
	}

	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if allowed[utils.GetFileExtension(entry.Name())] {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.SliceStable(files, func(i, j int) bool { return natural.Less(files[i], files[j]) })
	return files, nil
}
