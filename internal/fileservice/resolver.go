package fileservice

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"imview/internal/imagetypes"
	"imview/internal/logging"
)

// resolvePaths turns raw input paths into the deduplicated initial
// file set and, when derivable, the single directory to watch.
//
// Explicit files are kept if recognized as images; explicit
// directories are scanned non-recursively. The watch root exists only
// when the explicit directories plus the parents of every resolved
// file collapse to exactly one directory, and that directory is then
// re-scanned to catch files that appeared between the first scan and
// watch start.
func resolvePaths(paths []string) (root string, files []string, err error) {
	if len(paths) == 0 {
		return "", nil, nil
	}

	var found []string
	dirs := make(map[string]bool)

	for _, p := range paths {
		canon, err := canonicalize(p)
		if err != nil {
			return "", nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		info, err := os.Stat(canon)
		if err != nil {
			return "", nil, fmt.Errorf("stat %s: %w", canon, err)
		}
		switch {
		case info.Mode().IsRegular():
			if imagetypes.IsImage(canon) {
				found = append(found, canon)
			}
		case info.IsDir():
			dirs[canon] = true
		}
		// anything else (sockets, devices, ...) is ignored
	}

	for dir := range dirs {
		scanned, err := collectImages(dir)
		if err != nil {
			return "", nil, err
		}
		found = append(found, scanned...)
	}

	candidates := make(map[string]bool, len(dirs))
	for dir := range dirs {
		candidates[dir] = true
	}
	for _, f := range found {
		candidates[filepath.Dir(f)] = true
	}

	if len(candidates) == 1 {
		for dir := range candidates {
			root = dir
		}
		// Re-scan: files created after the first pass are still part
		// of the initial snapshot.
		scanned, err := collectImages(root)
		if err != nil {
			return "", nil, err
		}
		found = append(found, scanned...)
	}

	seen := make(map[string]bool, len(found))
	files = found[:0]
	for _, f := range found {
		if !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
	}
	sort.Strings(files)

	return root, files, nil
}

// canonicalize resolves path to an absolute, symlink-free form.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// collectImages lists dir non-recursively and returns the canonical
// paths of its recognized image files.
func collectImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var out []string
	for _, entry := range entries {
		canon, err := canonicalize(filepath.Join(dir, entry.Name()))
		if err != nil {
			// Broken symlink or a file that vanished mid-scan.
			logging.Debug("skipping %s: %v", entry.Name(), err)
			continue
		}
		info, err := os.Stat(canon)
		if err != nil {
			logging.Debug("skipping %s: %v", entry.Name(), err)
			continue
		}
		if info.Mode().IsRegular() && imagetypes.IsImage(canon) {
			out = append(out, canon)
		}
	}
	return out, nil
}
