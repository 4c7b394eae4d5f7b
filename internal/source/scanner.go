package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanDir discovers storage dump files. A file path is returned as-is; a
// directory is walked for *.json and *.jsonl files.
func ScanDir(path string) ([]DiscoveredFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []DiscoveredFile{discovered(path)}, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".json", ".jsonl":
			files = append(files, discovered(p))
		}
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

func discovered(path string) DiscoveredFile {
	return DiscoveredFile{
		Path:  path,
		Lines: strings.EqualFold(filepath.Ext(path), ".jsonl"),
	}
}
