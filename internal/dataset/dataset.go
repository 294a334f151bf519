// Package dataset manages the on-disk Parquet files the tile server loads
// H3 cell sets from.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
)

// Service lists and resolves Parquet dataset files under a data directory.
type Service struct {
	dir string
}

// New creates a new dataset service rooted at dataDir/datasets.
func New(dataDir string) *Service {
	return &Service{dir: filepath.Join(dataDir, "datasets")}
}

// File describes one loadable dataset on disk.
type File struct {
	Name string `json:"name" doc:"File name"`
	Size string `json:"size" doc:"Human-readable file size"`
}

// List returns all available Parquet datasets.
func (s *Service) List() ([]File, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []File{}, nil
		}
		return nil, err
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".parquet" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, File{Name: entry.Name(), Size: formatSize(info.Size())})
	}
	return files, nil
}

// Path resolves a dataset name to its path on disk, rejecting traversal.
func (s *Service) Path(name string) (string, error) {
	if filepath.Base(name) != name || name == ".." {
		return "", fmt.Errorf("dataset: invalid name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
