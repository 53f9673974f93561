package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hsdlab/hsd-annotator/models"
)

const rawSuffix = "_raw.png"

// ErrNoDataset signals that the scan root is missing or contains no
// qualifying image sets. The session leaves prior state untouched on it.
var ErrNoDataset = errors.New("no valid PNG sets found")

// ScanDataset walks root and registers every directory holding at least one
// *_raw.png under its leaf name. Base names within a folder and the folder
// order are both sorted so navigation is stable across runs.
func ScanDataset(root string) (*models.FileTree, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("%w: cannot access %s", ErrNoDataset, root)
	}

	tree := &models.FileTree{Folders: make(map[string]models.FolderEntry)}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			log.Printf("Skipping %s: %v", path, walkErr)
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			log.Printf("Error reading %s: %v", path, err)
			return nil
		}

		var bases []string
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), rawSuffix) {
				continue
			}
			bases = append(bases, strings.TrimSuffix(e.Name(), rawSuffix))
		}
		if len(bases) == 0 {
			return nil
		}
		sort.Strings(bases)

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		tree.Folders[filepath.Base(path)] = models.FolderEntry{Path: abs, BaseNames: bases}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	if len(tree.Folders) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoDataset, root)
	}

	tree.Order = make([]string, 0, len(tree.Folders))
	for name := range tree.Folders {
		tree.Order = append(tree.Order, name)
	}
	sort.Strings(tree.Order)

	return tree, nil
}
