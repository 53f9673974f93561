package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hsdlab/hsd-annotator/models"
)

// ErrNotBrowsing is returned when a navigation call needs a loaded dataset.
var ErrNotBrowsing = errors.New("no dataset loaded")

// Session owns the scanned file tree and the navigation cursor. It is the
// only writer of both; the web layer serializes access to it.
type Session struct {
	DataDir string

	tree    *models.FileTree
	folder  string
	index   int
	allDone bool
}

func NewSession(dataDir string) *Session {
	return &Session{DataDir: dataDir}
}

// Loaded reports whether a dataset scan has succeeded.
func (s *Session) Loaded() bool {
	return s.tree != nil
}

// Scan builds a fresh file tree from the data directory and resets the
// cursor to the first folder. On failure the previously installed tree and
// cursor are left untouched.
func (s *Session) Scan() error {
	tree, err := ScanDataset(s.DataDir)
	if err != nil {
		return err
	}
	s.tree = tree
	s.folder = tree.Order[0]
	s.index = 0
	s.allDone = false
	return nil
}

// Folders returns the folder names in navigation order.
func (s *Session) Folders() []string {
	if s.tree == nil {
		return nil
	}
	return s.tree.Order
}

// Position describes the sample the session currently points at.
type Position struct {
	Folder     string
	FolderPath string
	Base       string
	Index      int
	Total      int
}

// LayerPath returns the on-disk path of a background layer for the sample.
func (p Position) LayerPath(kind string) (string, error) {
	name, ok := LayerFileName(p.Base, kind)
	if !ok {
		return "", fmt.Errorf("unknown layer kind %q", kind)
	}
	return filepath.Join(p.FolderPath, name), nil
}

func (s *Session) Current() (Position, error) {
	if s.tree == nil {
		return Position{}, ErrNotBrowsing
	}
	entry := s.tree.Folders[s.folder]
	return Position{
		Folder:     s.folder,
		FolderPath: entry.Path,
		Base:       entry.BaseNames[s.index],
		Index:      s.index,
		Total:      len(entry.BaseNames),
	}, nil
}

// Previous steps back one sample within the current folder. At the first
// sample it is a no-op.
func (s *Session) Previous() {
	if s.tree == nil || s.index == 0 {
		return
	}
	s.index--
}

// Advance moves the cursor after a save: to the next sample in the folder,
// else to the next folder at its first sample. At the last sample of the
// last folder the cursor stays put and the completion flash is raised, so
// repeated calls there are harmless.
func (s *Session) Advance() {
	if s.tree == nil {
		return
	}

	entry := s.tree.Folders[s.folder]
	if s.index < len(entry.BaseNames)-1 {
		s.index++
		return
	}

	for i, name := range s.tree.Order {
		if name != s.folder {
			continue
		}
		if i < len(s.tree.Order)-1 {
			s.folder = s.tree.Order[i+1]
			s.index = 0
			return
		}
		break
	}
	s.allDone = true
}

// SelectFolder jumps to the named folder at its first sample.
func (s *Session) SelectFolder(name string) error {
	if s.tree == nil {
		return ErrNotBrowsing
	}
	if _, ok := s.tree.Folders[name]; !ok {
		return fmt.Errorf("unknown folder %q", name)
	}
	s.folder = name
	s.index = 0
	return nil
}

// AllDone reports and clears the completion flash. Completion is transient:
// the tree stays browsable after it fires.
func (s *Session) AllDone() bool {
	done := s.allDone
	s.allDone = false
	return done
}

// ResolveLayer returns the path of a layer image for any scanned sample.
// Folder and base are validated against the tree, so only scanned files are
// ever served.
func (s *Session) ResolveLayer(folder, base, kind string) (string, error) {
	if s.tree == nil {
		return "", ErrNotBrowsing
	}
	entry, ok := s.tree.Folders[folder]
	if !ok {
		return "", fmt.Errorf("unknown folder %q", folder)
	}

	known := false
	for _, b := range entry.BaseNames {
		if b == base {
			known = true
			break
		}
	}
	if !known {
		return "", fmt.Errorf("unknown sample %q in folder %q", base, folder)
	}

	name, ok := LayerFileName(base, kind)
	if !ok {
		return "", fmt.Errorf("unknown layer kind %q", kind)
	}
	return filepath.Join(entry.Path, name), nil
}
