package models

// AnnotationRecord is one row of the annotation table. Key is
// (Folder, BaseName); the store keeps at most one live record per key.
// Seq is the monotonic write order used for export and the recent view.
type AnnotationRecord struct {
	Folder    string
	BaseName  string
	Tag       string
	MaskSaved bool
	Notes     string
	Seq       int64
}

// FolderEntry groups the samples found in one dataset directory.
type FolderEntry struct {
	Path      string   // absolute directory path
	BaseNames []string // sorted, raw-layer suffix stripped
}

// FileTree is the result of one dataset scan. Folders maps leaf directory
// names to their entries; Order holds the sorted folder names used for
// navigation. A tree is built once per scan and replaced wholesale on rescan.
type FileTree struct {
	Folders map[string]FolderEntry
	Order   []string
}
