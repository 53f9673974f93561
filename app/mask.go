package app

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

// MaskFileName is deterministic from the sample base name.
func MaskFileName(base string) string {
	return base + "_mask.png"
}

// MaskPath returns where the mask for (folder, base) lives under masksRoot.
func MaskPath(masksRoot, folder, base string) string {
	return filepath.Join(masksRoot, folder, MaskFileName(base))
}

// SaveMask writes the drawn mask for a sample. Nil or empty data means
// nothing was drawn: no file is written and no error is returned, the caller
// records the sample as not saved. Present data must decode as PNG and is
// written verbatim, replacing any previous mask for the same sample.
func SaveMask(masksRoot, folder, base string, data []byte) (bool, error) {
	if len(data) == 0 {
		return false, nil
	}

	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		return false, fmt.Errorf("invalid mask image: %w", err)
	}

	dir := filepath.Join(masksRoot, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create mask directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, MaskFileName(base))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write mask %s: %w", path, err)
	}
	return true, nil
}
