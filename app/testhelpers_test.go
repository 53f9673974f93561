package app

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// pngBytes renders a small RGBA image so layer and mask fixtures decode as
// real PNGs.
func pngBytes(t *testing.T, c color.RGBA) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

// writeDataset lays out a dataset root. folders maps folder name to base
// names; every base gets a raw layer plus norm and kmeans siblings.
func writeDataset(t *testing.T, root string, folders map[string][]string) {
	t.Helper()

	data := pngBytes(t, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	for folder, bases := range folders {
		dir := filepath.Join(root, folder)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
		for _, base := range bases {
			for _, suffix := range []string{"_raw.png", "_norm.png", "_kmeans.png"} {
				path := filepath.Join(dir, base+suffix)
				if err := os.WriteFile(path, data, 0644); err != nil {
					t.Fatalf("failed to write %s: %v", path, err)
				}
			}
		}
	}
}

// openTestStore opens a store on a throwaway database.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}
