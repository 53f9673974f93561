package app

import (
	"errors"
	"fmt"
	"image"
	"os"

	_ "image/png"
)

// Background layer kinds selectable behind the drawing canvas.
const (
	LayerRaw    = "raw"
	LayerNorm   = "norm"
	LayerKMeans = "kmeans"
)

// DefaultLayer is shown each time a new sample is entered.
const DefaultLayer = LayerNorm

// ErrLayerLoad signals that a background layer image cannot be opened or
// decoded. The workspace reports it inline and disables the draw surface.
var ErrLayerLoad = errors.New("failed to load image layer")

// LayerFileName returns the file name of the given background layer for a
// sample, or false for an unknown kind.
func LayerFileName(base, kind string) (string, bool) {
	switch kind {
	case LayerRaw, LayerNorm, LayerKMeans:
		return fmt.Sprintf("%s_%s.png", base, kind), true
	}
	return "", false
}

// CheckLayer verifies that the image at path opens and decodes. The caller
// renders the failure inline instead of letting the page die.
func CheckLayer(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLayerLoad, err)
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		return fmt.Errorf("%w: %v", ErrLayerLoad, err)
	}
	return nil
}
