package webapp

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

// layer serves a background layer image for a scanned sample.
func (webapp *WebApp) layer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folder := chi.URLParam(r, "folder")
		base := chi.URLParam(r, "base")
		kind := chi.URLParam(r, "kind")

		webapp.mu.Lock()
		path, err := webapp.Session.ResolveLayer(folder, base, kind)
		webapp.mu.Unlock()
		if err != nil {
			log.Printf("Layer request rejected: %v", err)
			webapp.renderError(w, http.StatusNotFound, "The requested image layer does not exist.")
			return
		}

		file, err := os.Open(path)
		if err != nil {
			log.Printf("Cannot open layer %s: %v", path, err)
			webapp.renderError(w, http.StatusNotFound, "The image layer could not be opened.")
			return
		}
		defer file.Close()

		buffer := make([]byte, 512)
		n, _ := file.Read(buffer)
		mimeType := http.DetectContentType(buffer[:n])

		file.Seek(0, 0)
		w.Header().Set("Content-Type", mimeType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filepath.Base(path)))

		if _, err := io.Copy(w, file); err != nil {
			log.Printf("Error sending layer: %v", err)
		}
	}
}
