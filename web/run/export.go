package webapp

import (
	"fmt"
	"log"
	"net/http"

	"github.com/hsdlab/hsd-annotator/app"
)

// export streams the annotation bundle, rebuilt from the current store and
// masks directory on every request.
func (webapp *WebApp) export() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		webapp.mu.Lock()
		data, err := app.BuildExport(webapp.Store, webapp.Config.Dataset.MasksDir)
		webapp.mu.Unlock()

		if err != nil {
			log.Printf("Export failed: %v", err)
			webapp.renderError(w, http.StatusInternalServerError, "The export archive could not be built.")
			return
		}

		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="Annotation_Export.zip"`)
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))

		if _, err := w.Write(data); err != nil {
			log.Printf("Error sending export: %v", err)
		}
	}
}
