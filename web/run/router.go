package webapp

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hsdlab/hsd-annotator/web"
)

func router(webapp *WebApp) http.Handler {
	r := chi.NewRouter()

	r.Get("/", webapp.workspace())
	r.Post("/scan", webapp.scan())
	r.Post("/save", webapp.save())
	r.Post("/previous", webapp.previous())
	r.Post("/folder", webapp.selectFolder())
	r.Get("/layer/{folder}/{base}/{kind}", webapp.layer())
	r.Get("/export", webapp.export())

	// Serve embedded assets
	assetsFS, _ := fs.Sub(web.Assets, "assets")
	fileServer := http.FileServer(http.FS(assetsFS))
	r.Handle("/assets/*", http.StripPrefix("/assets/", fileServer))

	r.NotFound(webapp.notFoundHandler())

	return r
}
