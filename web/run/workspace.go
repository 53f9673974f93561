package webapp

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/hsdlab/hsd-annotator/app"
)

var layerOptions = []layerOption{
	{app.LayerNorm, "Corrected RGB"},
	{app.LayerKMeans, "KMeans Clustering"},
	{app.LayerRaw, "Raw RGB"},
}

// workspace renders the single page: the start screen before a dataset is
// loaded, the annotation workspace afterwards.
func (webapp *WebApp) workspace() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		webapp.mu.Lock()
		defer webapp.mu.Unlock()

		data := webapp.newTplData()
		data["Error"] = r.URL.Query().Get("err")

		if !webapp.Session.Loaded() {
			webapp.render(w, "start.html", data)
			return
		}

		pos, err := webapp.Session.Current()
		if err != nil {
			webapp.renderError(w, http.StatusInternalServerError, "")
			return
		}

		kind := r.URL.Query().Get("layer")
		if _, ok := app.LayerFileName(pos.Base, kind); !ok {
			kind = app.DefaultLayer
		}

		data["Folder"] = pos.Folder
		data["Base"] = pos.Base
		data["SampleNo"] = pos.Index + 1
		data["Total"] = pos.Total
		data["AtFirst"] = pos.Index == 0
		data["LastInFolder"] = pos.Index == pos.Total-1
		data["Layer"] = kind
		data["LayerOptions"] = layerOptions
		data["AllDone"] = webapp.Session.AllDone()

		layerPath, err := pos.LayerPath(kind)
		if err == nil {
			err = app.CheckLayer(layerPath)
		}
		if err != nil {
			log.Printf("Layer %s/%s (%s) unavailable: %v", pos.Folder, pos.Base, kind, err)
			data["LayerError"] = fmt.Sprintf("Error loading image layer: %v", err)
		} else {
			data["LayerURL"] = fmt.Sprintf("/layer/%s/%s/%s",
				url.PathEscape(pos.Folder), url.PathEscape(pos.Base), kind)
		}

		// Prefill tag and notes from the store; defaults when untagged.
		data["Tag"] = firstTag(webapp.Config.Annotator.Tags)
		data["Notes"] = ""
		data["Tagged"] = false
		rec, err := webapp.Store.Lookup(pos.Folder, pos.Base)
		switch {
		case err == nil:
			data["Tag"] = rec.Tag
			data["Notes"] = rec.Notes
			data["Tagged"] = true
		case !errors.Is(err, app.ErrNoRecord):
			log.Printf("Lookup failed for %s/%s: %v", pos.Folder, pos.Base, err)
		}

		recent, err := webapp.Store.Tail(3)
		if err != nil {
			log.Printf("Failed to read recent annotations: %v", err)
		}
		data["Recent"] = recent
		data["HasAnnotations"] = len(recent) > 0

		webapp.render(w, "workspace.html", data)
	}
}

func (webapp *WebApp) render(w http.ResponseWriter, name string, data map[string]any) {
	err := webapp.TemplateCache[name].Execute(w, data)
	if err != nil {
		log.Printf("Template error: %v", err)
		webapp.renderError(w, http.StatusInternalServerError, "")
	}
}

func firstTag(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return tags[0]
}
