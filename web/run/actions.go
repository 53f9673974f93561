package webapp

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/hsdlab/hsd-annotator/app"
	"github.com/hsdlab/hsd-annotator/models"
)

// scan handles Load Dataset and Rescan. A failed scan leaves any previously
// installed tree untouched and reports the error inline.
func (webapp *WebApp) scan() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		webapp.mu.Lock()
		err := webapp.Session.Scan()
		if err == nil {
			if mErr := webapp.Store.SetLastScan(time.Now()); mErr != nil {
				log.Printf("Failed to record scan time: %v", mErr)
			}
		}
		webapp.mu.Unlock()

		if err != nil {
			log.Printf("Dataset scan failed: %v", err)
			http.Redirect(w, r, "/?err="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// save persists the drawn mask (when present), upserts the annotation record
// and advances the cursor.
func (webapp *WebApp) save() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		webapp.mu.Lock()
		defer webapp.mu.Unlock()

		pos, err := webapp.Session.Current()
		if err != nil {
			webapp.renderError(w, http.StatusBadRequest, "No dataset is loaded.")
			return
		}

		tag := r.PostFormValue("tag")
		if tag == "" {
			tag = firstTag(webapp.Config.Annotator.Tags)
		}
		notes := r.PostFormValue("notes")

		maskData, err := decodeMaskDataURL(r.PostFormValue("mask"))
		if err != nil {
			log.Printf("Bad mask payload for %s/%s: %v", pos.Folder, pos.Base, err)
			webapp.renderError(w, http.StatusBadRequest, "The drawn mask could not be decoded.")
			return
		}

		saved, err := app.SaveMask(webapp.Config.Dataset.MasksDir, pos.Folder, pos.Base, maskData)
		if err != nil {
			log.Printf("Failed to save mask for %s/%s: %v", pos.Folder, pos.Base, err)
			webapp.renderError(w, http.StatusInternalServerError, "The mask could not be written.")
			return
		}

		rec := models.AnnotationRecord{
			Folder:    pos.Folder,
			BaseName:  pos.Base,
			Tag:       tag,
			MaskSaved: saved,
			Notes:     notes,
		}
		if err := webapp.Store.Upsert(rec); err != nil {
			log.Printf("Failed to store annotation for %s/%s: %v", pos.Folder, pos.Base, err)
			webapp.renderError(w, http.StatusInternalServerError, "The annotation could not be stored.")
			return
		}

		webapp.Session.Advance()
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (webapp *WebApp) previous() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		webapp.mu.Lock()
		webapp.Session.Previous()
		webapp.mu.Unlock()

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (webapp *WebApp) selectFolder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PostFormValue("folder")

		webapp.mu.Lock()
		err := webapp.Session.SelectFolder(name)
		webapp.mu.Unlock()

		if err != nil {
			if errors.Is(err, app.ErrNotBrowsing) {
				webapp.renderError(w, http.StatusBadRequest, "No dataset is loaded.")
				return
			}
			webapp.renderError(w, http.StatusNotFound, "The requested folder does not exist.")
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
