package webapp

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"path"
	"sync"

	"github.com/hsdlab/hsd-annotator/app"
	"github.com/hsdlab/hsd-annotator/models"
	"github.com/hsdlab/hsd-annotator/web"
)

type WebApp struct {
	Router        http.Handler
	TemplateCache map[string]*template.Template
	Config        *models.AppConfig
	Store         *app.Store
	Session       *app.Session

	// One action at a time: the UI is turn based, the server is not.
	mu sync.Mutex
}

func New(cfg *models.AppConfig, store *app.Store) *WebApp {
	webapp := &WebApp{
		Config:  cfg,
		Store:   store,
		Session: app.NewSession(cfg.Dataset.DataDir),
	}
	webapp.InitTemplates()
	webapp.Router = router(webapp)
	return webapp
}

func (webapp *WebApp) GetListenAddr() string {
	port := 8080
	if webapp.Config != nil && webapp.Config.Server.Port > 0 {
		port = webapp.Config.Server.Port
	}
	return fmt.Sprintf(":%d", port)
}

func (webapp *WebApp) InitTemplates() {
	webapp.TemplateCache = make(map[string]*template.Template)

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"percent": func(part, total int) int {
			if total == 0 {
				return 0
			}
			return part * 100 / total
		},
		"yesno": func(b bool) string {
			if b {
				return "Yes"
			}
			return "No"
		},
	}

	pages, err := fs.Glob(web.Templates, "templates/*.html")
	if err != nil {
		log.Fatalf("failed to glob templates: %v", err)
	}

	for _, page := range pages {
		name := path.Base(page)
		if name == "layout.html" {
			continue
		}

		var ts *template.Template
		var err error

		// Error template is standalone (no layout)
		if name == "error.html" {
			ts, err = template.New(name).Funcs(funcMap).ParseFS(web.Templates, page)
		} else {
			ts, err = template.New(name).Funcs(funcMap).ParseFS(web.Templates, page, "templates/layout.html")
		}

		if err != nil {
			log.Fatalf("failed to parse template %s: %v", name, err)
		}
		webapp.TemplateCache[name] = ts
	}
}
