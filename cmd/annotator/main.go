package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/hsdlab/hsd-annotator/app"
	webapp "github.com/hsdlab/hsd-annotator/web/run"
)

func main() {
	configPath := flag.String("config", "", "Path to optional yaml configuration file")
	listenAddr := flag.String("listen", "", "Address to listen on (overrides config)")
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := app.OpenStore(cfg.Dataset.DBPath)
	if err != nil {
		log.Fatalf("Failed to open annotation store: %v", err)
	}
	defer store.Close()

	wa := webapp.New(cfg, store)

	addr := wa.GetListenAddr()
	if *listenAddr != "" {
		addr = *listenAddr
	}

	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, wa.Router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
