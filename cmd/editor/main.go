package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/waveconfigurator/catalog"
	"github.com/milk9111/waveconfigurator/document"
	"golang.design/x/clipboard"
)

func main() {
	fileName := flag.String("file", "", "level file to open (bare names resolve under -dir)")
	levelDir := flag.String("dir", "levels", "directory for saved levels")
	catalogDir := flag.String("catalog", "", "directory with catalog.yaml/settings.yaml overrides")
	watch := flag.Bool("watch", false, "reload the catalog when files in -catalog change")
	flag.Parse()

	log.Println("Editor starting...")
	cat, err := catalog.LoadCatalog(*catalogDir)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	settings, err := catalog.LoadSettings(*catalogDir, cat)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	doc, err := document.New(cat, settings)
	if err != nil {
		log.Fatal(err)
	}

	g := NewEditor(doc, *catalogDir, *levelDir)
	if *fileName != "" {
		g.fileName = *fileName
		g.Load()
	}

	if *watch {
		if *catalogDir == "" {
			log.Println("-watch needs -catalog; hot reload disabled")
		} else if w, err := catalog.NewWatcher(*catalogDir); err != nil {
			log.Printf("Failed to watch %s: %v", *catalogDir, err)
		} else {
			defer w.Close()
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
	} else {
		g.clipboard = true
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 820)
	ebiten.SetWindowTitle("wave configurator")

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
