package main

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/waveconfigurator/catalog"
	"github.com/milk9111/waveconfigurator/document"
	"github.com/milk9111/waveconfigurator/wave"
)

// rowsPerPage is how many grid rows the cell panel shows at once.
const rowsPerPage = 12

// Editor is the Ebiten game for the wave editor.
type Editor struct {
	doc *document.Document
	ui  *ebitenui.UI

	fontFace   text.Face
	cellImages map[wave.ElementType]*widget.ButtonImage

	catalogDir string
	levelDir   string
	watcher    *catalog.Watcher
	clipboard  bool

	fileName   string
	scriptPath string
	cursor     int
	page       int
	sample     int
	status     string

	// dirty asks for a UI rebuild after the current ebitenui update.
	dirty bool
}

func NewEditor(doc *document.Document, catalogDir, levelDir string) *Editor {
	return &Editor{
		doc:        doc,
		catalogDir: catalogDir,
		levelDir:   levelDir,
		cellImages: map[wave.ElementType]*widget.ButtonImage{},
		dirty:      true,
	}
}

func (g *Editor) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	log.Print(g.status)
	g.dirty = true
}

func (g *Editor) Update() error {
	g.pollCatalog()

	// If the UI has a focused text widget (user is typing), suppress hotkeys.
	suppressHotkeys := false
	if g.ui != nil {
		if fw := g.ui.GetFocusedWidget(); fw != nil {
			switch fw.(type) {
			case *widget.TextInput:
				suppressHotkeys = true
			}
		}
	}
	if !suppressHotkeys {
		g.handleHotkeys()
	}

	if g.ui != nil {
		g.ui.Update()
	}
	if g.dirty {
		g.rebuildUI()
	}
	return nil
}

func (g *Editor) handleHotkeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.doc.ActiveSession() != nil {
		g.doc.ActiveSession().Cancel()
		g.dirty = true
	}

	if ctrl {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			g.Save()
		case inpututil.IsKeyJustPressed(ebiten.KeyO):
			g.Load()
		case inpututil.IsKeyJustPressed(ebiten.KeyC):
			g.CopyCell()
		case inpututil.IsKeyJustPressed(ebiten.KeyV):
			g.PasteCell()
		}
		return
	}

	if g.doc.ActiveSession() != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.ApplySession()
		}
		return
	}

	moves := []struct {
		key   ebiten.Key
		delta int
	}{
		{ebiten.KeyArrowLeft, -1},
		{ebiten.KeyArrowRight, 1},
		{ebiten.KeyArrowUp, -g.doc.Columns()},
		{ebiten.KeyArrowDown, g.doc.Columns()},
	}
	for _, m := range moves {
		if inpututil.IsKeyJustPressed(m.key) {
			g.moveCursor(m.delta)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		g.setPage(g.page - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		g.setPage(g.page + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && g.cursor >= 0 {
		g.OpenCell(g.cursor)
	}
}

// moveCursor shifts the keyboard cursor and follows it across pages.
func (g *Editor) moveCursor(delta int) {
	n := g.doc.Count()
	if n == 0 {
		g.cursor = -1
		return
	}
	next := g.cursor + delta
	if g.cursor < 0 {
		next = 0
	}
	g.cursor = min(max(next, 0), n-1)
	g.page = pageOf(g.cursor, g.doc.Columns())
	g.dirty = true
}

func (g *Editor) setPage(p int) {
	p = min(max(p, 0), pageCount(g.doc.Rows())-1)
	if p != g.page {
		g.page = p
		g.dirty = true
	}
}

// pollCatalog reloads the catalog when the watcher saw a YAML change. A bad
// edit is reported and the previous catalog stays in use.
func (g *Editor) pollCatalog() {
	if g.watcher == nil {
		return
	}
	changed, err := g.watcher.Poll()
	if err != nil {
		log.Printf("Catalog watcher error: %v", err)
	}
	if len(changed) == 0 {
		return
	}
	if err := g.ReloadCatalog(); err != nil {
		g.setStatus("Catalog reload failed: %v", err)
		return
	}
	g.setStatus("Catalog reloaded (%s)", changed[len(changed)-1])
}

func (g *Editor) ReloadCatalog() error {
	cat, err := catalog.LoadCatalog(g.catalogDir)
	if err != nil {
		return err
	}
	settings, err := catalog.LoadSettings(g.catalogDir, cat)
	if err != nil {
		return err
	}
	if err := g.doc.ReplaceCatalog(cat, settings); err != nil {
		return err
	}
	g.cellImages = map[wave.ElementType]*widget.ButtonImage{}
	g.clampView()
	return nil
}

// clampView keeps the cursor and page inside the current grid.
func (g *Editor) clampView() {
	if g.cursor >= g.doc.Count() {
		g.cursor = g.doc.Count() - 1
	}
	g.page = min(g.page, pageCount(g.doc.Rows())-1)
	g.dirty = true
}

func (g *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 30, 30, 255})
	if g.ui != nil {
		g.ui.Draw(screen)
	}
}

func (g *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
