package main

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/milk9111/waveconfigurator/levelfile"
	"github.com/milk9111/waveconfigurator/levels"
	"github.com/milk9111/waveconfigurator/script"
	"github.com/milk9111/waveconfigurator/wave"
	"golang.design/x/clipboard"
)

// normalizeSavePath resolves the File field into a path under dir. An empty
// name falls back to level_<n>.json.
func normalizeSavePath(dir, name string, levelNumber int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return levelfile.DefaultPath(dir, levelNumber)
	}
	if filepath.Ext(name) == "" {
		name += ".json"
	}
	if filepath.IsAbs(name) || filepath.Dir(name) != "." {
		return name
	}
	return filepath.Join(dir, name)
}

func (g *Editor) Save() {
	path := normalizeSavePath(g.levelDir, g.fileName, g.doc.Meta().LevelNumber)
	if err := g.doc.Save(path); err != nil {
		g.setStatus("Save failed: %v", err)
		return
	}
	g.fileName = path
	g.setStatus("Saved level: %s", path)
}

func (g *Editor) Load() {
	if strings.TrimSpace(g.fileName) == "" {
		g.setStatus("No filename specified in File field; load aborted")
		return
	}
	path := normalizeSavePath(g.levelDir, g.fileName, 0)
	if err := g.doc.Load(path); err != nil {
		g.setStatus("Load failed: %v", err)
		return
	}
	g.fileName = path
	g.cursor = 0
	g.clampView()
	g.setStatus("Loaded level: %s (%d waves)", path, g.doc.Count())
}

// LoadSample cycles through the embedded sample levels.
func (g *Editor) LoadSample() {
	names := levels.Names()
	if len(names) == 0 {
		g.setStatus("No sample levels")
		return
	}
	name := names[g.sample%len(names)]
	g.sample++

	lvl, err := levels.LoadLevelFromFS(name)
	if err == nil {
		err = g.doc.LoadLevel(lvl)
	}
	if err != nil {
		g.setStatus("Sample %s failed: %v", name, err)
		return
	}
	g.fileName = ""
	g.cursor = 0
	g.clampView()
	g.setStatus("Loaded sample %s", name)
}

func (g *Editor) Reset() {
	if err := g.doc.Reset(); err != nil {
		g.setStatus("Reset failed: %v", err)
		return
	}
	g.cursor = 0
	g.page = 0
	g.setStatus("Level reset")
}

func (g *Editor) RunScript() {
	path := strings.TrimSpace(g.scriptPath)
	if path == "" {
		g.setStatus("No script specified")
		return
	}
	tr, err := script.CompileFile(path)
	if err == nil {
		err = g.doc.ApplyTransform(tr)
	}
	if err != nil {
		g.setStatus("Script failed: %v", err)
		return
	}
	g.setStatus("Applied %s to %d waves", filepath.Base(path), g.doc.Count())
}

func (g *Editor) SetCount(n int) {
	if err := g.doc.SetCount(n); err != nil {
		g.setStatus("Count: %v", err)
		return
	}
	g.clampView()
}

func (g *Editor) SetDefaultEnemy(t wave.EnemyType) {
	if t == g.doc.DefaultEnemy() {
		return
	}
	if err := g.doc.SetDefaultEnemy(t); err != nil {
		g.setStatus("Default enemy: %v", err)
		return
	}
	g.setStatus("All waves now use %s", t)
}

// SetLevelNumber and SetLevelSpeed take the raw text of their inputs.
func (g *Editor) SetLevelNumber(s string) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		g.setStatus("Level number must be an integer")
		return
	}
	g.doc.SetLevelNumber(n)
}

func (g *Editor) SetLevelSpeed(s string) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err == nil {
		err = g.doc.SetLevelSpeed(v)
	}
	if err != nil {
		g.setStatus("Level speed must be a number")
	}
}

func (g *Editor) OpenCell(slot int) {
	if _, err := g.doc.Open(slot); err != nil {
		g.setStatus("Open: %v", err)
		return
	}
	g.cursor = slot
	g.dirty = true
}

func (g *Editor) ApplySession() {
	s := g.doc.ActiveSession()
	if s == nil {
		return
	}
	if err := g.doc.Apply(s); err != nil {
		g.setStatus("Apply: %v", err)
		return
	}
	g.dirty = true
}

// CopyCell puts the cursor cell on the system clipboard as JSON.
func (g *Editor) CopyCell() {
	if !g.clipboard {
		g.setStatus("Clipboard unavailable")
		return
	}
	data, err := g.doc.CopyCell(g.cursor)
	if err != nil {
		g.setStatus("Copy: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus("Copied wave %d", g.cursor)
}

func (g *Editor) PasteCell() {
	if !g.clipboard {
		g.setStatus("Clipboard unavailable")
		return
	}
	g.pasteBytes(clipboard.Read(clipboard.FmtText))
}

func (g *Editor) pasteBytes(data []byte) {
	if len(data) == 0 {
		g.setStatus("Clipboard is empty")
		return
	}
	if err := g.doc.PasteCell(g.cursor, data); err != nil {
		g.setStatus("Paste: %v", err)
		return
	}
	g.setStatus("Pasted into wave %d", g.cursor)
}
