// Package document holds the state of one level being configured: the cell
// grid, level metadata, the default enemy type and the active edit session.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/waveconfigurator/catalog"
	"github.com/milk9111/waveconfigurator/grid"
	"github.com/milk9111/waveconfigurator/levelfile"
	"github.com/milk9111/waveconfigurator/script"
	"github.com/milk9111/waveconfigurator/session"
	"github.com/milk9111/waveconfigurator/wave"
)

var (
	ErrInvalidEnemy = errors.New("document: default enemy must be a normal enemy type")
	ErrOutOfLimits  = errors.New("document: cell outside configured limits")
	ErrInvalidSpeed = errors.New("document: level speed must be a finite number")
)

type Document struct {
	cat          *catalog.Catalog
	settings     catalog.Settings
	store        *grid.Store
	meta         levelfile.Meta
	defaultEnemy wave.EnemyType
	sel          session.Selector
}

// New returns a document with one slot, level 0 and speed 1.
func New(cat *catalog.Catalog, settings catalog.Settings) (*Document, error) {
	if err := settings.Validate(cat); err != nil {
		return nil, err
	}
	d := &Document{
		cat:          cat,
		settings:     settings,
		store:        grid.New(settings.Columns),
		meta:         levelfile.Meta{LevelNumber: 0, LevelSpeed: 1},
		defaultEnemy: settings.DefaultEnemy,
	}
	if err := d.store.Resize(1, d.factory()); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) Catalog() *catalog.Catalog { return d.cat }
func (d *Document) Settings() catalog.Settings { return d.settings }
func (d *Document) Count() int { return d.store.Len() }
func (d *Document) Columns() int { return d.store.Columns() }
func (d *Document) Rows() int { return d.store.Rows() }
func (d *Document) Meta() levelfile.Meta { return d.meta }
func (d *Document) DefaultEnemy() wave.EnemyType { return d.defaultEnemy }
func (d *Document) Rules() session.Rules { return session.RulesFrom(d.cat, d.settings) }
func (d *Document) ActiveSession() *session.Session { return d.sel.Current() }

func (d *Document) factory() func() wave.Cell {
	return d.settings.DefaultFactory(d.defaultEnemy)
}

// SetCount clamps n to [0, max_cells] and resizes the grid. An open session on
// a slot that no longer exists is cancelled.
func (d *Document) SetCount(n int) error {
	n = min(max(n, 0), d.settings.MaxCells)
	if err := d.store.Resize(n, d.factory()); err != nil {
		return fmt.Errorf("document: set count %d: %w", n, err)
	}
	if s := d.sel.Current(); s != nil && d.store.Slot(s.Row(), s.Col()) >= n {
		d.sel.Close()
	}
	return nil
}

func (d *Document) SetLevelNumber(n int) {
	d.meta.LevelNumber = n
}

// SetLevelSpeed rejects NaN and infinities, which a level file cannot hold.
func (d *Document) SetLevelSpeed(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, v)
	}
	d.meta.LevelSpeed = v
	return nil
}

// SetDefaultEnemy changes the enemy type of every stored cell, boss cells
// included, and of every cell created from now on.
func (d *Document) SetDefaultEnemy(t wave.EnemyType) error {
	if !d.cat.IsNormal(t) {
		return fmt.Errorf("%w: %q", ErrInvalidEnemy, t)
	}
	if t == d.defaultEnemy {
		return nil
	}
	err := d.store.ApplyToAll(func(c wave.Cell) (wave.Cell, error) {
		return c.WithEnemy(t), nil
	})
	if err != nil {
		return fmt.Errorf("document: set default enemy: %w", err)
	}
	d.defaultEnemy = t
	return nil
}

// Cell returns the cell at a logical slot.
func (d *Document) Cell(slot int) (wave.Cell, error) {
	if slot < 0 || slot >= d.store.Len() {
		return wave.Cell{}, fmt.Errorf("%w: slot %d of %d", grid.ErrOutOfRange, slot, d.store.Len())
	}
	return d.store.Get(d.store.Position(slot))
}

// Cells returns the logical slots in order.
func (d *Document) Cells() []wave.Cell {
	out := make([]wave.Cell, 0, d.store.Len())
	d.store.ForEachLogical(d.store.Len(), func(_, _ int, c wave.Cell) bool {
		out = append(out, c)
		return true
	})
	return out
}

// Open starts an edit session on slot, replacing any session already open.
func (d *Document) Open(slot int) (*session.Session, error) {
	seed, err := d.Cell(slot)
	if err != nil {
		return nil, err
	}
	row, col := d.store.Position(slot)
	return d.sel.Open(d.Rules(), row, col, seed), nil
}

// Apply commits s into the grid.
func (d *Document) Apply(s *session.Session) error {
	if s != d.sel.Current() {
		return fmt.Errorf("document: apply: %w", session.ErrClosed)
	}
	return s.Commit(d.store)
}

// ApplyScript runs a tengo transform over every stored cell. If the script
// fails or produces a cell outside the catalog or limits, nothing changes.
func (d *Document) ApplyScript(src []byte) error {
	tr, err := script.Compile(src)
	if err != nil {
		return err
	}
	return d.ApplyTransform(tr)
}

func (d *Document) ApplyTransform(tr *script.Transform) error {
	err := d.store.ApplyToAll(func(c wave.Cell) (wave.Cell, error) {
		out, err := tr.Apply(c)
		if err != nil {
			return wave.Cell{}, err
		}
		return out, d.admit(out)
	})
	if err != nil {
		return fmt.Errorf("document: apply script: %w", err)
	}
	d.sel.Close()
	return nil
}

// admit checks a cell produced by a script or the clipboard.
func (d *Document) admit(c wave.Cell) error {
	if err := d.cat.CheckCell(c); err != nil {
		return err
	}
	if c.IsMultiple {
		if c.Health < d.settings.BossHealthMin || c.Health > d.settings.BossHealthMax {
			return fmt.Errorf("%w: boss health %d", ErrOutOfLimits, c.Health)
		}
		return nil
	}
	if c.Count < d.settings.CountMin || c.Count > d.settings.CountMax {
		return fmt.Errorf("%w: count %d", ErrOutOfLimits, c.Count)
	}
	return nil
}

// Reset returns the document to one slot, level 0, speed 0 and the default
// enemy from settings. Every stored cell becomes a default cell.
func (d *Document) Reset() error {
	d.sel.Close()
	d.defaultEnemy = d.settings.DefaultEnemy
	d.meta = levelfile.Meta{}
	if err := d.store.Resize(1, d.factory()); err != nil {
		return err
	}
	return d.store.ApplyToAll(func(wave.Cell) (wave.Cell, error) {
		return d.settings.DefaultCell(d.defaultEnemy), nil
	})
}

// Level flattens the document into its persisted form.
func (d *Document) Level() levelfile.Level {
	return levelfile.Flatten(d.store, d.store.Len(), d.meta)
}

func (d *Document) Save(path string) error {
	return levelfile.Save(path, d.Level())
}

// Load replaces the grid and metadata with the level at path. On any error
// the document is unchanged.
func (d *Document) Load(path string) error {
	lvl, err := levelfile.Load(path)
	if err != nil {
		return err
	}
	return d.LoadLevel(lvl)
}

func (d *Document) LoadBytes(data []byte) error {
	lvl, err := levelfile.Decode(data)
	if err != nil {
		return err
	}
	return d.LoadLevel(lvl)
}

// LoadLevel swaps in lvl after checking every record against the catalog.
func (d *Document) LoadLevel(lvl levelfile.Level) error {
	if n := len(lvl.EnemiesLevelConfigs); n > d.settings.MaxCells {
		return fmt.Errorf("%w: %d records, at most %d allowed", levelfile.ErrDeserialization, n, d.settings.MaxCells)
	}
	for i, r := range lvl.EnemiesLevelConfigs {
		if err := d.cat.CheckCell(r.Cell()); err != nil {
			return fmt.Errorf("%w: record %d: %w", levelfile.ErrDeserialization, i, err)
		}
	}
	store, _, meta, err := levelfile.Rebuild(lvl, d.settings.Columns, d.settings.DefaultCell(d.defaultEnemy))
	if err != nil {
		return err
	}

	d.sel.Close()
	d.store = store
	d.meta = meta
	return nil
}

// ReplaceCatalog installs a reloaded catalog and settings. Stored cells are
// kept, so every one of them, padding included, must still be valid under
// cat; otherwise the reload is rejected and nothing changes. A column change
// re-lays the grid out in slot order.
func (d *Document) ReplaceCatalog(cat *catalog.Catalog, settings catalog.Settings) error {
	if err := settings.Validate(cat); err != nil {
		return err
	}
	for i, c := range d.store.Snapshot() {
		if err := cat.CheckCell(c); err != nil {
			return fmt.Errorf("document: replace catalog: slot %d: %w", i, err)
		}
	}

	enemy := d.defaultEnemy
	if !cat.IsNormal(enemy) {
		enemy = settings.DefaultEnemy
	}
	store := d.store
	if settings.Columns != d.store.Columns() {
		var err error
		store, _, _, err = levelfile.Rebuild(d.Level(), settings.Columns, settings.DefaultCell(enemy))
		if err != nil {
			return fmt.Errorf("document: relayout: %w", err)
		}
	}

	d.sel.Close()
	d.store = store
	d.cat = cat
	d.settings = settings
	d.defaultEnemy = enemy
	return nil
}

// CopyCell encodes one slot as a level record.
func (d *Document) CopyCell(slot int) ([]byte, error) {
	c, err := d.Cell(slot)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(levelfile.RecordFrom(c))
	if err != nil {
		return nil, fmt.Errorf("document: copy cell: %w", err)
	}
	return data, nil
}

// PasteCell overwrites slot with a record produced by CopyCell.
func (d *Document) PasteCell(slot int, data []byte) error {
	if slot < 0 || slot >= d.store.Len() {
		return fmt.Errorf("%w: slot %d of %d", grid.ErrOutOfRange, slot, d.store.Len())
	}
	var r levelfile.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("%w: %w", levelfile.ErrDeserialization, err)
	}
	c := r.Cell()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %w", levelfile.ErrDeserialization, err)
	}
	if err := d.admit(c); err != nil {
		return fmt.Errorf("%w: %w", levelfile.ErrDeserialization, err)
	}

	row, col := d.store.Position(slot)
	if s := d.sel.Current(); s != nil && s.Row() == row && s.Col() == col {
		d.sel.Close()
	}
	return d.store.Set(row, col, c)
}
