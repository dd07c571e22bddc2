// Package levelfile converts between a grid of wave cells and the flat JSON
// level document, and reads and writes that document on disk.
package levelfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/milk9111/waveconfigurator/grid"
	"github.com/milk9111/waveconfigurator/wave"
)

var ErrDeserialization = errors.New("levelfile: malformed level")

// Meta is the level-wide data stored next to the wave records.
type Meta struct {
	LevelNumber int
	LevelSpeed  float64
}

// Level is the persisted document. Record order is the logical slot order.
type Level struct {
	LevelNumber         int      `json:"levelNumber"`
	LevelSpeed          float64  `json:"levelSpeed"`
	EnemiesLevelConfigs []Record `json:"enemiesLevelConfigs"`
}

// Record is one persisted wave slot.
type Record struct {
	ElementTypes []wave.ElementType `json:"elementTypes"`
	EnemyType    wave.EnemyType     `json:"enemyType"`
	Count        int                `json:"count"`
	IsMultiple   bool               `json:"isMultiple"`
	Health       int                `json:"health"`
}

func (l Level) Meta() Meta {
	return Meta{LevelNumber: l.LevelNumber, LevelSpeed: l.LevelSpeed}
}

func RecordFrom(c wave.Cell) Record {
	return Record{
		ElementTypes: append([]wave.ElementType(nil), c.Elements...),
		EnemyType:    c.EnemyType,
		Count:        c.Count,
		IsMultiple:   c.IsMultiple,
		Health:       c.Health,
	}
}

func (r Record) Cell() wave.Cell {
	return wave.Cell{
		Elements:   append([]wave.ElementType(nil), r.ElementTypes...),
		EnemyType:  r.EnemyType,
		Count:      r.Count,
		Health:     r.Health,
		IsMultiple: r.IsMultiple,
	}
}

// LogicalWalker is the part of a cell store Flatten reads from.
type LogicalWalker interface {
	ForEachLogical(count int, fn func(row, col int, cell wave.Cell) bool)
}

// Flatten emits one record per logical slot 0..count-1, in row-major order.
func Flatten(store LogicalWalker, count int, meta Meta) Level {
	lvl := Level{
		LevelNumber:         meta.LevelNumber,
		LevelSpeed:          meta.LevelSpeed,
		EnemiesLevelConfigs: make([]Record, 0, max(count, 0)),
	}
	store.ForEachLogical(count, func(_, _ int, cell wave.Cell) bool {
		lvl.EnemiesLevelConfigs = append(lvl.EnemiesLevelConfigs, RecordFrom(cell))
		return true
	})
	return lvl
}

// Rebuild builds a fresh store from lvl. The record count becomes the logical
// count; padding positions in the last row get copies of fallback.
func Rebuild(lvl Level, columns int, fallback wave.Cell) (*grid.Store, int, Meta, error) {
	records := lvl.EnemiesLevelConfigs
	for i, r := range records {
		if err := r.Cell().Validate(); err != nil {
			return nil, 0, Meta{}, fmt.Errorf("%w: record %d: %w", ErrDeserialization, i, err)
		}
	}

	store := grid.New(columns)
	next := 0
	err := store.Resize(len(records), func() wave.Cell {
		if next < len(records) {
			c := records[next].Cell()
			next++
			return c
		}
		return fallback
	})
	if err != nil {
		return nil, 0, Meta{}, err
	}
	return store, len(records), lvl.Meta(), nil
}

// Decode parses and structurally validates a level document.
func Decode(data []byte) (Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return Level{}, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}
	for i, r := range lvl.EnemiesLevelConfigs {
		if err := r.Cell().Validate(); err != nil {
			return Level{}, fmt.Errorf("%w: record %d: %w", ErrDeserialization, i, err)
		}
	}
	return lvl, nil
}

func Encode(lvl Level) ([]byte, error) {
	if lvl.EnemiesLevelConfigs == nil {
		lvl.EnemiesLevelConfigs = []Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lvl); err != nil {
		return nil, fmt.Errorf("levelfile: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Load reads and decodes the level at path.
func Load(path string) (Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("levelfile: read %s: %w", path, err)
	}
	lvl, err := Decode(b)
	if err != nil {
		return Level{}, fmt.Errorf("levelfile: load %s: %w", path, err)
	}
	return lvl, nil
}

// Save writes lvl to path through a temporary file in the same directory, so
// a failed save never leaves a partial document behind.
func Save(path string, lvl Level) error {
	data, err := Encode(lvl)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("levelfile: create %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, ".level-*.json.tmp")
	if err != nil {
		return fmt.Errorf("levelfile: save %s: %w", path, err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("levelfile: save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("levelfile: save %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("levelfile: save %s: %w", path, err)
	}
	return nil
}

// DefaultPath is where a level is saved when no file name was given.
func DefaultPath(dir string, levelNumber int) string {
	return filepath.Join(dir, fmt.Sprintf("level_%d.json", levelNumber))
}
