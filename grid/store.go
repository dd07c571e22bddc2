// Package grid stores wave cells for a logically one-dimensional list of
// slots laid out in rows of a fixed width.
//
// Cells live in a single row-major slice whose length is always a multiple of
// the column width. Slot k sits at (k / columns, k % columns); positions past
// the logical count in the last row are padding but are always initialised.
package grid

import (
	"errors"
	"fmt"

	"github.com/milk9111/waveconfigurator/wave"
)

var ErrOutOfRange = errors.New("grid: out of range")

// Store is not safe for concurrent use.
type Store struct {
	columns int
	count   int
	cells   []wave.Cell
}

// New returns an empty store (zero rows) with the given column width.
func New(columns int) *Store {
	if columns <= 0 {
		panic(fmt.Sprintf("grid: columns must be positive, got %d", columns))
	}
	return &Store{columns: columns}
}

func (s *Store) Columns() int { return s.columns }

func (s *Store) Rows() int { return len(s.cells) / s.columns }

// Len is the logical slot count set by the last Resize.
func (s *Store) Len() int { return s.count }

// RowsFor returns ceil(count / columns).
func RowsFor(count, columns int) int {
	if count <= 0 {
		return 0
	}
	return (count + columns - 1) / columns
}

// Resize sets the logical count and grows or truncates the physical grid to
// RowsFor(count) rows. Cells whose position survives keep their content; new
// positions are filled with newCell(). When the row count is unchanged no
// cell is touched.
func (s *Store) Resize(count int, newCell func() wave.Cell) error {
	if count < 0 {
		return fmt.Errorf("%w: logical count %d", ErrOutOfRange, count)
	}
	rows := RowsFor(count, s.columns)
	if rows == s.Rows() {
		s.count = count
		return nil
	}

	next := make([]wave.Cell, rows*s.columns)
	kept := copy(next, s.cells)
	for i := kept; i < len(next); i++ {
		next[i] = newCell().Clone()
	}

	s.cells = next
	s.count = count
	return nil
}

// Position maps a slot index to its row and column.
func (s *Store) Position(slot int) (row, col int) {
	return slot / s.columns, slot % s.columns
}

// Slot maps a row and column to its slot index.
func (s *Store) Slot(row, col int) int {
	return row*s.columns + col
}

func (s *Store) index(row, col int) (int, error) {
	if row < 0 || row >= s.Rows() || col < 0 || col >= s.columns {
		return 0, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfRange, row, col, s.Rows(), s.columns)
	}
	return s.Slot(row, col), nil
}

// Get returns a copy of the cell at (row, col).
func (s *Store) Get(row, col int) (wave.Cell, error) {
	i, err := s.index(row, col)
	if err != nil {
		return wave.Cell{}, err
	}
	return s.cells[i].Clone(), nil
}

// Set replaces the cell at (row, col) with a copy of cell.
func (s *Store) Set(row, col int, cell wave.Cell) error {
	i, err := s.index(row, col)
	if err != nil {
		return err
	}
	s.cells[i] = cell.Clone()
	return nil
}

// ForEachLogical visits slots 0..count-1 in row-major order. It stops early
// when fn returns false or the physical grid runs out.
func (s *Store) ForEachLogical(count int, fn func(row, col int, cell wave.Cell) bool) {
	if count > len(s.cells) {
		count = len(s.cells)
	}
	for slot := 0; slot < count; slot++ {
		row, col := s.Position(slot)
		if !fn(row, col, s.cells[slot].Clone()) {
			return
		}
	}
}

// ApplyToAll replaces every physical cell, padding included, with the result
// of transform. If transform fails the store is left as it was.
func (s *Store) ApplyToAll(transform func(wave.Cell) (wave.Cell, error)) error {
	next := make([]wave.Cell, len(s.cells))
	for i, c := range s.cells {
		out, err := transform(c.Clone())
		if err != nil {
			row, col := s.Position(i)
			return fmt.Errorf("grid: transform cell (%d, %d): %w", row, col, err)
		}
		next[i] = out.Clone()
	}
	s.cells = next
	return nil
}

// Snapshot returns copies of all physical cells in row-major order.
func (s *Store) Snapshot() []wave.Cell {
	out := make([]wave.Cell, len(s.cells))
	for i, c := range s.cells {
		out[i] = c.Clone()
	}
	return out
}
