// Package session implements the edit session for a single wave cell.
//
// A session works on a private copy of the cell. Nothing reaches the grid
// until Commit, and Commit is refused unless CanApply holds.
package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/milk9111/waveconfigurator/catalog"
	"github.com/milk9111/waveconfigurator/wave"
)

var (
	ErrClosed        = errors.New("session: closed")
	ErrInvalidCommit = errors.New("session: selection is not eligible for commit")
	ErrNotEditable   = errors.New("session: field is not editable in this mode")
	ErrUnknownType   = errors.New("session: unknown type")
)

type Mode int

const (
	Standard Mode = iota
	Boss
)

func (m Mode) String() string {
	switch m {
	case Standard:
		return "Standard"
	case Boss:
		return "Boss"
	default:
		return "Unknown"
	}
}

// Rules are the catalog-derived choices and limits a session enforces.
type Rules struct {
	Elements        []wave.ElementType
	Normal          []wave.EnemyType
	Boss            []wave.EnemyType
	CountMin        int
	CountMax        int
	HealthMin       int
	HealthMax       int
	DefaultEnemy    wave.EnemyType
	FallbackElement wave.ElementType
}

func RulesFrom(cat *catalog.Catalog, s catalog.Settings) Rules {
	normal, boss := cat.Categories()
	return Rules{
		Elements:        cat.ElementTypes(),
		Normal:          normal,
		Boss:            boss,
		CountMin:        s.CountMin,
		CountMax:        s.CountMax,
		HealthMin:       s.BossHealthMin,
		HealthMax:       s.BossHealthMax,
		DefaultEnemy:    s.DefaultEnemy,
		FallbackElement: s.FallbackElement,
	}
}

// CellWriter receives the committed cell. *grid.Store satisfies it.
type CellWriter interface {
	Set(row, col int, cell wave.Cell) error
}

type Session struct {
	rules    Rules
	row, col int
	mode     Mode

	element  wave.ElementType
	elements []wave.ElementType
	enemy    wave.EnemyType
	count    int
	health   int

	// memos carried across mode toggles
	lastNormal wave.EnemyType
	lastSingle wave.ElementType
	lastCount  int

	hasSingleElement bool
	hasType          bool
	closed           bool
}

// Open starts a session for the cell at (row, col) seeded from seed. The
// seeded element and enemy type count as chosen.
func Open(rules Rules, row, col int, seed wave.Cell) *Session {
	s := &Session{
		rules:            rules,
		row:              row,
		col:              col,
		element:          seed.First(),
		elements:         slices.Clone(seed.Elements),
		enemy:            seed.EnemyType,
		count:            seed.Count,
		health:           seed.Health,
		lastNormal:       rules.DefaultEnemy,
		lastSingle:       rules.FallbackElement,
		lastCount:        rules.CountMin,
		hasSingleElement: true,
		hasType:          true,
	}
	if s.element == "" {
		s.element = rules.FallbackElement
	}
	if seed.IsMultiple {
		s.mode = Boss
		s.count = 1
	} else if slices.Contains(rules.Normal, seed.EnemyType) {
		s.lastNormal = seed.EnemyType
	}
	return s
}

func (s *Session) Row() int { return s.row }
func (s *Session) Col() int { return s.col }
func (s *Session) Mode() Mode { return s.mode }
func (s *Session) IsMultiple() bool { return s.mode == Boss }
func (s *Session) Element() wave.ElementType { return s.element }
func (s *Session) Elements() []wave.ElementType { return slices.Clone(s.elements) }
func (s *Session) Enemy() wave.EnemyType { return s.enemy }
func (s *Session) Count() int { return s.count }
func (s *Session) Health() int { return s.health }
func (s *Session) LastNormal() wave.EnemyType { return s.lastNormal }
func (s *Session) HasSingleElement() bool { return s.hasSingleElement }
func (s *Session) HasType() bool { return s.hasType }
func (s *Session) Closed() bool { return s.closed }
func (s *Session) ElementChoices() []wave.ElementType { return slices.Clone(s.rules.Elements) }

// EnemyChoices lists the enemy types offered in the current mode.
func (s *Session) EnemyChoices() []wave.EnemyType {
	if s.mode == Boss {
		return slices.Clone(s.rules.Boss)
	}
	return slices.Clone(s.rules.Normal)
}

// SetMultiple switches between Standard and Boss mode.
func (s *Session) SetMultiple(on bool) error {
	if s.closed {
		return ErrClosed
	}
	switch {
	case on && s.mode == Standard:
		s.enterBoss()
	case !on && s.mode == Boss:
		s.enterStandard()
	}
	return nil
}

func (s *Session) enterBoss() {
	if slices.Contains(s.rules.Normal, s.enemy) {
		s.lastNormal = s.enemy
	}
	s.lastSingle = s.element
	s.lastCount = s.count

	s.mode = Boss
	s.enemy = ""
	if len(s.rules.Boss) > 0 {
		s.enemy = s.rules.Boss[0]
	}
	s.hasType = false
	s.elements = s.elements[:0]
	s.health = s.rules.HealthMin
	s.count = 1
}

func (s *Session) enterStandard() {
	s.mode = Standard
	s.enemy = s.lastNormal
	s.count = s.lastCount
	s.hasType = true
	if len(s.elements) > 0 {
		s.element = s.elements[0]
	} else {
		s.element = s.lastSingle
	}
	s.hasSingleElement = true
}

// PickElement selects the single element of a Standard cell.
func (s *Session) PickElement(e wave.ElementType) error {
	if s.closed {
		return ErrClosed
	}
	if s.mode != Standard {
		return fmt.Errorf("%w: single element in %s mode", ErrNotEditable, s.mode)
	}
	if !slices.Contains(s.rules.Elements, e) {
		return fmt.Errorf("%w: element %q", ErrUnknownType, e)
	}
	s.element = e
	s.hasSingleElement = true
	return nil
}

// ToggleElement adds e to the Boss selection, or removes it if present.
// Selection order is kept.
func (s *Session) ToggleElement(e wave.ElementType) error {
	if s.closed {
		return ErrClosed
	}
	if s.mode != Boss {
		return fmt.Errorf("%w: element set in %s mode", ErrNotEditable, s.mode)
	}
	if !slices.Contains(s.rules.Elements, e) {
		return fmt.Errorf("%w: element %q", ErrUnknownType, e)
	}
	if i := slices.Index(s.elements, e); i >= 0 {
		s.elements = slices.Delete(s.elements, i, i+1)
		return nil
	}
	s.elements = append(s.elements, e)
	return nil
}

// PickEnemy selects an enemy type from the current mode's category.
func (s *Session) PickEnemy(t wave.EnemyType) error {
	if s.closed {
		return ErrClosed
	}
	if !slices.Contains(s.EnemyChoices(), t) {
		return fmt.Errorf("%w: %q is not a %s enemy type", ErrUnknownType, t, s.mode)
	}
	s.enemy = t
	s.hasType = true
	return nil
}

// SetCount clamps n into the configured count range. Boss cells always
// spawn once.
func (s *Session) SetCount(n int) error {
	if s.closed {
		return ErrClosed
	}
	if s.mode == Boss {
		return fmt.Errorf("%w: count is fixed at 1 in %s mode", ErrNotEditable, s.mode)
	}
	s.count = clamp(n, s.rules.CountMin, s.rules.CountMax)
	return nil
}

// SetHealth clamps n into the boss health range.
func (s *Session) SetHealth(n int) error {
	if s.closed {
		return ErrClosed
	}
	if s.mode != Boss {
		return fmt.Errorf("%w: health in %s mode", ErrNotEditable, s.mode)
	}
	s.health = clamp(n, s.rules.HealthMin, s.rules.HealthMax)
	return nil
}

func (s *Session) CanApply() bool {
	if s.mode == Boss {
		return wave.DistinctCount(s.elements) >= 2 && s.hasType
	}
	return s.hasSingleElement && s.hasType
}

// Reason explains why Apply is unavailable, or returns "" when it is.
func (s *Session) Reason() string {
	switch {
	case s.CanApply():
		return ""
	case s.mode == Boss && wave.DistinctCount(s.elements) < 2:
		return "Please select at least 2 Element Types for Boss"
	case s.mode == Boss:
		return "Please select Enemy Type"
	default:
		return "Please select both Element Type and Enemy Type"
	}
}

// Preview returns the cell Commit would write.
func (s *Session) Preview() wave.Cell {
	if s.mode == Boss {
		return wave.NewBoss(s.elements, s.enemy, s.health)
	}
	return wave.NewStandard(s.element, s.enemy, s.count)
}

// Commit writes the working copy to dst and ends the session. A failed write
// leaves the session open.
func (s *Session) Commit(dst CellWriter) error {
	if s.closed {
		return ErrClosed
	}
	if !s.CanApply() {
		return fmt.Errorf("%w: %s", ErrInvalidCommit, s.Reason())
	}
	if err := dst.Set(s.row, s.col, s.Preview()); err != nil {
		return fmt.Errorf("session: commit (%d, %d): %w", s.row, s.col, err)
	}
	if s.mode == Standard {
		s.lastNormal = s.enemy
	}
	s.closed = true
	return nil
}

// Cancel ends the session without writing anything.
func (s *Session) Cancel() {
	s.closed = true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
