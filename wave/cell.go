package wave

import (
	"errors"
	"fmt"
	"strings"
)

// ElementType tags the element a wave is made of (Red, Green, ...). The set of
// valid values is owned by the catalog.
type ElementType string

// EnemyType tags the enemy archetype a wave spawns.
type EnemyType string

var ErrInvalidCell = errors.New("wave: invalid cell")

// Cell is the configuration of one wave slot.
//
// A standard cell (IsMultiple == false) has exactly one element and a
// configurable Count. A boss cell (IsMultiple == true) carries two or more
// distinct elements, a Count of 1 and a Health taken from the boss range.
type Cell struct {
	Elements   []ElementType
	EnemyType  EnemyType
	Count      int
	Health     int
	IsMultiple bool
}

// NewStandard builds a single-element cell with health 1.
func NewStandard(element ElementType, enemy EnemyType, count int) Cell {
	return Cell{
		Elements:  []ElementType{element},
		EnemyType: enemy,
		Count:     count,
		Health:    1,
	}
}

// NewBoss builds a multiple-element cell. Count is always 1.
func NewBoss(elements []ElementType, enemy EnemyType, health int) Cell {
	return Cell{
		Elements:   append([]ElementType(nil), elements...),
		EnemyType:  enemy,
		Count:      1,
		Health:     health,
		IsMultiple: true,
	}
}

// First returns the first element, or "" when the cell has none.
func (c Cell) First() ElementType {
	if len(c.Elements) == 0 {
		return ""
	}
	return c.Elements[0]
}

// Clone returns a copy that shares no memory with c.
func (c Cell) Clone() Cell {
	out := c
	if c.Elements != nil {
		out.Elements = append([]ElementType(nil), c.Elements...)
	}
	return out
}

// WithEnemy returns a copy of c with only the enemy type replaced.
func (c Cell) WithEnemy(enemy EnemyType) Cell {
	out := c.Clone()
	out.EnemyType = enemy
	return out
}

// Equal reports whether both cells describe the same wave. Boss cells compare
// their elements as sets; standard cells compare them in order.
func (c Cell) Equal(o Cell) bool {
	if c.EnemyType != o.EnemyType || c.Count != o.Count || c.Health != o.Health || c.IsMultiple != o.IsMultiple {
		return false
	}
	if len(c.Elements) != len(o.Elements) {
		return false
	}
	if !c.IsMultiple {
		for i := range c.Elements {
			if c.Elements[i] != o.Elements[i] {
				return false
			}
		}
		return true
	}
	seen := make(map[ElementType]int, len(c.Elements))
	for _, e := range c.Elements {
		seen[e]++
	}
	for _, e := range o.Elements {
		if seen[e] == 0 {
			return false
		}
		seen[e]--
	}
	return true
}

// Validate checks the structural invariants of a stored cell.
func (c Cell) Validate() error {
	if len(c.Elements) == 0 {
		return fmt.Errorf("%w: no elements", ErrInvalidCell)
	}
	for _, e := range c.Elements {
		if e == "" {
			return fmt.Errorf("%w: empty element tag", ErrInvalidCell)
		}
	}
	if c.EnemyType == "" {
		return fmt.Errorf("%w: empty enemy type", ErrInvalidCell)
	}
	if c.Count < 1 {
		return fmt.Errorf("%w: count %d < 1", ErrInvalidCell, c.Count)
	}
	if c.Health < 1 {
		return fmt.Errorf("%w: health %d < 1", ErrInvalidCell, c.Health)
	}
	if !c.IsMultiple {
		if len(c.Elements) != 1 {
			return fmt.Errorf("%w: standard cell has %d elements", ErrInvalidCell, len(c.Elements))
		}
		return nil
	}
	if c.Count != 1 {
		return fmt.Errorf("%w: boss cell count %d != 1", ErrInvalidCell, c.Count)
	}
	if DistinctCount(c.Elements) < 2 {
		return fmt.Errorf("%w: boss cell needs at least 2 distinct elements", ErrInvalidCell)
	}
	return nil
}

func (c Cell) String() string {
	parts := make([]string, len(c.Elements))
	for i, e := range c.Elements {
		parts[i] = string(e)
	}
	kind := "standard"
	if c.IsMultiple {
		kind = "boss"
	}
	return fmt.Sprintf("%s[%s] %s x%d hp=%d", kind, strings.Join(parts, ","), c.EnemyType, c.Count, c.Health)
}

// DistinctCount returns the number of distinct elements in es.
func DistinctCount(es []ElementType) int {
	seen := make(map[ElementType]struct{}, len(es))
	for _, e := range es {
		seen[e] = struct{}{}
	}
	return len(seen)
}
