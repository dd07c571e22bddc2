// Package script runs tengo scripts as bulk cell transforms.
//
// A script sees one global, cell, a map with the keys elements (array of
// strings), enemy, count, health and multiple. Whatever cell holds after the
// script finishes becomes the new cell:
//
//	if cell.enemy == "Ghost" && !cell.multiple {
//		cell.count = cell.count * 2
//	}
package script

import (
	"errors"
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/waveconfigurator/wave"
)

var ErrBadResult = errors.New("script: bad result")

const cellVar = "cell"

// Transform is a compiled script. It is not safe for concurrent use.
type Transform struct {
	compiled *tengo.Compiled
}

func Compile(src []byte) (*Transform, error) {
	s := tengo.NewScript(src)
	if err := s.Add(cellVar, map[string]any{}); err != nil {
		return nil, fmt.Errorf("script: declare %s: %w", cellVar, err)
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	return &Transform{compiled: compiled}, nil
}

func CompileFile(path string) (*Transform, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	return Compile(src)
}

// Apply runs the script against c and returns the resulting cell, which must
// pass wave.Cell.Validate.
func (t *Transform) Apply(c wave.Cell) (wave.Cell, error) {
	if err := t.compiled.Set(cellVar, toScript(c)); err != nil {
		return wave.Cell{}, fmt.Errorf("script: set %s: %w", cellVar, err)
	}
	if err := t.compiled.Run(); err != nil {
		return wave.Cell{}, fmt.Errorf("script: run: %w", err)
	}

	out, err := fromScript(t.compiled.Get(cellVar).Map())
	if err != nil {
		return wave.Cell{}, err
	}
	if err := out.Validate(); err != nil {
		return wave.Cell{}, fmt.Errorf("%w: %w", ErrBadResult, err)
	}
	return out, nil
}

func toScript(c wave.Cell) map[string]any {
	elements := make([]any, len(c.Elements))
	for i, e := range c.Elements {
		elements[i] = string(e)
	}
	return map[string]any{
		"elements": elements,
		"enemy":    string(c.EnemyType),
		"count":    c.Count,
		"health":   c.Health,
		"multiple": c.IsMultiple,
	}
}

func fromScript(m map[string]any) (wave.Cell, error) {
	if m == nil {
		return wave.Cell{}, fmt.Errorf("%w: %s is not a map", ErrBadResult, cellVar)
	}

	var c wave.Cell
	rawElements, ok := m["elements"].([]any)
	if !ok {
		return wave.Cell{}, fmt.Errorf("%w: elements must be an array", ErrBadResult)
	}
	for _, raw := range rawElements {
		s, ok := raw.(string)
		if !ok {
			return wave.Cell{}, fmt.Errorf("%w: element %v is not a string", ErrBadResult, raw)
		}
		c.Elements = append(c.Elements, wave.ElementType(s))
	}

	enemy, ok := m["enemy"].(string)
	if !ok {
		return wave.Cell{}, fmt.Errorf("%w: enemy must be a string", ErrBadResult)
	}
	c.EnemyType = wave.EnemyType(enemy)

	if c.Count, ok = asInt(m["count"]); !ok {
		return wave.Cell{}, fmt.Errorf("%w: count must be an int", ErrBadResult)
	}
	if c.Health, ok = asInt(m["health"]); !ok {
		return wave.Cell{}, fmt.Errorf("%w: health must be an int", ErrBadResult)
	}
	if c.IsMultiple, ok = m["multiple"].(bool); !ok {
		return wave.Cell{}, fmt.Errorf("%w: multiple must be a bool", ErrBadResult)
	}
	return c, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}
