package main

import (
	"fmt"
	"strings"

	"github.com/milk9111/waveconfigurator/wave"
)

// cellLabel is the short text shown on a grid button.
func cellLabel(c wave.Cell) string {
	name := []rune(strings.TrimSuffix(string(c.EnemyType), "_Boss"))
	if len(name) > 6 {
		name = name[:6]
	}
	if c.IsMultiple {
		return fmt.Sprintf("*%s h%d", string(name), c.Health)
	}
	return fmt.Sprintf("%s x%d", string(name), c.Count)
}

func pageCount(rows int) int {
	return max(1, (rows+rowsPerPage-1)/rowsPerPage)
}

func pageOf(slot, columns int) int {
	return slot / columns / rowsPerPage
}

// pageSlots returns the physical slot range [start, end) shown on page.
func pageSlots(page, columns, rows int) (start, end int) {
	start = page * rowsPerPage * columns
	end = min(start+rowsPerPage*columns, rows*columns)
	return start, max(start, end)
}

func joinElements(es []wave.ElementType) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = string(e)
	}
	return strings.Join(parts, ", ")
}
