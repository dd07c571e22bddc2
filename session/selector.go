package session

import "github.com/milk9111/waveconfigurator/wave"

// Selector owns the one open session. Opening a new session cancels the
// previous one, so a stale handle only ever returns ErrClosed.
type Selector struct {
	current *Session
}

func (sel *Selector) Open(rules Rules, row, col int, seed wave.Cell) *Session {
	sel.Close()
	sel.current = Open(rules, row, col, seed)
	return sel.current
}

// Current returns the open session, or nil.
func (sel *Selector) Current() *Session {
	if sel.current == nil || sel.current.closed {
		return nil
	}
	return sel.current
}

// Close cancels the open session, if any.
func (sel *Selector) Close() {
	if sel.current != nil {
		sel.current.Cancel()
		sel.current = nil
	}
}
