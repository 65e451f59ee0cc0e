package commands

import "strings"

// maxHistory bounds the lines Line remembers.
const maxHistory = 50

// Line is the console's input line with a history of submitted lines. Prev and Next walk the
// history like a shell; the line being typed is kept as a draft while browsing.
type Line struct {
	buf     []rune
	history []string
	// pos indexes history while browsing; len(history) means the draft.
	pos   int
	draft string
}

func (l *Line) String() string {
	return string(l.buf)
}

// Insert appends s at the end of the line.
func (l *Line) Insert(s string) {
	l.buf = append(l.buf, []rune(s)...)
	l.pos = len(l.history)
}

// Backspace removes the last rune.
func (l *Line) Backspace() {
	if len(l.buf) > 0 {
		l.buf = l.buf[:len(l.buf)-1]
	}
}

// Submit clears the line and returns its trimmed text. Blank lines report false and are not
// remembered; a line equal to the newest history entry is not stored twice.
func (l *Line) Submit() (string, bool) {
	s := strings.TrimSpace(string(l.buf))
	l.buf = l.buf[:0]
	l.draft = ""
	if s == "" {
		l.pos = len(l.history)
		return "", false
	}
	if n := len(l.history); n == 0 || l.history[n-1] != s {
		l.history = append(l.history, s)
		if len(l.history) > maxHistory {
			l.history = l.history[len(l.history)-maxHistory:]
		}
	}
	l.pos = len(l.history)
	return s, true
}

// Prev replaces the line with the previous history entry.
func (l *Line) Prev() {
	if l.pos == 0 {
		return
	}
	if l.pos == len(l.history) {
		l.draft = string(l.buf)
	}
	l.pos--
	l.buf = []rune(l.history[l.pos])
}

// Next moves toward the newest entry, ending at the draft.
func (l *Line) Next() {
	if l.pos >= len(l.history) {
		return
	}
	l.pos++
	if l.pos == len(l.history) {
		l.buf = []rune(l.draft)
		return
	}
	l.buf = []rune(l.history[l.pos])
}

// History returns the remembered lines, oldest first.
func (l *Line) History() []string {
	return l.history
}

// Window returns the index range [start, end) of the n lines shown out of total when scrolled
// back by scroll lines from the newest. scroll is clamped to the available range.
func Window(total, n, scroll int) (start, end int) {
	if n <= 0 || total <= 0 {
		return 0, 0
	}
	scroll = max(0, min(scroll, total-n))
	end = total - scroll
	start = max(0, end-n)
	return start, end
}
