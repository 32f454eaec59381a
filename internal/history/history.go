// Package history keeps the playlists generated during one interactive
// session. It is deliberately in-memory only: the session owns the Book and
// nothing survives process exit.
package history

import (
	"time"

	"github.com/google/uuid"

	"yoga-playlist/internal/schema"
)

// Entry is one successfully generated playlist.
type Entry struct {
	ID        string
	Theme     string
	Duration  int
	CreatedAt time.Time
	Plan      schema.ClassPlan
}

// Book is an append-only record of a session's playlists. It has a single
// writer (the action that triggered generation) and is never shared across
// goroutines.
type Book struct {
	entries []Entry
}

// NewBook returns an empty history.
func NewBook() *Book {
	return &Book{}
}

// Append records a generated plan. The plan is deep-copied so later mutation
// of the live plan can't rewrite history.
func (b *Book) Append(theme string, duration int, plan schema.ClassPlan) Entry {
	entry := Entry{
		ID:        uuid.NewString(),
		Theme:     theme,
		Duration:  duration,
		CreatedAt: time.Now(),
		Plan:      plan.Copy(),
	}
	b.entries = append(b.entries, entry)
	return entry
}

// Len returns the number of recorded playlists.
func (b *Book) Len() int {
	return len(b.entries)
}

// Recent returns up to n entries, most recent last, matching the order they
// were generated in.
func (b *Book) Recent(n int) []Entry {
	if n <= 0 || len(b.entries) == 0 {
		return nil
	}
	start := len(b.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]Entry, len(b.entries)-start)
	copy(out, b.entries[start:])
	return out
}
