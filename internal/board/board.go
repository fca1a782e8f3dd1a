// Package board holds the extracted retrospective model and the walk
// that builds it from a rendered page.
package board

// Message is a single retrospective note. VoteCount is always at or
// above the configured threshold; the extractor never emits one below.
type Message struct {
	Text      string
	VoteCount int
}

// Column is a named group of messages in on-screen order. Zero
// messages is a valid state, not an error.
type Column struct {
	Title    string
	Messages []Message
}

// Board is the full retrospective artifact, built fresh per export run
// and never mutated afterwards.
type Board struct {
	Title   string
	Columns []Column
}
