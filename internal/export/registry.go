package export

import (
	"strings"

	"retroexport/internal/board"
)

// Serializer renders a board in one output format. Name doubles as the
// file extension of the format.
type Serializer interface {
	Name() string
	Serialize(b *board.Board) string
}

var registry = map[string]Serializer{}

// Register adds s under its name and any extra aliases, lowercased.
func Register(s Serializer, aliases ...string) {
	registry[strings.ToLower(s.Name())] = s
	for _, a := range aliases {
		registry[strings.ToLower(a)] = s
	}
}

// Get looks up a serializer by format name.
func Get(name string) (Serializer, bool) {
	s, ok := registry[strings.ToLower(name)]
	return s, ok
}
