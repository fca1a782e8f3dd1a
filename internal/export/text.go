package export

import (
	"fmt"
	"strings"

	"retroexport/internal/board"
)

func init() {
	Register(TextSerializer{}, "text")
}

// TextSerializer renders the board as a plain-text digest: the title,
// then one block per column with its messages and their vote counts.
type TextSerializer struct{}

func (TextSerializer) Name() string { return "txt" }

// Serialize is total over any valid board. Columns without a single
// retained message are omitted entirely, header line included.
func (TextSerializer) Serialize(b *board.Board) string {
	var sb strings.Builder
	sb.WriteString(b.Title + " \n\n")
	for _, col := range b.Columns {
		if len(col.Messages) == 0 {
			continue
		}
		sb.WriteString(col.Title + " \n")
		for _, m := range col.Messages {
			sb.WriteString(fmt.Sprintf("- %s (%d) \n", m.Text, m.VoteCount))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
