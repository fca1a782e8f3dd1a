package export

import (
	"fmt"
	"strings"

	"retroexport/internal/board"
)

func init() {
	Register(CSVSerializer{})
}

// CSVSerializer lays the board out as a table: one CSV column per
// board column, header row first, then one row per message rank.
// Every cell is followed by a separator, including the last one, and
// rows end with CRLF. Ragged columns are padded with empty cells.
//
// The rows are built directly rather than through encoding/csv: the
// format never quotes cells and keeps the trailing separator, neither
// of which csv.Writer can emit.
type CSVSerializer struct{}

func (CSVSerializer) Name() string { return "csv" }

func (CSVSerializer) Serialize(b *board.Board) string {
	var sb strings.Builder

	for _, col := range b.Columns {
		sb.WriteString(col.Title)
		sb.WriteByte(',')
	}
	sb.WriteString("\r\n")

	rows := 0
	for _, col := range b.Columns {
		if len(col.Messages) > rows {
			rows = len(col.Messages)
		}
	}

	for r := 0; r < rows; r++ {
		for _, col := range b.Columns {
			if r < len(col.Messages) {
				m := col.Messages[r]
				fmt.Fprintf(&sb, "%s (%d)", m.Text, m.VoteCount)
			}
			sb.WriteByte(',')
		}
		sb.WriteString("\r\n")
	}

	return sb.String()
}
