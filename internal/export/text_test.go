package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"retroexport/internal/board"
)

func sprintBoard() *board.Board {
	return &board.Board{
		Title: "Sprint 1",
		Columns: []board.Column{
			{Title: "Went well", Messages: []board.Message{{Text: "Shipped X", VoteCount: 3}}},
			{Title: "Needs work"},
		},
	}
}

func TestTextSerialize(t *testing.T) {
	got := TextSerializer{}.Serialize(sprintBoard())
	assert.Equal(t, "Sprint 1 \n\nWent well \n- Shipped X (3) \n\n", got)
}

func TestTextOmitsEmptyColumns(t *testing.T) {
	got := TextSerializer{}.Serialize(sprintBoard())
	assert.NotContains(t, got, "Needs work", "empty columns contribute nothing, not even a header")
}

func TestTextZeroColumns(t *testing.T) {
	got := TextSerializer{}.Serialize(&board.Board{Title: "Empty"})
	assert.Equal(t, "Empty \n\n", got)
}

func TestTextMultipleMessages(t *testing.T) {
	b := &board.Board{
		Title: "Sprint 2",
		Columns: []board.Column{
			{Title: "Ideas", Messages: []board.Message{
				{Text: "one", VoteCount: 4},
				{Text: "two", VoteCount: 2},
			}},
			{Title: "Thanks", Messages: []board.Message{
				{Text: "three", VoteCount: 1},
			}},
		},
	}
	want := "Sprint 2 \n\n" +
		"Ideas \n- one (4) \n- two (2) \n\n" +
		"Thanks \n- three (1) \n\n"
	assert.Equal(t, want, TextSerializer{}.Serialize(b))
}

func TestTextIdempotent(t *testing.T) {
	b := sprintBoard()
	assert.Equal(t, TextSerializer{}.Serialize(b), TextSerializer{}.Serialize(b))
}
