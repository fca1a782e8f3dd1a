package board

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"retroexport/internal/config"
	"retroexport/internal/page"
)

func message(text, votes string) string {
	return fmt.Sprintf(`<div class="message-main">
		<div class="message-body"><span class="text">%s</span></div>
		<div class="votes"><span class="vote-count">%s</span></div>
	</div>`, text, votes)
}

func column(title string, messages ...string) string {
	return fmt.Sprintf(`<div class="message-column">
		<div class="column-header">%s</div>
		<div class="message-list">%s</div>
	</div>`, title, strings.Join(messages, "\n"))
}

func boardDoc(title string, columns ...string) string {
	return fmt.Sprintf(`<div id="board-name">%s</div>%s`, title, strings.Join(columns, "\n"))
}

func extract(t *testing.T, html string, threshold int) (*Board, error) {
	t.Helper()
	p, err := page.NewHTMLPage(strings.NewReader(html))
	require.NoError(t, err)
	cfg := config.Default()
	cfg.VoteThreshold = threshold
	return Extract(context.Background(), p, cfg, zap.NewNop())
}

func TestExtract(t *testing.T) {
	doc := boardDoc("Sprint 1",
		column("Went well", message("Shipped X", "3")),
		column("Needs work"),
	)

	b, err := extract(t, doc, 1)
	require.NoError(t, err)

	want := &Board{
		Title: "Sprint 1",
		Columns: []Column{
			{Title: "Went well", Messages: []Message{{Text: "Shipped X", VoteCount: 3}}},
			{Title: "Needs work"},
		},
	}
	assert.Equal(t, want, b)
}

func TestExtractPreservesOrder(t *testing.T) {
	doc := boardDoc("Sprint 2",
		column("A", message("a1", "2"), message("a2", "2")),
		column("B", message("b1", "2")),
		column("C"),
	)

	b, err := extract(t, doc, 1)
	require.NoError(t, err)

	require.Len(t, b.Columns, 3)
	assert.Equal(t, "A", b.Columns[0].Title)
	assert.Equal(t, "B", b.Columns[1].Title)
	assert.Equal(t, "C", b.Columns[2].Title)
	assert.Equal(t, []Message{{Text: "a1", VoteCount: 2}, {Text: "a2", VoteCount: 2}}, b.Columns[0].Messages)
}

func TestExtractVoteThreshold(t *testing.T) {
	doc := boardDoc("Sprint 1",
		column("Went well",
			message("popular", "3"),
			message("unpopular", "1"),
			message("exactly at threshold", "2"),
		),
	)

	b, err := extract(t, doc, 2)
	require.NoError(t, err)

	require.Len(t, b.Columns, 1)
	got := b.Columns[0].Messages
	require.Len(t, got, 2)
	assert.Equal(t, "popular", got[0].Text)
	assert.Equal(t, "exactly at threshold", got[1].Text)
	for _, m := range got {
		assert.GreaterOrEqual(t, m.VoteCount, 2)
	}
}

func TestExtractDropsUnparsableVotes(t *testing.T) {
	doc := boardDoc("Sprint 1",
		column("Went well",
			message("no number", "lots"),
			message("empty count", ""),
			message("fine", "5"),
		),
	)

	b, err := extract(t, doc, 0)
	require.NoError(t, err)
	require.Len(t, b.Columns, 1)
	require.Len(t, b.Columns[0].Messages, 1)
	assert.Equal(t, Message{Text: "fine", VoteCount: 5}, b.Columns[0].Messages[0])
}

func TestExtractDropsMessageWithoutVotes(t *testing.T) {
	doc := boardDoc("Sprint 1",
		column("Went well", `<div class="message-main">
			<div class="message-body"><span class="text">voteless</span></div>
		</div>`),
	)

	b, err := extract(t, doc, 0)
	require.NoError(t, err)
	require.Len(t, b.Columns, 1)
	assert.Empty(t, b.Columns[0].Messages)
}

func TestExtractWhitespaceTitle(t *testing.T) {
	doc := boardDoc("   ", column("Went well", message("x", "1")))

	_, err := extract(t, doc, 1)
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Contains(t, extErr.Check, "title")
}

func TestExtractMissingTitle(t *testing.T) {
	doc := column("Went well", message("x", "1"))

	_, err := extract(t, doc, 1)
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Contains(t, extErr.Check, "title")
}

func TestExtractNotReady(t *testing.T) {
	// No message list anywhere: the readiness gate must fail, title or not.
	doc := `<div id="board-name">Sprint 1</div>`

	_, err := extract(t, doc, 1)
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Contains(t, extErr.Check, "ready")
}

func TestExtractZeroColumns(t *testing.T) {
	// A rendered page with a stray list but no columns is a valid,
	// empty board.
	doc := `<div id="board-name">Sprint 1</div><div class="message-list"></div>`

	b, err := extract(t, doc, 1)
	require.NoError(t, err)
	assert.Equal(t, "Sprint 1", b.Title)
	assert.Empty(t, b.Columns)
}

func TestExtractColumnWithoutHeader(t *testing.T) {
	doc := boardDoc("Sprint 1", `<div class="message-column">
		<div class="message-list">`+message("orphan", "2")+`</div>
	</div>`)

	b, err := extract(t, doc, 1)
	require.NoError(t, err)
	require.Len(t, b.Columns, 1)
	assert.Equal(t, "", b.Columns[0].Title)
	require.Len(t, b.Columns[0].Messages, 1)
}

func TestExtractTrimsText(t *testing.T) {
	doc := boardDoc("  Sprint 1  ",
		column("  Went well  ", message("  padded  ", " 3 ")),
	)

	b, err := extract(t, doc, 1)
	require.NoError(t, err)
	assert.Equal(t, "Sprint 1", b.Title)
	assert.Equal(t, "Went well", b.Columns[0].Title)
	assert.Equal(t, Message{Text: "padded", VoteCount: 3}, b.Columns[0].Messages[0])
}

func TestExtractCancelled(t *testing.T) {
	doc := boardDoc("Sprint 1", column("Went well", message("x", "3")))
	p, err := page.NewHTMLPage(strings.NewReader(doc))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Extract(ctx, p, config.Default(), nil)
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.ErrorIs(t, err, context.Canceled)
}
