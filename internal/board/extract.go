package board

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"retroexport/internal/config"
	"retroexport/internal/page"
)

// ExtractionError reports which extraction check failed.
type ExtractionError struct {
	Check string
	Err   error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("extraction failed: %s", e.Check)
	}
	return fmt.Sprintf("extraction failed: %s: %v", e.Check, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extract walks the rendered page and builds the board model.
//
// The walk is strictly sequential: columns are resolved in page order
// and all messages of a column are read before the next column starts,
// so the model mirrors the on-screen layout deterministically. Any
// lookup failure aborts the whole run; no partial board is returned.
//
// Messages whose vote count is missing, unparsable or below
// cfg.VoteThreshold are dropped silently. That is the filter working,
// not an error.
func Extract(ctx context.Context, p page.Page, cfg *config.Config, logger *zap.Logger) (*Board, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sel := cfg.Selectors

	// Readiness gate: a rendered board always has its message lists in
	// the DOM, even when every column is empty.
	if err := p.WaitFor(sel.MessageList, cfg.ReadyTimeout); err != nil {
		return nil, &ExtractionError{Check: "board is not ready", Err: err}
	}

	title, err := p.Text(sel.BoardTitle)
	if err != nil && !errors.Is(err, page.ErrNoMatch) {
		return nil, &ExtractionError{Check: "board title", Err: err}
	}
	if title == "" {
		return nil, &ExtractionError{Check: "board title does not exist"}
	}

	colNodes, err := p.All(sel.Column)
	if err != nil {
		return nil, &ExtractionError{Check: "columns", Err: err}
	}

	columns := make([]Column, 0, len(colNodes))
	for i, colNode := range colNodes {
		if err := ctx.Err(); err != nil {
			return nil, &ExtractionError{Check: "cancelled", Err: err}
		}
		col, err := extractColumn(colNode, sel, cfg.VoteThreshold, logger)
		if err != nil {
			return nil, &ExtractionError{Check: fmt.Sprintf("column %d", i), Err: err}
		}
		columns = append(columns, col)
	}

	logger.Debug("board extracted",
		zap.String("title", title),
		zap.Int("columns", len(columns)))

	return &Board{Title: title, Columns: columns}, nil
}

func extractColumn(n page.Node, sel config.Selectors, threshold int, logger *zap.Logger) (Column, error) {
	// A column without a header keeps an empty title; only the board
	// title is required.
	title, err := n.Text(sel.ColumnHeader)
	if err != nil && !errors.Is(err, page.ErrNoMatch) {
		return Column{}, err
	}

	msgNodes, err := n.All(sel.Message)
	if err != nil {
		return Column{}, err
	}

	col := Column{Title: title}
	for _, msgNode := range msgNodes {
		msg, ok, err := extractMessage(msgNode, sel, threshold, logger)
		if err != nil {
			return Column{}, err
		}
		if ok {
			col.Messages = append(col.Messages, msg)
		}
	}
	return col, nil
}

func extractMessage(n page.Node, sel config.Selectors, threshold int, logger *zap.Logger) (Message, bool, error) {
	raw, err := n.Text(sel.MessageVotes)
	if err != nil {
		if errors.Is(err, page.ErrNoMatch) {
			logger.Debug("message dropped: no vote count")
			return Message{}, false, nil
		}
		return Message{}, false, err
	}

	votes, err := strconv.Atoi(raw)
	if err != nil {
		// An unreadable count never clears the threshold.
		logger.Debug("message dropped: unparsable vote count", zap.String("votes", raw))
		return Message{}, false, nil
	}
	if votes < threshold {
		logger.Debug("message dropped: below vote threshold",
			zap.Int("votes", votes),
			zap.Int("threshold", threshold))
		return Message{}, false, nil
	}

	text, err := n.Text(sel.MessageText)
	if err != nil {
		if errors.Is(err, page.ErrNoMatch) {
			logger.Debug("message dropped: no text")
			return Message{}, false, nil
		}
		return Message{}, false, err
	}

	return Message{Text: text, VoteCount: votes}, true, nil
}
