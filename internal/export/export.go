// Package export turns an extracted board into one of the supported
// flat-file formats.
package export

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"retroexport/internal/board"
	"retroexport/internal/config"
	"retroexport/internal/page"
)

// ErrUnsupportedFormat marks a format outside the registered set.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Export runs the pipeline: extract the board from p, serialize it in
// the requested format, and return the result together with the board
// title (the suggested output file name stem).
//
// The serializer is resolved before any page work so an unsupported
// format costs nothing. Extraction and serialization errors propagate
// unchanged; nothing is downgraded into partial output.
func Export(ctx context.Context, p page.Page, cfg *config.Config, format string, logger *zap.Logger) (string, string, error) {
	s, ok := Get(format)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	b, err := board.Extract(ctx, p, cfg, logger)
	if err != nil {
		return "", "", err
	}

	return s.Serialize(b), b.Title, nil
}
