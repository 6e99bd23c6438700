// Package summarize turns extracted content into the structured Farsi
// summary fields each post kind needs, using a configurable LLM provider.
package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mokhberai/mokhber/internal/model"
)

// ErrTooShort is returned when the content is below the minimum length for
// its kind. Short content produces useless summaries, so the item is
// skipped for the run instead.
var ErrTooShort = errors.New("content too short to summarize")

// Summarizer produces the structured summary fields for one post kind.
// Implementations must return only the fields parsed from the provider's
// JSON response; rendering tolerates missing keys.
type Summarizer interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates the summary fields for the request.
	Summarize(ctx context.Context, req Request) (model.Fields, error)
}

// Request carries the content to summarize.
type Request struct {
	Kind  model.PostKind
	Title string
	Text  string
}

// parseFields decodes the provider's JSON object response.
func parseFields(raw string) (model.Fields, error) {
	var fields model.Fields
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &fields); err != nil {
		return nil, fmt.Errorf("parse summary JSON: %w", err)
	}
	return fields, nil
}
