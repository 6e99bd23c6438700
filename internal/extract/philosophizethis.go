package extract

import (
	"context"
	"strings"

	"github.com/mokhberai/mokhber/internal/fetch"
	"github.com/mokhberai/mokhber/internal/model"
)

// PhilosophizeThis extracts episode transcripts from philosophizethis.org
// transcript pages.
type PhilosophizeThis struct {
	client *fetch.Client
}

// NewPhilosophizeThis creates a PhilosophizeThis extractor.
func NewPhilosophizeThis(client *fetch.Client) *PhilosophizeThis {
	return &PhilosophizeThis{client: client}
}

// Name returns the extractor name.
func (e *PhilosophizeThis) Name() string {
	return "philosophizethis"
}

// CanHandle checks if the link points at Philosophize This.
func (e *PhilosophizeThis) CanHandle(link string) bool {
	return strings.Contains(link, "philosophizethis.org")
}

// Extract pulls the transcript paragraphs from the first content block.
func (e *PhilosophizeThis) Extract(ctx context.Context, c model.Candidate) model.Extracted {
	doc, _ := fetchDoc(ctx, e.client, c.Link)
	if doc == nil {
		return model.Extracted{}
	}

	content := doc.Find("div.sqs-block-content").First()
	if content.Length() == 0 {
		return model.Extracted{}
	}

	return model.Extracted{Text: joinText(content.Find("p"))}
}
