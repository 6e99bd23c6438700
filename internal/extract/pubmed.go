package extract

import (
	"context"
	"strings"

	"github.com/mokhberai/mokhber/internal/fetch"
	"github.com/mokhberai/mokhber/internal/model"
)

// PubMed extracts the abstract from PubMed record pages. Abstracts are
// short but dense enough to summarize a paper from.
type PubMed struct {
	client *fetch.Client
}

// NewPubMed creates a PubMed extractor.
func NewPubMed(client *fetch.Client) *PubMed {
	return &PubMed{client: client}
}

// Name returns the extractor name.
func (e *PubMed) Name() string {
	return "pubmed"
}

// CanHandle checks if the link points at PubMed.
func (e *PubMed) CanHandle(link string) bool {
	return strings.Contains(link, "pubmed.ncbi.nlm.nih.gov")
}

// Extract pulls the abstract text; the record page itself serves as the
// citation.
func (e *PubMed) Extract(ctx context.Context, c model.Candidate) model.Extracted {
	doc, _ := fetchDoc(ctx, e.client, c.Link)
	if doc == nil {
		return model.Extracted{}
	}

	text := strings.TrimSpace(doc.Find("div.abstract-content").First().Text())
	text = strings.Join(strings.Fields(text), " ")

	return model.Extracted{Text: text}
}
