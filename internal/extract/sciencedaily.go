package extract

import (
	"context"
	"strings"

	"github.com/mokhberai/mokhber/internal/fetch"
	"github.com/mokhberai/mokhber/internal/model"
)

// ScienceDaily extracts release text, the lead image and the DOI reference
// from sciencedaily.com article pages.
type ScienceDaily struct {
	client *fetch.Client
}

// NewScienceDaily creates a ScienceDaily extractor.
func NewScienceDaily(client *fetch.Client) *ScienceDaily {
	return &ScienceDaily{client: client}
}

// Name returns the extractor name.
func (e *ScienceDaily) Name() string {
	return "sciencedaily"
}

// CanHandle checks if the link points at ScienceDaily.
func (e *ScienceDaily) CanHandle(link string) bool {
	return strings.Contains(link, "sciencedaily.com")
}

// Extract pulls the story text, main image and journal DOI link.
func (e *ScienceDaily) Extract(ctx context.Context, c model.Candidate) model.Extracted {
	doc, finalURL := fetchDoc(ctx, e.client, c.Link)
	if doc == nil {
		return model.Extracted{}
	}

	ex := model.Extracted{Text: paragraphs(doc, "div#story_text p")}

	if src, ok := doc.Find("figure.mainimg img").First().Attr("src"); ok {
		ex.ImageURL = absoluteURL(finalURL, src)
	}

	if href, ok := doc.Find(`div#journal_references a[href*='dx.doi.org']`).First().Attr("href"); ok {
		ex.CitationURL = href
	}

	return ex
}
