package extract

import (
	"context"
	"strings"

	"github.com/mokhberai/mokhber/internal/fetch"
	"github.com/mokhberai/mokhber/internal/model"
)

// PhysOrg extracts article text, the lead image and the DOI reference from
// phys.org article pages.
type PhysOrg struct {
	client *fetch.Client
}

// NewPhysOrg creates a PhysOrg extractor.
func NewPhysOrg(client *fetch.Client) *PhysOrg {
	return &PhysOrg{client: client}
}

// Name returns the extractor name.
func (e *PhysOrg) Name() string {
	return "physorg"
}

// CanHandle checks if the link points at Phys.org.
func (e *PhysOrg) CanHandle(link string) bool {
	return strings.Contains(link, "phys.org")
}

// Extract pulls the article body, figure image and the tagged DOI anchor.
func (e *PhysOrg) Extract(ctx context.Context, c model.Candidate) model.Extracted {
	doc, finalURL := fetchDoc(ctx, e.client, c.Link)
	if doc == nil {
		return model.Extracted{}
	}

	ex := model.Extracted{Text: paragraphs(doc, "div.article-main p")}

	if src, ok := doc.Find("div.article-main figure.article-img img").First().Attr("src"); ok {
		ex.ImageURL = absoluteURL(finalURL, src)
	}

	if href, ok := doc.Find(`div.article-main__more a[data-doi='1']`).First().Attr("href"); ok {
		ex.CitationURL = href
	}

	return ex
}
