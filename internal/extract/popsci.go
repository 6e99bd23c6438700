package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mokhberai/mokhber/internal/fetch"
	"github.com/mokhberai/mokhber/internal/model"
)

// popsciImageSelectors are tried in order; the site mixes several article
// layouts.
var popsciImageSelectors = []string{
	"figure.featured-image img",
	"img.article-featured-image",
	"figure.wp-block-image img",
}

// PopSci extracts article text and the featured image from popsci.com
// article pages.
type PopSci struct {
	client *fetch.Client
}

// NewPopSci creates a PopSci extractor.
func NewPopSci(client *fetch.Client) *PopSci {
	return &PopSci{client: client}
}

// Name returns the extractor name.
func (e *PopSci) Name() string {
	return "popsci"
}

// CanHandle checks if the link points at Popular Science.
func (e *PopSci) CanHandle(link string) bool {
	return strings.Contains(link, "popsci.com")
}

// Extract pulls the article body and the best available featured image,
// preferring the highest-resolution srcset entry over the plain src.
func (e *PopSci) Extract(ctx context.Context, c model.Candidate) model.Extracted {
	doc, finalURL := fetchDoc(ctx, e.client, c.Link)
	if doc == nil {
		return model.Extracted{}
	}

	ex := model.Extracted{Text: paragraphs(doc, "div.content-wrapper p")}

	for _, selector := range popsciImageSelectors {
		img := doc.Find(selector).First()
		if img.Length() == 0 {
			continue
		}
		if src := bestImageSource(img); src != "" {
			ex.ImageURL = absoluteURL(finalURL, src)
			break
		}
	}

	return ex
}

// bestImageSource picks the last srcset entry, usually the highest
// resolution, falling back to src.
func bestImageSource(img *goquery.Selection) string {
	if srcset, ok := img.Attr("srcset"); ok && strings.TrimSpace(srcset) != "" {
		entries := strings.Split(srcset, ",")
		last := strings.Fields(strings.TrimSpace(entries[len(entries)-1]))
		if len(last) > 0 {
			return last[0]
		}
	}
	src, _ := img.Attr("src")
	return src
}
