// Package extract turns a selected candidate into publishable content:
// article or transcript text plus whatever media the page offers.
package extract

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mokhberai/mokhber/internal/fetch"
	"github.com/mokhberai/mokhber/internal/logging"
	"github.com/mokhberai/mokhber/internal/model"
)

// Extractor pulls content for one candidate. Extract never fails hard: any
// fetch or parse problem yields an empty result, which the pipeline records
// as a no-content outcome for that item.
type Extractor interface {
	// Name returns the extractor name used in group configuration.
	Name() string

	// CanHandle checks if this extractor recognizes the given link.
	CanHandle(link string) bool

	// Extract pulls text and media for the candidate.
	Extract(ctx context.Context, c model.Candidate) model.Extracted
}

// Registry manages site extractors.
type Registry struct {
	extractors []Extractor
	generic    Extractor
}

// NewRegistry creates a registry with all built-in extractors registered.
func NewRegistry(client *fetch.Client) *Registry {
	registry := &Registry{}

	registry.Register(NewScienceDaily(client))
	registry.Register(NewPhysOrg(client))
	registry.Register(NewPopSci(client))
	registry.Register(NewNVIDIA(client))
	registry.Register(NewPubMed(client))
	registry.Register(NewPhilosophyBites(client))
	registry.Register(NewPhilosophizeThis(client))
	registry.Register(NewLexFridman(client))
	registry.Register(NewInline())

	registry.generic = NewReadability(client)

	return registry
}

// Register registers an extractor.
func (r *Registry) Register(e Extractor) {
	r.extractors = append(r.extractors, e)
}

// For finds the extractor for a group's candidate: the configured name when
// the group sets one, otherwise whichever extractor recognizes the link,
// otherwise the generic readability fallback.
func (r *Registry) For(group model.SourceGroup, link string) Extractor {
	if group.Extractor != "" {
		for _, e := range r.extractors {
			if e.Name() == group.Extractor {
				return e
			}
		}
		logging.Warn("unknown extractor configured, falling back", "extractor", group.Extractor, "group", group.Name)
	}

	for _, e := range r.extractors {
		if e.CanHandle(link) {
			return e
		}
	}

	return r.generic
}

// fetchDoc retrieves a page through the shared client and parses it. A nil
// document means the page could not be fetched or parsed.
func fetchDoc(ctx context.Context, client *fetch.Client, link string) (*goquery.Document, string) {
	res, err := client.Get(ctx, link)
	if err != nil {
		logging.Warn("content fetch failed", "url", link, "error", err)
		return nil, ""
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		logging.Warn("content parse failed", "url", link, "error", err)
		return nil, ""
	}

	return doc, res.FinalURL
}

// paragraphs joins the text of every node matching the selector.
func paragraphs(doc *goquery.Document, selector string) string {
	var parts []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, "\n\n")
}

// joinText joins the text of every node the selection contains.
func joinText(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, "\n\n")
}

// absoluteURL resolves a possibly relative reference against the page URL.
func absoluteURL(pageURL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}
