package source

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mokhberai/mokhber/internal/fetch"
	"github.com/mokhberai/mokhber/internal/model"
)

// PageAdapter discovers candidates from HTML index pages using the group's
// configured selectors. Sites without a usable feed publish their episode
// archives this way.
type PageAdapter struct {
	client *fetch.Client
}

// NewPageAdapter creates a page adapter backed by the shared client.
func NewPageAdapter(client *fetch.Client) *PageAdapter {
	return &PageAdapter{client: client}
}

// Kind reports the adapter kind.
func (a *PageAdapter) Kind() model.AdapterKind {
	return model.AdapterPage
}

// Discover fetches one index page and extracts a candidate per item
// selector match. Relative links are resolved against the page URL.
func (a *PageAdapter) Discover(ctx context.Context, group model.SourceGroup, origin string) ([]model.Candidate, error) {
	res, err := a.client.Get(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}

	base, err := url.Parse(res.FinalURL)
	if err != nil {
		base = nil
	}

	var candidates []model.Candidate
	doc.Find(group.Page.Item).Each(func(i int, item *goquery.Selection) {
		link := item.Find(group.Page.Link).First()
		href, ok := link.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}
		abs := resolveURL(base, href)

		title := ""
		if group.Page.Title != "" {
			title = strings.TrimSpace(item.Find(group.Page.Title).First().Text())
		}
		if title == "" {
			title = strings.TrimSpace(link.Text())
		}
		if title == "" {
			title = fetch.Subject(abs)
		}

		candidates = append(candidates, model.Candidate{
			ID:    abs,
			Title: title,
			Link:  abs,
		})
	})

	return candidates, nil
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
