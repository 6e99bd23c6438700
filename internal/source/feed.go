package source

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/mokhberai/mokhber/internal/fetch"
	"github.com/mokhberai/mokhber/internal/model"
)

// FeedAdapter discovers candidates from RSS and Atom feeds. Bodies come
// through the shared fetch client so feed polls share the same rate limits
// and cache as page fetches.
type FeedAdapter struct {
	client *fetch.Client
	parser *gofeed.Parser
}

// NewFeedAdapter creates a feed adapter backed by the shared client.
func NewFeedAdapter(client *fetch.Client) *FeedAdapter {
	return &FeedAdapter{
		client: client,
		parser: gofeed.NewParser(),
	}
}

// Kind reports the adapter kind.
func (a *FeedAdapter) Kind() model.AdapterKind {
	return model.AdapterFeed
}

// Discover fetches and parses one feed, returning every entry as a
// candidate.
func (a *FeedAdapter) Discover(ctx context.Context, group model.SourceGroup, origin string) ([]model.Candidate, error) {
	res, err := a.client.Get(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	feed, err := a.parser.Parse(bytes.NewReader(res.Body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	candidates := make([]model.Candidate, 0, len(feed.Items))
	for _, item := range feed.Items {
		candidates = append(candidates, candidateFromItem(item))
	}

	return candidates, nil
}

// candidateFromItem maps one feed entry to a candidate. The enclosure URL
// identifies podcast episodes whose page link is unstable; entries without
// an enclosure are identified by their link.
func candidateFromItem(item *gofeed.Item) model.Candidate {
	c := model.Candidate{
		Title: strings.TrimSpace(item.Title),
		Link:  strings.TrimSpace(item.Link),
	}

	if len(item.Enclosures) > 0 {
		c.EnclosureURL = strings.TrimSpace(item.Enclosures[0].URL)
		c.EnclosureType = item.Enclosures[0].Type
	}

	c.ID = c.Link
	if c.EnclosureURL != "" {
		c.ID = c.EnclosureURL
	}

	if item.PublishedParsed != nil {
		c.Published = item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		c.Published = item.UpdatedParsed
	}

	c.Inline = inlineContent(item)

	return c
}

// inlineContent picks the entry's own description for groups summarized
// straight from the feed: the iTunes show notes when present, otherwise the
// description, otherwise the full content block.
func inlineContent(item *gofeed.Item) string {
	if item.ITunesExt != nil && strings.TrimSpace(item.ITunesExt.Summary) != "" {
		return item.ITunesExt.Summary
	}
	if strings.TrimSpace(item.Description) != "" {
		return item.Description
	}
	return item.Content
}
