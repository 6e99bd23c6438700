package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mokhberai/mokhber/internal/fetch"
	"github.com/mokhberai/mokhber/internal/model"
)

// LexFridman extracts episode transcripts and the YouTube embed from
// lexfridman.com episode pages. The transcript is a separate page linked
// from the episode page, so extraction is a two-hop fetch.
type LexFridman struct {
	client *fetch.Client
}

// NewLexFridman creates a LexFridman extractor.
func NewLexFridman(client *fetch.Client) *LexFridman {
	return &LexFridman{client: client}
}

// Name returns the extractor name.
func (e *LexFridman) Name() string {
	return "lexfridman"
}

// CanHandle checks if the link points at lexfridman.com.
func (e *LexFridman) CanHandle(link string) bool {
	return strings.Contains(link, "lexfridman.com")
}

// Extract finds the transcript link and video embed on the episode page,
// then fetches the transcript page for the spoken text.
func (e *LexFridman) Extract(ctx context.Context, c model.Candidate) model.Extracted {
	// Strip tracking parameters to reach the canonical page.
	link := c.Link
	if i := strings.Index(link, "?"); i >= 0 {
		link = link[:i]
	}

	doc, finalURL := fetchDoc(ctx, e.client, link)
	if doc == nil {
		return model.Extracted{}
	}

	var ex model.Extracted

	if src, ok := doc.Find(`iframe[src*='youtube.com/embed/']`).First().Attr("src"); ok {
		ex.VideoURL = src
	} else if src, ok := doc.Find("div.episode-player iframe").First().Attr("src"); ok {
		ex.VideoURL = src
	}

	transcriptURL := ""
	doc.Find("b").EachWithBreak(func(_ int, b *goquery.Selection) bool {
		if !strings.Contains(b.Text(), "Transcript:") {
			return true
		}
		if href, ok := b.NextAllFiltered("a").First().Attr("href"); ok {
			transcriptURL = absoluteURL(finalURL, href)
			return false
		}
		return true
	})
	if transcriptURL == "" {
		return ex
	}

	ex.Text = e.transcript(ctx, transcriptURL)

	return ex
}

// transcript pulls the timestamped text segments from a transcript page.
func (e *LexFridman) transcript(ctx context.Context, transcriptURL string) string {
	doc, _ := fetchDoc(ctx, e.client, transcriptURL)
	if doc == nil {
		return ""
	}

	content := doc.Find("div.entry-content").First()
	if content.Length() == 0 {
		return ""
	}

	var parts []string
	content.Find("span.ts-text").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})

	return strings.Join(parts, " ")
}
