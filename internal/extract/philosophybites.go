package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mokhberai/mokhber/internal/fetch"
	"github.com/mokhberai/mokhber/internal/model"
)

// PhilosophyBites extracts episode transcripts and the MP3 URL from
// philosophybites.com episode pages. The transcript lives in the Elementor
// widget immediately after the TRANSCRIPT heading.
type PhilosophyBites struct {
	client *fetch.Client
}

// NewPhilosophyBites creates a PhilosophyBites extractor.
func NewPhilosophyBites(client *fetch.Client) *PhilosophyBites {
	return &PhilosophyBites{client: client}
}

// Name returns the extractor name.
func (e *PhilosophyBites) Name() string {
	return "philosophybites"
}

// CanHandle checks if the link points at Philosophy Bites.
func (e *PhilosophyBites) CanHandle(link string) bool {
	return strings.Contains(link, "philosophybites.com")
}

// Extract pulls the transcript paragraphs and the episode audio source.
func (e *PhilosophyBites) Extract(ctx context.Context, c model.Candidate) model.Extracted {
	doc, _ := fetchDoc(ctx, e.client, c.Link)
	if doc == nil {
		return model.Extracted{}
	}

	var ex model.Extracted

	doc.Find("h3").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !strings.EqualFold(strings.TrimSpace(h.Text()), "TRANSCRIPT") {
			return true
		}
		widget := h.Closest("div.elementor-widget")
		if widget.Length() == 0 {
			return true
		}
		container := widget.NextAllFiltered("div.elementor-widget").First()
		if container.Length() == 0 {
			return true
		}
		ex.Text = joinText(container.Find("p"))
		return false
	})

	if src, ok := doc.Find("audio source").First().Attr("src"); ok {
		ex.AudioURL = strings.TrimSpace(src)
	}

	return ex
}
