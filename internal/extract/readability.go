package extract

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/mokhberai/mokhber/internal/fetch"
	"github.com/mokhberai/mokhber/internal/logging"
	"github.com/mokhberai/mokhber/internal/model"
)

// Readability is the generic fallback for links no site extractor
// recognizes. It fetches through the shared client and lets readability
// isolate the article body.
type Readability struct {
	client *fetch.Client
}

// NewReadability creates a Readability extractor.
func NewReadability(client *fetch.Client) *Readability {
	return &Readability{client: client}
}

// Name returns the extractor name.
func (e *Readability) Name() string {
	return "readability"
}

// CanHandle accepts anything; the registry consults it last.
func (e *Readability) CanHandle(link string) bool {
	return true
}

// Extract pulls the main article text and image.
func (e *Readability) Extract(ctx context.Context, c model.Candidate) model.Extracted {
	res, err := e.client.Get(ctx, c.Link)
	if err != nil {
		logging.Warn("content fetch failed", "url", c.Link, "error", err)
		return model.Extracted{}
	}

	pageURL, err := url.Parse(res.FinalURL)
	if err != nil {
		logging.Warn("bad final URL", "url", res.FinalURL, "error", err)
		return model.Extracted{}
	}

	article, err := readability.FromReader(bytes.NewReader(res.Body), pageURL)
	if err != nil {
		logging.Warn("readability parse failed", "url", c.Link, "error", err)
		return model.Extracted{}
	}

	return model.Extracted{
		Text:     strings.TrimSpace(article.TextContent),
		ImageURL: article.Image,
	}
}
