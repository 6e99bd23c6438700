package extract

import (
	"context"
	"strings"

	"github.com/mokhberai/mokhber/internal/fetch"
	"github.com/mokhberai/mokhber/internal/model"
)

// NVIDIA extracts release text and the header image from NVIDIA newsroom
// and blog pages.
type NVIDIA struct {
	client *fetch.Client
}

// NewNVIDIA creates an NVIDIA extractor.
func NewNVIDIA(client *fetch.Client) *NVIDIA {
	return &NVIDIA{client: client}
}

// Name returns the extractor name.
func (e *NVIDIA) Name() string {
	return "nvidia"
}

// CanHandle checks if the link points at an NVIDIA news property.
func (e *NVIDIA) CanHandle(link string) bool {
	return strings.Contains(link, "nvidianews.nvidia.com") || strings.Contains(link, "blogs.nvidia.com")
}

// Extract pulls the release body and the title-block image.
func (e *NVIDIA) Extract(ctx context.Context, c model.Candidate) model.Extracted {
	doc, finalURL := fetchDoc(ctx, e.client, c.Link)
	if doc == nil {
		return model.Extracted{}
	}

	ex := model.Extracted{Text: paragraphs(doc, "div.entry-content p")}

	if src, ok := doc.Find("div.entry-title img").First().Attr("src"); ok {
		ex.ImageURL = absoluteURL(finalURL, src)
	}

	return ex
}
