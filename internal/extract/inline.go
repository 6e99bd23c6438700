package extract

import (
	"context"
	"strings"

	"github.com/mokhberai/mokhber/internal/model"
)

// Inline serves groups summarized straight from feed metadata: the episode
// description already carried by the candidate is the content, so no page
// fetch happens at all.
type Inline struct{}

// NewInline creates an Inline extractor.
func NewInline() *Inline {
	return &Inline{}
}

// Name returns the extractor name.
func (e *Inline) Name() string {
	return "inline"
}

// CanHandle always declines; inline extraction is opted into per group.
func (e *Inline) CanHandle(link string) bool {
	return false
}

// Extract flattens the candidate's inline description and keeps the audio
// enclosure for the listen link.
func (e *Inline) Extract(ctx context.Context, c model.Candidate) model.Extracted {
	ex := model.Extracted{Text: Text(c.Inline)}

	if c.EnclosureURL != "" && isAudio(c) {
		ex.AudioURL = c.EnclosureURL
	}

	return ex
}

func isAudio(c model.Candidate) bool {
	if strings.HasPrefix(c.EnclosureType, "audio/") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(c.EnclosureURL), ".mp3")
}
