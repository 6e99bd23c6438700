package model

import (
	"strings"
	"time"
)

// AdapterKind selects how a group's origins are discovered.
type AdapterKind string

const (
	// AdapterFeed discovers candidates by parsing a syndication feed.
	AdapterFeed AdapterKind = "feed"
	// AdapterPage discovers candidates by scraping an index page's DOM.
	AdapterPage AdapterKind = "page"
)

// PostKind selects which summary schema and rendering template apply.
type PostKind string

const (
	KindNews              PostKind = "news"
	KindPaper             PostKind = "paper"
	KindPodcastFeed       PostKind = "podcast-feed"
	KindPodcastTranscript PostKind = "podcast-transcript"
)

// PageSelectors configure the page adapter for one group's index markup.
// Item scopes each entry block; Link and Title are resolved inside it.
type PageSelectors struct {
	Item  string `yaml:"item,omitempty" mapstructure:"item"`
	Link  string `yaml:"link,omitempty" mapstructure:"link"`
	Title string `yaml:"title,omitempty" mapstructure:"title"`
}

// SourceGroup is one configured origin set plus its posting and formatting
// policy. Groups are immutable after configuration load; several groups may
// share one history partition.
type SourceGroup struct {
	Name       string        `yaml:"name" mapstructure:"name"`
	Adapter    AdapterKind   `yaml:"adapter" mapstructure:"adapter"`
	Origins    []string      `yaml:"origins" mapstructure:"origins"`
	Extractor  string        `yaml:"extractor,omitempty" mapstructure:"extractor"`
	Kind       PostKind      `yaml:"kind" mapstructure:"kind"`
	CategoryFa string        `yaml:"category_fa" mapstructure:"category_fa"`
	HashtagEn  string        `yaml:"hashtag_en" mapstructure:"hashtag_en"`
	History    string        `yaml:"history" mapstructure:"history"`
	Page       PageSelectors `yaml:"page,omitempty" mapstructure:"page"`
}

// Candidate is a discovered, not-yet-processed item. ID is the sole
// deduplication key and must be identical between discovery and history
// commit: feed items use the first enclosure URL when present, otherwise the
// entry link; page items use the entry URL.
type Candidate struct {
	ID            string
	Title         string
	Link          string
	Published     *time.Time
	Inline        string // raw feed description/content, may contain HTML
	EnclosureURL  string
	EnclosureType string
}

// Extracted is the normalized content pulled for one candidate. An empty
// Text is the terminal "no content" state for the item this run; the item
// stays eligible for future runs.
type Extracted struct {
	Text        string
	ImageURL    string
	CitationURL string
	AudioURL    string
	VideoURL    string
}

// HasText reports whether extraction produced usable text.
func (e Extracted) HasText() bool {
	return strings.TrimSpace(e.Text) != ""
}
