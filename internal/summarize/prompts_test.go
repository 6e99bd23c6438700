package summarize

import (
	"errors"
	"strings"
	"testing"

	"github.com/mokhberai/mokhber/internal/model"
)

func TestBuildPrompt_MinimumLength(t *testing.T) {
	tests := []struct {
		kind model.PostKind
		min  int
	}{
		{model.KindNews, 50},
		{model.KindPaper, 100},
		{model.KindPodcastFeed, 100},
		{model.KindPodcastTranscript, 500},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			// One rune below the threshold must be rejected. Multibyte
			// runes prove the gate counts runes, not bytes.
			short := strings.Repeat("ع", tt.min-1)
			_, err := BuildPrompt(Request{Kind: tt.kind, Title: "t", Text: short})
			if !errors.Is(err, ErrTooShort) {
				t.Errorf("Expected ErrTooShort for %d runes, got %v", tt.min-1, err)
			}

			enough := strings.Repeat("ع", tt.min)
			if _, err := BuildPrompt(Request{Kind: tt.kind, Title: "t", Text: enough}); err != nil {
				t.Errorf("Expected no error for %d runes, got %v", tt.min, err)
			}
		})
	}
}

func TestBuildPrompt_TruncatesLongContent(t *testing.T) {
	long := strings.Repeat("ع", 30000)

	prompt, err := BuildPrompt(Request{Kind: model.KindNews, Text: long})
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}
	if got := strings.Count(prompt, "ع"); got != 15000 {
		t.Errorf("Expected 15000 content runes in news prompt, got %d", got)
	}

	prompt, err = BuildPrompt(Request{Kind: model.KindPodcastTranscript, Text: long})
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}
	if got := strings.Count(prompt, "ع"); got != 25000 {
		t.Errorf("Expected 25000 content runes in transcript prompt, got %d", got)
	}
}

func TestBuildPrompt_Templates(t *testing.T) {
	text := strings.Repeat("The mitochondria is the powerhouse of the cell. ", 20)

	news, err := BuildPrompt(Request{Kind: model.KindNews, Text: text})
	if err != nil {
		t.Fatalf("BuildPrompt(news) failed: %v", err)
	}
	for _, key := range []string{"catchy_title", "summary", "keywords", "eli5"} {
		if !strings.Contains(news, key) {
			t.Errorf("Expected news prompt to mention %q", key)
		}
	}
	if !strings.Contains(news, text) {
		t.Error("Expected news prompt to embed the article text")
	}

	paper, err := BuildPrompt(Request{Kind: model.KindPaper, Text: text})
	if err != nil {
		t.Fatalf("BuildPrompt(paper) failed: %v", err)
	}
	for _, key := range []string{"highlights", "big_so_what", "analogy", "next_steps"} {
		if !strings.Contains(paper, key) {
			t.Errorf("Expected paper prompt to mention %q", key)
		}
	}

	transcript, err := BuildPrompt(Request{Kind: model.KindPodcastTranscript, Text: strings.Repeat(text, 3)})
	if err != nil {
		t.Fatalf("BuildPrompt(transcript) failed: %v", err)
	}
	for _, key := range []string{"guest_name", "key_topics", "notable_questions", "memorable_quote", "hashtags"} {
		if !strings.Contains(transcript, key) {
			t.Errorf("Expected transcript prompt to mention %q", key)
		}
	}

	feed, err := BuildPrompt(Request{Kind: model.KindPodcastFeed, Title: "Episode 42: On Dreams", Text: text})
	if err != nil {
		t.Fatalf("BuildPrompt(feed) failed: %v", err)
	}
	if !strings.Contains(feed, `"Episode 42: On Dreams"`) {
		t.Error("Expected feed prompt to embed the episode title")
	}
	for _, key := range []string{"key_takeaways", "guest_info"} {
		if !strings.Contains(feed, key) {
			t.Errorf("Expected feed prompt to mention %q", key)
		}
	}
}

func TestBuildPrompt_UnknownKind(t *testing.T) {
	_, err := BuildPrompt(Request{Kind: "carrier-pigeon", Text: strings.Repeat("x", 600)})
	if err == nil {
		t.Fatal("Expected error for unknown kind, got nil")
	}
}

func TestParseFields(t *testing.T) {
	fields, err := parseFields(`{"catchy_title": "عنوان", "keywords": ["الف", "ب"]}`)
	if err != nil {
		t.Fatalf("parseFields failed: %v", err)
	}
	if got := fields.Str("catchy_title"); got != "عنوان" {
		t.Errorf("Expected catchy_title عنوان, got %q", got)
	}
	if got := fields.List("keywords"); len(got) != 2 || got[0] != "الف" {
		t.Errorf("Unexpected keywords: %v", got)
	}

	if _, err := parseFields("not json at all"); err == nil {
		t.Error("Expected error for non-JSON payload, got nil")
	}
}
