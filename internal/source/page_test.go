package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mokhberai/mokhber/internal/model"
)

const indexFixture = `<html><body>
<div class="e-loop-item">
  <a href="/episodes/free-will/"><h3 class="elementor-heading-title">Free Will</h3></a>
</div>
<div class="e-loop-item">
  <a href="https://other.example.com/ep2"><h3 class="elementor-heading-title">  Meaning  </h3></a>
</div>
<div class="e-loop-item">
  <span>broken item without a link</span>
</div>
</body></html>`

func pageGroup() model.SourceGroup {
	return model.SourceGroup{
		Name:    "test-archive",
		Adapter: model.AdapterPage,
		Page: model.PageSelectors{
			Item:  "div.e-loop-item",
			Link:  "a",
			Title: "h3.elementor-heading-title",
		},
	}
}

func TestPageAdapter_Discover(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, indexFixture)
	}))
	defer server.Close()

	adapter := NewPageAdapter(testClient())
	candidates, err := adapter.Discover(context.Background(), pageGroup(), server.URL)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates (broken item skipped), got %d", len(candidates))
	}

	first := candidates[0]
	if first.Link != server.URL+"/episodes/free-will/" {
		t.Errorf("Expected relative link resolved against page URL, got %q", first.Link)
	}
	if first.ID != first.Link {
		t.Errorf("Expected page candidate ID to equal its link, got %q", first.ID)
	}
	if first.Title != "Free Will" {
		t.Errorf("Unexpected title: %q", first.Title)
	}

	second := candidates[1]
	if second.Link != "https://other.example.com/ep2" {
		t.Errorf("Expected absolute link kept as-is, got %q", second.Link)
	}
	if second.Title != "Meaning" {
		t.Errorf("Expected trimmed title, got %q", second.Title)
	}
}

func TestPageAdapter_TitleFallbacks(t *testing.T) {
	page := `<html><body>
<li class="archive-item"><a class="archive-item-link" href="/transcript/episode-001-presocratics">Episode 1</a></li>
<li class="archive-item"><a class="archive-item-link" href="/transcript/episode-002-socrates"></a></li>
</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, page)
	}))
	defer server.Close()

	group := model.SourceGroup{
		Name:    "transcripts",
		Adapter: model.AdapterPage,
		Page: model.PageSelectors{
			Item:  "li.archive-item",
			Link:  "a.archive-item-link",
			Title: "a.archive-item-link",
		},
	}

	adapter := NewPageAdapter(testClient())
	candidates, err := adapter.Discover(context.Background(), group, server.URL)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(candidates))
	}

	if candidates[0].Title != "Episode 1" {
		t.Errorf("Expected anchor text title, got %q", candidates[0].Title)
	}
	// Empty anchor falls back to a de-slugified URL segment.
	if candidates[1].Title != "episode 002 socrates" {
		t.Errorf("Expected de-slugified fallback title, got %q", candidates[1].Title)
	}
}

func TestPageAdapter_Discover_FetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := NewPageAdapter(testClient())
	_, err := adapter.Discover(context.Background(), pageGroup(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 500 response")
	}
}
