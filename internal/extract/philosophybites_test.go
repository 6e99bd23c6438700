package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mokhberai/mokhber/internal/model"
)

const philosophyBitesFixture = `<html><body>
<div class="elementor-widget"><h3>About this episode</h3></div>
<div class="elementor-widget"><h3> Transcript </h3></div>
<div class="elementor-widget">
  <p>Interviewer: Welcome to the show.</p>
  <p>Guest: Glad to be here.</p>
</div>
<audio controls><source src="https://cdn.example.com/episode.mp3" type="audio/mpeg"></audio>
</body></html>`

func TestPhilosophyBites_Extract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, philosophyBitesFixture)
	}))
	defer server.Close()

	e := NewPhilosophyBites(testClient())
	got := e.Extract(context.Background(), model.Candidate{Link: server.URL + "/episodes/free-will/"})

	expected := "Interviewer: Welcome to the show.\n\nGuest: Glad to be here."
	if got.Text != expected {
		t.Errorf("Expected transcript from widget after TRANSCRIPT heading, got %q", got.Text)
	}
	if got.AudioURL != "https://cdn.example.com/episode.mp3" {
		t.Errorf("Expected audio source URL, got %q", got.AudioURL)
	}
}

func TestPhilosophyBites_Extract_NoTranscript(t *testing.T) {
	page := `<html><body>
<div class="elementor-widget"><h3>Episode notes</h3></div>
<div class="elementor-widget"><p>Just a description, no transcript heading.</p></div>
</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, page)
	}))
	defer server.Close()

	e := NewPhilosophyBites(testClient())
	got := e.Extract(context.Background(), model.Candidate{Link: server.URL})

	if got.HasText() {
		t.Errorf("Expected no text without a TRANSCRIPT heading, got %q", got.Text)
	}
}

func TestPhilosophizeThis_Extract(t *testing.T) {
	page := `<html><body>
<div class="sqs-block-content">
  <p>So this is episode one.</p>
  <p>Today we talk about the presocratics.</p>
</div>
<div class="sqs-block-content"><p>Unrelated footer block.</p></div>
</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, page)
	}))
	defer server.Close()

	e := NewPhilosophizeThis(testClient())
	got := e.Extract(context.Background(), model.Candidate{Link: server.URL + "/transcript/episode-001"})

	expected := "So this is episode one.\n\nToday we talk about the presocratics."
	if got.Text != expected {
		t.Errorf("Expected paragraphs from first content block, got %q", got.Text)
	}
}
