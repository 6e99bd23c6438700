package publish

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mokhberai/mokhber/internal/model"
)

// botServer records every Bot API call and answers with sequential message
// IDs starting at 10. Failing methods answer ok:false instead.
type botServer struct {
	*httptest.Server
	paths []string
	forms []url.Values
	fail  map[string]bool
}

func newBotServer(t *testing.T) *botServer {
	bs := &botServer{fail: make(map[string]bool)}
	bs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("Failed to parse form: %v", err)
			return
		}
		bs.paths = append(bs.paths, r.URL.Path)
		bs.forms = append(bs.forms, r.PostForm)

		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		if bs.fail[method] {
			_, _ = w.Write([]byte(`{"ok": false, "error_code": 400, "description": "Bad Request: chat not found"}`))
			return
		}
		_, _ = fmt.Fprintf(w, `{"ok": true, "result": {"message_id": %d}}`, 10+len(bs.paths)-1)
	}))
	return bs
}

func newTestPublisher(t *testing.T, baseURL string) *TelegramPublisher {
	pub, err := NewTelegramPublisher(model.TelegramConfig{Token: "test-token", ChatID: "@channel", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("Failed to create publisher: %v", err)
	}
	return pub
}

func TestTelegramPublisher_TextOnly(t *testing.T) {
	bs := newBotServer(t)
	defer bs.Close()

	pub := newTestPublisher(t, bs.URL)
	receipt, err := pub.Publish(context.Background(), model.Post{Body: "<b>سلام</b>", DisablePreview: true})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if receipt.MessageID != 10 {
		t.Errorf("Expected message ID 10, got %d", receipt.MessageID)
	}
	if len(bs.paths) != 1 || bs.paths[0] != "/bottest-token/sendMessage" {
		t.Fatalf("Unexpected calls: %v", bs.paths)
	}
	form := bs.forms[0]
	if form.Get("chat_id") != "@channel" {
		t.Errorf("Expected chat_id @channel, got %s", form.Get("chat_id"))
	}
	if form.Get("text") != "<b>سلام</b>" {
		t.Errorf("Unexpected text: %q", form.Get("text"))
	}
	if form.Get("parse_mode") != "HTML" {
		t.Errorf("Expected parse_mode HTML, got %s", form.Get("parse_mode"))
	}
	if form.Get("disable_web_page_preview") != "true" {
		t.Errorf("Expected preview disabled, got %s", form.Get("disable_web_page_preview"))
	}
}

func TestTelegramPublisher_PhotoPost(t *testing.T) {
	bs := newBotServer(t)
	defer bs.Close()

	post := model.Post{
		Body:           "full body text",
		Caption:        "تیتر جذاب",
		Media:          &model.Media{Kind: model.MediaPhoto, URL: "https://img.example/i.jpg"},
		DisablePreview: true,
	}

	pub := newTestPublisher(t, bs.URL)
	receipt, err := pub.Publish(context.Background(), post)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if len(bs.paths) != 2 {
		t.Fatalf("Expected 2 calls, got %d: %v", len(bs.paths), bs.paths)
	}
	if bs.paths[0] != "/bottest-token/sendPhoto" || bs.paths[1] != "/bottest-token/sendMessage" {
		t.Errorf("Unexpected call order: %v", bs.paths)
	}

	photo := bs.forms[0]
	if photo.Get("photo") != "https://img.example/i.jpg" {
		t.Errorf("Unexpected photo URL: %s", photo.Get("photo"))
	}
	if photo.Get("caption") != "تیتر جذاب" {
		t.Errorf("Unexpected caption: %q", photo.Get("caption"))
	}
	if photo.Get("parse_mode") != "HTML" {
		t.Errorf("Expected photo parse_mode HTML, got %s", photo.Get("parse_mode"))
	}

	body := bs.forms[1]
	if body.Get("text") != "full body text" {
		t.Errorf("Expected full body in follow-up message, got %q", body.Get("text"))
	}
	if body.Get("disable_web_page_preview") != "true" {
		t.Errorf("Expected preview disabled on follow-up, got %s", body.Get("disable_web_page_preview"))
	}

	// Receipt identifies the first message of the pair.
	if receipt.MessageID != 10 {
		t.Errorf("Expected message ID 10, got %d", receipt.MessageID)
	}
}

func TestTelegramPublisher_PhotoFailureSkipsBody(t *testing.T) {
	bs := newBotServer(t)
	defer bs.Close()
	bs.fail["sendPhoto"] = true

	post := model.Post{
		Body:    "body",
		Caption: "caption",
		Media:   &model.Media{Kind: model.MediaPhoto, URL: "https://img.example/i.jpg"},
	}

	pub := newTestPublisher(t, bs.URL)
	_, err := pub.Publish(context.Background(), post)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "send photo") {
		t.Errorf("Expected send photo error, got %v", err)
	}
	if len(bs.paths) != 1 {
		t.Errorf("Expected no body message after failed photo, got calls: %v", bs.paths)
	}
}

func TestTelegramPublisher_VideoPost(t *testing.T) {
	bs := newBotServer(t)
	defer bs.Close()

	post := model.Post{
		Body:    "<b>analysis</b>",
		Caption: "🎙️ پادکست روز: Episode\n\nhttps://www.youtube.com/embed/abc",
		Media:   &model.Media{Kind: model.MediaVideo, URL: "https://www.youtube.com/embed/abc"},
	}

	pub := newTestPublisher(t, bs.URL)
	receipt, err := pub.Publish(context.Background(), post)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if len(bs.paths) != 2 {
		t.Fatalf("Expected 2 calls, got %d: %v", len(bs.paths), bs.paths)
	}

	lead := bs.forms[0]
	if lead.Get("text") != post.Caption {
		t.Errorf("Unexpected lead text: %q", lead.Get("text"))
	}
	// The lead must stay unparsed so the preview fetcher sees the raw URL.
	if _, ok := lead["parse_mode"]; ok {
		t.Error("Expected no parse_mode on the video lead")
	}
	if lead.Get("disable_web_page_preview") != "false" {
		t.Errorf("Expected preview enabled on lead, got %s", lead.Get("disable_web_page_preview"))
	}

	reply := bs.forms[1]
	if reply.Get("reply_to_message_id") != "10" {
		t.Errorf("Expected reply to message 10, got %s", reply.Get("reply_to_message_id"))
	}
	if reply.Get("parse_mode") != "HTML" {
		t.Errorf("Expected parse_mode HTML on reply, got %s", reply.Get("parse_mode"))
	}
	if reply.Get("text") != "<b>analysis</b>" {
		t.Errorf("Unexpected reply text: %q", reply.Get("text"))
	}

	if receipt.MessageID != 10 {
		t.Errorf("Expected lead message ID 10, got %d", receipt.MessageID)
	}
}

func TestTelegramPublisher_TruncatesTextOnly(t *testing.T) {
	bs := newBotServer(t)
	defer bs.Close()

	pub := newTestPublisher(t, bs.URL)
	if _, err := pub.Publish(context.Background(), model.Post{Body: strings.Repeat("ع", 5000)}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if got := utf8.RuneCountInString(bs.forms[0].Get("text")); got != 4096 {
		t.Errorf("Expected body truncated to 4096 runes, got %d", got)
	}
}

func TestTelegramPublisher_PhotoBodyNotTruncated(t *testing.T) {
	bs := newBotServer(t)
	defer bs.Close()

	post := model.Post{
		Body:    strings.Repeat("ع", 5000),
		Caption: strings.Repeat("ع", 2000),
		Media:   &model.Media{Kind: model.MediaPhoto, URL: "https://img.example/i.jpg"},
	}

	pub := newTestPublisher(t, bs.URL)
	if _, err := pub.Publish(context.Background(), post); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if got := utf8.RuneCountInString(bs.forms[0].Get("caption")); got != 1024 {
		t.Errorf("Expected caption truncated to 1024 runes, got %d", got)
	}
	// The body message accompanying a photo goes out whole.
	if got := utf8.RuneCountInString(bs.forms[1].Get("text")); got != 5000 {
		t.Errorf("Expected untruncated body of 5000 runes, got %d", got)
	}
}

func TestTelegramPublisher_TruncatesVideoReply(t *testing.T) {
	bs := newBotServer(t)
	defer bs.Close()

	post := model.Post{
		Body:    strings.Repeat("ع", 5000),
		Caption: "lead",
		Media:   &model.Media{Kind: model.MediaVideo, URL: "https://www.youtube.com/embed/abc"},
	}

	pub := newTestPublisher(t, bs.URL)
	if _, err := pub.Publish(context.Background(), post); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if got := utf8.RuneCountInString(bs.forms[1].Get("text")); got != 4096 {
		t.Errorf("Expected reply truncated to 4096 runes, got %d", got)
	}
}

func TestTelegramPublisher_APIError(t *testing.T) {
	bs := newBotServer(t)
	defer bs.Close()
	bs.fail["sendMessage"] = true

	pub := newTestPublisher(t, bs.URL)
	_, err := pub.Publish(context.Background(), model.Post{Body: "hi"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("Expected API description in error, got %v", err)
	}
}

func TestNewTelegramPublisher_RequiresCredentials(t *testing.T) {
	if _, err := NewTelegramPublisher(model.TelegramConfig{ChatID: "@c"}); err == nil {
		t.Error("Expected error for missing token, got nil")
	}
	if _, err := NewTelegramPublisher(model.TelegramConfig{Token: "t"}); err == nil {
		t.Error("Expected error for missing chat ID, got nil")
	}
}
