package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mokhberai/mokhber/internal/model"
)

// Telegram message size limits, in runes.
const (
	maxBodyRunes    = 4096
	maxCaptionRunes = 1024
)

// TelegramPublisher implements the Publisher interface for Telegram channels
// via the Bot API.
type TelegramPublisher struct {
	token      string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

// Telegram Bot API structures
type telegramResponse struct {
	OK          bool            `json:"ok"`
	Result      telegramMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
}

type telegramMessage struct {
	MessageID int64 `json:"message_id"`
}

// NewTelegramPublisher creates a new Telegram publisher.
func NewTelegramPublisher(cfg model.TelegramConfig) (*TelegramPublisher, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("Telegram bot token is required")
	}
	if cfg.ChatID == "" {
		return nil, fmt.Errorf("Telegram chat ID is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &TelegramPublisher{
		token:   cfg.Token,
		chatID:  cfg.ChatID,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Name returns the publisher name.
func (p *TelegramPublisher) Name() string {
	return "telegram"
}

// Publish sends a post using the shape its media dictates: a single text
// message, a photo followed by the full body, or a video lead followed by
// the body as a reply.
func (p *TelegramPublisher) Publish(ctx context.Context, post model.Post) (model.Receipt, error) {
	if post.Media == nil {
		return p.publishText(ctx, post)
	}
	switch post.Media.Kind {
	case model.MediaPhoto:
		return p.publishPhoto(ctx, post)
	case model.MediaVideo:
		return p.publishVideo(ctx, post)
	default:
		return model.Receipt{}, fmt.Errorf("unknown media kind %q", post.Media.Kind)
	}
}

func (p *TelegramPublisher) publishText(ctx context.Context, post model.Post) (model.Receipt, error) {
	values := url.Values{}
	values.Set("chat_id", p.chatID)
	values.Set("text", truncateRunes(post.Body, maxBodyRunes))
	values.Set("parse_mode", "HTML")
	values.Set("disable_web_page_preview", strconv.FormatBool(post.DisablePreview))

	msg, err := p.call(ctx, "sendMessage", values)
	if err != nil {
		return model.Receipt{}, fmt.Errorf("send message: %w", err)
	}
	return model.Receipt{MessageID: msg.MessageID}, nil
}

// publishPhoto sends the image with a short caption first, then the full
// body as its own message so it is never cut down to caption length. The
// body send is not truncated; an oversized body fails the publish and the
// item stays eligible for the next run.
func (p *TelegramPublisher) publishPhoto(ctx context.Context, post model.Post) (model.Receipt, error) {
	values := url.Values{}
	values.Set("chat_id", p.chatID)
	values.Set("photo", post.Media.URL)
	values.Set("caption", truncateRunes(post.Caption, maxCaptionRunes))
	values.Set("parse_mode", "HTML")

	photoMsg, err := p.call(ctx, "sendPhoto", values)
	if err != nil {
		return model.Receipt{}, fmt.Errorf("send photo: %w", err)
	}

	values = url.Values{}
	values.Set("chat_id", p.chatID)
	values.Set("text", post.Body)
	values.Set("parse_mode", "HTML")
	values.Set("disable_web_page_preview", strconv.FormatBool(post.DisablePreview))

	if _, err := p.call(ctx, "sendMessage", values); err != nil {
		return model.Receipt{}, fmt.Errorf("send body after photo: %w", err)
	}
	return model.Receipt{MessageID: photoMsg.MessageID}, nil
}

// publishVideo sends the bare video link first so Telegram embeds a player,
// then chains the body as a reply to it. The lead is sent without a parse
// mode so the URL stays raw for the preview fetcher.
func (p *TelegramPublisher) publishVideo(ctx context.Context, post model.Post) (model.Receipt, error) {
	values := url.Values{}
	values.Set("chat_id", p.chatID)
	values.Set("text", post.Caption)
	values.Set("disable_web_page_preview", "false")

	lead, err := p.call(ctx, "sendMessage", values)
	if err != nil {
		return model.Receipt{}, fmt.Errorf("send video lead: %w", err)
	}

	values = url.Values{}
	values.Set("chat_id", p.chatID)
	values.Set("text", truncateRunes(post.Body, maxBodyRunes))
	values.Set("parse_mode", "HTML")
	values.Set("reply_to_message_id", strconv.FormatInt(lead.MessageID, 10))

	if _, err := p.call(ctx, "sendMessage", values); err != nil {
		return model.Receipt{}, fmt.Errorf("send body after video lead: %w", err)
	}
	return model.Receipt{MessageID: lead.MessageID}, nil
}

// call makes a form-encoded request to a Bot API method.
func (p *TelegramPublisher) call(ctx context.Context, method string, values url.Values) (*telegramMessage, error) {
	endpoint := fmt.Sprintf("%s/bot%s/%s", p.baseURL, p.token, method)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var apiResp telegramResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}
	if !apiResp.OK {
		return nil, fmt.Errorf("API error (%d): %s", apiResp.ErrorCode, apiResp.Description)
	}
	return &apiResp.Result, nil
}
