// Package publish delivers rendered posts to a Telegram channel.
package publish

import (
	"context"

	"github.com/mokhberai/mokhber/internal/model"
)

// Publisher delivers a post and reports the first message it produced.
// Implementations must only return a nil error once every message of the
// post's shape has been accepted by the transport; history is committed on
// that signal.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, post model.Post) (model.Receipt, error)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
