package summarize

import (
	"fmt"
	"strings"

	"github.com/mokhberai/mokhber/internal/model"
)

// NewSummarizer creates a summarization provider based on configuration.
func NewSummarizer(cfg model.LLMConfig) (Summarizer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		return NewGeminiProvider(cfg)

	case "groq":
		return NewGroqProvider(cfg)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: gemini, groq)", cfg.Provider)
	}
}
