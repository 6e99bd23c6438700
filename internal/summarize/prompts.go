package summarize

import (
	"fmt"
	"unicode/utf8"

	"github.com/mokhberai/mokhber/internal/model"
)

// Prompt size caps, in runes. Transcripts get a larger window because the
// interesting material is spread across the whole conversation.
const (
	promptCap           = 15000
	promptCapTranscript = 25000
)

const newsPrompt = `You are a science news editor. Summarize the following article for a general Persian-speaking audience. Provide a response ONLY in a valid JSON object format in modern Persian (Farsi).
The JSON object must have these exact keys:
- "catchy_title": An engaging, human-like title for the news piece.
- "summary": A simple paragraph, clear summary of the main points.
- "keywords": A list of 3-4 relevant keyword strings.
- "eli5": A single paragraph, ultra-simple explaining the core idea as if to a 5-year-old.

Article Text to Analyze:
---
%s
---`

const paperPrompt = `You are an expert science communicator. Analyze the following scientific text and provide a response ONLY in a valid JSON object format in modern Persian (Farsi). The JSON object must have these exact keys:
- "summary": A 3-4 sentence summary.
- "highlights": A list of 3 key finding strings.
- "keywords": A list of 4-5 keyword strings.
- "eli5": A single sentence explanation.
- "big_so_what": A 1-2 sentence explanation of why this matters.
- "analogy": A single sentence analogy.
- "next_steps": A list of 2-3 short strings about future research.

Scientific Text to Analyze:
---
%s
---`

const transcriptPrompt = `You are a podcast analyst. Your task is to analyze the following podcast transcript and summarize it for a general audience. Provide a response ONLY in a valid JSON object format in modern Persian (Farsi).

The JSON object must have these exact keys:
- "guest_name": The full name of the guest being interviewed. if not, mention "بدون مهمان"
- "summary": A concise, engaging 2-3 paragraph summary of the entire conversation.
- "key_topics": A list of 4-5 main topics or ideas discussed, as short strings.
- "notable_questions": A list of 2-3 interesting questions the host asked the guest.
- "memorable_quote": One impactful or thought-provoking quote from the guest (or the host if solo).
- "hashtags": A list of 4-5 relevant Persian hashtags (without the # symbol).

Podcast Transcript to Analyze:
---
%s
---`

const feedPrompt = `You are a podcast summarizer. Your task is to refine and structure the following podcast description into a more engaging format for a social media post. The original podcast title is "%s". Provide a response ONLY in a valid JSON object format in modern Persian (Farsi).

The JSON object must have these exact keys:
- "catchy_title": Create a new, engaging title for the social media post based on the episode's content.
- "summary": Rewrite the provided description into a clean, easy-to-read paragraph.
- "key_takeaways": From the description, extract a list of 3-4 key takeaways or topics as short, bullet-point-style strings.
- "guest_info": Identify the guest if mentioned, otherwise state it's a solo episode.
- "hashtags": A list of 4-5 relevant Persian hashtags (without the # symbol).

Podcast Description to Analyze:
---
%s
---`

// minLength returns the smallest content size, in runes, worth sending to a
// provider for the given kind.
func minLength(kind model.PostKind) int {
	switch kind {
	case model.KindNews:
		return 50
	case model.KindPodcastTranscript:
		return 500
	default:
		return 100
	}
}

// BuildPrompt renders the provider-independent prompt for a request,
// enforcing the per-kind minimum content length and prompt size cap.
func BuildPrompt(req Request) (string, error) {
	if n := utf8.RuneCountInString(req.Text); n < minLength(req.Kind) {
		return "", fmt.Errorf("%w: %d runes for %s", ErrTooShort, n, req.Kind)
	}

	limit := promptCap
	if req.Kind == model.KindPodcastTranscript {
		limit = promptCapTranscript
	}
	text := truncateRunes(req.Text, limit)

	switch req.Kind {
	case model.KindNews:
		return fmt.Sprintf(newsPrompt, text), nil
	case model.KindPaper:
		return fmt.Sprintf(paperPrompt, text), nil
	case model.KindPodcastTranscript:
		return fmt.Sprintf(transcriptPrompt, text), nil
	case model.KindPodcastFeed:
		return fmt.Sprintf(feedPrompt, req.Title, text), nil
	default:
		return "", fmt.Errorf("unknown post kind %q", req.Kind)
	}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
