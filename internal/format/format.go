// Package format renders summarized items into localized Telegram posts.
// All copy is Farsi; templates use Telegram's HTML parse mode.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/mokhberai/mokhber/internal/model"
)

// Feed dates render as e.g. "July 24, 2025".
const dateLayout = "January 02, 2006"

// Fallback copy for sparse summaries.
const (
	captionFallback = "خبر علمی"
	guestFallback   = "نامشخص"
	summaryFallback = "خلاصه‌ای موجود نیست."
)

// Input carries everything a renderer needs to build a publishable post.
type Input struct {
	Group     model.SourceGroup
	Title     string
	Link      string
	Published *time.Time
	Content   model.Extracted
	Fields    model.Fields
}

// Render builds the post for an item according to its group's post kind.
func Render(in Input) (model.Post, error) {
	switch in.Group.Kind {
	case model.KindNews:
		return renderNews(in), nil
	case model.KindPaper:
		return renderPaper(in), nil
	case model.KindPodcastTranscript:
		return renderPodcastTranscript(in), nil
	case model.KindPodcastFeed:
		return renderPodcastFeed(in), nil
	default:
		return model.Post{}, fmt.Errorf("unknown post kind %q", in.Group.Kind)
	}
}

func renderNews(in Input) model.Post {
	catchy := in.Fields.StrOr("catchy_title", in.Title)

	var b strings.Builder
	b.WriteString("📰 <b>خبر علمی</b> 📰\n\n")
	fmt.Fprintf(&b, "<b>%s</b>\n\n", catchy)
	fmt.Fprintf(&b, "%s\n\n", in.Fields.Str("summary"))
	if eli5 := in.Fields.Str("eli5"); eli5 != "" {
		fmt.Fprintf(&b, "🧒 <b>به زبان ساده (ELI5)</b>\n%s\n\n", eli5)
	}
	if doi := in.Content.CitationURL; doi != "" {
		fmt.Fprintf(&b, "📖 <b>منبع اصلی (DOI):</b>\n<a href='%s'>مشاهده مقاله پژوهشی</a>\n\n", doi)
	}
	fmt.Fprintf(&b, "🔗 <a href='%s'>مطالعه مطلب کامل در %s</a>\n\n", in.Link, in.Group.Name)
	b.WriteString(articleTags(in.Group, in.Fields.List("keywords")))

	post := model.Post{Body: b.String(), DisablePreview: true}
	attachPhoto(&post, in)
	return post
}

func renderPaper(in Input) model.Post {
	var b strings.Builder
	b.WriteString("🔬 <b>تحلیل مقاله علمی</b> 🔬\n\n")
	fmt.Fprintf(&b, "<b>%s</b>\n\n", in.Title)
	fmt.Fprintf(&b, "📝 <b>خلاصه خودمونی</b>\n%s\n\n", in.Fields.Str("summary"))
	if highlights := in.Fields.List("highlights"); len(highlights) > 0 {
		fmt.Fprintf(&b, "✨ <b>نکات کلیدی</b>\n%s\n\n", bulletList(highlights))
	}
	fmt.Fprintf(&b, "🧒 <b>به زبان ساده (ELI5)</b>\n%s\n\n", in.Fields.Str("eli5"))
	if v := in.Fields.Str("big_so_what"); v != "" {
		fmt.Fprintf(&b, "🌍 <b>چرا این مهمه؟</b>\n%s\n\n", v)
	}
	if v := in.Fields.Str("analogy"); v != "" {
		fmt.Fprintf(&b, "💡 <b>مثال برای درک بهتر</b>\n%s\n\n", v)
	}
	if steps := in.Fields.List("next_steps"); len(steps) > 0 {
		fmt.Fprintf(&b, "🚀 <b>قدم بعدی چیه؟</b>\n%s\n\n", bulletList(steps))
	}
	fmt.Fprintf(&b, "🔗 <a href='%s'>مطالعه مقاله کامل در %s</a>\n\n", in.Link, in.Group.Name)
	b.WriteString(articleTags(in.Group, in.Fields.List("keywords")))

	post := model.Post{Body: b.String(), DisablePreview: true}
	attachPhoto(&post, in)
	return post
}

func renderPodcastTranscript(in Input) model.Post {
	var b strings.Builder
	fmt.Fprintf(&b, "🎙️ <b>پادکست: %s</b> 🎙️\n", in.Title)
	b.WriteString(metadataLine(in.Group, in.Published))
	fmt.Fprintf(&b, "👤 <b>مهمان این قسمت:</b> %s\n\n", in.Fields.StrOr("guest_name", guestFallback))
	fmt.Fprintf(&b, "📝 <b>چکیده گفتگو:</b>\n%s\n\n", in.Fields.StrOr("summary", summaryFallback))
	if topics := in.Fields.List("key_topics"); len(topics) > 0 {
		fmt.Fprintf(&b, "🧠 <b>موضوعات کلیدی:</b>\n%s\n\n", bulletList(topics))
	}
	if questions := in.Fields.List("notable_questions"); len(questions) > 0 {
		fmt.Fprintf(&b, "❓ <b>پرسش‌های جالب:</b>\n%s\n\n", bulletList(questions))
	}
	if quote := in.Fields.Str("memorable_quote"); quote != "" {
		fmt.Fprintf(&b, "💬 <b>نقل‌قول به یاد ماندنی:</b>\n<i>«%s»</i>\n\n", quote)
	}
	if in.Content.AudioURL != "" {
		fmt.Fprintf(&b, "🎧 <a href='%s'>برای شنیدن کامل این قسمت کلیک کنید</a>\n\n", in.Content.AudioURL)
	}
	b.WriteString(podcastTags(in.Group, in.Fields.List("hashtags")))

	post := model.Post{Body: b.String()}
	if in.Content.VideoURL != "" {
		post.Media = &model.Media{Kind: model.MediaVideo, URL: in.Content.VideoURL}
		post.Caption = fmt.Sprintf("🎙️ پادکست روز: %s\n\n%s", in.Title, in.Content.VideoURL)
	}
	return post
}

func renderPodcastFeed(in Input) model.Post {
	var b strings.Builder
	fmt.Fprintf(&b, "🎙️ <b>%s</b> 🎙️\n", in.Fields.StrOr("catchy_title", in.Title))
	b.WriteString(metadataLine(in.Group, in.Published))
	fmt.Fprintf(&b, "👤 <b>مهمان یا موضوع:</b> %s\n\n", in.Fields.StrOr("guest_info", guestFallback))
	fmt.Fprintf(&b, "📝 <b>چکیده گفتگو:</b>\n%s\n\n", in.Fields.StrOr("summary", summaryFallback))
	if takeaways := in.Fields.List("key_takeaways"); len(takeaways) > 0 {
		fmt.Fprintf(&b, "📌 <b>نکات کلیدی این قسمت:</b>\n%s\n\n", bulletList(takeaways))
	}
	if in.Content.AudioURL != "" {
		fmt.Fprintf(&b, "🎧 <a href='%s'>برای شنیدن کامل این قسمت کلیک کنید</a>\n\n", in.Content.AudioURL)
	}
	b.WriteString(podcastTags(in.Group, in.Fields.List("hashtags")))

	return model.Post{Body: b.String()}
}

// attachPhoto promotes an extracted image into a photo attachment. The
// caption prefers the summarized title and falls back to generic copy.
func attachPhoto(post *model.Post, in Input) {
	if in.Content.ImageURL == "" {
		return
	}
	post.Media = &model.Media{Kind: model.MediaPhoto, URL: in.Content.ImageURL}
	post.Caption = in.Fields.StrOr("catchy_title", captionFallback)
}

func metadataLine(group model.SourceGroup, published *time.Time) string {
	meta := "<i>از پادکست " + group.Name
	if published != nil {
		meta += " | " + published.Format(dateLayout)
	}
	return meta + "</i>\n\n"
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "▪️ "+item)
	}
	return strings.Join(lines, "\n")
}

// articleTags builds the hashtag block for news and paper posts. Keywords
// are normalized so each renders as a single tag.
func articleTags(group model.SourceGroup, keywords []string) string {
	tags := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ReplaceAll(kw, " ", "_")
		kw = strings.ReplaceAll(kw, "-", "_")
		tags = append(tags, "#"+kw)
	}
	category := strings.ReplaceAll(group.CategoryFa, " ", "_")
	return fmt.Sprintf("%s #%s\n%s", group.HashtagEn, category, strings.Join(tags, " "))
}

// podcastTags builds the hashtag block for podcast posts. The category is
// already underscore-joined in configuration and the model supplies its own
// hashtags, so only spaces inside them are normalized.
func podcastTags(group model.SourceGroup, hashtags []string) string {
	tags := make([]string, 0, len(hashtags))
	for _, tag := range hashtags {
		tags = append(tags, "#"+strings.ReplaceAll(tag, " ", "_"))
	}
	return fmt.Sprintf("%s #%s\n%s", group.HashtagEn, group.CategoryFa, strings.Join(tags, " "))
}
