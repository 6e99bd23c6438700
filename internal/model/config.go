package model

import (
	"fmt"
	"time"
)

// Config is the complete runtime configuration. It is built once at startup
// (defaults, then config file, then flags) and passed explicitly; nothing
// reads configuration ambiently after load.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http" mapstructure:"http"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Robots   RobotsConfig   `yaml:"robots" mapstructure:"robots"`
	Rate     RateConfig     `yaml:"rate" mapstructure:"rate"`
	LLM      LLMConfig      `yaml:"llm" mapstructure:"llm"`
	Telegram TelegramConfig `yaml:"telegram" mapstructure:"telegram"`
	History  HistoryConfig  `yaml:"history" mapstructure:"history"`
	Groups   []SourceGroup  `yaml:"groups" mapstructure:"groups"`
}

// HTTPConfig controls the shared outbound HTTP client.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// CacheConfig controls the intra-run response cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// RobotsConfig controls robots.txt checking before page fetches.
type RobotsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// RateConfig controls per-domain outbound rate limiting.
type RateConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// LLMConfig selects and configures the summarization provider. The API key
// is environment-only and never serialized.
type LLMConfig struct {
	Provider  string        `yaml:"provider" mapstructure:"provider"`
	Model     string        `yaml:"model,omitempty" mapstructure:"model"`
	APIKey    string        `yaml:"-" mapstructure:"-"`
	BaseURL   string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens int           `yaml:"max_tokens,omitempty" mapstructure:"max_tokens"`
}

// TelegramConfig configures the publish transport. Token and chat ID are
// environment-only secrets and never serialized.
type TelegramConfig struct {
	Token   string        `yaml:"-" mapstructure:"-"`
	ChatID  string        `yaml:"-" mapstructure:"-"`
	BaseURL string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// HistoryConfig locates the per-partition history files.
type HistoryConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// Validate checks the configuration for structural mistakes that would
// otherwise surface mid-run.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Groups))
	for i, g := range c.Groups {
		if g.Name == "" {
			return fmt.Errorf("group %d: name is required", i)
		}
		if seen[g.Name] {
			return fmt.Errorf("group %q: duplicate name", g.Name)
		}
		seen[g.Name] = true
		if len(g.Origins) == 0 {
			return fmt.Errorf("group %q: at least one origin is required", g.Name)
		}
		switch g.Adapter {
		case AdapterFeed:
		case AdapterPage:
			if g.Page.Item == "" || g.Page.Link == "" {
				return fmt.Errorf("group %q: page adapter needs item and link selectors", g.Name)
			}
		default:
			return fmt.Errorf("group %q: unknown adapter %q", g.Name, g.Adapter)
		}
		switch g.Kind {
		case KindNews, KindPaper, KindPodcastFeed, KindPodcastTranscript:
		default:
			return fmt.Errorf("group %q: unknown post kind %q", g.Name, g.Kind)
		}
		if g.History == "" {
			return fmt.Errorf("group %q: history partition is required", g.Name)
		}
	}
	return nil
}

// DefaultConfig returns the built-in configuration, including the full
// source tables the channel publishes from.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      20 * time.Second,
			UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Robots: RobotsConfig{
			Enabled: true,
		},
		Rate: RateConfig{
			RequestsPerSecond: 1,
			Burst:             3,
		},
		LLM: LLMConfig{
			Provider: "gemini",
			Timeout:  45 * time.Second,
		},
		Telegram: TelegramConfig{
			BaseURL: "https://api.telegram.org",
			Timeout: 30 * time.Second,
		},
		History: HistoryConfig{
			Dir: ".",
		},
		Groups: defaultGroups(),
	}
}

func defaultGroups() []SourceGroup {
	groups := []SourceGroup{}

	// ScienceDaily news feeds share one history partition.
	sciencedaily := func(name, feed, categoryFa, hashtag string) SourceGroup {
		return SourceGroup{
			Name:       name,
			Adapter:    AdapterFeed,
			Origins:    []string{"https://www.sciencedaily.com/rss/" + feed},
			Extractor:  "sciencedaily",
			Kind:       KindNews,
			CategoryFa: categoryFa,
			HashtagEn:  hashtag,
			History:    "posted_links3.txt",
		}
	}
	groups = append(groups,
		sciencedaily("ScienceDaily Most Popular", "most_popular.xml", "اخبار_پربازدید", "#MostPopularNews"),
		sciencedaily("ScienceDaily Top Society News", "top/society.xml", "اخبار_برتر_جامعه", "#SocietyNews"),
		sciencedaily("ScienceDaily Top News", "top.xml", "اخبار_برتر_علمی", "#TopScienceNews"),
		sciencedaily("ScienceDaily Top Technology News", "top/technology.xml", "اخبار_برتر_فناوری", "#TechnologyNews"),
		sciencedaily("ScienceDaily Top Science News", "top/science.xml", "اخبار_علمی_برتر", "#ScienceNews"),
		sciencedaily("ScienceDaily Cultures News", "fossils_ruins/cultures.xml", "اخبار_فرهنگ‌ها", "#CulturesNews"),
		sciencedaily("ScienceDaily Anthropology News", "fossils_ruins/anthropology.xml", "اخبار_انسان‌شناسی", "#AnthropologyNews"),
		sciencedaily("ScienceDaily Early Humans News", "fossils_ruins/early_humans.xml", "اخبار_انسان‌های_اولیه", "#EarlyHumansNews"),
		sciencedaily("ScienceDaily Ancient Civilizations News", "fossils_ruins/ancient_civilizations.xml", "اخبار_تمدن‌های_باستانی", "#AncientCivilizationsNews"),
		sciencedaily("ScienceDaily Fossil Evolution News", "fossils_ruins/evolution.xml", "اخبار_تکامل", "#EvolutionNews"),
	)

	groups = append(groups,
		SourceGroup{
			Name:    "Popular Science",
			Adapter: AdapterFeed,
			Origins: []string{
				"https://www.popsci.com/category/science/feed/",
				"https://www.popsci.com/category/environment/feed/",
				"https://www.popsci.com/category/diy/feed/",
				"https://www.popsci.com/category/technology/feed/",
				"https://www.popsci.com/category/ai/feed/",
				"https://www.popsci.com/category/space/feed/",
				"https://www.popsci.com/category/ask-us-anything/feed/",
				"https://www.popsci.com/category/biology/feed/",
				"https://www.popsci.com/category/dinosaurs/feed/",
				"https://www.popsci.com/category/evolution/feed/",
			},
			Extractor:  "popsci",
			Kind:       KindNews,
			CategoryFa: "علوم_محبوب",
			HashtagEn:  "#PopularScience",
			History:    "posted_links5.txt",
		},
		SourceGroup{
			Name:    "NVIDIA News",
			Adapter: AdapterFeed,
			Origins: []string{
				"https://nvidianews.nvidia.com/releases.xml",
				"http://feeds.feedburner.com/nvidiablog",
				"https://nvidianews.nvidia.com/cats/press_release.xml",
			},
			Extractor:  "nvidia",
			Kind:       KindNews,
			CategoryFa: "اخبار_انویدیا",
			HashtagEn:  "#NVIDIANews",
			History:    "posted_links5.txt",
		},
	)

	groups = append(groups,
		SourceGroup{
			Name:    "Philosophy Bites",
			Adapter: AdapterPage,
			Origins: []string{
				"https://philosophybites.com/episodes/",
				"https://philosophybites.com/episodes/?e-filter-6d27afa-podcast_category=ethics-of-health-and-medicine",
				"https://philosophybites.com/episodes/?e-filter-6d27afa-podcast_category=about-philosophy",
				"https://philosophybites.com/episodes/?e-filter-6d27afa-podcast_category=body-and-mind",
				"https://philosophybites.com/episodes/?e-filter-6d27afa-podcast_category=decision-making-and-responsibility",
				"https://philosophybites.com/episodes/?e-filter-6d27afa-podcast_category=existence-and-reality",
				"https://philosophybites.com/episodes/?e-filter-6d27afa-podcast_category=knowledge-thought-and-belief",
				"https://philosophybites.com/episodes/?e-filter-6d27afa-podcast_category=religion",
				"https://philosophybites.com/episodes/?e-filter-6d27afa-podcast_category=traditional-ethical-theories",
			},
			Extractor:  "philosophybites",
			Kind:       KindPodcastTranscript,
			CategoryFa: "پادکست_گاز_فلسفی",
			HashtagEn:  "#PhilosophyBites",
			History:    "posted_philosophy_bites_links.txt",
			Page: PageSelectors{
				Item:  "div.e-loop-item",
				Link:  "a",
				Title: "h3.elementor-heading-title",
			},
		},
		SourceGroup{
			Name:       "Philosophize This!",
			Adapter:    AdapterPage,
			Origins:    []string{"https://www.philosophizethis.org/transcripts"},
			Extractor:  "philosophizethis",
			Kind:       KindPodcastTranscript,
			CategoryFa: "پادکست_فلسفیش‌ـ‌کن",
			HashtagEn:  "#PhilosophizeThis",
			History:    "posted_philosophize_this_links.txt",
			Page: PageSelectors{
				Item:  "li.archive-item",
				Link:  "a.archive-item-link",
				Title: "a.archive-item-link",
			},
		},
		SourceGroup{
			Name:    "Podcast Summaries",
			Adapter: AdapterFeed,
			Origins: []string{
				"https://feeds.megaphone.fm/QCD6036500916",
				"https://partiallyexaminedlife.libsyn.com/rss",
				"https://feeds.megaphone.fm/RSV1597324942",
				"https://feeds.simplecast.com/C0fPpQ64",
			},
			Extractor:  "inline",
			Kind:       KindPodcastFeed,
			CategoryFa: "خلاصه‌پادکست",
			HashtagEn:  "#PodcastSummary",
			History:    "posted_podcastsummary_links.txt",
		},
		SourceGroup{
			Name:       "Huberman Lab",
			Adapter:    AdapterFeed,
			Origins:    []string{"https://feeds.megaphone.fm/hubermanlab"},
			Extractor:  "inline",
			Kind:       KindPodcastFeed,
			CategoryFa: "پادکست_هابرمن",
			HashtagEn:  "#HubermanLab",
			History:    "posted_hubermanlab_links.txt",
		},
		SourceGroup{
			Name:       "The Jordan B. Peterson",
			Adapter:    AdapterFeed,
			Origins:    []string{"https://feeds.simplecast.com/vsy1m5LV"},
			Extractor:  "inline",
			Kind:       KindPodcastFeed,
			CategoryFa: "پادکست_پیترسون",
			HashtagEn:  "#JordanPeterson",
			History:    "posted_JordanPeterson_links.txt",
		},
		SourceGroup{
			Name:       "Lex Fridman Podcast",
			Adapter:    AdapterFeed,
			Origins:    []string{"https://lexfridman.com/feed/podcast/"},
			Extractor:  "lexfridman",
			Kind:       KindPodcastTranscript,
			CategoryFa: "پادکست_لکس_فریدمن",
			HashtagEn:  "#LexFridmanPodcast",
			History:    "posted_lexfridman_links.txt",
		},
	)

	return groups
}
