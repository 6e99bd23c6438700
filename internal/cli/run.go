package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mokhberai/mokhber/internal/model"
	"github.com/mokhberai/mokhber/internal/pipeline"
	"github.com/mokhberai/mokhber/internal/publish"
	"github.com/mokhberai/mokhber/internal/summarize"
)

var (
	runTimeout time.Duration
	timeout    time.Duration
	userAgent  string
	maxBytes   int64
	noCache    bool
	noRobots   bool
	httpProxy  string
	httpsProxy string
	provider   string
	llmModel   string
	historyDir string
	onlyGroups []string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Post one unseen item per source group",
	Long: `Run executes one posting pass:
- Source groups are visited in random order
- Per group, all origins are fetched and filtered against posting history
- One unseen item is selected uniformly at random
- The item is extracted, summarized, formatted, and published
- The item ID is committed to history only after a confirmed publish

Required environment variables:
  TELEGRAM_TOKEN        bot token
  TELEGRAM_CHANNEL_ID   target channel (@name or numeric ID)
  GEMINI_API_KEY        when --provider gemini (default)
  GROQ_API_KEY          when --provider groq

Example:
  mokhber run
  mokhber run --provider groq --history-dir /var/lib/mokhber
  mokhber run --group "Huberman Lab" --verbose`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().DurationVar(&runTimeout, "run-timeout", 15*time.Minute, "total timeout for the posting pass")

	// HTTP flags
	runCmd.Flags().DurationVar(&timeout, "timeout", 20*time.Second, "per-request HTTP timeout")
	runCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default: browser-like agent)")
	runCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the in-run fetch cache")
	runCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
	runCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	runCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	runCmd.Flags().StringVar(&provider, "provider", "gemini", "LLM provider (gemini, groq)")
	runCmd.Flags().StringVar(&llmModel, "model", "", "LLM model name (default: provider-specific)")

	// Selection flags
	runCmd.Flags().StringVar(&historyDir, "history-dir", "", "directory holding history files (default: current directory)")
	runCmd.Flags().StringSliceVar(&onlyGroups, "group", nil, "process only the named groups (repeatable)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply flag overrides
	cfg.HTTP.Timeout = timeout
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.Cache.Enabled = !noCache
	cfg.Robots.Enabled = !noRobots
	if httpProxy != "" {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if httpsProxy != "" {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	cfg.LLM.Provider = provider
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if historyDir != "" {
		cfg.History.Dir = historyDir
	}

	if len(onlyGroups) > 0 {
		filtered, err := filterGroups(cfg.Groups, onlyGroups)
		if err != nil {
			return err
		}
		cfg.Groups = filtered
	}

	// Secrets come from the environment only; missing credentials are the
	// single fatal precondition of a run.
	cfg.Telegram.Token = os.Getenv("TELEGRAM_TOKEN")
	cfg.Telegram.ChatID = os.Getenv("TELEGRAM_CHANNEL_ID")
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_TOKEN environment variable not set")
	}
	if cfg.Telegram.ChatID == "" {
		return fmt.Errorf("TELEGRAM_CHANNEL_ID environment variable not set")
	}

	switch provider {
	case "gemini":
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case "groq":
		cfg.LLM.APIKey = os.Getenv("GROQ_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY environment variable not set")
		}
	}

	summarizer, err := summarize.NewSummarizer(cfg.LLM)
	if err != nil {
		return fmt.Errorf("create summarizer: %w", err)
	}
	publisher, err := publish.NewTelegramPublisher(cfg.Telegram)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	p := pipeline.NewPipeline(cfg, summarizer, publisher, rng)
	report := p.Run(ctx)

	printReport(report)
	return nil
}

func filterGroups(groups []model.SourceGroup, names []string) ([]model.SourceGroup, error) {
	byName := make(map[string]model.SourceGroup, len(groups))
	for _, g := range groups {
		byName[g.Name] = g
	}
	filtered := make([]model.SourceGroup, 0, len(names))
	for _, name := range names {
		g, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown group %q (see 'mokhber sources')", name)
		}
		filtered = append(filtered, g)
	}
	return filtered, nil
}

func printReport(report *model.RunReport) {
	fmt.Fprintf(os.Stderr, "\n")
	for _, res := range report.Results {
		line := fmt.Sprintf("%-20s %s", res.Status, res.Group)
		if res.Title != "" {
			line += fmt.Sprintf(": %s", res.Title)
		}
		if res.Err != "" {
			line += fmt.Sprintf(" (%s)", res.Err)
		}
		fmt.Fprintln(os.Stderr, line)
	}
	fmt.Fprintf(os.Stderr, "\nPublished %d of %d groups in %s\n",
		report.Published, len(report.Results),
		report.FinishedAt.Sub(report.StartedAt).Round(time.Second))
}
