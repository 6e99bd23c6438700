// Package pipeline orchestrates one complete posting run: discover
// candidates per source group, pick one unseen item, extract and summarize
// it, publish the rendered post, and commit the item to history.
package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/mokhberai/mokhber/internal/extract"
	"github.com/mokhberai/mokhber/internal/fetch"
	"github.com/mokhberai/mokhber/internal/format"
	"github.com/mokhberai/mokhber/internal/history"
	"github.com/mokhberai/mokhber/internal/logging"
	"github.com/mokhberai/mokhber/internal/model"
	"github.com/mokhberai/mokhber/internal/publish"
	"github.com/mokhberai/mokhber/internal/source"
	"github.com/mokhberai/mokhber/internal/summarize"
)

// historyStore is the slice of history.Store the pipeline needs.
type historyStore interface {
	Load(partition string) (*history.Record, error)
	Commit(partition string, rec *history.Record) error
}

// extractorRegistry resolves which extractor handles a selected item.
type extractorRegistry interface {
	For(group model.SourceGroup, link string) extract.Extractor
}

// Pipeline orchestrates the complete posting process.
type Pipeline struct {
	groups     []model.SourceGroup
	adapterFor func(model.SourceGroup) (source.Adapter, error)
	extractors extractorRegistry
	summarizer summarize.Summarizer
	publisher  publish.Publisher
	history    historyStore
	rng        *rand.Rand
}

// NewPipeline creates a pipeline with the given configuration. The random
// source decorrelates group order and item selection across runs; the
// summarizer and publisher are injected so credentials stay out of config.
func NewPipeline(cfg *model.Config, summarizer summarize.Summarizer, publisher publish.Publisher, rng *rand.Rand) *Pipeline {
	client := fetch.NewClient(cfg)
	return &Pipeline{
		groups: cfg.Groups,
		adapterFor: func(group model.SourceGroup) (source.Adapter, error) {
			return source.ForGroup(group, client)
		},
		extractors: extract.NewRegistry(client),
		summarizer: summarizer,
		publisher:  publisher,
		history:    history.NewStore(cfg.History.Dir),
		rng:        rng,
	}
}

// Run processes every configured group once, in random order, and returns
// the per-group outcomes. Failures never cross group boundaries.
func (p *Pipeline) Run(ctx context.Context) *model.RunReport {
	report := &model.RunReport{StartedAt: time.Now().UTC()}

	order := make([]model.SourceGroup, len(p.groups))
	copy(order, p.groups)
	p.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	for _, group := range order {
		if ctx.Err() != nil {
			logging.Warn("run cancelled", "error", ctx.Err())
			break
		}
		report.Add(p.processGroup(ctx, group))
	}

	report.FinishedAt = time.Now().UTC()
	logging.Info("run finished", "groups", len(report.Results), "published", report.Published)
	return report
}

// processGroup walks one group through the full stage sequence. Each stage
// failure maps to a typed status; a panic is contained here so one broken
// group cannot take down the run.
func (p *Pipeline) processGroup(ctx context.Context, group model.SourceGroup) (result model.GroupResult) {
	result = model.GroupResult{Group: group.Name}
	defer func() {
		if r := recover(); r != nil {
			logging.Error("group panicked", "group", group.Name, "panic", r)
			result = model.GroupResult{
				Group:  group.Name,
				Status: model.StatusInternalError,
				Err:    fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	log := logging.WithPrefix(group.Name)

	// 1. Load the group's history partition.
	seen, err := p.history.Load(group.History)
	if err != nil {
		result.Status = model.StatusHistoryError
		result.Err = fmt.Errorf("load history: %w", err).Error()
		return result
	}

	adapter, err := p.adapterFor(group)
	if err != nil {
		result.Status = model.StatusInternalError
		result.Err = err.Error()
		return result
	}

	// 2. Discover candidates across all origins, keeping only unseen IDs.
	// A dead origin costs its own candidates, never the group.
	picked := make(map[string]bool)
	var unseen []model.Candidate
	for _, origin := range group.Origins {
		candidates, err := adapter.Discover(ctx, group, origin)
		if err != nil {
			log.Warn("discovery failed", "origin", origin, "error", err)
			continue
		}
		for _, c := range candidates {
			if c.ID == "" || picked[c.ID] || seen.Contains(c.ID) {
				continue
			}
			picked[c.ID] = true
			unseen = append(unseen, c)
		}
	}
	result.Unseen = len(unseen)
	if len(unseen) == 0 {
		result.Status = model.StatusNoCandidates
		return result
	}

	// 3. Select exactly one, uniformly at random.
	item := unseen[p.rng.Intn(len(unseen))]
	result.ItemID = item.ID
	result.Title = item.Title
	log.Debug("selected item", "id", item.ID, "unseen", len(unseen))

	// 4. Extract content.
	content := p.extractors.For(group, item.Link).Extract(ctx, item)
	if !content.HasText() {
		result.Status = model.StatusNoContent
		return result
	}

	// 5. Summarize once; no retries, the next run is the retry.
	fields, err := p.summarizer.Summarize(ctx, summarize.Request{
		Kind:  group.Kind,
		Title: item.Title,
		Text:  content.Text,
	})
	if err != nil {
		log.Warn("summarization failed", "error", err)
		result.Status = model.StatusSummaryUnavailable
		result.Err = fmt.Errorf("summarize: %w", err).Error()
		return result
	}

	// 6. Render the post.
	post, err := format.Render(format.Input{
		Group:     group,
		Title:     item.Title,
		Link:      item.Link,
		Published: item.Published,
		Content:   content,
		Fields:    fields,
	})
	if err != nil {
		result.Status = model.StatusInternalError
		result.Err = fmt.Errorf("render post: %w", err).Error()
		return result
	}

	// 7. Publish.
	receipt, err := p.publisher.Publish(ctx, post)
	if err != nil {
		log.Warn("publish failed", "error", err)
		result.Status = model.StatusPublishFailed
		result.Err = fmt.Errorf("publish: %w", err).Error()
		return result
	}

	// 8. Commit immediately so a later crash cannot replay this item.
	seen.Add(item.ID)
	if err := p.history.Commit(group.History, seen); err != nil {
		// The post is out but unrecorded; the next run may repeat it.
		log.Error("history commit failed after publish", "id", item.ID, "error", err)
		result.Status = model.StatusHistoryError
		result.Err = fmt.Errorf("commit history: %w", err).Error()
		return result
	}

	log.Info("published", "id", item.ID, "message_id", receipt.MessageID)
	result.Status = model.StatusPublished
	return result
}
