// Package pipeline runs a single fetch, score, render and persist pass
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/ainews/pkg/domain"
	"github.com/umputun/ainews/pkg/report"
	"github.com/umputun/ainews/pkg/storage"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source
//go:generate moq -out mocks/analyzer.go -pkg mocks -skip-ensure -fmt goimports . Analyzer
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/archive.go -pkg mocks -skip-ensure -fmt goimports . Archive
//go:generate moq -out mocks/renderer.go -pkg mocks -skip-ensure -fmt goimports . Renderer

// Source fetches raw news items
type Source interface {
	Fetch(ctx context.Context) ([]domain.RawNewsItem, error)
}

// Analyzer scores a single item, never fails
type Analyzer interface {
	Analyze(ctx context.Context, item domain.RawNewsItem) domain.ScoredTopic
}

// Extractor adds article text to items
type Extractor interface {
	Enrich(ctx context.Context, items []domain.RawNewsItem) []domain.RawNewsItem
}

// Store persists run artifacts
type Store interface {
	SaveRaw(items []domain.RawNewsItem, ts string) (string, error)
	SaveAnalyzed(topics []domain.ScoredTopic, ts string) (string, error)
	SaveReport(html, ts string) (string, error)
	LatestAnalyzed() (string, error)
	LoadAnalyzed(path string) ([]domain.ScoredTopic, error)
}

// Archive records run history
type Archive interface {
	SaveRun(ctx context.Context, runAt time.Time, topics []domain.ScoredTopic) (int64, error)
}

// Renderer renders the html report
type Renderer interface {
	Render(topics []domain.ScoredTopic, generatedAt time.Time) (string, error)
}

// Params defines runner dependencies. Extractor and Archive are optional.
type Params struct {
	Source    Source
	Analyzer  Analyzer
	Extractor Extractor
	Store     Store
	Archive   Archive
	Renderer  Renderer
	Now       func() time.Time
}

// Runner executes the pipeline
type Runner struct {
	Params
}

// Result describes a completed run
type Result struct {
	Topics       []domain.ScoredTopic
	Stats        domain.Stats
	RawPath      string
	AnalyzedPath string
	ReportPath   string
}

// New makes a runner
func New(p Params) *Runner {
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Runner{Params: p}
}

// Run fetches news, scores every item in input order, then writes analyzed data and the
// report. Fetch and persistence errors abort the run, per-item scoring never does.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	now := r.Now()
	ts := storage.Timestamp(now)

	lgr.Printf("[INFO] fetching news")
	items, err := r.Source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	lgr.Printf("[INFO] fetched %d news items", len(items))

	res := &Result{}
	if res.RawPath, err = r.Store.SaveRaw(items, ts); err != nil {
		return nil, fmt.Errorf("save raw news: %w", err)
	}
	lgr.Printf("[DEBUG] raw news saved to %s", res.RawPath)

	if r.Extractor != nil && len(items) > 0 {
		items = r.Extractor.Enrich(ctx, items)
	}

	res.Topics = make([]domain.ScoredTopic, 0, len(items))
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run interrupted after %d of %d items: %w", i, len(items), err)
		}
		lgr.Printf("[INFO] analyzing %d/%d: %s", i+1, len(items), item.Title)
		topic := r.Analyzer.Analyze(ctx, item)
		lgr.Printf("[DEBUG] scored %q: %d (interestingness %d, usefulness %d)",
			topic.Title, topic.TotalScore, topic.Interestingness, topic.Usefulness)
		res.Topics = append(res.Topics, topic)
	}

	if res.AnalyzedPath, err = r.Store.SaveAnalyzed(res.Topics, ts); err != nil {
		return nil, fmt.Errorf("save analyzed news: %w", err)
	}

	res.Stats = report.Statistics(res.Topics)
	if res.ReportPath, err = r.render(res.Topics, now, ts); err != nil {
		return nil, err
	}

	if r.Archive != nil {
		if _, err := r.Archive.SaveRun(ctx, now, res.Topics); err != nil {
			lgr.Printf("[WARN] failed to archive run: %v", err)
		}
	}
	return res, nil
}

// RenderLatest re-renders the most recent analyzed artifact without fetching or scoring.
// Returns storage.ErrNotFound if nothing was analyzed yet.
func (r *Runner) RenderLatest(_ context.Context) (*Result, error) {
	path, err := r.Store.LatestAnalyzed()
	if err != nil {
		return nil, fmt.Errorf("find latest analyzed news: %w", err)
	}
	topics, err := r.Store.LoadAnalyzed(path)
	if err != nil {
		return nil, err
	}
	lgr.Printf("[INFO] loaded %d topics from %s", len(topics), path)

	now := r.Now()
	res := &Result{Topics: topics, Stats: report.Statistics(topics), AnalyzedPath: path}
	if res.ReportPath, err = r.render(topics, now, storage.Timestamp(now)); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Runner) render(topics []domain.ScoredTopic, now time.Time, ts string) (string, error) {
	html, err := r.Renderer.Render(topics, now)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	path, err := r.Store.SaveReport(html, ts)
	if err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	lgr.Printf("[INFO] report saved to %s", path)
	return path, nil
}
