package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/ainews/pkg/archive"
	"github.com/umputun/ainews/pkg/config"
	"github.com/umputun/ainews/pkg/domain"
	"github.com/umputun/ainews/pkg/pipeline"
	"github.com/umputun/ainews/pkg/storage"
)

const newsResponse = `{"code":200,"msg":"success","result":{"newslist":[
	{"id":"a1","ctime":"2026-01-05 10:30","title":"OpenAI发布突破性模型","description":"开源工具应用",
	 "source":"机器之心","picUrl":"","url":"https://news.example.com/1"},
	{"id":"a2","ctime":"2026-01-05 11:00","title":"某公司更新功能","description":"常规更新",
	 "source":"量子位","picUrl":"","url":"https://news.example.com/2"}
]}}`

func newsServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(newsResponse))
	}))
	t.Cleanup(ts.Close)
	return ts, &hits
}

func heuristicOpts(endpoint, dir string) Opts {
	return Opts{Endpoint: endpoint, Key: "test-key", Max: 2, Provider: config.ProviderHeuristic, Reports: dir}
}

func TestRun_MissingConfig(t *testing.T) {
	err := run(context.Background(), Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
	assert.ErrorIs(t, err, config.ErrConfig)
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o600))

	err := run(context.Background(), Opts{Config: path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
	assert.ErrorIs(t, err, config.ErrConfig)
}

func TestRun_ValidationBeforeNetwork(t *testing.T) {
	ts, hits := newsServer(t)

	opts := heuristicOpts(ts.URL, t.TempDir())
	opts.Key = ""
	err := run(context.Background(), opts)
	require.ErrorIs(t, err, config.ErrConfig)
	assert.Contains(t, err.Error(), "source.api_key")
	assert.Equal(t, int32(0), atomic.LoadInt32(hits), "no request made with invalid config")
}

func TestRun_Heuristic(t *testing.T) {
	ts, hits := newsServer(t)
	dir := t.TempDir()

	require.NoError(t, run(context.Background(), heuristicOpts(ts.URL, dir)))
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Len(t, names, 3)

	store := storage.NewStore(dir)
	path, err := store.LatestAnalyzed()
	require.NoError(t, err)
	topics, err := store.LoadAnalyzed(path)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, 98, topics[0].TotalScore)
	assert.Equal(t, 60, topics[1].TotalScore)

	report, err := store.LatestReport()
	require.NoError(t, err)
	html, err := os.ReadFile(report) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Contains(t, string(html), "OpenAI发布突破性模型")
}

func TestRun_FromLatest(t *testing.T) {
	dir := t.TempDir()

	t.Run("nothing analyzed yet", func(t *testing.T) {
		err := run(context.Background(), Opts{FromLatest: true, Reports: dir})
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("re-renders without source", func(t *testing.T) {
		store := storage.NewStore(dir)
		_, err := store.SaveAnalyzed([]domain.ScoredTopic{{Title: "已分析话题", Interestingness: 70, Usefulness: 15,
			TotalScore: 85}}, "2026-01-05T02-30")
		require.NoError(t, err)

		// no api key and no endpoint, validation is skipped in this mode
		require.NoError(t, run(context.Background(), Opts{FromLatest: true, Reports: dir}))

		report, err := store.LatestReport()
		require.NoError(t, err)
		html, err := os.ReadFile(report) //nolint:gosec // test file
		require.NoError(t, err)
		assert.Contains(t, string(html), "已分析话题")
	})
}

func TestRun_WithArchive(t *testing.T) {
	ts, _ := newsServer(t)
	dir := t.TempDir()
	dsn := filepath.Join(dir, "history.db")

	cfgPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf("archive:\n  dsn: %s\n", dsn)), 0o600))

	opts := heuristicOpts(ts.URL, filepath.Join(dir, "reports"))
	opts.Config = cfgPath
	require.NoError(t, run(context.Background(), opts))

	a, err := archive.Open(context.Background(), dsn)
	require.NoError(t, err)
	defer a.Close()
	runs, err := a.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].Total)
	assert.Equal(t, 1, runs[0].Excellent)
}

func TestRun_Serve(t *testing.T) {
	ts, _ := newsServer(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	opts := heuristicOpts(ts.URL, t.TempDir())
	opts.Serve = addr

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- run(ctx, opts) }()

	var stats domain.Stats
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/v1/stats")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK && json.NewDecoder(resp.Body).Decode(&stats) == nil
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, 2, stats.Total)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server shutdown timeout")
	}
}

func TestRun_ServeWithSchedule(t *testing.T) {
	ts, hits := newsServer(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	opts := heuristicOpts(ts.URL, t.TempDir())
	opts.Serve = addr
	opts.Every = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- run(ctx, opts) }()

	require.Eventually(t, func() bool { return atomic.LoadInt32(hits) >= 3 }, 5*time.Second, 20*time.Millisecond,
		"pipeline re-runs on schedule")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown timeout")
	}
}

func TestApplyOverrides(t *testing.T) {
	t.Setenv("ZHIPU_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := config.Load("")
	require.NoError(t, err)

	applyOverrides(cfg, Opts{Endpoint: "http://news.local/ai", Key: "k1", Max: 5, SourceTimeout: 5 * time.Second,
		Provider: config.ProviderGemini, LLMKey: "g-key", Reports: "out", Serve: ":9000"})
	assert.Equal(t, "http://news.local/ai", cfg.Source.APIEndpoint)
	assert.Equal(t, "k1", cfg.Source.APIKey)
	assert.Equal(t, 5, cfg.Source.MaxTopics)
	assert.Equal(t, 5*time.Second, cfg.Source.APITimeout)
	assert.Equal(t, config.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Model, "model default follows the new provider")
	assert.Empty(t, cfg.LLM.Endpoint)
	assert.Equal(t, "g-key", cfg.LLM.APIKey)
	assert.Equal(t, "out", cfg.Report.Dir)
	assert.Equal(t, ":9000", cfg.Server.Listen)

	t.Run("empty options keep config", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)
		before := *cfg
		applyOverrides(cfg, Opts{})
		assert.Equal(t, before, *cfg)
	})
}

func TestLLMKey(t *testing.T) {
	t.Setenv("ZHIPU_API_KEY", "zhipu")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gemini")

	assert.Equal(t, "explicit", llmKey(config.ProviderZhipu, "explicit"))
	assert.Equal(t, "zhipu", llmKey(config.ProviderZhipu, ""))
	assert.Equal(t, "zhipu", llmKey(config.ProviderOpenAI, ""))
	assert.Equal(t, "gemini", llmKey(config.ProviderGemini, ""))
	assert.Empty(t, llmKey(config.ProviderHeuristic, ""))

	t.Setenv("OPENAI_API_KEY", "openai")
	assert.Equal(t, "openai", llmKey(config.ProviderOpenAI, ""))
}

func TestParseOpts(t *testing.T) {
	t.Run("missing default env file is fine", func(t *testing.T) {
		opts, err := parseOpts([]string{"--env-file", filepath.Join(t.TempDir(), ".env"), "--max", "3"})
		require.NoError(t, err)
		assert.Equal(t, 3, opts.Max)
	})

	t.Run("env file provides defaults", func(t *testing.T) {
		t.Cleanup(func() { _ = os.Unsetenv("REPORTS_DIR") })
		envFile := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(envFile, []byte("REPORTS_DIR=from-env-file\n"), 0o600))

		opts, err := parseOpts([]string{"--env-file", envFile})
		require.NoError(t, err)
		assert.Equal(t, "from-env-file", opts.Reports)

		opts, err = parseOpts([]string{"--env-file", envFile, "--reports", "from-flag"})
		require.NoError(t, err)
		assert.Equal(t, "from-flag", opts.Reports, "flag wins over env file")
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := parseOpts([]string{"--no-such-flag"})
		require.Error(t, err)
	})
}

func TestSecrets(t *testing.T) {
	cfg := &config.Config{Source: config.SourceConfig{APIKey: "news"}, LLM: config.LLMConfig{APIKey: ""}}
	assert.Equal(t, []string{"news"}, secrets(cfg))

	cfg.LLM.APIKey = "llm"
	assert.Equal(t, []string{"news", "llm"}, secrets(cfg))
}

func TestPrintSummary(t *testing.T) {
	res := &pipeline.Result{
		Topics: []domain.ScoredTopic{
			{Title: "普通", TotalScore: 40}, {Title: "优秀", TotalScore: 95}, {Title: "良好", TotalScore: 65},
		},
		Stats:      domain.Stats{Total: 3, Excellent: 1, Good: 1, Normal: 1, AvgScore: 66.666},
		ReportPath: "reports/ai-news-report-2026-01-05T02-30.html",
	}

	var buf bytes.Buffer
	printSummary(&buf, res)
	out := buf.String()
	assert.Contains(t, out, "总话题数: 3")
	assert.Contains(t, out, "优秀 (>80分): 1")
	assert.Contains(t, out, "平均分: 66.7")
	assert.Contains(t, out, "reports/ai-news-report-2026-01-05T02-30.html")

	first := strings.Index(out, "1. [95分] 优秀")
	second := strings.Index(out, "2. [65分] 良好")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)

	buf.Reset()
	printSummary(&buf, &pipeline.Result{})
	assert.NotContains(t, buf.String(), "Top 5")
	assert.Contains(t, buf.String(), "总话题数: 0")
}

func TestSetupLog(t *testing.T) {
	setupLog(true)
	setupLog(false)
	setupLog(true, "secret1", "secret2")
}
