package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/ainews/pkg/config"
	"github.com/umputun/ainews/pkg/domain"
)

type fakeCompleter struct {
	resp   string
	err    error
	delay  time.Duration
	system string
	user   string
	calls  int
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.system, f.user = system, user
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.resp, f.err
}

var testItem = domain.RawNewsItem{Title: "OpenAI发布突破性模型", Description: "开源工具应用", Source: "机器之心",
	Date: "2026-01-05 10:30", URL: "https://news.example.com/1"}

func TestLLM_Analyze(t *testing.T) {
	heuristic := NewHeuristic(DefaultKeywords())

	t.Run("full response", func(t *testing.T) {
		fc := &fakeCompleter{resp: `{"interestingness":72,"usefulness":16,"totalScore":88,
			"timeline":["1月5日: 发布"],"productDetails":"新模型细节","analysis":"重要进展",
			"sources":[{"title":"官方博客","url":"https://openai.com/blog"}]}`}
		topic := NewLLM(fc, heuristic, config.LLMConfig{}).Analyze(context.Background(), testItem)

		assert.Equal(t, 72, topic.Interestingness)
		assert.Equal(t, 16, topic.Usefulness)
		assert.Equal(t, 88, topic.TotalScore)
		assert.Equal(t, []string{"1月5日: 发布"}, topic.Timeline)
		assert.Equal(t, "新模型细节", topic.ProductDetails)
		assert.Equal(t, "重要进展", topic.Analysis)
		assert.Equal(t, []domain.SourceLink{{Title: "官方博客", URL: "https://openai.com/blog"}}, topic.Sources)
		assert.Equal(t, testItem.Title, topic.Title)
		assert.Equal(t, testItem.URL, topic.URL)
		assert.Equal(t, defaultSystemPrompt, fc.system)
		assert.Contains(t, fc.user, "标题：OpenAI发布突破性模型")
		assert.Contains(t, fc.user, "链接：https://news.example.com/1")
	})

	t.Run("fenced json with prose", func(t *testing.T) {
		fc := &fakeCompleter{resp: "```json\n{\"interestingness\": 65, \"usefulness\": 12}\n```"}
		topic := NewLLM(fc, heuristic, config.LLMConfig{}).Analyze(context.Background(), testItem)
		assert.Equal(t, 65, topic.Interestingness)
		assert.Equal(t, 12, topic.Usefulness)
		assert.Equal(t, 77, topic.TotalScore)
	})

	t.Run("out of range scores are clamped and total recomputed", func(t *testing.T) {
		fc := &fakeCompleter{resp: `{"interestingness":95,"usefulness":30,"totalScore":125}`}
		topic := NewLLM(fc, heuristic, config.LLMConfig{}).Analyze(context.Background(), testItem)
		assert.Equal(t, 80, topic.Interestingness)
		assert.Equal(t, 20, topic.Usefulness)
		assert.Equal(t, 100, topic.TotalScore)
	})

	t.Run("missing fields use defaults", func(t *testing.T) {
		fc := &fakeCompleter{resp: `{}`}
		topic := NewLLM(fc, heuristic, config.LLMConfig{}).Analyze(context.Background(), testItem)
		assert.Equal(t, 50, topic.Interestingness)
		assert.Equal(t, 10, topic.Usefulness)
		assert.Equal(t, 60, topic.TotalScore)
		assert.NotNil(t, topic.Timeline)
		assert.Empty(t, topic.Timeline)
		assert.Equal(t, testItem.Description, topic.ProductDetails)
		assert.Empty(t, topic.Analysis)
		assert.Equal(t, []domain.SourceLink{{Title: "查看原文", URL: testItem.URL}}, topic.Sources)
	})

	t.Run("fractional scores rounded", func(t *testing.T) {
		fc := &fakeCompleter{resp: `{"interestingness":66.6,"usefulness":14.4}`}
		topic := NewLLM(fc, heuristic, config.LLMConfig{}).Analyze(context.Background(), testItem)
		assert.Equal(t, 67, topic.Interestingness)
		assert.Equal(t, 14, topic.Usefulness)
	})

	expected := heuristic.Score(testItem)
	fallbackCases := []struct {
		name string
		fc   *fakeCompleter
	}{
		{name: "completer error", fc: &fakeCompleter{err: errors.New("connection refused")}},
		{name: "no json", fc: &fakeCompleter{resp: "sorry, I cannot help with that"}},
		{name: "broken json", fc: &fakeCompleter{resp: `{"interestingness": 70, "usefulness":`}},
		{name: "wrong field type", fc: &fakeCompleter{resp: `{"interestingness": "high"}`}},
		{name: "empty response", fc: &fakeCompleter{resp: "  "}},
	}
	for _, tc := range fallbackCases {
		t.Run("fallback on "+tc.name, func(t *testing.T) {
			topic := NewLLM(tc.fc, heuristic, config.LLMConfig{}).Analyze(context.Background(), testItem)
			assert.Equal(t, expected, topic)
			assert.Equal(t, 1, tc.fc.calls)
		})
	}

	t.Run("fallback on timeout", func(t *testing.T) {
		fc := &fakeCompleter{resp: `{"interestingness":70}`, delay: time.Second}
		st := time.Now()
		topic := NewLLM(fc, heuristic, config.LLMConfig{Timeout: 20 * time.Millisecond}).Analyze(context.Background(), testItem)
		assert.Equal(t, expected, topic)
		assert.Less(t, time.Since(st), 500*time.Millisecond)
	})

	t.Run("custom system prompt", func(t *testing.T) {
		fc := &fakeCompleter{resp: `{}`}
		NewLLM(fc, heuristic, config.LLMConfig{SystemPrompt: "custom"}).Analyze(context.Background(), testItem)
		assert.Equal(t, "custom", fc.system)
	})
}

func TestLLM_analyzeErrors(t *testing.T) {
	heuristic := NewHeuristic(DefaultKeywords())

	_, err := NewLLM(&fakeCompleter{resp: "nothing"}, heuristic, config.LLMConfig{}).analyze(context.Background(), testItem)
	require.ErrorIs(t, err, ErrParse)

	_, err = NewLLM(&fakeCompleter{resp: ""}, heuristic, config.LLMConfig{}).analyze(context.Background(), testItem)
	require.ErrorIs(t, err, ErrEmptyResponse)

	l := NewLLM(&fakeCompleter{delay: time.Second}, heuristic, config.LLMConfig{Timeout: 10 * time.Millisecond})
	_, err = l.analyze(context.Background(), testItem)
	require.ErrorIs(t, err, ErrTimeout)
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(testItem)
	assert.Contains(t, prompt, "描述：开源工具应用")
	assert.Contains(t, prompt, "来源：机器之心")
	assert.Contains(t, prompt, "日期：2026-01-05 10:30")
	assert.Contains(t, prompt, `"interestingness": 数字 (0-80)`)
	assert.NotContains(t, prompt, "正文摘录")

	item := testItem
	item.Content = strings.Repeat("文", 1500)
	prompt = buildPrompt(item)
	assert.Contains(t, prompt, "正文摘录："+strings.Repeat("文", 1000)+"...")
	assert.NotContains(t, prompt, strings.Repeat("文", 1001))
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: `{"a":1}`, want: `{"a":1}`},
		{name: "fenced", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "fenced no lang", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "surrounding prose", in: "分析结果如下：\n{\"a\":{\"b\":2}}\n希望有帮助", want: `{"a":{"b":2}}`},
		{name: "braces inside strings", in: `{"a":"x}y{","b":"q\"}"}`, want: `{"a":"x}y{","b":"q\"}"}`},
		{name: "first of two objects", in: `{"a":1} {"b":2}`, want: `{"a":1}`},
		{name: "no object", in: "no json here", wantErr: true},
		{name: "unterminated", in: `{"a":{"b":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenAICompleter_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "glm-4-flash", req.Model)
		assert.InDelta(t, 0.3, req.Temperature, 0.001)
		assert.InDelta(t, 0.7, req.TopP, 0.001)
		assert.Equal(t, 2000, req.MaxTokens)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, "sys", req.Messages[0].Content)
		assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
		assert.Equal(t, "usr", req.Messages[1].Content)

		resp := openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: `{"interestingness":70,"usefulness":15}`}},
		}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := NewOpenAICompleter(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "glm-4-flash",
		Temperature: 0.3, TopP: 0.7, MaxTokens: 2000})
	resp, err := c.Complete(context.Background(), "sys", "usr")
	require.NoError(t, err)
	assert.JSONEq(t, `{"interestingness":70,"usefulness":15}`, resp)
}

func TestOpenAICompleter_Errors(t *testing.T) {
	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
		}))
		defer server.Close()

		c := NewOpenAICompleter(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "k", Model: "m"})
		_, err := c.Complete(context.Background(), "s", "u")
		require.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"auth_error"}}`))
		}))
		defer server.Close()

		c := NewOpenAICompleter(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "bad", Model: "m"})
		_, err := c.Complete(context.Background(), "s", "u")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm request failed")
	})

	t.Run("fallback through llm analyzer", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal", http.StatusInternalServerError)
		}))
		defer server.Close()

		heuristic := NewHeuristic(DefaultKeywords())
		c := NewOpenAICompleter(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "k", Model: "m"})
		topic := NewLLM(c, heuristic, config.LLMConfig{Timeout: time.Second}).Analyze(context.Background(), testItem)
		assert.Equal(t, heuristic.Score(testItem), topic)
	})
}
