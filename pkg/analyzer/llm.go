package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strings"
	"time"

	"github.com/umputun/ainews/pkg/config"
	"github.com/umputun/ainews/pkg/domain"
)

// maxContentRunes limits extracted article text passed to the model
const maxContentRunes = 1000

// default system prompt with the scoring rubric
const defaultSystemPrompt = `你是一个专业的 AI 行业资讯分析师。你的任务是：

1. 分析提供的 AI 新闻话题
2. 评估其"有趣度"（0-80分）和"有用度"（0-20分）
3. 生成事件脉络时间线
4. 提取产品/技术创新的详细细节
5. 提供综合分析说明

评分标准：
- 有趣度（80分）：
  * 70-80: 突破性创新 - 颠覆性技术或重大突破
  * 60-69: 重大进展 - 显著的技术提升或里程碑
  * 50-59: 显著更新 - 重要功能或改进
  * 30-49: 常规新闻 - 一般性的行业动态

- 有用度（20分）：
  * 18-20: 高度可执行 - 提供具体可行的洞察
  * 15-17: 有价值 - 提供有意义的行业见解
  * 10-14: 信息丰富 - 包含有用的背景信息
  * 5-9: 有限效用 - 信息量较少

请严格按照要求的 JSON 格式返回分析结果，不要添加任何其他内容。`

// response format appended to every user prompt
const responseFormat = `请返回以下 JSON 格式的分析结果（必须是纯JSON，不要添加其他解释）：
{
  "interestingness": 数字 (0-80),
  "usefulness": 数字 (0-20),
  "totalScore": 数字 (interestingness + usefulness),
  "timeline": ["事件1", "事件2", ...],
  "productDetails": "产品/技术详情描述",
  "analysis": "综合分析说明为什么这个话题重要",
  "sources": [{"title": "来源标题", "url": "链接"}]
}`

// LLM scores topics with a language model and uses the heuristic scorer whenever the
// model call or its response fails
type LLM struct {
	completer Completer
	fallback  *Heuristic
	systemMsg string
	timeout   time.Duration
}

// NewLLM creates an llm analyzer. Custom system prompt from config replaces the default one.
func NewLLM(completer Completer, fallback *Heuristic, cfg config.LLMConfig) *LLM {
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}
	return &LLM{completer: completer, fallback: fallback, systemMsg: systemMsg, timeout: cfg.Timeout}
}

// Analyze implements Analyzer, errors are logged and replaced by the heuristic score
func (l *LLM) Analyze(ctx context.Context, item domain.RawNewsItem) domain.ScoredTopic {
	topic, err := l.analyze(ctx, item)
	if err != nil {
		log.Printf("[WARN] llm analysis failed for %q, using basic scoring: %v", item.Title, err)
		return l.fallback.Score(item)
	}
	return topic
}

// Close releases the completer if it holds resources
func (l *LLM) Close() error {
	if c, ok := l.completer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (l *LLM) analyze(ctx context.Context, item domain.RawNewsItem) (domain.ScoredTopic, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	resp, err := l.completer.Complete(ctx, l.systemMsg, buildPrompt(item))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.ScoredTopic{}, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return domain.ScoredTopic{}, err
	}
	if strings.TrimSpace(resp) == "" {
		return domain.ScoredTopic{}, ErrEmptyResponse
	}
	return parseResponse(resp, item)
}

// buildPrompt creates the user prompt for a single item
func buildPrompt(item domain.RawNewsItem) string {
	var sb strings.Builder
	sb.WriteString("请分析以下 AI 新闻话题：\n\n")
	sb.WriteString(fmt.Sprintf("标题：%s\n", item.Title))
	sb.WriteString(fmt.Sprintf("描述：%s\n", item.Description))
	sb.WriteString(fmt.Sprintf("来源：%s\n", item.Source))
	sb.WriteString(fmt.Sprintf("日期：%s\n", item.Date))
	sb.WriteString(fmt.Sprintf("链接：%s\n", item.URL))
	if item.Content != "" {
		content := []rune(item.Content)
		if len(content) > maxContentRunes {
			content = append(content[:maxContentRunes], []rune("...")...)
		}
		sb.WriteString(fmt.Sprintf("正文摘录：%s\n", string(content)))
	}
	sb.WriteString("\n")
	sb.WriteString(responseFormat)
	return sb.String()
}

// llmAnalysis is the model response, pointers tell absent fields from zero values
type llmAnalysis struct {
	Interestingness *float64            `json:"interestingness"`
	Usefulness      *float64            `json:"usefulness"`
	Timeline        []string            `json:"timeline"`
	ProductDetails  *string             `json:"productDetails"`
	Analysis        *string             `json:"analysis"`
	Sources         []domain.SourceLink `json:"sources"`
}

// parseResponse builds a topic from the model response. Missing scores default to the
// heuristic baseline, scores are clamped and the total is always their sum.
func parseResponse(content string, item domain.RawNewsItem) (domain.ScoredTopic, error) {
	jsonStr, err := extractJSON(content)
	if err != nil {
		return domain.ScoredTopic{}, err
	}

	var resp llmAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return domain.ScoredTopic{}, fmt.Errorf("%w: %w", ErrParse, err)
	}

	interestingness, usefulness := baseInterestingness, baseUsefulness
	if resp.Interestingness != nil {
		interestingness = int(math.Round(*resp.Interestingness))
	}
	if resp.Usefulness != nil {
		usefulness = int(math.Round(*resp.Usefulness))
	}

	topic := domain.NewScoredTopic(item, interestingness, usefulness)
	if resp.Timeline != nil {
		topic.Timeline = resp.Timeline
	}
	topic.ProductDetails = item.Description
	if resp.ProductDetails != nil && *resp.ProductDetails != "" {
		topic.ProductDetails = *resp.ProductDetails
	}
	if resp.Analysis != nil {
		topic.Analysis = *resp.Analysis
	}
	topic.Sources = resp.Sources
	if len(topic.Sources) == 0 {
		topic.Sources = defaultSources(item)
	}
	return topic, nil
}

// extractJSON strips markdown fences and returns the first balanced json object
func extractJSON(content string) (string, error) {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	start := strings.Index(s, "{")
	if start == -1 {
		return "", fmt.Errorf("%w: no json object found", ErrParse)
	}

	depth, inString, escaped := 0, false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("%w: unterminated json object", ErrParse)
}
