package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/umputun/ainews/pkg/config"
	"github.com/umputun/ainews/pkg/domain"
)

// baseline score of an ordinary news item
const (
	baseInterestingness = 50
	baseUsefulness      = 10
)

// bonuses applied when a marker matches
const (
	bonusBreakthrough  = 20
	bonusCoreAI        = 10
	bonusOrganization  = 15
	bonusSubstance     = 5
	bonusApplicability = 5
	bonusOpenness      = 3
)

// placeholder texts of a topic without enrichment
const (
	viewOriginal    = "查看原文"
	verdictHigh     = "这是重要资讯，值得深入关注。"
	verdictRoutine  = "这是常规行业动态。"
	verdictMinScore = 70
)

// Keywords holds marker lists matched by the heuristic scorer. Matching is case-insensitive,
// pure ASCII markers match whole words only and other markers match as substrings.
type Keywords struct {
	Breakthrough  []string // title, interestingness
	CoreAI        []string // title, interestingness
	Organizations []string // title, interestingness
	Substance     []string // description, interestingness
	Applicability []string // description, usefulness
	Openness      []string // title, usefulness
}

// DefaultKeywords returns built-in marker lists
func DefaultKeywords() Keywords {
	return Keywords{
		Breakthrough:  []string{"突破", "首发", "首次", "breakthrough", "first-ever", "first time"},
		CoreAI:        []string{"模型", "ai", "人工智能", "model", "artificial intelligence"},
		Organizations: []string{"openai", "谷歌", "苹果", "英伟达", "智谱", "微软", "google", "apple", "nvidia", "anthropic", "deepmind", "microsoft", "meta"},
		Substance:     []string{"研究", "论文", "发布", "research", "paper", "release"},
		Applicability: []string{"应用", "工具", "功能", "application", "tool", "feature"},
		Openness:      []string{"开源", "免费", "开放", "open source", "free", "open", "openai"},
	}
}

// KeywordsFromConfig returns marker lists from config, empty lists keep the defaults
func KeywordsFromConfig(cfg config.ScoringConfig) Keywords {
	kw := DefaultKeywords()
	pick := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	pick(&kw.Breakthrough, cfg.Breakthrough)
	pick(&kw.CoreAI, cfg.CoreAI)
	pick(&kw.Organizations, cfg.Organizations)
	pick(&kw.Substance, cfg.Substance)
	pick(&kw.Applicability, cfg.Applicability)
	pick(&kw.Openness, cfg.Openness)
	return kw
}

// Heuristic scores topics by keyword matching. It has no state beyond its compiled
// marker lists and is safe for concurrent use.
type Heuristic struct {
	breakthrough  markers
	coreAI        markers
	organizations markers
	substance     markers
	applicability markers
	openness      markers
}

// markers is a compiled marker list
type markers struct {
	substrings []string
	words      []*regexp.Regexp
}

// NewHeuristic creates a heuristic scorer, keywords are lower-cased and compiled once here
func NewHeuristic(kw Keywords) *Heuristic {
	return &Heuristic{
		breakthrough:  compileMarkers(kw.Breakthrough),
		coreAI:        compileMarkers(kw.CoreAI),
		organizations: compileMarkers(kw.Organizations),
		substance:     compileMarkers(kw.Substance),
		applicability: compileMarkers(kw.Applicability),
		openness:      compileMarkers(kw.Openness),
	}
}

// compileMarkers splits markers into CJK-style substrings and ASCII words. ASCII markers
// are bounded by \b so "ai" doesn't match "said" and "meta" doesn't match "metaverse".
func compileMarkers(list []string) markers {
	var res markers
	for _, s := range list {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !isASCII(s) {
			res.substrings = append(res.substrings, s)
			continue
		}
		res.words = append(res.words, regexp.MustCompile(`\b`+regexp.QuoteMeta(s)+`\b`))
	}
	return res
}

// match reports whether the lower-cased text contains any of the markers
func (m markers) match(s string) bool {
	for _, sub := range m.substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	for _, re := range m.words {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Analyze implements Analyzer
func (h *Heuristic) Analyze(_ context.Context, item domain.RawNewsItem) domain.ScoredTopic {
	return h.Score(item)
}

// Score computes the keyword score of the item and fills placeholder enrichment
func (h *Heuristic) Score(item domain.RawNewsItem) domain.ScoredTopic {
	interestingness, usefulness := baseInterestingness, baseUsefulness

	title := strings.ToLower(item.Title)
	desc := strings.ToLower(item.Description)

	// all matching bonuses apply, they are not exclusive
	if h.breakthrough.match(title) {
		interestingness += bonusBreakthrough
	}
	if h.coreAI.match(title) {
		interestingness += bonusCoreAI
	}
	if h.organizations.match(title) {
		interestingness += bonusOrganization
	}
	if h.substance.match(desc) {
		interestingness += bonusSubstance
	}
	if h.applicability.match(desc) {
		usefulness += bonusApplicability
	}
	if h.openness.match(title) {
		usefulness += bonusOpenness
	}

	topic := domain.NewScoredTopic(item, interestingness, usefulness)
	topic.Timeline = placeholderTimeline(item)
	topic.ProductDetails = item.Description
	topic.Analysis = placeholderAnalysis(item.Source, topic.TotalScore)
	topic.Sources = defaultSources(item)
	return topic
}

func placeholderTimeline(item domain.RawNewsItem) []string {
	return []string{
		fmt.Sprintf("%s: 新闻发布", item.Date),
		fmt.Sprintf("来源: %s", item.Source),
		fmt.Sprintf("原文链接: %s", item.URL),
	}
}

func placeholderAnalysis(source string, total int) string {
	verdict := verdictRoutine
	if total > verdictMinScore {
		verdict = verdictHigh
	}
	return fmt.Sprintf("基于 %s 的报道。此话题反映了当前AI行业的发展动向。%s", source, verdict)
}

func defaultSources(item domain.RawNewsItem) []domain.SourceLink {
	return []domain.SourceLink{{Title: viewOriginal, URL: item.URL}}
}
