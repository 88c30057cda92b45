package report

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/umputun/ainews/pkg/domain"
)

// RSS represents the root RSS 2.0 element
type RSS struct {
	XMLName xml.Name    `xml:"rss"`
	Version string      `xml:"version,attr"`
	Atom    string      `xml:"xmlns:atom,attr"`
	Channel *RSSChannel `xml:"channel"`
}

// RSSChannel represents an RSS channel
type RSSChannel struct {
	XMLName       xml.Name   `xml:"channel"`
	Title         string     `xml:"title"`
	Link          string     `xml:"link"`
	Description   string     `xml:"description"`
	AtomLink      *AtomLink  `xml:"http://www.w3.org/2005/Atom link"`
	LastBuildDate string     `xml:"lastBuildDate"`
	Items         []*RSSItem `xml:"item"`
}

// AtomLink represents an Atom self link within RSS
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// RSSItem represents a scored topic in the feed
type RSSItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        string   `xml:"guid"`
	Description string   `xml:"description"`
	Author      string   `xml:"author,omitempty"`
	PubDate     string   `xml:"pubDate"`
	Categories  []string `xml:"category"`
}

// FeedWriter exports scored topics as an RSS 2.0 feed
type FeedWriter struct {
	title   string
	baseURL string
}

// NewFeedWriter makes a feed writer, baseURL is used for channel and self links
func NewFeedWriter(title, baseURL string) *FeedWriter {
	return &FeedWriter{title: title, baseURL: strings.TrimRight(baseURL, "/")}
}

// Write renders topics with total score >= minScore, highest first
func (w *FeedWriter) Write(topics []domain.ScoredTopic, minScore int, generatedAt time.Time) (string, error) {
	sorted := SortByScore(topics)
	items := make([]*RSSItem, 0, len(sorted))
	for _, t := range sorted {
		if t.TotalScore < minScore {
			continue
		}
		items = append(items, w.item(t, generatedAt))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         fmt.Sprintf("%s (≥ %d)", w.title, minScore),
			Link:          w.baseURL + "/",
			Description:   fmt.Sprintf("AI行业资讯，综合评分不低于 %d", minScore),
			AtomLink:      &AtomLink{Href: fmt.Sprintf("%s/rss?min_score=%d", w.baseURL, minScore), Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: generatedAt.Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

func (w *FeedWriter) item(t domain.ScoredTopic, generatedAt time.Time) *RSSItem {
	desc := fmt.Sprintf("评分: %d/100 (有趣度 %d, 有用度 %d)", t.TotalScore, t.Interestingness, t.Usefulness)
	switch {
	case t.Analysis != "":
		desc += "\n\n" + t.Analysis
	case t.ProductDetails != "":
		desc += "\n\n" + t.ProductDetails
	case t.Description != "":
		desc += "\n\n" + t.Description
	}

	return &RSSItem{
		Title:       fmt.Sprintf("[%d] %s", t.TotalScore, t.Title),
		Link:        t.URL,
		GUID:        t.URL,
		Description: desc,
		Author:      t.Source,
		PubDate:     pubDate(t.Date, generatedAt).Format(time.RFC1123Z),
		Categories:  []string{t.Tier().Label()},
	}
}

// pubDate parses the upstream date in report time zone, unparsable dates fall back to the generation time
func pubDate(date string, fallback time.Time) time.Time {
	if date == "" {
		return fallback
	}
	ts, err := dateparse.ParseIn(date, reportZone)
	if err != nil {
		return fallback
	}
	return ts
}
