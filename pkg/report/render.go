package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/umputun/ainews/pkg/domain"
)

//go:embed templates/report.html
var templatesFS embed.FS

// reportZone is used for the generation time shown in the report
var reportZone = loadZone("Asia/Shanghai", 8*60*60)

// Renderer renders scored topics into a standalone html document
type Renderer struct {
	title string
	tmpl  *template.Template
}

type pageData struct {
	Title       string
	GeneratedAt string
	Stats       domain.Stats
	Sections    []section
}

type section struct {
	Tier    domain.Tier
	Heading string
	Cards   []card
}

type card struct {
	domain.ScoredTopic
	Class      string
	Badge      string
	Date       string
	InterestPc string
	UsefulPc   string
}

// NewRenderer parses the embedded report template
func NewRenderer(title string) (*Renderer, error) {
	tmpl, err := template.New("report.html").ParseFS(templatesFS, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &Renderer{title: title, tmpl: tmpl}, nil
}

// Render sorts topics by score, groups them into tiers and renders the report.
// Empty tiers are omitted.
func (r *Renderer) Render(topics []domain.ScoredTopic, generatedAt time.Time) (string, error) {
	sorted := SortByScore(topics)
	ts := generatedAt.In(reportZone).Format("2006/1/2 15:04:05")

	data := pageData{Title: r.title, GeneratedAt: ts, Stats: Statistics(sorted)}
	parts := Partition(sorted)
	for _, tier := range domain.Tiers {
		if len(parts[tier]) == 0 {
			continue
		}
		sec := section{Tier: tier, Heading: tier.Heading()}
		for _, t := range parts[tier] {
			date := t.Date
			if date == "" {
				date = ts
			}
			sec.Cards = append(sec.Cards, card{
				ScoredTopic: t,
				Class:       string(tier),
				Badge:       tier.Label(),
				Date:        date,
				InterestPc:  percent(t.Interestingness, domain.MaxInterestingness),
				UsefulPc:    percent(t.Usefulness, domain.MaxUsefulness),
			})
		}
		data.Sections = append(data.Sections, sec)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

func percent(v, maxVal int) string {
	return fmt.Sprintf("%.1f", float64(v)/float64(maxVal)*100)
}

func loadZone(name string, offset int) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("CST", offset)
	}
	return loc
}
