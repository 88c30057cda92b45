package domain

// score bounds for the two components of a topic score
const (
	MaxInterestingness = 80
	MaxUsefulness      = 20
)

// RawNewsItem represents a news record as returned by the upstream source
type RawNewsItem struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Date        string `json:"ctime"`
	URL         string `json:"url"`
	ImageURL    string `json:"picUrl,omitempty"`
	Content     string `json:"content,omitempty"` // extracted article body, set only when extraction is enabled
}

// SourceLink is a titled reference attached to a scored topic
type SourceLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ScoredTopic represents a news item with scores and analysis attached
type ScoredTopic struct {
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Source          string       `json:"source"`
	Date            string       `json:"date"`
	URL             string       `json:"url"`
	ImageURL        string       `json:"imageUrl,omitempty"`
	Interestingness int          `json:"interestingness"`
	Usefulness      int          `json:"usefulness"`
	TotalScore      int          `json:"totalScore"`
	Timeline        []string     `json:"timeline"`
	ProductDetails  string       `json:"productDetails"`
	Analysis        string       `json:"analysis"`
	Sources         []SourceLink `json:"sources"`
}

// NewScoredTopic creates a topic from the raw item with both score components clamped
// to their ranges and the total set to their sum. Text fields are left for the caller.
func NewScoredTopic(item RawNewsItem, interestingness, usefulness int) ScoredTopic {
	interestingness = clamp(interestingness, 0, MaxInterestingness)
	usefulness = clamp(usefulness, 0, MaxUsefulness)
	return ScoredTopic{
		Title:           item.Title,
		Description:     item.Description,
		Source:          item.Source,
		Date:            item.Date,
		URL:             item.URL,
		ImageURL:        item.ImageURL,
		Interestingness: interestingness,
		Usefulness:      usefulness,
		TotalScore:      interestingness + usefulness,
		Timeline:        []string{},
	}
}

// Tier returns the score tier of the topic
func (t ScoredTopic) Tier() Tier {
	return TierOf(t.TotalScore)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
