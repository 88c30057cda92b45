package domain

// Tier represents a score bucket of a topic
type Tier string

// tiers in report order
const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierNormal    Tier = "normal"
)

// Tiers lists all tiers from the highest to the lowest
var Tiers = []Tier{TierExcellent, TierGood, TierNormal}

// TierOf classifies a total score: above 80 is excellent, 60 to 80 inclusive is good,
// everything below 60 is normal.
func TierOf(score int) Tier {
	switch {
	case score > 80:
		return TierExcellent
	case score >= 60:
		return TierGood
	default:
		return TierNormal
	}
}

// Label returns the badge text shown in the report
func (t Tier) Label() string {
	switch t {
	case TierExcellent:
		return "优秀"
	case TierGood:
		return "良好"
	default:
		return "普通"
	}
}

// Heading returns the section title shown in the report
func (t Tier) Heading() string {
	switch t {
	case TierExcellent:
		return "🏆 优秀话题"
	case TierGood:
		return "👍 良好话题"
	default:
		return "📋 其他话题"
	}
}

// Stats holds summary counters over a set of scored topics
type Stats struct {
	Total     int     `json:"total"`
	Excellent int     `json:"excellent"`
	Good      int     `json:"good"`
	Normal    int     `json:"normal"`
	AvgScore  float64 `json:"avgScore"`
}
