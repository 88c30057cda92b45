// Package report aggregates scored topics and renders them into a static html report
package report

import (
	"sort"

	"github.com/umputun/ainews/pkg/domain"
)

// Statistics computes tier counts and the average total score. Average is 0 for an
// empty collection.
func Statistics(topics []domain.ScoredTopic) domain.Stats {
	stats := domain.Stats{Total: len(topics)}
	if len(topics) == 0 {
		return stats
	}

	sum := 0
	for _, t := range topics {
		sum += t.TotalScore
		switch t.Tier() {
		case domain.TierExcellent:
			stats.Excellent++
		case domain.TierGood:
			stats.Good++
		default:
			stats.Normal++
		}
	}
	stats.AvgScore = float64(sum) / float64(len(topics))
	return stats
}

// SortByScore returns a copy sorted by total score descending, ties keep input order
func SortByScore(topics []domain.ScoredTopic) []domain.ScoredTopic {
	res := make([]domain.ScoredTopic, len(topics))
	copy(res, topics)
	sort.SliceStable(res, func(i, j int) bool { return res[i].TotalScore > res[j].TotalScore })
	return res
}

// Partition splits topics by tier keeping their relative order
func Partition(topics []domain.ScoredTopic) map[domain.Tier][]domain.ScoredTopic {
	res := make(map[domain.Tier][]domain.ScoredTopic, len(domain.Tiers))
	for _, t := range topics {
		res[t.Tier()] = append(res[t.Tier()], t)
	}
	return res
}

// Top returns the first n topics by score
func Top(topics []domain.ScoredTopic, n int) []domain.ScoredTopic {
	sorted := SortByScore(topics)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
