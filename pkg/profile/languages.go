package profile

import (
	"math"
	"sort"

	"github.com/lmoreno/readmegen/pkg/github"
)

// AggregateLanguages reduces per-repository language byte counts into a
// single ranked breakdown. Byte counts are summed per language name across
// all inputs; the result is sorted by total bytes descending with ties
// keeping the order in which a language was first encountered.
//
// Percentages are computed against the grand total across every language,
// rounded to two decimals. When the grand total is zero every percentage is
// zero but entries with positive byte counts are still listed.
func AggregateLanguages(perRepo [][]github.LanguageCount) []LanguageStat {
	index := make(map[string]int)
	var stats []LanguageStat

	for _, counts := range perRepo {
		for _, lc := range counts {
			if lc.Bytes < 0 {
				continue
			}
			if i, ok := index[lc.Name]; ok {
				stats[i].Bytes += lc.Bytes
			} else {
				index[lc.Name] = len(stats)
				stats = append(stats, LanguageStat{Name: lc.Name, Bytes: lc.Bytes})
			}
		}
	}

	var total int64
	for _, s := range stats {
		total += s.Bytes
	}
	if total > 0 {
		for i := range stats {
			p := float64(stats[i].Bytes) / float64(total) * 100
			stats[i].Percentage = math.Round(p*100) / 100
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Bytes > stats[j].Bytes
	})
	return stats
}
