package matching

import (
	"sort"

	"github.com/launchpool/launchpool/internal/models"
)

// Rank filters scored candidates by minimum total score, sorts
// descending by total (stable, so ties keep discovery order) and
// truncates to limit. It copies rather than mutating the input.
func Rank(matches []models.MatchScore, minScore, limit int) []models.MatchScore {
	ranked := make([]models.MatchScore, 0, len(matches))
	for _, m := range matches {
		if m.TotalScore >= minScore {
			ranked = append(ranked, m)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
