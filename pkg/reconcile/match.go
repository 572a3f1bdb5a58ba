package reconcile

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/rotaplan/rota/pkg/schedule"
)

// MatchThreshold is the minimum name similarity for a fuzzy match.
const MatchThreshold = 0.5

// Match pairs an orphaned shift with the employee whose name most resembles
// the name recorded on the shift's original owner.
type Match struct {
	Shift      schedule.Shift
	Employee   schedule.Employee
	Similarity float64
}

// Similarity scores two names in [0, 1] from their edit distance.
// Comparison is case-insensitive and ignores surrounding whitespace.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}
	longer := len([]rune(a))
	if l := len([]rune(b)); l > longer {
		longer = l
	}
	if longer == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return float64(longer-dist) / float64(longer)
}

// BestMatch finds the active employee whose name is most similar to name,
// requiring similarity above MatchThreshold. Used only when fuzzy repair is
// explicitly requested; matches are suggestions, never applied silently.
func BestMatch(name string, active []schedule.Employee) (schedule.Employee, float64, bool) {
	var best schedule.Employee
	bestScore := 0.0
	for _, e := range active {
		if score := Similarity(name, e.Name); score > bestScore {
			best, bestScore = e, score
		}
	}
	if bestScore <= MatchThreshold {
		return schedule.Employee{}, bestScore, false
	}
	return best, bestScore, true
}
