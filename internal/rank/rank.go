// Package rank grades raw activity counters into a percentile and a
// letter level. It is pure: no I/O, no state, no time dependence.
package rank

import (
	"math"

	"github-card/internal/domain"
)

// Counters holds the raw activity figures the grade is derived from.
// Values are float64 so malformed input can be clamped in one place;
// callers normally pass converted non-negative ints.
type Counters struct {
	Commits       float64
	PRs           float64
	Issues        float64
	Stars         float64
	Contributions float64
}

// Per-metric medians: the raw count at which the transformed value
// reaches its halfway point. Fixed constants, never data-dependent.
const (
	commitsMedian       = 250.0
	prsMedian           = 50.0
	issuesMedian        = 25.0
	contributionsMedian = 200.0
	starsMedian         = 50.0
)

const (
	commitsWeight       = 2.0
	prsWeight           = 3.0
	issuesWeight        = 1.0
	contributionsWeight = 3.0
	starsWeight         = 4.0

	totalWeight = commitsWeight + prsWeight + issuesWeight + contributionsWeight + starsWeight
)

var thresholds = [...]float64{1, 12.5, 25, 37.5, 50, 62.5, 75, 87.5, 100}

var levels = [...]domain.RankLevel{
	domain.LevelS,
	domain.LevelAPlus,
	domain.LevelA,
	domain.LevelAMinus,
	domain.LevelBPlus,
	domain.LevelB,
	domain.LevelBMinus,
	domain.LevelCPlus,
	domain.LevelC,
}

// Compute maps counters to a RankResult. Commits, PRs, issues and
// contributions follow an exponential CDF; stars are heavier-tailed and
// use a log-normal-style approximation. Each transformed value is
// weighted and folded into a single rank distance: Score near 0 means
// top-tier activity, Percentile = 100 - Score.
func Compute(c Counters) domain.RankResult {
	commits := clamp(c.Commits)
	prs := clamp(c.PRs)
	issues := clamp(c.Issues)
	stars := clamp(c.Stars)
	contributions := clamp(c.Contributions)

	acc := commitsWeight*expCDF(commits/commitsMedian) +
		prsWeight*expCDF(prs/prsMedian) +
		issuesWeight*expCDF(issues/issuesMedian) +
		contributionsWeight*expCDF(contributions/contributionsMedian) +
		starsWeight*logNormalCDF(stars/starsMedian)

	score := (1 - acc/totalWeight) * 100
	return domain.RankResult{
		Level:      levelFor(score),
		Score:      score,
		Percentile: 100 - score,
	}
}

func expCDF(x float64) float64 {
	return 1 - math.Pow(2, -x)
}

func logNormalCDF(x float64) float64 {
	return x / (1 + x)
}

func levelFor(score float64) domain.RankLevel {
	for i, t := range thresholds {
		if score <= t {
			return levels[i]
		}
	}
	return levels[len(levels)-1]
}

func clamp(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return 0
	}
	return x
}
