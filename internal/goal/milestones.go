package goal

import (
	"fmt"
	"math"

	"github.com/julianstephens/dayly/internal/constants"
	"github.com/julianstephens/dayly/internal/models"
)

var milestoneHeadlines = map[float64]string{
	0.25: "A quarter of the way there!",
	0.5:  "Halfway there!",
	0.75: "Three quarters done!",
	0.9:  "Almost there!",
}

// BuildMilestones returns the milestones for a goal of totalDays, one per
// fraction with a non-zero, distinct threshold.
func BuildMilestones(totalDays int) []models.Milestone {
	out := []models.Milestone{}
	seen := make(map[int]bool)
	for _, f := range constants.MilestoneFractions {
		threshold := int(math.Floor(float64(totalDays) * f))
		if threshold == 0 || seen[threshold] {
			continue
		}
		seen[threshold] = true
		out = append(out, models.Milestone{
			ThresholdDays: threshold,
			Message:       fmt.Sprintf("%s Day %d of %d (%d%%).", milestoneHeadlines[f], threshold, totalDays, int(f*100)),
		})
	}
	return out
}

// markMilestones sets achieved on every pending milestone the goal has
// reached and returns the ones achieved by this call, in order.
func markMilestones(g *models.Goal, nowMillis int64) []models.Milestone {
	var hit []models.Milestone
	for i := range g.Milestones {
		m := &g.Milestones[i]
		if m.Achieved || g.ProgressDays < m.ThresholdDays {
			continue
		}
		m.Achieved = true
		stamp := nowMillis
		m.AchievedAtMillis = &stamp
		hit = append(hit, *m)
	}
	return hit
}
