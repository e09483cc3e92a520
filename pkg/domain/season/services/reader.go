// Package services exposes pure, read-only helpers over a loaded Season,
// used by the pool lifecycle engine to resolve eligibility, tribe grouping,
// and advantage visibility at a given week.
package services

import (
	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/season/entities"
)

// ActiveContestants returns the ids of contestants who have no elimination
// recorded at a week strictly before week.
func ActiveContestants(season *entities.Season, week int) map[common.ID]bool {
	eliminatedBefore := make(map[common.ID]bool)
	for _, e := range season.Eliminations {
		if e.Week < week {
			eliminatedBefore[e.EliminatedContestant] = true
		}
	}

	active := make(map[common.ID]bool, len(season.Contestants))
	for _, c := range season.Contestants {
		if !eliminatedBefore[c.ID] {
			active[c.ID] = true
		}
	}
	return active
}

// ResolveTribe returns the tribe grouping in effect for contestant at week:
// the entry with the greatest Week <= week-1 (or week 1 if week<=1).
func ResolveTribe(season *entities.Season, contestant common.ID, week int) (name, color string) {
	lookupWeek := week - 1
	if week <= 1 {
		lookupWeek = 1
	}

	var best *entities.TribeWeek
	for i := range season.TribeTimeline {
		tw := &season.TribeTimeline[i]
		if tw.Week > lookupWeek {
			continue
		}
		if best == nil || tw.Week > best.Week {
			best = tw
		}
	}
	if best == nil {
		return "", ""
	}

	for _, tribe := range best.Tribes {
		for _, m := range tribe.Members {
			if m == contestant {
				return tribe.Name, tribe.Color
			}
		}
	}
	return "", ""
}

// VisibleAdvantages returns the advantages held by contestant that are
// visible at currentWeek: obtained_week <= currentWeek-1, or all of them
// when currentWeek<=1.
func VisibleAdvantages(season *entities.Season, contestant common.ID, currentWeek int) []entities.Advantage {
	var out []entities.Advantage
	for _, a := range season.Advantages {
		if a.ContestantID != contestant {
			continue
		}
		if currentWeek <= 1 {
			out = append(out, a)
			continue
		}
		if a.ObtainedWeek != nil && *a.ObtainedWeek <= currentWeek-1 {
			out = append(out, a)
		}
	}
	return out
}
