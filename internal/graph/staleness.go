package graph

import (
	"sort"
	"time"
)

// StaleSource is a node that hasn't changed in a long time yet was recently
// wired into someone's context, so conversations may be fed outdated text.
type StaleSource struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DaysSinceUpdate int64  `json:"days_since_update"`
	RecentLinkCount int    `json:"recent_link_count"`
}

// StalenessReport contains staleness analysis results
type StalenessReport struct {
	StaleSources     []StaleSource `json:"stale_sources"`
	StaleSourceCount int           `json:"stale_source_count"`
}

// ComputeStaleness finds stale context sources: nodes older than staleDays
// that gained a context-carrying edge within the last week.
func ComputeStaleness(snap *GraphSnapshot, staleDays int64) *StalenessReport {
	nowMs := time.Now().UnixMilli()
	staleThresholdMs := staleDays * 86_400_000
	recentWindowMs := int64(7 * 86_400_000)

	ctxEdges := snap.ContextEdges()

	var stale []StaleSource
	for _, node := range snap.Nodes {
		ageMs := nowMs - node.UpdatedAt
		if ageMs <= staleThresholdMs {
			continue
		}

		recentCount := 0
		for _, e := range ctxEdges {
			if e.Source != node.ID && e.Target != node.ID {
				continue
			}
			if e.Source == e.Target {
				continue
			}
			if (nowMs - e.CreatedAt) < recentWindowMs {
				recentCount++
			}
		}

		if recentCount > 0 {
			stale = append(stale, StaleSource{
				ID:              node.ID,
				Title:           displayTitle(node),
				DaysSinceUpdate: ageMs / 86_400_000,
				RecentLinkCount: recentCount,
			})
		}
	}
	sort.Slice(stale, func(i, j int) bool {
		if stale[i].RecentLinkCount != stale[j].RecentLinkCount {
			return stale[i].RecentLinkCount > stale[j].RecentLinkCount
		}
		return stale[i].ID < stale[j].ID
	})

	return &StalenessReport{
		StaleSources:     stale,
		StaleSourceCount: len(stale),
	}
}
