// Package colony groups sightings into cat colonies. Two entries are
// neighbors when each lies inside the other's proximity window (the window
// is symmetric, so one check suffices); label propagation over that graph
// yields the colonies volunteers actually manage as a unit.
package colony

import (
	"sort"

	"github.com/nyangmap/nyangmap/internal/geo"
	"github.com/nyangmap/nyangmap/internal/model"
)

// Detector assigns entries to colonies using the Label Propagation
// Algorithm (LPA).
type Detector struct {
	Box           geo.Box
	MaxIterations int
}

func NewDetector(box geo.Box) *Detector {
	return &Detector{
		Box:           box,
		MaxIterations: 20,
	}
}

// Detect returns colonies of two or more entries. Singleton cats are not
// colonies and are omitted.
func (d *Detector) Detect(entries []model.Entry) []model.Colony {
	if len(entries) == 0 {
		return nil
	}

	entryMap := make(map[string]model.Entry, len(entries))
	adj := make(map[string]map[string]int, len(entries))
	for _, e := range entries {
		entryMap[e.ID] = e
		adj[e.ID] = make(map[string]int)
	}

	// Proximity graph: undirected, weight 1 per pair.
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if d.Box.Contains(entries[i].Location, entries[j].Location) {
				adj[entries[i].ID][entries[j].ID]++
				adj[entries[j].ID][entries[i].ID]++
			}
		}
	}

	// Every entry starts in its own colony.
	labels := make(map[string]string, len(entries))
	ids := make([]string, len(entries))
	for i, e := range entries {
		labels[e.ID] = e.ID
		ids[i] = e.ID
	}
	sort.Strings(ids) // deterministic propagation order

	for iter := 0; iter < d.MaxIterations; iter++ {
		changed := 0

		for _, u := range ids {
			neighbors := adj[u]
			if len(neighbors) == 0 {
				continue
			}

			counts := make(map[string]int)
			maxCount := 0
			for v, weight := range neighbors {
				label := labels[v]
				counts[label] += weight
				if counts[label] > maxCount {
					maxCount = counts[label]
				}
			}

			// Ties break to the lexicographically largest label so the
			// result is stable across runs.
			var tied []string
			for label, count := range counts {
				if count == maxCount {
					tied = append(tied, label)
				}
			}
			sort.Strings(tied)
			best := tied[len(tied)-1]

			if labels[u] != best {
				labels[u] = best
				changed++
			}
		}

		if changed == 0 {
			break
		}
	}

	groups := make(map[string][]model.Entry)
	for id, label := range labels {
		groups[label] = append(groups[label], entryMap[id])
	}

	var colonies []model.Colony
	for _, members := range groups {
		if len(members) < 2 {
			continue
		}
		sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
		colonies = append(colonies, model.Colony{Entries: members})
	}
	sort.Slice(colonies, func(i, j int) bool {
		return colonies[i].Entries[0].ID < colonies[j].Entries[0].ID
	})

	return colonies
}
