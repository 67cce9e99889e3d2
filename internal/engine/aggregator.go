package engine

import (
	"sort"

	"lawmap/internal/models"
)

// Colorer maps a value to a fill color.
type Colorer interface {
	Color(v float64) string
}

// Fills precomputes the base fill of every country in the dataset. Views use
// it instead of re-running the scale per shape on every render.
func (d RateDataset) Fills(scale Colorer) map[string]string {
	fills := make(map[string]string, d.Len())
	for _, name := range d.Names() {
		rate, _ := d.Rate(name)
		fills[name] = scale.Color(rate)
	}
	return fills
}

// Summarize builds the legend data: bounds, mean and countries ranked by
// rate, highest first.
func (d RateDataset) Summarize(scale Colorer) models.RateSummary {
	summary := models.RateSummary{Ranking: make([]models.RankedRate, 0, d.Len())}

	var total float64
	for i, name := range d.Names() {
		rate, _ := d.Rate(name)
		if i == 0 || rate < summary.Min {
			summary.Min = rate
		}
		if i == 0 || rate > summary.Max {
			summary.Max = rate
		}
		total += rate
		summary.Ranking = append(summary.Ranking, models.RankedRate{
			Country: name, Rate: rate, Fill: scale.Color(rate),
		})
	}
	summary.Count = len(summary.Ranking)
	if summary.Count > 0 {
		summary.Mean = total / float64(summary.Count)
	}

	// Names() is sorted, so the stable sort keeps ties alphabetical.
	sort.SliceStable(summary.Ranking, func(i, j int) bool {
		return summary.Ranking[i].Rate > summary.Ranking[j].Rate
	})
	return summary
}
