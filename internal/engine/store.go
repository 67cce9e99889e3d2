package engine

import (
	"sort"

	"lawmap/internal/models"
)

// Dataset is an immutable country-keyed table. Lookups are exact string
// matches against the keys it was built from.
type Dataset[R any] struct {
	records map[string]R
	names   []string
}

// NewDataset copies records so later changes to the map do not leak in.
func NewDataset[R any](records map[string]R) *Dataset[R] {
	d := &Dataset[R]{
		records: make(map[string]R, len(records)),
		names:   make([]string, 0, len(records)),
	}
	for name, rec := range records {
		d.records[name] = rec
		d.names = append(d.names, name)
	}
	sort.Strings(d.names)
	return d
}

// IsRelevant reports whether name is a key of the dataset.
func (d *Dataset[R]) IsRelevant(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.records[name]
	return ok
}

func (d *Dataset[R]) Lookup(name string) (R, bool) {
	var zero R
	if d == nil {
		return zero, false
	}
	rec, ok := d.records[name]
	return rec, ok
}

// Names returns the keys in sorted order.
func (d *Dataset[R]) Names() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

func (d *Dataset[R]) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// TopicDataset holds the free-text law summaries used by detail views.
type TopicDataset struct {
	*Dataset[models.TopicRecord]
}

// Field returns the text for one topic field, or "" when the country or the
// field is missing.
func (d TopicDataset) Field(name, field string) string {
	rec, ok := d.Lookup(name)
	if !ok {
		return ""
	}
	return rec.Field(field)
}

// RateDataset holds one numeric rate per country, used by comparison views.
type RateDataset struct {
	*Dataset[float64]
}

func (d RateDataset) Rate(name string) (float64, bool) {
	return d.Lookup(name)
}

// Store bundles both datasets loaded at startup.
type Store struct {
	Topics TopicDataset
	Rates  RateDataset
}
