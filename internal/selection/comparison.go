package selection

import "slices"

// MaxCompared is the number of countries a comparison can hold.
const MaxCompared = 5

// Comparison is the multi-select machine: an ordered, duplicate-free set of
// at most capacity relevant countries. Insertion order decides each
// member's slot.
type Comparison struct {
	rel      Relevance
	capacity int
	selected []string
}

// NewComparison returns an empty comparison. A non-positive capacity falls
// back to MaxCompared.
func NewComparison(rel Relevance, capacity int) *Comparison {
	if capacity <= 0 {
		capacity = MaxCompared
	}
	return &Comparison{rel: rel, capacity: capacity, selected: make([]string, 0, capacity)}
}

// ClickCountry toggles name. Irrelevant names are swallowed and additions
// beyond capacity are refused; neither changes the set.
func (c *Comparison) ClickCountry(name string) Outcome {
	if !c.rel.IsRelevant(name) {
		return OutcomeIgnored
	}
	if i := c.IndexOf(name); i >= 0 {
		c.selected = slices.Delete(c.selected, i, i+1)
		return OutcomeRemoved
	}
	if len(c.selected) >= c.capacity {
		return OutcomeRefused
	}
	c.selected = append(c.selected, name)
	return OutcomeAdded
}

func (c *Comparison) ClearAll() Outcome {
	if len(c.selected) == 0 {
		return OutcomeUnchanged
	}
	c.selected = c.selected[:0]
	return OutcomeCleared
}

// IndexOf returns name's slot, or -1 if it is not selected.
func (c *Comparison) IndexOf(name string) int {
	return slices.Index(c.selected, name)
}

// Selected returns a copy of the current members in slot order.
func (c *Comparison) Selected() []string {
	return slices.Clone(c.selected)
}

func (c *Comparison) Len() int      { return len(c.selected) }
func (c *Comparison) Capacity() int { return c.capacity }
