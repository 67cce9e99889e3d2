package selection

// Outcome describes what a transition did. It is informational only; every
// input leads to a defined next state.
type Outcome string

const (
	OutcomeSelected  Outcome = "selected"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeCleared   Outcome = "cleared"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeAdded     Outcome = "added"
	OutcomeRemoved   Outcome = "removed"
	OutcomeRefused   Outcome = "refused"
)

// DetailState is a snapshot of a Detail machine. Country and Topic are empty
// unless Viewing is true.
type DetailState struct {
	Viewing bool
	Country string
	Topic   TopicKey
}

// Detail is the single-select machine: Idle or Viewing(country, topic).
type Detail struct {
	rel    Relevance
	topics []Topic

	viewing bool
	country string
	topic   TopicKey
}

// NewDetail starts in Idle. topics must be non-empty; its first entry is the
// topic a fresh selection opens on.
func NewDetail(rel Relevance, topics []Topic) *Detail {
	ts := make([]Topic, len(topics))
	copy(ts, topics)
	return &Detail{rel: rel, topics: ts}
}

// ClickCountry selects name when it is relevant and clears the selection
// otherwise. Re-clicking the selected country keeps the current topic.
func (d *Detail) ClickCountry(name string) Outcome {
	if !d.rel.IsRelevant(name) {
		if !d.viewing {
			return OutcomeIgnored
		}
		d.Close()
		return OutcomeCleared
	}
	if d.viewing && d.country == name {
		return OutcomeUnchanged
	}
	d.viewing = true
	d.country = name
	d.topic = d.firstTopic()
	return OutcomeSelected
}

// ClickTopic switches the current topic. It does nothing while Idle or for
// a key outside the configured topics.
func (d *Detail) ClickTopic(key TopicKey) Outcome {
	if !d.viewing || !d.hasTopic(key) {
		return OutcomeIgnored
	}
	if d.topic == key {
		return OutcomeUnchanged
	}
	d.topic = key
	return OutcomeSelected
}

// Close returns to Idle from any state.
func (d *Detail) Close() Outcome {
	wasViewing := d.viewing
	d.viewing = false
	d.country = ""
	d.topic = ""
	if !wasViewing {
		return OutcomeUnchanged
	}
	return OutcomeCleared
}

func (d *Detail) State() DetailState {
	return DetailState{Viewing: d.viewing, Country: d.country, Topic: d.topic}
}

// IsSelected reports whether name is the country currently shown.
func (d *Detail) IsSelected(name string) bool {
	return d.viewing && d.country == name
}

// Topics returns the configured topics in display order.
func (d *Detail) Topics() []Topic {
	out := make([]Topic, len(d.topics))
	copy(out, d.topics)
	return out
}

func (d *Detail) firstTopic() TopicKey {
	if len(d.topics) == 0 {
		return ""
	}
	return d.topics[0].Key
}

func (d *Detail) hasTopic(key TopicKey) bool {
	for _, t := range d.topics {
		if t.Key == key {
			return true
		}
	}
	return false
}
