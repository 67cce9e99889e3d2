package models

// TopicRecord is one country's entry in the topics dataset.
type TopicRecord struct {
	MarriageRegistration string `json:"marriageRegistration"`
	DivorceJurisdiction  string `json:"divorceJurisdiction"`
	ChildCustody         string `json:"childCustody"`
	PropertyDivision     string `json:"propertyDivision"`
}

// Field returns the text stored under a dataset field name, or "" when the
// field is unknown.
func (r TopicRecord) Field(name string) string {
	switch name {
	case "marriageRegistration":
		return r.MarriageRegistration
	case "divorceJurisdiction":
		return r.DivorceJurisdiction
	case "childCustody":
		return r.ChildCustody
	case "propertyDivision":
		return r.PropertyDivision
	}
	return ""
}

type RateSummary struct {
	Count   int          `json:"count"`
	Min     float64      `json:"min"`
	Max     float64      `json:"max"`
	Mean    float64      `json:"mean"`
	Ranking []RankedRate `json:"ranking"`
}

type RankedRate struct {
	Country string  `json:"country"`
	Rate    float64 `json:"rate"`
	Fill    string  `json:"fill"`
}

// ViewState is the snapshot handed to the presentation layer. Exactly one of
// Detail and Comparison is set, matching Mode.
type ViewState struct {
	ID         string           `json:"id"`
	Mode       string           `json:"mode"`
	Detail     *DetailPanel     `json:"detail,omitempty"`
	Comparison *ComparisonPanel `json:"comparison,omitempty"`
}

type DetailPanel struct {
	Viewing  bool           `json:"viewing"`
	Country  string         `json:"country,omitempty"`
	Topic    string         `json:"topic,omitempty"`
	Sections []TopicSection `json:"sections,omitempty"`
}

type TopicSection struct {
	Topic string `json:"topic"`
	Title string `json:"title"`
	Color string `json:"color"`
	Body  string `json:"body"`
}

type ComparisonPanel struct {
	Capacity int              `json:"capacity"`
	Slots    []ComparisonSlot `json:"slots"`
}

type ComparisonSlot struct {
	Index   int     `json:"index"`
	Country string  `json:"country"`
	Rate    float64 `json:"rate"`
	Label   string  `json:"label"`
	Color   string  `json:"color"`
}

// ShapeStyle is the fill decision for one rendered country shape.
type ShapeStyle struct {
	Name     string `json:"name"`
	Relevant bool   `json:"relevant"`
	Selected bool   `json:"selected"`
	Index    int    `json:"index"`
	Fill     string `json:"fill"`
	Hover    string `json:"hover"`
}
