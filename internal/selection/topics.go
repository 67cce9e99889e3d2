// Package selection holds the click-driven state machines behind the map.
// Machines are plain values owned by a single view; they do no locking.
package selection

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Relevance reports whether a country name is present in the active dataset.
type Relevance interface {
	IsRelevant(name string) bool
}

// RelevanceFunc adapts a plain function to Relevance.
type RelevanceFunc func(name string) bool

func (f RelevanceFunc) IsRelevant(name string) bool { return f(name) }

// TopicKey names one of the detail panel topics.
type TopicKey string

const (
	TopicRegistration TopicKey = "registration"
	TopicJurisdiction TopicKey = "jurisdiction"
	TopicCustody      TopicKey = "custody"
	TopicDivision     TopicKey = "division"
)

// Topic describes a detail panel section: the dataset field it reads and
// the color tag used to render it.
type Topic struct {
	Key   TopicKey
	Field string
	Color string
}

// Title is the display heading, e.g. "Marriage Registration".
func (t Topic) Title() string {
	return titleFromField(t.Field)
}

// DefaultTopics returns the four topics in display order. The first one is
// the topic every new selection starts on.
func DefaultTopics() []Topic {
	return []Topic{
		{Key: TopicRegistration, Field: "marriageRegistration", Color: "blue"},
		{Key: TopicJurisdiction, Field: "divorceJurisdiction", Color: "red"},
		{Key: TopicCustody, Field: "childCustody", Color: "green"},
		{Key: TopicDivision, Field: "propertyDivision", Color: "yellow"},
	}
}

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

func titleFromField(field string) string {
	spaced := camelBoundary.ReplaceAllString(field, "$1 $2")
	// Casers keep state between calls, so each title gets its own.
	return cases.Title(language.English).String(strings.ToLower(spaced))
}
