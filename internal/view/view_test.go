package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"lawmap/internal/config"
	"lawmap/internal/engine"
	"lawmap/internal/models"
	"lawmap/internal/selection"
)

func testStore() *engine.Store {
	return &engine.Store{
		Topics: engine.TopicDataset{Dataset: engine.NewDataset(map[string]models.TopicRecord{
			"India": {
				MarriageRegistration: "reg",
				DivorceJurisdiction:  "jur",
				ChildCustody:         "cus",
				PropertyDivision:     "div",
			},
			"Nepal": {MarriageRegistration: "only registration"},
		})},
		Rates: engine.RateDataset{Dataset: engine.NewDataset(map[string]float64{
			"A": 1.0, "B": 0.5, "C": 0.2, "D": 0.3, "E": 1.4, "F": 0.9,
		})},
	}
}

func testFactory(t *testing.T) *Factory {
	t.Helper()
	f, err := NewFactory(config.Default().Map, testStore())
	require.NoError(t, err)
	return f
}

type ComparisonViewSuite struct {
	suite.Suite
	view    *ComparisonView
	palette []string
}

func TestComparisonViewSuite(t *testing.T) {
	suite.Run(t, new(ComparisonViewSuite))
}

func (s *ComparisonViewSuite) SetupTest() {
	f := testFactory(s.T())
	v, err := f.New(ModeComparison)
	s.Require().NoError(err)
	s.view = v.(*ComparisonView)
	s.palette = config.Default().Map.Comparison.Palette
}

// TestPositionalColors walks the A/B toggle scenario: colors follow slots.
func (s *ComparisonViewSuite) TestPositionalColors() {
	s.view.Click("A")
	s.Equal(s.palette[0], s.view.Style("A").Fill)

	s.view.Click("B")
	s.Equal(s.palette[1], s.view.Style("B").Fill)

	s.view.Click("A")
	st := s.view.State().Comparison
	s.Require().Len(st.Slots, 1)
	s.Equal("B", st.Slots[0].Country)
	s.Equal(s.palette[0], st.Slots[0].Color)
	s.Equal(s.palette[0], s.view.Style("B").Fill)

	a := s.view.Style("A")
	s.False(a.Selected)
	s.Equal(-1, a.Index)
	base, err := config.Default().Map.Comparison.Base.Build()
	s.Require().NoError(err)
	s.Equal(base.Color(1.0), a.Fill)
	s.Equal("#90CDF4", a.Hover)
}

func (s *ComparisonViewSuite) TestSlotsCarryRates() {
	s.view.Click("B")
	s.view.Click("E")
	st := s.view.State()
	s.Equal("comparison", st.Mode)
	s.Nil(st.Detail)
	s.Equal(5, st.Comparison.Capacity)
	s.Equal(0.5, st.Comparison.Slots[0].Rate)
	s.Equal("Rate: 0.5 per 1000", st.Comparison.Slots[0].Label)
	s.Equal("Rate: 1.4 per 1000", st.Comparison.Slots[1].Label)
}

func (s *ComparisonViewSuite) TestCapacityAndClear() {
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		s.Equal(selection.OutcomeAdded, s.view.Click(n))
	}
	s.Equal(selection.OutcomeRefused, s.view.Click("F"))
	s.False(s.view.Style("F").Selected)
	s.Len(s.view.State().Comparison.Slots, 5)

	s.Equal(selection.OutcomeCleared, s.view.ClearAll())
	s.Empty(s.view.State().Comparison.Slots)
}

func (s *ComparisonViewSuite) TestUnknownCountry() {
	s.view.Click("A")
	s.Equal(selection.OutcomeIgnored, s.view.Click("Atlantis"))
	s.Len(s.view.State().Comparison.Slots, 1)

	st := s.view.Style("Atlantis")
	s.False(st.Relevant)
	s.Equal("#F5F4F6", st.Fill)
	s.Equal("#90CDF4", st.Hover)
}

func TestDetailViewIndiaScenario(t *testing.T) {
	f := testFactory(t)
	v, err := f.New(ModeDetail)
	require.NoError(t, err)
	d := v.(*DetailView)

	idle := d.State()
	assert.Equal(t, "detail", idle.Mode)
	assert.False(t, idle.Detail.Viewing)
	assert.Empty(t, idle.Detail.Sections)

	d.Click("India")
	st := d.State().Detail
	assert.True(t, st.Viewing)
	assert.Equal(t, "India", st.Country)
	assert.Equal(t, "registration", st.Topic)
	require.Len(t, st.Sections, 4)
	assert.Equal(t, "Marriage Registration", st.Sections[0].Title)
	assert.Equal(t, "blue", st.Sections[0].Color)
	assert.Equal(t, "div", st.Sections[3].Body)

	// The current topic changes, every section stays rendered.
	d.SelectTopic(selection.TopicCustody)
	st = d.State().Detail
	assert.Equal(t, "custody", st.Topic)
	assert.Len(t, st.Sections, 4)

	d.Close()
	assert.False(t, d.State().Detail.Viewing)
}

func TestDetailViewMissingFieldsFallBack(t *testing.T) {
	v, err := testFactory(t).New(ModeDetail)
	require.NoError(t, err)

	v.Click("Nepal")
	sections := v.State().Detail.Sections
	require.Len(t, sections, 4)
	assert.Equal(t, "only registration", sections[0].Body)
	assert.Equal(t, "", sections[1].Body)
}

func TestDetailViewStyles(t *testing.T) {
	v, err := testFactory(t).New(ModeDetail)
	require.NoError(t, err)
	v.Click("India")

	styles := Styles(v, []string{"India", "Nepal", "Atlantis"})
	assert.Equal(t, models.ShapeStyle{Name: "India", Relevant: true, Selected: true, Index: 0, Fill: "#FFAB40", Hover: "#FFCC80"}, styles[0])
	assert.Equal(t, models.ShapeStyle{Name: "Nepal", Relevant: true, Index: -1, Fill: "#90CDF4", Hover: "#64B5F6"}, styles[1])
	assert.Equal(t, models.ShapeStyle{Name: "Atlantis", Index: -1, Fill: "#F5F4F6", Hover: "#E0E0E0"}, styles[2])

	v.Click("Atlantis")
	assert.False(t, v.Style("India").Selected)
}

func TestFactoryModes(t *testing.T) {
	f := testFactory(t)

	m, err := f.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeDetail, m)

	_, err = f.ParseMode("split")
	require.ErrorIs(t, err, ErrUnknownMode)

	_, err = f.New("split")
	require.ErrorIs(t, err, ErrUnknownMode)

	assert.Equal(t, []string{"India", "Nepal"}, f.Countries(ModeDetail))
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, f.Countries(ModeComparison))
	assert.Equal(t, 6, f.RateSummary().Count)
}

func TestNewFactoryRejectsBadPalette(t *testing.T) {
	cfg := config.Default().Map
	cfg.Comparison.Palette = []string{"#000000"}
	_, err := NewFactory(cfg, testStore())
	require.Error(t, err)
}
