// Package view binds a selection machine to the datasets and color scales of
// one rendered map. It routes shape clicks and answers fill queries.
package view

import (
	"errors"
	"fmt"
	"strconv"

	"lawmap/internal/colorscale"
	"lawmap/internal/config"
	"lawmap/internal/engine"
	"lawmap/internal/models"
	"lawmap/internal/selection"
)

type Mode string

const (
	ModeDetail     Mode = config.ModeDetail
	ModeComparison Mode = config.ModeComparison
)

var (
	ErrNotFound    = errors.New("view not found")
	ErrWrongMode   = errors.New("action not available in this mode")
	ErrUnknownMode = errors.New("unknown view mode")
)

// View is one map instance. Implementations are not safe for concurrent use;
// Registry serializes access.
type View interface {
	Mode() Mode
	// Click routes a shape's country name to the active machine.
	Click(name string) selection.Outcome
	Style(name string) models.ShapeStyle
	State() models.ViewState
}

type detailLook struct {
	fillValue     float64
	base          *colorscale.Linear
	selected      *colorscale.Linear
	hoverSelected string
	hoverRelevant string
	hoverInert    string
}

type comparisonLook struct {
	base    *colorscale.Linear
	palette colorscale.Palette
	hover   string
	// fills memoizes base fills per country; it is read-only after
	// construction and shared by every comparison view.
	fills map[string]string
}

// Factory builds views that share one store and one set of scales.
type Factory struct {
	store       *engine.Store
	defaultMode Mode
	inert       string
	topics      []selection.Topic
	detail      detailLook
	comparison  comparisonLook
}

func NewFactory(cfg config.MapConfig, store *engine.Store) (*Factory, error) {
	f := &Factory{
		store:       store,
		defaultMode: Mode(cfg.Mode),
		inert:       cfg.InertFill,
		topics:      selection.DefaultTopics(),
	}

	var err error
	f.detail = detailLook{
		fillValue:     cfg.Detail.FillValue,
		hoverSelected: cfg.Detail.Hover.Selected,
		hoverRelevant: cfg.Detail.Hover.Relevant,
		hoverInert:    cfg.Detail.Hover.Inert,
	}
	if f.detail.base, err = cfg.Detail.Base.Build(); err != nil {
		return nil, fmt.Errorf("detail base scale: %w", err)
	}
	if f.detail.selected, err = cfg.Detail.Selected.Build(); err != nil {
		return nil, fmt.Errorf("detail selected scale: %w", err)
	}

	f.comparison.hover = cfg.Comparison.Hover
	if f.comparison.base, err = cfg.Comparison.Base.Build(); err != nil {
		return nil, fmt.Errorf("comparison scale: %w", err)
	}
	if f.comparison.palette, err = colorscale.NewPalette(selection.MaxCompared, cfg.Comparison.Palette...); err != nil {
		return nil, fmt.Errorf("comparison palette: %w", err)
	}
	f.comparison.fills = store.Rates.Fills(f.comparison.base)
	return f, nil
}

// ParseMode resolves a requested mode; "" selects the configured default.
func (f *Factory) ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return f.defaultMode, nil
	case ModeDetail, ModeComparison:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (f *Factory) New(mode Mode) (View, error) {
	switch mode {
	case ModeDetail:
		return &DetailView{
			machine: selection.NewDetail(f.store.Topics, f.topics),
			topics:  f.store.Topics,
			look:    &f.detail,
			inert:   f.inert,
		}, nil
	case ModeComparison:
		return &ComparisonView{
			machine: selection.NewComparison(f.store.Rates, selection.MaxCompared),
			rates:   f.store.Rates,
			look:    &f.comparison,
			inert:   f.inert,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

// Countries lists the relevant names for a mode, sorted.
func (f *Factory) Countries(mode Mode) []string {
	if mode == ModeComparison {
		return f.store.Rates.Names()
	}
	return f.store.Topics.Names()
}

// RateSummary is the legend for comparison maps.
func (f *Factory) RateSummary() models.RateSummary {
	return f.store.Rates.Summarize(f.comparison.base)
}

// Styles evaluates the fill function for each shape name, in order.
func Styles(v View, names []string) []models.ShapeStyle {
	out := make([]models.ShapeStyle, len(names))
	for i, n := range names {
		out[i] = v.Style(n)
	}
	return out
}

// DetailView shows one country's topics at a time.
type DetailView struct {
	machine *selection.Detail
	topics  engine.TopicDataset
	look    *detailLook
	inert   string
}

func (v *DetailView) Mode() Mode { return ModeDetail }

func (v *DetailView) Click(name string) selection.Outcome {
	return v.machine.ClickCountry(name)
}

func (v *DetailView) SelectTopic(key selection.TopicKey) selection.Outcome {
	return v.machine.ClickTopic(key)
}

func (v *DetailView) Close() selection.Outcome {
	return v.machine.Close()
}

func (v *DetailView) Style(name string) models.ShapeStyle {
	s := models.ShapeStyle{Name: name, Index: -1}
	s.Relevant = v.topics.IsRelevant(name)
	s.Selected = v.machine.IsSelected(name)
	switch {
	case s.Relevant && s.Selected:
		s.Index = 0
		s.Fill = v.look.selected.Color(v.look.fillValue)
		s.Hover = v.look.hoverSelected
	case s.Relevant:
		s.Fill = v.look.base.Color(v.look.fillValue)
		s.Hover = v.look.hoverRelevant
	default:
		s.Fill = v.inert
		s.Hover = v.look.hoverInert
	}
	return s
}

// State renders every topic section for the selected country. The current
// topic is reported but does not filter the sections.
func (v *DetailView) State() models.ViewState {
	st := v.machine.State()
	panel := &models.DetailPanel{Viewing: st.Viewing}
	if st.Viewing {
		panel.Country = st.Country
		panel.Topic = string(st.Topic)
		for _, t := range v.machine.Topics() {
			panel.Sections = append(panel.Sections, models.TopicSection{
				Topic: string(t.Key),
				Title: t.Title(),
				Color: t.Color,
				Body:  v.topics.Field(st.Country, t.Field),
			})
		}
	}
	return models.ViewState{Mode: string(ModeDetail), Detail: panel}
}

// ComparisonView accumulates up to five countries, each colored by slot.
type ComparisonView struct {
	machine *selection.Comparison
	rates   engine.RateDataset
	look    *comparisonLook
	inert   string
}

func (v *ComparisonView) Mode() Mode { return ModeComparison }

func (v *ComparisonView) Click(name string) selection.Outcome {
	return v.machine.ClickCountry(name)
}

func (v *ComparisonView) ClearAll() selection.Outcome {
	return v.machine.ClearAll()
}

func (v *ComparisonView) Style(name string) models.ShapeStyle {
	s := models.ShapeStyle{Name: name}
	s.Relevant = v.rates.IsRelevant(name)
	s.Index = v.machine.IndexOf(name)
	s.Selected = s.Index >= 0
	switch {
	case s.Selected:
		s.Fill = v.look.palette.At(s.Index)
		s.Hover = s.Fill
	case s.Relevant:
		s.Fill = v.look.fills[name]
		s.Hover = v.look.hover
	default:
		s.Fill = v.inert
		s.Hover = v.look.hover
	}
	return s
}

func (v *ComparisonView) State() models.ViewState {
	panel := &models.ComparisonPanel{
		Capacity: v.machine.Capacity(),
		Slots:    []models.ComparisonSlot{},
	}
	for i, name := range v.machine.Selected() {
		rate, _ := v.rates.Rate(name)
		panel.Slots = append(panel.Slots, models.ComparisonSlot{
			Index:   i,
			Country: name,
			Rate:    rate,
			Label:   "Rate: " + strconv.FormatFloat(rate, 'f', -1, 64) + " per 1000",
			Color:   v.look.palette.At(i),
		})
	}
	return models.ViewState{Mode: string(ModeComparison), Comparison: panel}
}
