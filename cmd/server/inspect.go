package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"lawmap/internal/config"
	"lawmap/internal/models"
	"lawmap/internal/selection"
	"lawmap/internal/view"
)

type inspectOutput struct {
	State  models.ViewState    `json:"state"`
	Steps  []string            `json:"steps"`
	Styles []models.ShapeStyle `json:"styles,omitempty"`
}

func newInspectCmd(cfgPath *string) *cobra.Command {
	var mode string
	var styles bool
	cmd := &cobra.Command{
		Use:   "inspect [actions...]",
		Short: "Replay actions against a fresh view and print its state",
		Long: `Each argument is one action applied in order:
  <country>       click a country
  topic=<key>     select a topic (detail)
  close           close the panel (detail)
  clear           clear the selection (comparison)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			store, err := loadStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			factory, err := view.NewFactory(cfg.Map, store)
			if err != nil {
				return err
			}
			m, err := factory.ParseMode(mode)
			if err != nil {
				return err
			}
			v, err := factory.New(m)
			if err != nil {
				return err
			}

			out, err := replay(v, args)
			if err != nil {
				return err
			}
			if styles {
				out.Styles = view.Styles(v, factory.Countries(m))
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "view mode (detail or comparison)")
	cmd.Flags().BoolVar(&styles, "styles", false, "include the fill of every relevant country")
	return cmd
}

// replay applies actions to v and records the outcome of each one.
func replay(v view.View, actions []string) (inspectOutput, error) {
	out := inspectOutput{Steps: make([]string, 0, len(actions))}
	for _, a := range actions {
		outcome, err := apply(v, a)
		if err != nil {
			return out, err
		}
		out.Steps = append(out.Steps, fmt.Sprintf("%s: %s", a, outcome))
	}
	out.State = v.State()
	return out, nil
}

func apply(v view.View, action string) (selection.Outcome, error) {
	switch {
	case strings.HasPrefix(action, "topic="):
		d, ok := v.(*view.DetailView)
		if !ok {
			return "", fmt.Errorf("%w: topic on a %s view", view.ErrWrongMode, v.Mode())
		}
		return d.SelectTopic(selection.TopicKey(strings.TrimPrefix(action, "topic="))), nil
	case action == "close":
		d, ok := v.(*view.DetailView)
		if !ok {
			return "", fmt.Errorf("%w: close on a %s view", view.ErrWrongMode, v.Mode())
		}
		return d.Close(), nil
	case action == "clear":
		c, ok := v.(*view.ComparisonView)
		if !ok {
			return "", fmt.Errorf("%w: clear on a %s view", view.ErrWrongMode, v.Mode())
		}
		return c.ClearAll(), nil
	}
	return v.Click(action), nil
}

func writeJSON(w io.Writer, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
