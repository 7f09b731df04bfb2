package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"raintarget/internal/target"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type display struct {
	Name   string       `json:"name" yaml:"name"`
	Input  target.Input `json:"input" yaml:"input"`
	Result *resultView  `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string       `json:"error,omitempty" yaml:"error,omitempty"`
	Kind   target.Kind  `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// resultView rounds the rate and deduction to two decimals.
type resultView struct {
	OversAvailable      int     `json:"overs_available" yaml:"overs_available"`
	InitialRequiredRate float64 `json:"initial_required_rate" yaml:"initial_required_rate"`
	RunsDeducted        float64 `json:"runs_deducted" yaml:"runs_deducted"`
	ParScore            int     `json:"par_score" yaml:"par_score"`
	TargetToWin         int     `json:"target_to_win" yaml:"target_to_win"`
}

func toDisplay(o Outcome) display {
	d := display{Name: o.Name, Input: o.Input, Error: o.Error, Kind: o.Kind}
	if r := o.Result; r != nil {
		d.Result = &resultView{
			OversAvailable:      r.OversAvailable,
			InitialRequiredRate: target.Round2(r.InitialRequiredRate),
			RunsDeducted:        target.Round2(r.RunsDeducted),
			ParScore:            r.ParScore,
			TargetToWin:         r.TargetToWin,
		}
	}
	return d
}

// Render writes outcomes to w in the given format.
func Render(w io.Writer, outcomes []Outcome, format string) error {
	rows := make([]display, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, toDisplay(o))
	}

	switch format {
	case "", FormatText:
		return renderText(w, rows)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, FormatText, FormatJSON, FormatYAML)
	}
}

func renderText(w io.Writer, rows []display) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tSCORE\tSCHEDULED\tLOST\tAVAILABLE\tRPO\tDEDUCTED\tPAR\tTARGET")
	for _, d := range rows {
		in := d.Input
		if d.Result == nil {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\trejected: %s\n",
				d.Name, in.FirstInningsScore, in.ScheduledOvers, in.OversLost, d.Error)
			continue
		}
		r := d.Result
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.2f\t%.2f\t%d\t%d\n",
			d.Name, in.FirstInningsScore, in.ScheduledOvers, in.OversLost,
			r.OversAvailable, r.InitialRequiredRate, r.RunsDeducted, r.ParScore, r.TargetToWin)
	}
	return tw.Flush()
}
