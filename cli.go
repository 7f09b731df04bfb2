package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"raintarget/internal/logging"
	"raintarget/internal/metrics"
	"raintarget/internal/target"
)

type calcOptions struct {
	score     int
	oversLost int
	json      bool
	explain   bool
}

type calcOutput struct {
	FirstInningsScore   int      `json:"first_innings_score"`
	ScheduledOvers      int      `json:"scheduled_overs"`
	OversLost           int      `json:"overs_lost"`
	OversAvailable      int      `json:"overs_available"`
	InitialRequiredRate float64  `json:"initial_required_rate"`
	RunsDeducted        float64  `json:"runs_deducted"`
	ParScore            int      `json:"par_score"`
	TargetToWin         int      `json:"target_to_win"`
	Explain             []string `json:"explain,omitempty"`
}

type calcFailure struct {
	Error string      `json:"error"`
	Kind  target.Kind `json:"kind,omitempty"`
}

func (a *app) runCalc(cmd *cobra.Command, opts calcOptions) error {
	if !a.changed["score"] {
		return errors.New("--score is required (or use serve, batch or bot)")
	}

	// An explicit --scheduled-overs is used as given, zero included.
	overs := a.cfg.ScheduledOvers
	if a.changed["scheduled-overs"] {
		overs = a.flags.ScheduledOvers
	}
	in := target.Input{
		FirstInningsScore: opts.score,
		ScheduledOvers:    overs,
		OversLost:         opts.oversLost,
	}

	res, err := target.Compute(in)
	ev := a.logger.Debug().Str(logging.FieldSource, metrics.SourceCLI).
		Int(logging.FieldScore, in.FirstInningsScore).
		Int(logging.FieldScheduled, in.ScheduledOvers).
		Int(logging.FieldOversLost, in.OversLost).
		Str(logging.FieldOutcome, metrics.Outcome(err))
	if err == nil {
		ev = ev.Int(logging.FieldParScore, res.ParScore)
	}
	ev.Msg("calculation")

	out := cmd.OutOrStdout()
	if err != nil {
		ve, ok := target.AsValidation(err)
		if !ok {
			return err
		}
		if opts.json {
			if jerr := writeJSON(out, calcFailure{Error: ve.Reason, Kind: ve.Kind}); jerr != nil {
				return jerr
			}
		}
		return exitError{code: exitRejected, err: err}
	}

	if opts.json {
		return writeJSON(out, newCalcOutput(res, opts.explain))
	}
	printCLI(out, res, opts.explain)
	return nil
}

func newCalcOutput(res target.Result, explain bool) calcOutput {
	o := calcOutput{
		FirstInningsScore:   res.Input.FirstInningsScore,
		ScheduledOvers:      res.Input.ScheduledOvers,
		OversLost:           res.Input.OversLost,
		OversAvailable:      res.OversAvailable,
		InitialRequiredRate: target.Round2(res.InitialRequiredRate),
		RunsDeducted:        target.Round2(res.RunsDeducted),
		ParScore:            res.ParScore,
		TargetToWin:         res.TargetToWin,
	}
	if explain {
		o.Explain = res.Explain()
	}
	return o
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCLI(w io.Writer, res target.Result, explain bool) {
	in := res.Input
	fmt.Fprintf(w, "First innings: %d, Scheduled overs: %d, Overs lost: %d\n\n", in.FirstInningsScore, in.ScheduledOvers, in.OversLost)
	fmt.Fprintf(w, "  Overs Available:        %d\n", res.OversAvailable)
	fmt.Fprintf(w, "  Initial Required Rate:  %.2f rpo\n", res.InitialRequiredRate)
	fmt.Fprintf(w, "  Runs Deducted:          %.2f\n", res.RunsDeducted)
	fmt.Fprintf(w, "  Par / Tie Score:        %d\n", res.ParScore)
	fmt.Fprintf(w, "  Target To Win:          %d\n", res.TargetToWin)

	if explain {
		fmt.Fprintln(w)
		for _, line := range res.Explain() {
			fmt.Fprintf(w, "  %s\n", line)
		}
		fmt.Fprintf(w, "\n%s\n", target.Caption())
	}
}
