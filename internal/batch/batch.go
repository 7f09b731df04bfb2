// Package batch evaluates a file of independent rain-reduction scenarios.
package batch

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"raintarget/internal/target"
)

// File is the on-disk scenario list.
type File struct {
	// ScheduledOvers applies to every scenario that does not set its own.
	ScheduledOvers int        `yaml:"scheduled_overs"`
	Scenarios      []Scenario `yaml:"scenarios"`
}

// Scenario fields are pointers so a missing key is told apart from an
// explicit zero. ScheduledOvers may be left out; the other two may not.
type Scenario struct {
	Name              string `yaml:"name"`
	FirstInningsScore *int   `yaml:"first_innings_score"`
	ScheduledOvers    *int   `yaml:"scheduled_overs"`
	OversLost         *int   `yaml:"overs_lost"`
}

func (sc Scenario) validate() error {
	if sc.FirstInningsScore == nil {
		return errors.New("first_innings_score is required")
	}
	if sc.OversLost == nil {
		return errors.New("overs_lost is required")
	}
	return nil
}

// Outcome is the result of one scenario. Exactly one of Result and Error is set.
type Outcome struct {
	Name   string         `json:"name" yaml:"name"`
	Input  target.Input   `json:"input" yaml:"input"`
	Result *target.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string         `json:"error,omitempty" yaml:"error,omitempty"`
	Kind   target.Kind    `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// Rejected reports whether the scenario failed validation.
func (o Outcome) Rejected() bool {
	return o.Result == nil
}

// Load reads and parses a scenario file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read scenarios: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML scenario data. Unknown keys are rejected so typos in
// field names do not silently fall back to zero.
func Parse(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return File{}, fmt.Errorf("parse scenarios: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return File{}, fmt.Errorf("parse scenarios: no scenarios defined")
	}
	for i, sc := range f.Scenarios {
		if err := sc.validate(); err != nil {
			return File{}, fmt.Errorf("parse scenarios: scenario %d: %w", i+1, err)
		}
	}
	return f, nil
}

// Evaluate computes every scenario independently. defaultOvers is used when
// neither the scenario nor the file sets scheduled overs.
func Evaluate(f File, defaultOvers int) []Outcome {
	fileOvers := f.ScheduledOvers
	if fileOvers == 0 {
		fileOvers = defaultOvers
	}

	out := make([]Outcome, 0, len(f.Scenarios))
	for i, sc := range f.Scenarios {
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("scenario %d", i+1)
		}
		if err := sc.validate(); err != nil {
			out = append(out, Outcome{Name: name, Error: err.Error()})
			continue
		}

		// An explicit scheduled_overs is used as written, zero included.
		in := target.Input{
			FirstInningsScore: *sc.FirstInningsScore,
			ScheduledOvers:    fileOvers,
			OversLost:         *sc.OversLost,
		}
		if sc.ScheduledOvers != nil {
			in.ScheduledOvers = *sc.ScheduledOvers
		} else {
			in = in.WithDefaults()
		}

		o := Outcome{Name: name, Input: in}
		res, err := target.Compute(in)
		if err != nil {
			o.Error = err.Error()
			if ve, ok := target.AsValidation(err); ok {
				o.Kind = ve.Kind
			}
		} else {
			o.Result = &res
		}
		out = append(out, o)
	}
	return out
}

// CountRejected returns how many outcomes failed validation.
func CountRejected(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Rejected() {
			n++
		}
	}
	return n
}
