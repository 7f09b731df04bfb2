// Package target implements the HCL rain-reduction rule for a shortened
// second innings chase: each over lost removes 0.66 of the initial required
// run rate from the first innings score, and the revised par is always
// rounded up.
package target

import "math"

// RuleReference names the playing condition implemented by Compute.
const RuleReference = "HCL Rule L 8 (l) iv"

// League limits.
const (
	DefaultScheduledOvers = 45
	MinScheduledOvers     = 25
	MaxScheduledOvers     = 45
	MaxOversLost          = 20
	MinOversRemaining     = 25
	MaxFirstInningsScore  = 500
)

// The deduction multiplier is the rule's literal 0.66, kept as 33/50 so the
// par can be computed exactly.
const (
	deductionNum = 33
	deductionDen = 50

	DeductionFactor = float64(deductionNum) / deductionDen
)

// Input holds the three values the rule needs.
type Input struct {
	FirstInningsScore int `json:"first_innings_score" yaml:"first_innings_score"`
	ScheduledOvers    int `json:"scheduled_overs" yaml:"scheduled_overs"`
	OversLost         int `json:"overs_lost" yaml:"overs_lost"`
}

// WithDefaults returns in with ScheduledOvers set to DefaultScheduledOvers
// when it was left at zero.
func (in Input) WithDefaults() Input {
	if in.ScheduledOvers == 0 {
		in.ScheduledOvers = DefaultScheduledOvers
	}
	return in
}

// Result is the revised target for an accepted Input.
type Result struct {
	Input Input `json:"-" yaml:"-"`

	OversAvailable      int     `json:"overs_available" yaml:"overs_available"`
	InitialRequiredRate float64 `json:"initial_required_rate" yaml:"initial_required_rate"`
	RunsDeducted        float64 `json:"runs_deducted" yaml:"runs_deducted"`
	RawPar              float64 `json:"raw_par" yaml:"raw_par"`
	ParScore            int     `json:"par_score" yaml:"par_score"`
	TargetToWin         int     `json:"target_to_win" yaml:"target_to_win"`
}

// Compute validates in and derives the revised par and target. Any returned
// error is a *ValidationError; the checks run in order and the first failure
// wins:
//
//  1. overs lost above MaxOversLost, then negative overs lost
//  2. fewer than MinOversRemaining overs left for the chase
//  3. any other value outside its allowed range
func Compute(in Input) (Result, error) {
	if in.OversLost > MaxOversLost {
		return Result{}, reject(in, KindOversLostExceedsMaximum,
			"overs lost exceeds league maximum of %d", MaxOversLost)
	}
	if in.OversLost < 0 {
		return Result{}, reject(in, KindInputOutOfRange,
			"overs lost %d must not be negative", in.OversLost)
	}

	available := in.ScheduledOvers - in.OversLost
	if available < MinOversRemaining {
		return Result{}, reject(in, KindInsufficientOversRemaining,
			"only %d overs would remain for the chase, %d short of the league minimum of %d",
			available, MinOversRemaining-available, MinOversRemaining)
	}

	if err := checkRange(in); err != nil {
		return Result{}, err
	}

	rate := float64(in.FirstInningsScore+1) / float64(in.ScheduledOvers)
	deducted := float64(in.OversLost) * DeductionFactor * rate
	par := exactPar(in.FirstInningsScore, in.ScheduledOvers, in.OversLost)

	return Result{
		Input:               in,
		OversAvailable:      available,
		InitialRequiredRate: rate,
		RunsDeducted:        deducted,
		RawPar:              float64(in.FirstInningsScore) - deducted,
		ParScore:            par,
		TargetToWin:         par + 1,
	}, nil
}

func checkRange(in Input) *ValidationError {
	switch {
	case in.FirstInningsScore < 0 || in.FirstInningsScore > MaxFirstInningsScore:
		return reject(in, KindInputOutOfRange,
			"first innings score %d must be between 0 and %d", in.FirstInningsScore, MaxFirstInningsScore)
	case in.ScheduledOvers < MinScheduledOvers || in.ScheduledOvers > MaxScheduledOvers:
		return reject(in, KindInputOutOfRange,
			"scheduled overs %d must be between %d and %d", in.ScheduledOvers, MinScheduledOvers, MaxScheduledOvers)
	}
	return nil
}

// exactPar returns ceil(S - L*0.66*(S+1)/N) using integers only:
// ceil((50*N*S - 33*L*(S+1)) / (50*N)).
func exactPar(score, scheduled, lost int) int {
	den := int64(deductionDen) * int64(scheduled)
	num := den*int64(score) - int64(deductionNum)*int64(lost)*int64(score+1)
	return int(ceilDiv(num, den))
}

// ceilDiv assumes b > 0.
func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}

// Round2 rounds x to two decimal places for display.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
