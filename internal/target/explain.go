package target

import "fmt"

// Explain returns the worked calculation behind r, one step per line.
func (r Result) Explain() []string {
	in := r.Input
	return []string{
		fmt.Sprintf("Initial required run-rate = (%d + 1) / %d = %.2f rpo",
			in.FirstInningsScore, in.ScheduledOvers, r.InitialRequiredRate),
		fmt.Sprintf("Runs deducted = %d x %.2f x %.2f = %.2f",
			in.OversLost, DeductionFactor, r.InitialRequiredRate, r.RunsDeducted),
		fmt.Sprintf("Revised par = %d - %.2f = %.2f, rounded up to %d",
			in.FirstInningsScore, r.RunsDeducted, r.RawPar, r.ParScore),
	}
}

// Caption is the rounding note shown under every result.
func Caption() string {
	return RuleReference + ": calculations for revised targets are rounded up to the nearest whole number."
}
