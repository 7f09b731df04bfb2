package target

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestCompute_Scenarios(t *testing.T) {
	tests := []struct {
		name          string
		in            Input
		wantAvailable int
		wantRate      float64
		wantDeducted  float64
		wantPar       int
		wantTarget    int
	}{
		{
			name:          "five overs lost from 180",
			in:            Input{FirstInningsScore: 180, ScheduledOvers: 45, OversLost: 5},
			wantAvailable: 40,
			wantRate:      181.0 / 45.0,
			wantDeducted:  5 * 0.66 * 181.0 / 45.0,
			wantPar:       167,
			wantTarget:    168,
		},
		{
			name:          "no overs lost passes score through",
			in:            Input{FirstInningsScore: 180, ScheduledOvers: 45, OversLost: 0},
			wantAvailable: 45,
			wantRate:      181.0 / 45.0,
			wantDeducted:  0,
			wantPar:       180,
			wantTarget:    181,
		},
		{
			name:          "maximum overs lost from full allocation",
			in:            Input{FirstInningsScore: 250, ScheduledOvers: 45, OversLost: 20},
			wantAvailable: 25,
			wantRate:      251.0 / 45.0,
			wantDeducted:  20 * 0.66 * 251.0 / 45.0,
			wantPar:       177, // 250 - 73.6266... = 176.373...
			wantTarget:    178,
		},
		{
			name:          "shortened first innings at the floor",
			in:            Input{FirstInningsScore: 120, ScheduledOvers: 25, OversLost: 0},
			wantAvailable: 25,
			wantRate:      121.0 / 25.0,
			wantDeducted:  0,
			wantPar:       120,
			wantTarget:    121,
		},
		{
			name:          "zero score with overs lost",
			in:            Input{FirstInningsScore: 0, ScheduledOvers: 45, OversLost: 20},
			wantAvailable: 25,
			wantRate:      1.0 / 45.0,
			wantDeducted:  20 * 0.66 / 45.0,
			wantPar:       0,
			wantTarget:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.in)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if got.OversAvailable != tt.wantAvailable {
				t.Errorf("OversAvailable = %d, want %d", got.OversAvailable, tt.wantAvailable)
			}
			if math.Abs(got.InitialRequiredRate-tt.wantRate) > 1e-9 {
				t.Errorf("InitialRequiredRate = %v, want %v", got.InitialRequiredRate, tt.wantRate)
			}
			if math.Abs(got.RunsDeducted-tt.wantDeducted) > 1e-9 {
				t.Errorf("RunsDeducted = %v, want %v", got.RunsDeducted, tt.wantDeducted)
			}
			if got.ParScore != tt.wantPar {
				t.Errorf("ParScore = %d, want %d", got.ParScore, tt.wantPar)
			}
			if got.TargetToWin != tt.wantTarget {
				t.Errorf("TargetToWin = %d, want %d", got.TargetToWin, tt.wantTarget)
			}
			if got.Input != tt.in {
				t.Errorf("Input = %+v, want %+v", got.Input, tt.in)
			}
		})
	}
}

func TestCompute_ScenarioOneDisplayValues(t *testing.T) {
	got, err := Compute(Input{FirstInningsScore: 180, ScheduledOvers: 45, OversLost: 5})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if r := Round2(got.InitialRequiredRate); r != 4.02 {
		t.Errorf("rounded rate = %v, want 4.02", r)
	}
	if r := Round2(got.RunsDeducted); r != 13.27 {
		t.Errorf("rounded deduction = %v, want 13.27", r)
	}
	if r := Round2(got.RawPar); r != 166.73 {
		t.Errorf("rounded raw par = %v, want 166.73", r)
	}
}

func TestCompute_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		in         Input
		wantKind   Kind
		wantErr    error
		wantReason []string
	}{
		{
			name:       "21 overs lost",
			in:         Input{FirstInningsScore: 180, ScheduledOvers: 45, OversLost: 21},
			wantKind:   KindOversLostExceedsMaximum,
			wantErr:    ErrOversLostExceedsMaximum,
			wantReason: []string{"overs lost exceeds league maximum of 20"},
		},
		{
			name:     "21 overs lost wins over shortfall",
			in:       Input{FirstInningsScore: 180, ScheduledOvers: 25, OversLost: 21},
			wantKind: KindOversLostExceedsMaximum,
			wantErr:  ErrOversLostExceedsMaximum,
		},
		{
			name:     "21 overs lost wins over range",
			in:       Input{FirstInningsScore: 900, ScheduledOvers: 60, OversLost: 21},
			wantKind: KindOversLostExceedsMaximum,
			wantErr:  ErrOversLostExceedsMaximum,
		},
		{
			name:       "one over lost from 25",
			in:         Input{FirstInningsScore: 150, ScheduledOvers: 25, OversLost: 1},
			wantKind:   KindInsufficientOversRemaining,
			wantErr:    ErrInsufficientOversRemaining,
			wantReason: []string{"only 24 overs", "1 short", "minimum of 25"},
		},
		{
			name:       "shortfall of several overs",
			in:         Input{FirstInningsScore: 150, ScheduledOvers: 40, OversLost: 20},
			wantKind:   KindInsufficientOversRemaining,
			wantErr:    ErrInsufficientOversRemaining,
			wantReason: []string{"only 20 overs", "5 short"},
		},
		{
			name:       "score above maximum",
			in:         Input{FirstInningsScore: 501, ScheduledOvers: 45, OversLost: 0},
			wantKind:   KindInputOutOfRange,
			wantErr:    ErrInputOutOfRange,
			wantReason: []string{"first innings score 501"},
		},
		{
			name:     "negative score",
			in:       Input{FirstInningsScore: -1, ScheduledOvers: 45, OversLost: 0},
			wantKind: KindInputOutOfRange,
			wantErr:  ErrInputOutOfRange,
		},
		{
			name:       "scheduled overs above maximum",
			in:         Input{FirstInningsScore: 180, ScheduledOvers: 50, OversLost: 0},
			wantKind:   KindInputOutOfRange,
			wantErr:    ErrInputOutOfRange,
			wantReason: []string{"scheduled overs 50"},
		},
		{
			name:       "negative overs lost",
			in:         Input{FirstInningsScore: 180, ScheduledOvers: 45, OversLost: -1},
			wantKind:   KindInputOutOfRange,
			wantErr:    ErrInputOutOfRange,
			wantReason: []string{"must not be negative"},
		},
		{
			name:       "negative overs lost before shortfall",
			in:         Input{FirstInningsScore: 180, ScheduledOvers: 20, OversLost: -1},
			wantKind:   KindInputOutOfRange,
			wantErr:    ErrInputOutOfRange,
			wantReason: []string{"overs lost -1 must not be negative"},
		},
		{
			name:       "most negative overs lost",
			in:         Input{FirstInningsScore: 180, ScheduledOvers: 45, OversLost: math.MinInt},
			wantKind:   KindInputOutOfRange,
			wantErr:    ErrInputOutOfRange,
			wantReason: []string{"must not be negative"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.in)
			if err == nil {
				t.Fatalf("Compute() = %+v, want error", got)
			}
			if got != (Result{}) {
				t.Errorf("Compute() returned partial result %+v", got)
			}
			ve, ok := AsValidation(err)
			if !ok {
				t.Fatalf("error %T is not a *ValidationError", err)
			}
			if ve.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", ve.Kind, tt.wantKind)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.wantErr)
			}
			if ve.Input != tt.in {
				t.Errorf("Input = %+v, want %+v", ve.Input, tt.in)
			}
			for _, part := range tt.wantReason {
				if !strings.Contains(err.Error(), part) {
					t.Errorf("reason %q does not contain %q", err.Error(), part)
				}
			}
		})
	}
}

func TestValidationError_IsOnlyMatchesOwnKind(t *testing.T) {
	_, err := Compute(Input{FirstInningsScore: 100, ScheduledOvers: 45, OversLost: 21})
	if errors.Is(err, ErrInsufficientOversRemaining) {
		t.Error("overs-lost rejection matched ErrInsufficientOversRemaining")
	}
	if errors.Is(err, ErrInputOutOfRange) {
		t.Error("overs-lost rejection matched ErrInputOutOfRange")
	}
}

// Every accepted combination of the allowed ranges.
func forEachValidInput(t *testing.T, fn func(in Input, r Result)) {
	t.Helper()
	for scheduled := MinScheduledOvers; scheduled <= MaxScheduledOvers; scheduled++ {
		for lost := 0; lost <= MaxOversLost; lost++ {
			if scheduled-lost < MinOversRemaining {
				continue
			}
			for score := 0; score <= MaxFirstInningsScore; score++ {
				in := Input{FirstInningsScore: score, ScheduledOvers: scheduled, OversLost: lost}
				r, err := Compute(in)
				if err != nil {
					t.Fatalf("Compute(%+v) error = %v", in, err)
				}
				fn(in, r)
			}
		}
	}
}

func TestCompute_Properties(t *testing.T) {
	forEachValidInput(t, func(in Input, r Result) {
		if r.TargetToWin != r.ParScore+1 {
			t.Fatalf("%+v: target %d != par %d + 1", in, r.TargetToWin, r.ParScore)
		}
		if r.ParScore > in.FirstInningsScore {
			t.Fatalf("%+v: par %d above first innings score", in, r.ParScore)
		}
		if r.ParScore < 0 {
			t.Fatalf("%+v: negative par %d", in, r.ParScore)
		}
		if in.OversLost == 0 && r.ParScore != in.FirstInningsScore {
			t.Fatalf("%+v: par %d, want pass-through", in, r.ParScore)
		}
		if r.OversAvailable != in.ScheduledOvers-in.OversLost {
			t.Fatalf("%+v: overs available %d", in, r.OversAvailable)
		}
	})
}

func TestCompute_ParIsCeilingOfFormula(t *testing.T) {
	forEachValidInput(t, func(in Input, r Result) {
		raw := float64(in.FirstInningsScore) -
			float64(in.OversLost)*0.66*float64(in.FirstInningsScore+1)/float64(in.ScheduledOvers)
		// Away from integers the float ceiling is unambiguous.
		if math.Abs(raw-math.Round(raw)) > 1e-9 {
			if want := int(math.Ceil(raw)); r.ParScore != want {
				t.Fatalf("%+v: par %d, want ceil(%v) = %d", in, r.ParScore, raw, want)
			}
			return
		}
		if r.ParScore != int(math.Round(raw)) {
			t.Fatalf("%+v: par %d, want exact %v", in, r.ParScore, raw)
		}
	})
}

func TestCompute_ExactIntegerParNotBumped(t *testing.T) {
	got, err := Compute(Input{FirstInningsScore: 49, ScheduledOvers: 33, OversLost: 8})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	// 8 x 0.66 x 50 / 33 = 8 runs exactly.
	if got.ParScore != 41 {
		t.Errorf("ParScore = %d, want 41", got.ParScore)
	}
}

func TestCompute_ZeroScoreNeverNegative(t *testing.T) {
	for scheduled := MinScheduledOvers; scheduled <= MaxScheduledOvers; scheduled++ {
		for lost := 0; lost <= scheduled-MinOversRemaining && lost <= MaxOversLost; lost++ {
			r, err := Compute(Input{FirstInningsScore: 0, ScheduledOvers: scheduled, OversLost: lost})
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if r.RunsDeducted >= 1 {
				t.Errorf("scheduled=%d lost=%d: deduction %v not below one run", scheduled, lost, r.RunsDeducted)
			}
			if r.ParScore != 0 {
				t.Errorf("scheduled=%d lost=%d: par %d, want 0", scheduled, lost, r.ParScore)
			}
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	in := Input{FirstInningsScore: 213, ScheduledOvers: 42, OversLost: 7}
	first, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Compute(in)
		if err != nil {
			t.Fatalf("Compute() error = %v", err)
		}
		if again != first {
			t.Fatalf("call %d: %+v, want %+v", i, again, first)
		}
	}
}

func TestInput_WithDefaults(t *testing.T) {
	if got := (Input{FirstInningsScore: 1}).WithDefaults().ScheduledOvers; got != DefaultScheduledOvers {
		t.Errorf("ScheduledOvers = %d, want %d", got, DefaultScheduledOvers)
	}
	if got := (Input{ScheduledOvers: 30}).WithDefaults().ScheduledOvers; got != 30 {
		t.Errorf("ScheduledOvers = %d, want 30", got)
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{10, 5, 2},
		{11, 5, 3},
		{1, 5, 1},
		{0, 5, 0},
		{-1, 5, 0},
		{-5, 5, -1},
		{-6, 5, -1},
	}
	for _, tt := range tests {
		if got := ceilDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("ceilDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
