package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"raintarget/internal/logging"
	"raintarget/internal/metrics"
	"raintarget/internal/target"
)

const accessDenied = "Access denied. You are not authorized to use this bot."

const unknownCommand = "Unknown command. Use /help to see available commands."

// errNotACalculation marks text that is neither a command nor numbers.
var errNotACalculation = errors.New("not a calculation")

func helpText(defaultOvers int) string {
	return fmt.Sprintf(`*HCL Rain-Reduction Calculator*

*Commands:*

/target <score> <overs lost> [scheduled overs]
  Example: /target 180 5
  Example: /target 150 3 40

/help - Show this help message

You can also just send the numbers, e.g. "180 5".

Scheduled overs default to %d. At most %d overs may be lost and at least %d must remain.`,
		defaultOvers, target.MaxOversLost, target.MinOversRemaining)
}

// ParseCommand reads "/target 180 5 [45]" or "180 5 [45]". A missing
// scheduled overs value becomes defaultOvers; a given one is kept as is.
func ParseCommand(text string, defaultOvers int) (target.Input, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return target.Input{}, errNotACalculation
	}
	if strings.HasPrefix(fields[0], "/") {
		if commandName(fields[0]) != "target" {
			return target.Input{}, errNotACalculation
		}
		fields = fields[1:]
	} else if _, err := strconv.Atoi(fields[0]); err != nil {
		return target.Input{}, errNotACalculation
	}

	if len(fields) < 2 || len(fields) > 3 {
		return target.Input{}, errors.New("usage: /target <score> <overs lost> [scheduled overs]")
	}

	nums := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return target.Input{}, fmt.Errorf("%q is not a whole number", f)
		}
		nums[i] = v
	}

	in := target.Input{FirstInningsScore: nums[0], ScheduledOvers: defaultOvers, OversLost: nums[1]}.WithDefaults()
	if len(nums) == 3 {
		in.ScheduledOvers = nums[2]
	}
	return in, nil
}

// commandName strips the leading slash and any @botname suffix.
func commandName(s string) string {
	s = strings.TrimPrefix(s, "/")
	if i := strings.IndexByte(s, '@'); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}

// respond returns the reply text for an incoming message and whether it is
// Markdown.
func (b *Bot) respond(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	if strings.HasPrefix(text, "/") {
		switch commandName(strings.Fields(text)[0]) {
		case "start", "help":
			return helpText(b.defaultOvers()), true
		case "target":
		default:
			return unknownCommand, false
		}
	}

	in, err := ParseCommand(text, b.defaultOvers())
	if errors.Is(err, errNotACalculation) {
		return helpText(b.defaultOvers()), true
	}
	if err != nil {
		return err.Error(), false
	}

	res, err := target.Compute(in)
	b.recorder.RecordCalculation(metrics.SourceBot, err)
	if err != nil {
		ev := b.logger.Warn().Int(logging.FieldScore, in.FirstInningsScore).
			Int(logging.FieldScheduled, in.ScheduledOvers).
			Int(logging.FieldOversLost, in.OversLost)
		if ve, ok := target.AsValidation(err); ok {
			ev = ev.Str(logging.FieldErrorKind, string(ve.Kind))
		}
		ev.Err(err).Msg("calculation rejected")
		return FormatRejection(err), true
	}
	return FormatReply(res), true
}

func (b *Bot) defaultOvers() int {
	if b.overs == 0 {
		return target.DefaultScheduledOvers
	}
	return b.overs
}

// FormatReply renders a result as Telegram Markdown.
func FormatReply(res target.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Revised target*\n\n")
	fmt.Fprintf(&sb, "Overs available: %d\n", res.OversAvailable)
	fmt.Fprintf(&sb, "*Par / tie score:* %d runs\n", res.ParScore)
	fmt.Fprintf(&sb, "*Target to win:* %d runs\n\n", res.TargetToWin)
	for _, line := range res.Explain() {
		fmt.Fprintf(&sb, "`%s`\n", line)
	}
	fmt.Fprintf(&sb, "\n%s", target.Caption())
	return sb.String()
}

// FormatRejection renders a validation error as Telegram Markdown.
func FormatRejection(err error) string {
	return "*Cannot calculate:* " + err.Error()
}
