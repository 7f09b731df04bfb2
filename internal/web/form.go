package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"raintarget/internal/metrics"
	"raintarget/internal/target"
)

// Web form defaults; the redirect URL only carries params that differ.
const (
	webDefaultScore     = "180"
	webDefaultOversLost = "5"
)

// PageData feeds pageHTML.
type PageData struct {
	Score          string
	ScheduledOvers string
	OversLost      string

	MaxScore        int
	MinScheduled    int
	MaxScheduled    int
	MaxOversLost    int
	MinOversLeft    int
	DefaultOvers    int
	RuleReference   string
	Caption         string
	Version         string
	Error           string
	Result          *target.Result
	Explain         []string
	RateDisplay     string
	DeductedDisplay string

	// Meta description for link previews when Result is set.
	ShareDescription string
}

func (s *Server) newPageData() PageData {
	return PageData{
		MaxScore:      target.MaxFirstInningsScore,
		MinScheduled:  target.MinScheduledOvers,
		MaxScheduled:  target.MaxScheduledOvers,
		MaxOversLost:  target.MaxOversLost,
		MinOversLeft:  target.MinOversRemaining,
		DefaultOvers:  s.DefaultScheduledOvers(),
		RuleReference: target.RuleReference,
		Caption:       target.Caption(),
		Version:       s.version,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	data := s.newPageData()
	data.Score = orDefault(q.Get("score"), webDefaultScore)
	data.OversLost = orDefault(q.Get("overs_lost"), webDefaultOversLost)
	data.ScheduledOvers = orDefault(q.Get("scheduled_overs"), strconv.Itoa(data.DefaultOvers))

	// The URL alone is enough to show a result, so shared links render fully.
	in, err := parseForm(data.Score, data.ScheduledOvers, data.OversLost)
	if err != nil {
		data.Error = err.Error()
	} else if res, err := s.compute(r, metrics.SourceWeb, in); err != nil {
		data.Error = err.Error()
	} else {
		data.setResult(res)
	}

	s.render(w, r, data)
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	data := s.newPageData()
	data.Score = strings.TrimSpace(r.FormValue("score"))
	data.ScheduledOvers = strings.TrimSpace(r.FormValue("scheduled_overs"))
	data.OversLost = strings.TrimSpace(r.FormValue("overs_lost"))

	if data.ScheduledOvers == "" {
		data.ScheduledOvers = strconv.Itoa(data.DefaultOvers)
	}

	in, err := parseForm(data.Score, data.ScheduledOvers, data.OversLost)
	if err != nil {
		data.Error = err.Error()
		s.render(w, r, data)
		return
	}
	if _, err := s.compute(r, metrics.SourceWeb, in); err != nil {
		data.Error = err.Error()
		s.render(w, r, data)
		return
	}

	// Redirect to GET so the URL reflects the calculation.
	http.Redirect(w, r, buildCalcURL(in, data.DefaultOvers), http.StatusFound)
}

func (d *PageData) setResult(res target.Result) {
	d.Result = &res
	d.Explain = res.Explain()
	d.RateDisplay = fmt.Sprintf("%.2f", res.InitialRequiredRate)
	d.DeductedDisplay = fmt.Sprintf("%.2f", res.RunsDeducted)
	d.ShareDescription = buildShareDescription(res)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.Execute(w, data); err != nil {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("render page")
	}
}

// parseForm converts the three text fields into an Input. Range checks are
// left to target.Compute so the rule's messages reach the user unchanged.
func parseForm(score, scheduled, lost string) (target.Input, error) {
	var in target.Input
	var err error
	if in.FirstInningsScore, err = parseWhole(score, "first innings score"); err != nil {
		return in, err
	}
	if in.ScheduledOvers, err = parseWhole(scheduled, "scheduled overs"); err != nil {
		return in, err
	}
	if in.OversLost, err = parseWhole(lost, "overs lost"); err != nil {
		return in, err
	}
	return in, nil
}

func parseWhole(s, field string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number, got %q", field, s)
	}
	return v, nil
}

// buildCalcURL returns "/?score=...&overs_lost=..." and only adds
// scheduled_overs when it differs from the current default.
func buildCalcURL(in target.Input, defaultOvers int) string {
	v := url.Values{}
	v.Set("score", strconv.Itoa(in.FirstInningsScore))
	v.Set("overs_lost", strconv.Itoa(in.OversLost))
	if in.ScheduledOvers != defaultOvers {
		v.Set("scheduled_overs", strconv.Itoa(in.ScheduledOvers))
	}
	return "/?" + v.Encode()
}

func orDefault(val, def string) string {
	if strings.TrimSpace(val) == "" {
		return def
	}
	return strings.TrimSpace(val)
}

func buildShareDescription(res target.Result) string {
	return fmt.Sprintf("%d runs, %d overs lost: par %d, target %d in %d overs.",
		res.Input.FirstInningsScore, res.Input.OversLost, res.ParScore, res.TargetToWin, res.OversAvailable)
}
