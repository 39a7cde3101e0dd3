package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alem-hub/attendance-tracker/internal/domain/attendance"
)

// Colours of the web version: green when on track, yellow when the record
// needs attention, red guidance text when classes must be attended.
var (
	colorOK      = lipgloss.Color("#22c55e")
	colorWarn    = lipgloss.Color("#eab308")
	colorDanger  = lipgloss.Color("#f87171")
	colorMuted   = lipgloss.Color("#9ca3af")
	colorSubtle  = lipgloss.Color("#6b7280")
	colorBorder  = lipgloss.Color("#1f2937")
	colorHeading = lipgloss.Color("#ffffff")
)

// Presenter renders records for a terminal. Styles come from a renderer
// bound to the output, so plain writers get plain text.
type Presenter struct {
	policy attendance.Policy

	title   lipgloss.Style
	muted   lipgloss.Style
	subtle  lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	danger  lipgloss.Style
	card    lipgloss.Style
	warning lipgloss.Style
}

// NewPresenter creates a presenter writing to w.
func NewPresenter(w io.Writer, policy attendance.Policy) *Presenter {
	r := lipgloss.NewRenderer(w)
	return &Presenter{
		policy:  policy,
		title:   r.NewStyle().Bold(true).Foreground(colorHeading),
		muted:   r.NewStyle().Foreground(colorMuted),
		subtle:  r.NewStyle().Foreground(colorSubtle),
		ok:      r.NewStyle().Bold(true).Foreground(colorOK),
		warn:    r.NewStyle().Bold(true).Foreground(colorWarn),
		danger:  r.NewStyle().Foreground(colorDanger),
		card:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		warning: r.NewStyle().Foreground(colorWarn),
	}
}

// Card renders one record with its counters, percentage and guidance.
func (p *Presenter) Card(rec attendance.Record) string {
	pct := p.policy.Percentage(rec)
	projection := p.policy.Projection(rec)

	pctStyle := p.ok
	if p.policy.NeedsAttention(rec) {
		pctStyle = p.warn
	}
	guidance := p.muted
	if projection.Kind == attendance.MustAttend {
		guidance = p.danger
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", p.title.Render(rec.Name), p.subtle.Render("["+rec.ID.String()+"]"))
	fmt.Fprintf(&b, "%d %s  %d %s  %d %s  %s\n",
		rec.Attended, p.muted.Render("Attended"),
		rec.Missed(), p.muted.Render("Missed"),
		rec.Total, p.muted.Render("Total"),
		pctStyle.Render(fmt.Sprintf("%d%%", pct)),
	)
	fmt.Fprintf(&b, "%s\n", guidance.Render(projection.String()))
	b.WriteString(p.subtle.Render(fmt.Sprintf("Requirement : %d%%", p.policy.ThresholdPercent)))

	return p.card.Render(b.String())
}

// List renders every record, or a hint when there are none.
func (p *Presenter) List(records []attendance.Record) string {
	if len(records) == 0 {
		return p.muted.Render("No subjects yet. Add one with: attendance add NAME")
	}
	cards := make([]string, len(records))
	for i, rec := range records {
		cards[i] = p.Card(rec)
	}
	return strings.Join(cards, "\n")
}

// Summary renders the totals over all records.
func (p *Presenter) Summary(s attendance.Summary) string {
	pctStyle := p.ok
	if s.Percentage < p.policy.ThresholdPercent {
		pctStyle = p.warn
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.title.Render("Overall"))
	fmt.Fprintf(&b, "%d %s\n", s.Subjects, p.muted.Render("Subjects"))
	fmt.Fprintf(&b, "%d %s  %d %s  %d %s  %s\n",
		s.Attended, p.muted.Render("Attended"),
		s.Missed, p.muted.Render("Missed"),
		s.Total, p.muted.Render("Total"),
		pctStyle.Render(fmt.Sprintf("%d%%", s.Percentage)),
	)
	b.WriteString(p.subtle.Render(fmt.Sprintf("Requirement : %d%%", p.policy.ThresholdPercent)))
	return p.card.Render(b.String())
}

// Warning renders a non-fatal problem.
func (p *Presenter) Warning(msg string) string {
	return p.warning.Render("warning: " + msg)
}
