package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chibuka/algoviz/client"
	"github.com/chibuka/algoviz/internal/playback"
	"github.com/chibuka/algoviz/internal/steps"
)

const (
	barWidth = 40

	// primeWindow is how many trial divisions stay on screen.
	primeWindow = 8
)

// RenderSortStep draws the array as horizontal bars followed by the step
// counter and description.
func RenderSortStep(step steps.SortStep, st playback.State) string {
	peak := 1.0
	for _, v := range step.Array {
		peak = math.Max(peak, math.Abs(float64(v)))
	}

	var sb strings.Builder
	for i, v := range step.Array {
		n := max(1, int(math.Round(math.Abs(float64(v))/peak*barWidth)))
		fmt.Fprintf(&sb, "%6d %s\n", v, barStyle(step, i).Render(strings.Repeat("█", n)))
	}
	sb.WriteString("\n")
	sb.WriteString(gray.Render(StepCounter(st)) + "\n")
	sb.WriteString(step.Description)
	return sb.String()
}

func barStyle(step steps.SortStep, idx int) lipgloss.Style {
	switch {
	case step.Swapping && step.IsComparing(idx):
		return red
	case step.IsComparing(idx):
		return purple
	case step.IsSorted(idx):
		return cyan
	default:
		return gray
	}
}

// StepCounter renders the zero-based position, e.g. "Step 3 of 16".
func StepCounter(st playback.State) string {
	if st.Total == 0 {
		return "No steps"
	}
	return fmt.Sprintf("Step %d of %d", st.Index, st.Total-1)
}

// StatusLine summarizes the playback phase and speed.
func StatusLine(st playback.State) string {
	var phase string
	switch st.Phase {
	case playback.Playing:
		phase = green.Render("▶ playing")
	case playback.Paused:
		phase = yellow.Render("⏸ paused")
	case playback.Finished:
		phase = cyan.Render("■ finished")
	default:
		phase = gray.Render("idle")
	}
	return fmt.Sprintf("%s  %s", phase, gray.Render("every "+st.Speed.String()))
}

// PrimeHeader introduces a primality run for n.
func PrimeHeader(n int64) string {
	limit := steps.ISqrt(n)
	if limit < 2 {
		return fmt.Sprintf("Checking %d: no divisors to try below √%d.", n, n)
	}
	return fmt.Sprintf("Checking %d: trying divisors 2 to %d (⌊√%d⌋).", n, limit, n)
}

// RenderPrimeLine draws one trial division. current marks the active step.
func RenderPrimeLine(s steps.PrimeStep, current bool) string {
	line := fmt.Sprintf("%s = %s  %s", s.Expression, s.Result, s.Status)
	switch {
	case s.IsMatch:
		return red.Render("✗ " + line)
	case current:
		return yellow.Render("➜ " + line)
	default:
		return gray.Render("  " + line)
	}
}

// RenderPrimeSteps draws the trial divisions up to the active one, keeping the
// most recent few on screen.
func RenderPrimeSteps(trace []steps.PrimeStep, st playback.State) string {
	if st.Total == 0 || len(trace) == 0 {
		return ""
	}
	end := min(st.Index, len(trace)-1)
	start := max(0, end-primeWindow+1)

	var sb strings.Builder
	if start > 0 {
		sb.WriteString(gray.Render(fmt.Sprintf("  … %d earlier divisors", start)) + "\n")
	}
	for i := start; i <= end; i++ {
		sb.WriteString(RenderPrimeLine(trace[i], i == end) + "\n")
	}
	sb.WriteString(gray.Render(StepCounter(st)))
	return sb.String()
}

// RenderVerdict draws the final answer panel for a primality run.
func RenderVerdict(r *steps.PrimeResult) string {
	var body string
	if r.IsPrime {
		body = green.Render("✓ " + r.Message)
	} else {
		body = red.Render("✗ " + r.Message)
		if d, ok := r.MatchedDivisor(); ok {
			body += fmt.Sprintf("\n%d = %d × %d", r.Number, d, r.Number/d)
		}
	}
	body += "\n" + gray.Render(fmt.Sprintf("%d divisors checked in %d ms", len(r.Steps), r.TimeTakenMs))
	return verdictBox.Render(body)
}

// RenderNotice draws the blocking error notification.
func RenderNotice(err error) string {
	return notice.Render(red.Render("Error") + "\n" + client.FormatError(err) + "\n\n" + gray.Render("enter/esc to dismiss"))
}
