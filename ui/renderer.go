package ui

import (
	"fmt"
	"io"

	"github.com/chibuka/algoviz/ui/messages"
)

// StartRenderer prints playback messages to w as they arrive on ch. The
// returned func closes ch and waits until everything queued has been printed.
func StartRenderer(w io.Writer, ch chan messages.Msg) func() {
	done := make(chan struct{})

	_, _ = fmt.Fprintln(w) // Initial newline

	go func() {
		defer close(done)
		for msg := range ch {
			switch msg := msg.(type) {
			case messages.SortStepMsg:
				_, _ = fmt.Fprintln(w, RenderSortStep(msg.Step, msg.State))
				_, _ = fmt.Fprintln(w)

			case messages.PrimeStepMsg:
				_, _ = fmt.Fprintln(w, RenderPrimeLine(msg.Step, false))

			case messages.VerdictMsg:
				_, _ = fmt.Fprintln(w, RenderVerdict(msg.Result))
			}
		}
	}()

	return func() {
		close(ch)
		<-done
		_, _ = fmt.Fprintln(w)
	}
}
