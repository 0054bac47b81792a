package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chibuka/algoviz/client"
	"github.com/chibuka/algoviz/internal/playback"
	"github.com/chibuka/algoviz/internal/runner"
	"github.com/chibuka/algoviz/ui"
	"github.com/chibuka/algoviz/ui/messages"
	"go.uber.org/zap"
)

// resolveSpeed picks the playback delay from a --speed value, falling back to
// the configured one.
func resolveSpeed(flag string, presets []playback.Preset, configured time.Duration) (time.Duration, error) {
	if flag == "" {
		return configured, nil
	}
	p, ok := playback.FindPreset(presets, flag)
	if !ok {
		return 0, fmt.Errorf("unknown speed %q. Use one of: %s", flag, presetList(presets))
	}
	return p.Delay, nil
}

func presetList(presets []playback.Preset) string {
	labels := make([]string, len(presets))
	for i, p := range presets {
		labels[i] = p.Label
	}
	return strings.Join(labels, ", ")
}

func parseValues(args []string) ([]int, error) {
	values := make([]int, 0, len(args))
	for _, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: values must be integers", a)
		}
		values = append(values, v)
	}
	return values, nil
}

// playPlain walks trace on a timer and prints every step, then the tail
// messages once the run completes.
func playPlain[S any](ctx context.Context, trace []S, speed time.Duration, toMsg func(S, playback.State) messages.Msg, tail ...messages.Msg) error {
	ctrl := playback.New[S](speed)
	if err := ctrl.Start(trace); err != nil {
		return err
	}

	ch := make(chan messages.Msg)
	done := ui.StartRenderer(os.Stdout, ch)

	err := runner.New(ctrl, logger).Play(ctx, func(step S, st playback.State) {
		ch <- toMsg(step, st)
	})
	if err == nil {
		for _, msg := range tail {
			ch <- msg
		}
	}
	done()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runProgram runs an interactive player full screen.
func runProgram(ctx context.Context, m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("player failed: %w", err)
	}
	return nil
}

// fetchError logs the underlying failure and returns the user-facing one.
func fetchError(err error) error {
	logger.Debug("compute service call failed", zap.Error(err))
	return errors.New(client.FormatError(err))
}
