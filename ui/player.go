package ui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chibuka/algoviz/internal/playback"
	"github.com/chibuka/algoviz/ui/messages"
	"go.uber.org/zap"
)

// wheelInterval throttles mouse-wheel navigation.
const wheelInterval = 800 * time.Millisecond

// player holds what both views share: the controller, the in-flight fetch and
// the error notification. It lives inside a bubbletea model, so all access
// happens on the Update loop.
type player[S any] struct {
	ctrl    *playback.Controller[S]
	presets []playback.Preset
	keys    keyMap
	spinner spinner.Model
	logger  *zap.Logger

	loading bool
	gen     uint64
	err     error

	lastWheel time.Time
	now       func() time.Time
}

func newPlayer[S any](speed time.Duration, presets []playback.Preset, keys keyMap, logger *zap.Logger) player[S] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return player[S]{
		ctrl:    playback.New[S](speed),
		presets: presets,
		keys:    keys,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(cyan)),
		logger:  logger,
		now:     time.Now,
	}
}

// schedule arms a single-shot tick for the pending advance, if there is one.
func (p *player[S]) schedule() tea.Cmd {
	id, delay, ok := p.ctrl.Next()
	if !ok {
		return nil
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return messages.TickMsg{ID: id}
	})
}

// beginFetch discards the current run and returns the generation the new
// response must carry.
func (p *player[S]) beginFetch() uint64 {
	p.gen++
	p.loading = true
	p.err = nil
	p.ctrl.Reset()
	return p.gen
}

// accept reports whether a response for gen is still awaited.
func (p *player[S]) accept(gen uint64) bool {
	if gen != p.gen || !p.loading {
		p.logger.Debug("discarding stale response", zap.Uint64("gen", gen), zap.Uint64("current", p.gen))
		return false
	}
	return true
}

func (p *player[S]) load(trace []S) tea.Cmd {
	p.loading = false
	if err := p.ctrl.Start(trace); err != nil {
		if !errors.Is(err, playback.ErrNoSteps) {
			p.err = err
		}
		return nil
	}
	return p.schedule()
}

func (p *player[S]) fail(gen uint64, err error) {
	if !p.accept(gen) {
		return
	}
	p.loading = false
	p.err = err
	p.ctrl.Reset()
	p.logger.Warn("fetch failed", zap.Error(err))
}

// busy reports whether playback input should be ignored.
func (p *player[S]) busy() bool { return p.loading || p.err != nil }

func (p *player[S]) spinnerCmd() tea.Cmd { return p.spinner.Tick }

// handle processes the messages both views treat the same way. It reports
// false for messages the view has to interpret itself.
func (p *player[S]) handle(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case messages.TickMsg:
		if p.ctrl.Tick(msg.ID) {
			return p.schedule(), true
		}
		return nil, true

	case spinner.TickMsg:
		if !p.loading {
			return nil, true
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd, true

	case tea.MouseMsg:
		if p.busy() || !p.allowWheel(msg) {
			return nil, true
		}
		if msg.Button == tea.MouseButtonWheelDown {
			p.ctrl.StepForward()
		} else {
			p.ctrl.StepBack()
		}
		return p.schedule(), true

	case tea.KeyMsg:
		if p.err != nil {
			if key.Matches(msg, p.keys.Dismiss) {
				p.err = nil
			}
			return nil, true
		}
		if p.loading {
			return nil, true
		}
		switch {
		case key.Matches(msg, p.keys.Toggle):
			p.ctrl.TogglePause()
		case key.Matches(msg, p.keys.Forward):
			p.ctrl.StepForward()
		case key.Matches(msg, p.keys.Back):
			p.ctrl.StepBack()
		case key.Matches(msg, p.keys.Restart):
			p.ctrl.Restart()
		case key.Matches(msg, p.keys.SkipEnd):
			p.ctrl.SkipToEnd()
		case key.Matches(msg, p.keys.Speed):
			preset := p.ctrl.CycleSpeed(p.presets)
			p.logger.Debug("speed changed", zap.Stringer("preset", preset))
		default:
			return nil, false
		}
		return p.schedule(), true
	}
	return nil, false
}

func (p *player[S]) allowWheel(msg tea.MouseMsg) bool {
	if msg.Button != tea.MouseButtonWheelDown && msg.Button != tea.MouseButtonWheelUp {
		return false
	}
	now := p.now()
	if !p.lastWheel.IsZero() && now.Sub(p.lastWheel) < wheelInterval {
		return false
	}
	p.lastWheel = now
	return true
}
