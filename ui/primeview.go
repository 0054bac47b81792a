package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chibuka/algoviz/internal/playback"
	"github.com/chibuka/algoviz/internal/steps"
	"github.com/chibuka/algoviz/ui/messages"
	"go.uber.org/zap"
)

// PrimeFetcher produces primality traces. *client.Client implements it.
type PrimeFetcher interface {
	CheckPrime(ctx context.Context, n int64) (*steps.PrimeResult, error)
}

type PrimeOptions struct {
	// Number to check right away. Zero opens the input instead.
	Number int64
	Speed  time.Duration
	Logger *zap.Logger
}

// PrimeModel is the interactive trial-division player.
type PrimeModel struct {
	ctx     context.Context
	fetcher PrimeFetcher
	player  player[steps.PrimeStep]
	keys    keyMap
	help    help.Model
	input   textinput.Model

	// pending is the last number sent for checking.
	pending int64
	result  *steps.PrimeResult
}

func NewPrimeModel(ctx context.Context, f PrimeFetcher, opts PrimeOptions) *PrimeModel {
	speed := opts.Speed
	if speed <= 0 {
		speed = playback.DefaultPrimeSpeed
	}

	in := textinput.New()
	in.Placeholder = "a whole number ≥ 2"
	in.Prompt = "n = "
	in.CharLimit = 19

	keys := primeKeys()
	m := &PrimeModel{
		ctx:     ctx,
		fetcher: f,
		player:  newPlayer[steps.PrimeStep](speed, playback.PrimePresets, keys, opts.Logger),
		keys:    keys,
		help:    help.New(),
		input:   in,
		pending: opts.Number,
	}
	return m
}

func (m *PrimeModel) Init() tea.Cmd {
	if m.pending >= 2 {
		return m.check(m.pending)
	}
	return m.input.Focus()
}

func (m *PrimeModel) check(n int64) tea.Cmd {
	gen := m.player.beginFetch()
	m.pending = n
	m.result = nil
	m.input.Blur()
	m.input.SetValue("")
	ctx, f := m.ctx, m.fetcher

	return tea.Batch(m.player.spinnerCmd(), func() tea.Msg {
		res, err := f.CheckPrime(ctx, n)
		if err != nil {
			return messages.FetchFailedMsg{Gen: gen, Err: err}
		}
		return messages.PrimeFetchedMsg{Gen: gen, Result: res}
	})
}

// verdictVisible reports whether the final answer may be shown: only once
// playback reached the end, or right away when there was nothing to try.
func (m *PrimeModel) verdictVisible() bool {
	if m.result == nil {
		return false
	}
	return len(m.result.Steps) == 0 || m.player.ctrl.State().Phase == playback.Finished
}

func (m *PrimeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (!m.input.Focused() && key.Matches(msg, m.keys.Quit)) {
			return m, tea.Quit
		}
		if m.input.Focused() && m.player.err == nil {
			return m, m.updateInput(msg)
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case messages.PrimeFetchedMsg:
		if !m.player.accept(msg.Gen) {
			return m, nil
		}
		m.result = msg.Result
		return m, m.player.load(msg.Result.Steps)

	case messages.FetchFailedMsg:
		m.player.fail(msg.Gen, msg.Err)
		return m, nil
	}

	if cmd, ok := m.player.handle(msg); ok {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.player.busy() {
		switch {
		case key.Matches(msg, m.keys.Start):
			// Run the last number again, or ask for one if there is none.
			if m.pending >= 2 {
				return m, m.check(m.pending)
			}
			return m, m.input.Focus()
		case key.Matches(msg, m.keys.Edit):
			return m, m.input.Focus()
		}
	}
	return m, nil
}

func (m *PrimeModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		n, ok := steps.ParseCandidate(m.input.Value())
		if !ok {
			return nil
		}
		return m.check(n)
	case tea.KeyEsc:
		if m.result != nil {
			m.input.Blur()
		}
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *PrimeModel) View() string {
	st := m.player.ctrl.State()

	var sb strings.Builder
	sb.WriteString(title.Render("Primality Test") + "  " + StatusLine(st) + "\n\n")

	if m.input.Focused() {
		sb.WriteString(m.input.View() + "\n\n")
	}

	switch {
	case m.player.loading:
		sb.WriteString(m.player.spinner.View() + " Computing steps…\n")
	case m.result != nil:
		sb.WriteString(PrimeHeader(m.result.Number) + "\n\n")
		if trace := RenderPrimeSteps(m.player.ctrl.Steps(), st); trace != "" {
			sb.WriteString(trace + "\n")
		}
		if m.verdictVisible() {
			sb.WriteString(RenderVerdict(m.result) + "\n")
		}
	case !m.input.Focused():
		sb.WriteString(gray.Render("Press n to enter a number.") + "\n")
	}

	if m.player.err != nil {
		sb.WriteString("\n" + RenderNotice(m.player.err) + "\n")
	}
	sb.WriteString("\n" + m.help.View(m.keys))
	return sb.String()
}
