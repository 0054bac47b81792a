package ui

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chibuka/algoviz/internal/playback"
	"github.com/chibuka/algoviz/internal/steps"
	"github.com/chibuka/algoviz/ui/messages"
	"go.uber.org/zap"
)

// SortFetcher produces bubble sort traces. *client.Client implements it.
type SortFetcher interface {
	BubbleSort(ctx context.Context, input []int) (*steps.SortResult, error)
}

type SortOptions struct {
	// Values to sort. A random array of Size elements is used when empty.
	Values []int
	Size   int
	Speed  time.Duration
	Rand   *rand.Rand
	Logger *zap.Logger
}

// SortModel is the interactive bubble sort player.
type SortModel struct {
	ctx     context.Context
	fetcher SortFetcher
	player  player[steps.SortStep]
	keys    keyMap
	help    help.Model
	rng     *rand.Rand

	array  []int
	size   int
	result *steps.SortResult
}

func NewSortModel(ctx context.Context, f SortFetcher, opts SortOptions) *SortModel {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	keys := sortKeys()
	m := &SortModel{
		ctx:     ctx,
		fetcher: f,
		player:  newPlayer[steps.SortStep](opts.Speed, playback.SortPresets, keys, opts.Logger),
		keys:    keys,
		help:    help.New(),
		rng:     rng,
		size:    steps.ClampArraySize(opts.Size),
	}
	if len(opts.Values) > 0 {
		m.array = slices.Clone(opts.Values)
		m.size = len(m.array)
	} else {
		m.array = steps.RandomArray(m.size, rng)
	}
	return m
}

func (m *SortModel) Init() tea.Cmd {
	return m.start()
}

// start requests a fresh trace for the current array.
func (m *SortModel) start() tea.Cmd {
	gen := m.player.beginFetch()
	m.result = nil
	input := slices.Clone(m.array)
	ctx, f := m.ctx, m.fetcher

	return tea.Batch(m.player.spinnerCmd(), func() tea.Msg {
		res, err := f.BubbleSort(ctx, input)
		if err != nil {
			return messages.FetchFailedMsg{Gen: gen, Err: err}
		}
		return messages.SortFetchedMsg{Gen: gen, Result: res}
	})
}

// editable reports whether the input array may change. Changing it while
// auto-play runs would pull the trace out from under the display.
func (m *SortModel) editable() bool {
	return !m.player.busy() && m.player.ctrl.State().Phase != playback.Playing
}

func (m *SortModel) resize(size int) {
	size = steps.ClampArraySize(size)
	if size == m.size && len(m.array) == size {
		return
	}
	m.size = size
	m.randomize()
}

func (m *SortModel) randomize() {
	m.array = steps.RandomArray(m.size, m.rng)
	m.result = nil
	m.player.ctrl.Reset()
}

func (m *SortModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case messages.SortFetchedMsg:
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

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Start):
			return m, m.start()
		case key.Matches(msg, m.keys.Randomize) && m.editable():
			m.randomize()
		case key.Matches(msg, m.keys.Grow) && m.editable():
			m.resize(m.size + 1)
		case key.Matches(msg, m.keys.Shrink) && m.editable():
			m.resize(m.size - 1)
		}
	}
	return m, nil
}

func (m *SortModel) View() string {
	st := m.player.ctrl.State()

	var sb strings.Builder
	sb.WriteString(title.Render("Bubble Sort") + "  " + StatusLine(st) + "\n\n")

	switch step, ok := m.player.ctrl.Current(); {
	case m.player.loading:
		sb.WriteString(m.player.spinner.View() + " Computing steps…\n")
	case ok:
		sb.WriteString(RenderSortStep(step, st) + "\n")
		if st.Phase == playback.Finished && m.result != nil {
			sb.WriteString(gray.Render(fmt.Sprintf("%s of %d elements took %d ms on the compute service.",
				m.result.Algorithm, len(step.Array), m.result.TimeTakenMs)) + "\n")
		}
	default:
		sb.WriteString(RenderSortStep(steps.SortStep{Array: m.array}, st) + "\n")
		sb.WriteString(gray.Render("Press enter to sort.") + "\n")
	}

	if m.player.err != nil {
		sb.WriteString("\n" + RenderNotice(m.player.err) + "\n")
	}
	sb.WriteString("\n" + m.help.View(m.keys))
	return sb.String()
}
