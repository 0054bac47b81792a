package ui

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chibuka/algoviz/client"
	"github.com/chibuka/algoviz/internal/playback"
	"github.com/chibuka/algoviz/internal/steps"
	"github.com/chibuka/algoviz/ui/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSorter struct{}

func (fakeSorter) BubbleSort(_ context.Context, input []int) (*steps.SortResult, error) {
	return &steps.SortResult{Steps: steps.BubbleSort(input), Algorithm: steps.AlgorithmBubbleSort}, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newSortModel(values ...int) *SortModel {
	return NewSortModel(context.Background(), fakeSorter{}, SortOptions{
		Values: values,
		Size:   steps.DefaultArraySize,
		Rand:   rand.New(rand.NewPCG(1, 2)),
	})
}

// loaded starts a run and delivers its trace as the fetch would.
func loaded(t *testing.T, m *SortModel) *SortModel {
	t.Helper()
	m.Init()
	res, err := m.fetcher.BubbleSort(context.Background(), m.array)
	require.NoError(t, err)
	m.Update(messages.SortFetchedMsg{Gen: m.player.gen, Result: res})
	return m
}

func currentTick(m *SortModel) messages.TickMsg {
	id, _, _ := m.player.ctrl.Next()
	return messages.TickMsg{ID: id}
}

func TestSortModel_FetchStartsPlayback(t *testing.T) {
	m := newSortModel(5, 2, 9, 1)
	m.Init()
	assert.True(t, m.player.loading)
	assert.Contains(t, m.View(), "Computing steps")

	loaded(t, m)
	st := m.player.ctrl.State()
	assert.Equal(t, playback.Playing, st.Phase)
	assert.Equal(t, 17, st.Total)
	assert.Contains(t, m.View(), "Starting bubble sort on 4 elements.")
}

func TestSortModel_TickAdvancesAndStaleTickIgnored(t *testing.T) {
	m := loaded(t, newSortModel(5, 2, 9, 1))

	stale := currentTick(m)
	_, cmd := m.Update(stale)
	assert.NotNil(t, cmd, "advance re-arms the next tick")
	assert.Equal(t, 1, m.player.ctrl.State().Index)

	m.Update(stale)
	assert.Equal(t, 1, m.player.ctrl.State().Index)
}

func TestSortModel_PlaysToFinished(t *testing.T) {
	m := loaded(t, newSortModel(3, 1, 2))

	for m.player.ctrl.State().Phase == playback.Playing {
		m.Update(currentTick(m))
	}
	st := m.player.ctrl.State()
	assert.Equal(t, playback.Finished, st.Phase)
	assert.True(t, st.AtEnd())
	assert.Contains(t, m.View(), "Array is fully sorted!")
}

func TestSortModel_StaleFetchDiscarded(t *testing.T) {
	m := newSortModel(5, 2, 9, 1)
	m.Init()
	first := m.player.gen
	m.Init()

	old := &steps.SortResult{Steps: steps.BubbleSort([]int{9, 9})}
	m.Update(messages.SortFetchedMsg{Gen: first, Result: old})
	assert.True(t, m.player.loading)
	assert.Equal(t, playback.Idle, m.player.ctrl.State().Phase)

	m.Update(messages.FetchFailedMsg{Gen: first, Err: errors.New("late")})
	assert.NoError(t, m.player.err)
}

func TestSortModel_FetchFailureShowsNotice(t *testing.T) {
	m := newSortModel(5, 2, 9, 1)
	m.Init()
	m.Update(messages.FetchFailedMsg{Gen: m.player.gen, Err: client.ErrUnreachable})

	assert.False(t, m.player.loading)
	assert.Equal(t, playback.Idle, m.player.ctrl.State().Phase)
	assert.Contains(t, m.View(), "not reachable")

	// Blocking: other keys do nothing until dismissed.
	m.Update(runes("r"))
	assert.Error(t, m.player.err)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NoError(t, m.player.err)
}

func TestSortModel_InputIgnoredWhileLoading(t *testing.T) {
	m := newSortModel(5, 2, 9, 1)
	m.Init()
	before := m.player.ctrl.State()

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, before, m.player.ctrl.State())
}

func TestSortModel_ManualControls(t *testing.T) {
	m := loaded(t, newSortModel(5, 2, 9, 1))

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	st := m.player.ctrl.State()
	assert.Equal(t, 1, st.Index)
	assert.Equal(t, playback.Paused, st.Phase)

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, playback.Playing, m.player.ctrl.State().Phase)

	m.Update(runes("G"))
	assert.Equal(t, playback.Finished, m.player.ctrl.State().Phase)

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	st = m.player.ctrl.State()
	assert.Equal(t, 15, st.Index)
	assert.Equal(t, playback.Paused, st.Phase)

	m.Update(runes("g"))
	st = m.player.ctrl.State()
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, playback.Playing, st.Phase)

	m.Update(runes("s"))
	assert.Equal(t, 500*time.Millisecond, m.player.ctrl.State().Speed)
}

func TestSortModel_RandomizeOnlyWhenNotPlaying(t *testing.T) {
	m := loaded(t, newSortModel(5, 2, 9, 1))

	m.Update(runes("r"))
	assert.Equal(t, []int{5, 2, 9, 1}, m.array)

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(runes("r"))
	assert.NotEqual(t, []int{5, 2, 9, 1}, m.array)
	assert.Len(t, m.array, 4)
	assert.Equal(t, playback.Idle, m.player.ctrl.State().Phase)
}

func TestSortModel_SizeBounds(t *testing.T) {
	m := newSortModel()
	require.Len(t, m.array, steps.DefaultArraySize)

	for range 30 {
		m.Update(runes("+"))
	}
	assert.Len(t, m.array, steps.MaxArraySize)

	for range 30 {
		m.Update(runes("-"))
	}
	assert.Len(t, m.array, steps.MinArraySize)
}

func TestSortModel_WheelThrottled(t *testing.T) {
	m := loaded(t, newSortModel(5, 2, 9, 1))
	now := time.Unix(0, 0)
	m.player.now = func() time.Time { return now }

	down := tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}
	up := tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress}

	m.Update(down)
	assert.Equal(t, 1, m.player.ctrl.State().Index)

	now = now.Add(100 * time.Millisecond)
	m.Update(down)
	assert.Equal(t, 1, m.player.ctrl.State().Index, "throttled")

	now = now.Add(wheelInterval)
	m.Update(down)
	assert.Equal(t, 2, m.player.ctrl.State().Index)

	now = now.Add(wheelInterval)
	m.Update(up)
	assert.Equal(t, 1, m.player.ctrl.State().Index)
}

func TestSortModel_Quit(t *testing.T) {
	m := newSortModel(1, 2)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
