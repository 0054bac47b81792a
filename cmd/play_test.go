package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/chibuka/algoviz/internal/playback"
	"github.com/chibuka/algoviz/internal/steps"
	"github.com/chibuka/algoviz/ui/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSpeed(t *testing.T) {
	d, err := resolveSpeed("", playback.SortPresets, 750*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, d)

	d, err = resolveSpeed("2x", playback.SortPresets, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, d)

	d, err = resolveSpeed("6000", playback.PrimePresets, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 6*time.Second, d)

	_, err = resolveSpeed("warp", playback.SortPresets, time.Second)
	assert.ErrorContains(t, err, "0.5x, 1x, 2x")
}

func TestParseValues(t *testing.T) {
	values, err := parseValues([]string{"5", "-2", "9"})
	require.NoError(t, err)
	assert.Equal(t, []int{5, -2, 9}, values)

	values, err = parseValues(nil)
	require.NoError(t, err)
	assert.Empty(t, values)

	_, err = parseValues([]string{"5", "x"})
	assert.ErrorContains(t, err, `"x"`)
}

func TestPlayPlain(t *testing.T) {
	trace := steps.BubbleSort([]int{2, 1})
	var seen []int

	err := playPlain(context.Background(), trace, time.Millisecond, func(s steps.SortStep, st playback.State) messages.Msg {
		seen = append(seen, st.Index)
		return messages.SortStepMsg{Step: s, State: st}
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, seen)
}

func TestPlayPlain_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trace := steps.BubbleSort([]int{4, 3, 2, 1})
	err := playPlain(ctx, trace, time.Hour, func(s steps.SortStep, st playback.State) messages.Msg {
		return messages.SortStepMsg{Step: s, State: st}
	})
	assert.NoError(t, err)
}

func TestPlayPlain_NoSteps(t *testing.T) {
	err := playPlain(context.Background(), []steps.PrimeStep{}, time.Millisecond, func(s steps.PrimeStep, st playback.State) messages.Msg {
		return messages.PrimeStepMsg{Step: s, State: st}
	})
	assert.ErrorIs(t, err, playback.ErrNoSteps)
}
