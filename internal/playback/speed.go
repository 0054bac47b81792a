package playback

import (
	"fmt"
	"time"
)

// Preset is a selectable playback speed.
type Preset struct {
	Label string
	Delay time.Duration
}

func (p Preset) String() string { return fmt.Sprintf("%s (%s)", p.Label, p.Delay) }

const (
	DefaultSortSpeed  = 1000 * time.Millisecond
	DefaultPrimeSpeed = 3000 * time.Millisecond
)

// SortPresets are the speeds offered for sort playback, slowest first.
var SortPresets = []Preset{
	{Label: "0.5x", Delay: 1500 * time.Millisecond},
	{Label: "1x", Delay: 1000 * time.Millisecond},
	{Label: "2x", Delay: 500 * time.Millisecond},
}

// PrimePresets are the speeds offered for primality playback, slowest first.
var PrimePresets = []Preset{
	{Label: "0.5x", Delay: 6000 * time.Millisecond},
	{Label: "1x", Delay: 3000 * time.Millisecond},
	{Label: "2x", Delay: 1500 * time.Millisecond},
}

// FindPreset looks a preset up by label or by delay in milliseconds.
func FindPreset(presets []Preset, key string) (Preset, bool) {
	for _, p := range presets {
		if p.Label == key || fmt.Sprint(p.Delay.Milliseconds()) == key {
			return p, true
		}
	}
	return Preset{}, false
}

// NextPreset returns the preset after current, wrapping around. A delay that
// matches no preset moves to the first one.
func NextPreset(presets []Preset, current time.Duration) Preset {
	for i, p := range presets {
		if p.Delay == current {
			return presets[(i+1)%len(presets)]
		}
	}
	return presets[0]
}

// CycleSpeed moves the controller to the next preset and returns it.
func (c *Controller[S]) CycleSpeed(presets []Preset) Preset {
	p := NextPreset(presets, c.speed)
	_ = c.SetSpeed(p.Delay)
	return p
}
