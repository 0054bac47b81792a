package messages

import (
	"github.com/chibuka/algoviz/internal/playback"
	"github.com/chibuka/algoviz/internal/steps"
)

// Msg is a marker interface for all message types
type Msg any

// TickMsg is delivered when a scheduled advance is due. ID is the generation
// it was armed with; the controller ignores stale ones.
type TickMsg struct {
	ID playback.TickID
}

// SortFetchedMsg carries a validated sort trace for fetch generation Gen.
type SortFetchedMsg struct {
	Gen    uint64
	Result *steps.SortResult
}

// PrimeFetchedMsg carries a validated primality trace for fetch generation Gen.
type PrimeFetchedMsg struct {
	Gen    uint64
	Result *steps.PrimeResult
}

// FetchFailedMsg is sent when the compute service call for Gen failed
type FetchFailedMsg struct {
	Gen uint64
	Err error
}

// SortStepMsg is sent by plain-mode playback for every sort step shown
type SortStepMsg struct {
	Step  steps.SortStep
	State playback.State
}

// PrimeStepMsg is sent by plain-mode playback for every trial division shown
type PrimeStepMsg struct {
	Step  steps.PrimeStep
	State playback.State
}

// VerdictMsg is sent once a primality run is complete
type VerdictMsg struct {
	Result *steps.PrimeResult
}
