// Package model defines shared data structures.
package model

import "time"

// FrameDuration is the length of one logical frame in seconds. The game
// defines jump charge in exact 60 Hz frames, so this is fixed by product
// intent and is not a configuration option.
const FrameDuration = 1.0 / 60.0

// Config defines HUD runtime settings.
type Config struct {
	RefreshHz       int
	ClampMs         int
	MaxCatchUpTicks int
	HoldTimeoutMs   int
	GamepadDevice   string
	GamepadButton   int
}

// Snapshot is the immutable per-refresh view of the accounting engine.
// ActiveFrames is nil while no charge is held; LastFrames is nil until the
// first charge of the process completes.
type Snapshot struct {
	CurrentTick  uint64
	ActiveFrames *uint64
	LastFrames   *uint64
}

// ChargeRecord captures one completed charge for the history archive.
type ChargeRecord struct {
	StartedAt time.Time
	EndedAt   time.Time
	StartTick uint64
	EndTick   uint64
	Frames    uint64
	Source    string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since *time.Time
	Last  int
}

// ChargeAggregate summarizes archived charges for reporting.
type ChargeAggregate struct {
	Count      int
	MinFrames  uint64
	MaxFrames  uint64
	MeanFrames float64
}
