// SPDX-License-Identifier: EPL-2.0

package synth

import "strings"

// MaxGrains is the fixed size of the voice pool. It bounds the per-sample cost.
const MaxGrains = 32

// StealPolicy decides what happens to a due trigger when every voice slot is
// sounding.
type StealPolicy int

const (
	// StealNone never interrupts a sounding voice; triggers beyond capacity are dropped.
	StealNone StealPolicy = iota
	// StealOldest re-triggers the least recently started voice, once it has
	// sounded for at least its grain length.
	StealOldest
)

func (p StealPolicy) String() string {
	switch p {
	case StealNone:
		return "none"
	case StealOldest:
		return "oldest"
	default:
		return "unknown"
	}
}

// ParseStealPolicy returns the policy named s.
func ParseStealPolicy(s string) (StealPolicy, bool) {
	switch strings.ToLower(s) {
	case "none", "":
		return StealNone, true
	case "oldest":
		return StealOldest, true
	default:
		return StealNone, false
	}
}

// Config holds the structural options of a Synth. Sound parameters live in the
// setters instead.
type Config struct {
	// TriggerDivider runs the trigger policy every N output samples. Values below
	// one mean every sample.
	TriggerDivider int

	// Polyphony limits how many pool slots the trigger policy may use, in
	// [1, MaxGrains]. Other values mean MaxGrains. A target above Polyphony
	// keeps a trigger due that only StealOldest can serve.
	Polyphony int

	Steal StealPolicy

	// RearmLoops re-triggers a looping voice with fresh parameters each time it
	// completes a cycle.
	RearmLoops bool

	// Seed seeds the xorshift generator. Zero selects a fixed default.
	Seed uint32
}

// DefaultConfig returns the configuration used by the instrument.
func DefaultConfig() Config {
	return Config{
		TriggerDivider: 1,
		Polyphony:      MaxGrains,
		Steal:          StealNone,
		RearmLoops:     true,
		Seed:           1,
	}
}
