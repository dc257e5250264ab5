// SPDX-License-Identifier: EPL-2.0

package grain

import "strings"

// Mode selects the playback policy of a Phasor.
type Mode int32

const (
	OneShot Mode = iota
	OneShotReverse
	Cycle
	PingPong

	numModes
)

// NumModes is the number of playback modes.
const NumModes = int(numModes)

var modeNames = [...]string{
	OneShot:        "oneshot",
	OneShotReverse: "reverse",
	Cycle:          "cycle",
	PingPong:       "pingpong",
}

func (m Mode) String() string {
	if m < 0 || m >= numModes {
		return "unknown"
	}
	return modeNames[m]
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool { return m >= 0 && m < numModes }

// Looping reports whether the mode never finishes on its own.
func (m Mode) Looping() bool { return m == Cycle || m == PingPong }

// ParseMode returns the mode named s (case-insensitive).
func ParseMode(s string) (Mode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name == s {
			return Mode(i), true
		}
	}
	return OneShot, false
}

// EnvelopeType selects the amplitude envelope of a grain.
type EnvelopeType int32

const (
	LinearDecayEnvelope EnvelopeType = iota
	TriangularEnvelope
	HannEnvelope

	numEnvelopes
)

// NumEnvelopes is the number of envelope types.
const NumEnvelopes = int(numEnvelopes)

var envelopeNames = [...]string{
	LinearDecayEnvelope: "linear",
	TriangularEnvelope:  "triangle",
	HannEnvelope:        "hann",
}

func (e EnvelopeType) String() string {
	if e < 0 || e >= numEnvelopes {
		return "unknown"
	}
	return envelopeNames[e]
}

// Valid reports whether e is one of the defined envelope types.
func (e EnvelopeType) Valid() bool { return e >= 0 && e < numEnvelopes }

// ParseEnvelope returns the envelope named s (case-insensitive).
func ParseEnvelope(s string) (EnvelopeType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range envelopeNames {
		if name == s {
			return EnvelopeType(i), true
		}
	}
	return HannEnvelope, false
}
