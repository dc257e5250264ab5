// SPDX-License-Identifier: EPL-2.0

package output

import (
	"time"

	"github.com/ik5/grainbox/grain"
)

// PlayerConfig configures a Player.
type PlayerConfig struct {
	SampleRate int
	BlockSize  int
	// Latency is the device buffer duration.
	Latency time.Duration
	Monitor Monitor
}

// DefaultPlayerConfig returns 48 kHz, 256-frame blocks and a 20 ms buffer.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		SampleRate: grain.SampleRate,
		BlockSize:  DefaultBlockSize,
		Latency:    20 * time.Millisecond,
	}
}

func (c PlayerConfig) withDefaults() PlayerConfig {
	d := DefaultPlayerConfig()
	if c.SampleRate <= 0 {
		c.SampleRate = d.SampleRate
	}
	if c.BlockSize <= 0 {
		c.BlockSize = d.BlockSize
	}
	if c.Latency <= 0 {
		c.Latency = d.Latency
	}
	return c
}
