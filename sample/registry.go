// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"github.com/ik5/grainbox/audio"
	"github.com/ik5/grainbox/formats/aiff"
	"github.com/ik5/grainbox/formats/mp3"
	"github.com/ik5/grainbox/formats/vorbis"
	"github.com/ik5/grainbox/formats/wav"
)

// DefaultRegistry returns a registry with every bundled decoder.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})

	return reg
}
