// SPDX-License-Identifier: EPL-2.0

package control

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/ik5/grainbox/grain"
	"github.com/ik5/grainbox/synth"
)

// PresetTimeout bounds how long a preset script may run.
const PresetTimeout = 2 * time.Second

var ErrPreset = errors.New("preset failed")

// LoadPreset runs the Lua preset at path against t.
func LoadPreset(t Target, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading preset: %w", err)
	}

	return RunPreset(t, string(src))
}

// RunPreset runs a Lua preset script against t. Scripts see these globals:
//
//	size(ms)            grain size in milliseconds
//	position(p)         spawn position in [0, 1]
//	density(n)          active grain count
//	pitch(ratio)        playback ratio
//	pan(p)              stereo position in [0, 1]
//	mode(name)          "oneshot", "reverse", "cycle" or "pingpong"
//	envelope(name)      "linear", "triangle" or "hann"
//	random(param, amt)  randomness of "size", "position", "density",
//	                    "pitch", "pan", "mode" or "envelope"
//
// Only the base, table, string and math libraries are available.
func RunPreset(t Target, script string) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	if err := openLibs(L); err != nil {
		return fmt.Errorf("%w: %w", ErrPreset, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), PresetTimeout)
	defer cancel()
	L.SetContext(ctx)

	register(L, t)

	if err := L.DoString(script); err != nil {
		return fmt.Errorf("%w: %w", ErrPreset, err)
	}

	return nil
}

func openLibs(L *lua.LState) error {
	libs := []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}

	for _, lib := range libs {
		err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			return err
		}
	}

	// No file access from presets.
	for _, name := range []string{"dofile", "loadfile", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	return nil
}

func register(L *lua.LState, t Target) {
	number := func(set func(float64)) lua.LGFunction {
		return func(L *lua.LState) int {
			set(float64(L.CheckNumber(1)))
			return 0
		}
	}

	L.SetGlobal("size", L.NewFunction(number(t.SetGrainSize)))
	L.SetGlobal("position", L.NewFunction(number(t.SetSpawnPosition)))
	L.SetGlobal("pitch", L.NewFunction(number(t.SetPitchRatio)))
	L.SetGlobal("pan", L.NewFunction(number(t.SetPan)))

	L.SetGlobal("density", L.NewFunction(func(L *lua.LState) int {
		t.SetActiveCount(L.CheckInt(1))
		return 0
	}))

	L.SetGlobal("mode", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		m, ok := grain.ParseMode(name)
		if !ok {
			L.ArgError(1, "unknown mode "+name)
			return 0
		}
		t.SetPhasorMode(m)
		return 0
	}))

	L.SetGlobal("envelope", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		e, ok := grain.ParseEnvelope(name)
		if !ok {
			L.ArgError(1, "unknown envelope "+name)
			return 0
		}
		t.SetEnvelope(e)
		return 0
	}))

	L.SetGlobal("random", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		p, ok := synth.ParseParam(name)
		if !ok {
			L.ArgError(1, "unknown parameter "+name)
			return 0
		}
		t.SetRandomness(p, float64(L.CheckNumber(2)))
		return 0
	}))
}
