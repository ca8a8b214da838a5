// ABOUTME: Host command implementations
// ABOUTME: Each command calls one manager operation and prints its result
package host

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/aerials-audio/acaudio/pkg/acaudio"
	"github.com/aerials-audio/acaudio/pkg/audio/encode"
	"rsc.io/script"
)

// result prints value as the command stdout
func result(value string) (script.WaitFunc, error) {
	return func(*script.State) (string, string, error) {
		return value + "\n", "", nil
	}, nil
}

func resultBool(err error) (script.WaitFunc, error) {
	if err != nil {
		return result("false " + err.Error())
	}
	return result("true")
}

func resultInt(v int64, err error) (script.WaitFunc, error) {
	if err != nil {
		return result("nil")
	}
	return result(strconv.FormatInt(v, 10))
}

// parseFlags parses the flags after the positional arguments
func parseFlags(name string, args []string, define func(*flag.FlagSet)) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	define(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", script.ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return script.ErrUsage
	}
	return nil
}

func (h *Host) resource(name string) (acaudio.ResourceHandle, error) {
	rh, ok := h.resources[name]
	if !ok {
		return 0, fmt.Errorf("no resource named %q", name)
	}
	return rh, nil
}

func (h *Host) unit(name string) (acaudio.UnitHandle, error) {
	u, ok := h.units[name]
	if !ok {
		return 0, fmt.Errorf("no unit named %q", name)
	}
	return u, nil
}

func (h *Host) cmdResource() script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "create a resource from an encoded audio file",
			Args:    "name file",
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			if len(args) != 2 {
				return nil, script.ErrUsage
			}
			data, err := os.ReadFile(s.Path(args[1]))
			if err != nil {
				return nil, err
			}
			rh, err := h.m.CreateResource(data)
			if err == nil {
				h.resources[args[0]] = rh
			}
			return resultBool(err)
		})
}

func (h *Host) cmdReleaseResource() script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "release a resource",
			Args:    "name",
			Detail: []string{
				"The name stays bound to the released handle, so later use reports an unknown resource.",
			},
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			if len(args) != 1 {
				return nil, script.ErrUsage
			}
			rh, err := h.resource(args[0])
			if err != nil {
				return nil, err
			}
			return resultBool(h.m.ReleaseResource(rh))
		})
}

func (h *Host) cmdUnit() script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "create a unit from a resource and print its length in ms",
			Args:    "name resource",
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			if len(args) != 2 {
				return nil, script.ErrUsage
			}
			rh, err := h.resource(args[1])
			if err != nil {
				return nil, err
			}
			u, lengthMs, err := h.m.CreateUnit(rh)
			if err != nil {
				return resultBool(err)
			}
			h.units[args[0]] = u
			return result(fmt.Sprintf("true %d", lengthMs))
		})
}

func (h *Host) cmdReleaseUnit() script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "stop and release a unit",
			Args:    "name",
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			if len(args) != 1 {
				return nil, script.ErrUsage
			}
			u, err := h.unit(args[0])
			if err != nil {
				return nil, err
			}
			return resultBool(h.m.ReleaseUnit(u))
		})
}

func (h *Host) cmdPlay() script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "start a unit and print its position in ms",
			Args:    "name [-loop]",
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			if len(args) < 1 {
				return nil, script.ErrUsage
			}
			var loop bool
			if err := parseFlags("play", args[1:], func(fs *flag.FlagSet) {
				fs.BoolVar(&loop, "loop", false, "loop playback")
			}); err != nil {
				return nil, err
			}
			u, err := h.unit(args[0])
			if err != nil {
				return nil, err
			}
			pos, err := h.m.PlayUnit(u, loop)
			if err != nil {
				return resultBool(err)
			}
			return result(strconv.FormatInt(pos, 10))
		})
}

func (h *Host) cmdStop() script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "stop a unit",
			Args:    "name [-rewind]",
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			if len(args) < 1 {
				return nil, script.ErrUsage
			}
			var rewind bool
			if err := parseFlags("stop", args[1:], func(fs *flag.FlagSet) {
				fs.BoolVar(&rewind, "rewind", false, "rewind to the start")
			}); err != nil {
				return nil, err
			}
			u, err := h.unit(args[0])
			if err != nil {
				return nil, err
			}
			return resultBool(h.m.StopUnit(u, rewind))
		})
}

func (h *Host) cmdTime() script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "print the unit position in ms, or nil",
			Args:    "name",
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			if len(args) != 1 {
				return nil, script.ErrUsage
			}
			u, err := h.unit(args[0])
			if err != nil {
				return nil, err
			}
			return resultInt(h.m.Time(u))
		})
}

func (h *Host) cmdSeek() script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "seek a unit and print the resulting position in ms, or nil",
			Args:    "name ms",
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			if len(args) != 2 {
				return nil, script.ErrUsage
			}
			ms, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", script.ErrUsage, err)
			}
			u, err := h.unit(args[0])
			if err != nil {
				return nil, err
			}
			return resultInt(h.m.SetTime(u, ms))
		})
}

func (h *Host) cmdPlaying() script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "re-query whether a unit is playing",
			Args:    "name",
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			if len(args) != 1 {
				return nil, script.ErrUsage
			}
			u, err := h.unit(args[0])
			if err != nil {
				return nil, err
			}
			playing, err := h.m.CheckPlaying(u)
			if err != nil {
				return result("nil")
			}
			return result(strconv.FormatBool(playing))
		})
}

func (h *Host) cmdPreview() script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "replace the preview with a streamed file",
			Args:    "file [-loop]",
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			if len(args) < 1 {
				return nil, script.ErrUsage
			}
			var loop bool
			if err := parseFlags("preview", args[1:], func(fs *flag.FlagSet) {
				fs.BoolVar(&loop, "loop", false, "loop playback")
			}); err != nil {
				return nil, err
			}
			data, err := os.ReadFile(s.Path(args[0]))
			if err != nil {
				return nil, err
			}
			return resultBool(h.m.PlayPreview(data, loop))
		})
}

func (h *Host) cmdStopPreview() script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "stop and free the preview",
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			if len(args) != 0 {
				return nil, script.ErrUsage
			}
			if err := h.m.StopPreview(); err != nil {
				s.Logf("stop-preview: %v\n", err)
			}
			return nil, nil
		})
}

func (h *Host) cmdSignal(sig acaudio.Signal) script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "deliver the application " + sig.String() + " signal",
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			if len(args) != 0 {
				return nil, script.ErrUsage
			}
			if err := h.m.Handle(sig); err != nil {
				s.Logf("%s: %v\n", sig, err)
			}
			return nil, nil
		})
}

func (h *Host) cmdAdvance() script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "advance playback time",
			Args:    "duration",
			Detail: []string{
				"Renders the null device forward, or sleeps when playing on real hardware.",
			},
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			if len(args) != 1 {
				return nil, script.ErrUsage
			}
			d, err := time.ParseDuration(args[0])
			if err != nil {
				return nil, fmt.Errorf("%w: %v", script.ErrUsage, err)
			}
			if h.clock != nil {
				h.clock.Advance(d)
				return nil, nil
			}
			select {
			case <-time.After(d):
			case <-s.Context().Done():
				return nil, s.Context().Err()
			}
			return nil, nil
		})
}

func (h *Host) cmdTone() script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "write a sine tone WAV file",
			Args:    "file [-ms n] [-rate hz] [-channels n] [-freq hz]",
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			if len(args) < 1 {
				return nil, script.ErrUsage
			}
			var (
				ms       int
				rate     int
				channels int
				freq     float64
			)
			if err := parseFlags("tone", args[1:], func(fs *flag.FlagSet) {
				fs.IntVar(&ms, "ms", 1000, "length in milliseconds")
				fs.IntVar(&rate, "rate", 48000, "sample rate")
				fs.IntVar(&channels, "channels", 2, "channel count")
				fs.Float64Var(&freq, "freq", 440, "tone frequency")
			}); err != nil {
				return nil, err
			}

			frames := ms * rate / 1000
			data, err := encode.WAVBytes(rate, channels, encode.Tone(rate, channels, frames, freq))
			if err != nil {
				return nil, err
			}
			return nil, os.WriteFile(s.Path(args[0]), data, 0o644)
		})
}

func (h *Host) cmdStats() script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "print table occupancy",
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			if len(args) != 0 {
				return nil, script.ErrUsage
			}
			st := h.m.Stats()
			return result(fmt.Sprintf("resources=%d units=%d playing=%d preview=%t",
				st.Resources, st.Units, st.PlayingUnits, st.PreviewActive))
		})
}
