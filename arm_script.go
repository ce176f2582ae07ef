// arm_script.go - Lua-scriptable asynchronous device stimulus
//
// Spec §4.4/§5 describe device-model threads that call into the signal
// interface from outside the execution thread. Hand-writing a goroutine
// per test scenario gets old fast; DeviceScript lets a test or the demo
// binary describe a stimulus timeline in Lua instead, using the
// gopher-lua interpreter the teacher already lists as a dependency.

package main

import (
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DeviceScript binds a small fixed vocabulary of signal-interface calls
// into a Lua global namespace, then runs a script against them. It
// never touches CPU state outside the signal interface (arm_signals.go)
// — a script is exactly as privileged as any other device thread.
type DeviceScript struct {
	cpu *CPU
}

// NewDeviceScript returns a script runner bound to cpu.
func NewDeviceScript(cpu *CPU) *DeviceScript {
	return &DeviceScript{cpu: cpu}
}

// Run executes source synchronously on the calling goroutine.
func (d *DeviceScript) Run(source string) error {
	L := lua.NewState()
	defer L.Close()

	register := func(name string, fn lua.LGFunction) {
		L.SetGlobal(name, L.NewFunction(fn))
	}

	register("raise_irq", func(L *lua.LState) int { d.cpu.RaiseIRQ(); return 0 })
	register("lower_irq", func(L *lua.LState) int { d.cpu.LowerIRQ(); return 0 })
	register("raise_fiq", func(L *lua.LState) int { d.cpu.RaiseFIQ(); return 0 })
	register("lower_fiq", func(L *lua.LState) int { d.cpu.LowerFIQ(); return 0 })
	register("signal_undefined", func(L *lua.LState) int { d.cpu.SignalUndefined(); return 0 })
	register("signal_swi", func(L *lua.LState) int { d.cpu.SignalSWI(); return 0 })
	register("signal_reset", func(L *lua.LState) int { d.cpu.SignalReset(); return 0 })
	register("signal_data_abort", func(L *lua.LState) int {
		d.cpu.SignalDataAbort(uint32(L.CheckInt64(1)))
		return 0
	})
	register("signal_prefetch_abort", func(L *lua.LState) int {
		d.cpu.SignalPrefetchAbort(uint32(L.CheckInt64(1)))
		return 0
	})
	register("sleep_ms", func(L *lua.LState) int {
		time.Sleep(time.Duration(L.CheckInt64(1)) * time.Millisecond)
		return 0
	})

	return L.DoString(source)
}

// RunAsync runs source on its own goroutine, modeling the asynchronous
// device thread of spec §5. The returned channel carries the script's
// result once it finishes; it is never read by the execution thread —
// only by whoever launched the script, keeping the CPU itself ignorant
// of scripts entirely.
func (d *DeviceScript) RunAsync(source string) <-chan error {
	errc := make(chan error, 1)
	go func() {
		errc <- d.Run(source)
	}()
	return errc
}
