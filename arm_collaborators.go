// arm_collaborators.go - minimal stand-ins for out-of-scope external collaborators
//
// The micro-op decoder, the MMU's real translation logic, and CP15's
// register set are deliberately out of scope (spec §1). This file
// defines the narrow contracts §6 says the core consumes from them,
// plus just enough of an implementation that InitializeCPU/StartCPU
// can run end to end in tests and the demo binary.

package main

import "sync/atomic"

// MMU is the contract §6 describes: Init(enabled) at CPU
// initialization time, and translation + abort-raising elsewhere (not
// modeled here — translation is entirely the MMU's business).
type MMU interface {
	Init(enabled bool)
	Enabled() bool
}

// NullMMU is the "no MMU installed" stand-in used by CPU types whose
// table entry has WithMMU == false, and the default before a real MMU
// is wired in.
type NullMMU struct {
	enabled atomic.Bool
}

func (m *NullMMU) Init(enabled bool) { m.enabled.Store(enabled) }
func (m *NullMMU) Enabled() bool     { return m.enabled.Load() }

// stubCP15 is the smallest possible coprocessor handle for slot 15, so
// InitializeCPU has something real to install when a CPU type's table
// entry requests CP15. It answers to Name() only; register-level CP15
// semantics belong to the (unimplemented) coprocessor.
type stubCP15 struct{}

func (stubCP15) Name() string { return "cp15" }

// InstallCP15 mirrors the original's install_cp15(): register a
// coprocessor handle at slot 15 (spec §6).
func (c *CPU) InstallCP15() {
	c.InstallCoprocessor(15, stubCP15{})
}

// Decoder is the contract §6 describes for the micro-op engine: Init
// once, then a dispatch loop that — between instructions — calls
// ProcessPendingExceptions and, on a true return, refetches from the
// (possibly new) PC. Real ARM decode/execute semantics are out of
// scope; DispatchLoop below is a stand-in that never decodes real
// instructions, only drives the exception-processing contract so the
// core is exercisable without a real decoder attached.
type Decoder interface {
	Init()
	DispatchLoop(cpu *CPU, stop <-chan struct{})
}

// NullDecoder advances PC by one word per "instruction" and otherwise
// does nothing but honor the process-pending-exceptions contract. It
// exists so StartCPU has something to run in tests and the demo binary
// without pulling in a real instruction set.
type NullDecoder struct{}

func (NullDecoder) Init() {}

func (NullDecoder) DispatchLoop(cpu *CPU, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		if cpu.ProcessPendingExceptions() {
			// PC/mode/flags changed; a real decoder would drop any
			// cached decode pointer here and refetch from cpu.regs.PC().
			continue
		}

		cpu.regs.SetPC(cpu.regs.PC() + 4)
		cpu.perf.instructions.Add(1)

		if cpu.cycleLimit > 0 && cpu.perf.instructions.Load() >= uint64(cpu.cycleLimit) {
			return
		}
	}
}
