// arm_signals.go - asynchronous signal interface (C4)
//
// Every entry point here is safe to call from any thread (spec §4.4,
// §5): device-model threads, the MMU, and the decoder all raise events
// through this file, and all of it funnels into PendingExceptions'
// atomic bitmap. Edge-triggered events (undefined/SWI/aborts) are
// expected from the execution thread reacting to decode, but nothing
// here assumes that — the atomic bitmap tolerates concurrent callers
// either way.

package main

// RaiseIRQ asserts the level-triggered IRQ line. Idempotent.
func (c *CPU) RaiseIRQ() { c.pending.setBits(uint32(exBitIRQ)) }

// LowerIRQ deasserts IRQ. Only a device's acknowledgement path should
// call this — the controller never auto-clears a masked IRQ.
func (c *CPU) LowerIRQ() { c.pending.clearBits(uint32(exBitIRQ)) }

// RaiseFIQ asserts the level-triggered FIQ line. Idempotent.
func (c *CPU) RaiseFIQ() { c.pending.setBits(uint32(exBitFIQ)) }

// LowerFIQ deasserts FIQ.
func (c *CPU) LowerFIQ() { c.pending.clearBits(uint32(exBitFIQ)) }

// SignalUndefined marks an undefined-instruction exception pending.
// Expected to be called by the decoder on the execution thread when it
// fails to decode the current opcode.
func (c *CPU) SignalUndefined() { c.pending.setBits(uint32(exBitUndefined)) }

// SignalSWI marks a software-interrupt exception pending.
func (c *CPU) SignalSWI() { c.pending.setBits(uint32(exBitSWI)) }

// SignalPrefetchAbort marks a prefetch-abort pending. addr is
// informational only (tracing); the architectural return address is
// computed from the execution thread's PC at delivery time, not from
// this parameter.
func (c *CPU) SignalPrefetchAbort(addr uint32) {
	c.lastFaultAddr.Store(addr)
	c.pending.setBits(uint32(exBitPrefetchAbort))
}

// SignalDataAbort marks a data-abort pending. See SignalPrefetchAbort
// for the addr parameter's (non-)role in return-address computation.
func (c *CPU) SignalDataAbort(addr uint32) {
	c.lastFaultAddr.Store(addr)
	c.pending.setBits(uint32(exBitDataAbort))
}

// SignalReset schedules an asynchronous reset, taking effect the next
// time the execution thread calls ProcessPendingExceptions (spec §3
// lifecycle note, §4.5 reset_cpu).
func (c *CPU) SignalReset() { c.pending.setBits(uint32(exBitReset)) }
