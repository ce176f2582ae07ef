// arm_exceptions.go - pending-exception bitmap and architectural entry (C3)

package main

import "sync/atomic"

// ExceptionKind enumerates the seven exception sources spec §3 requires
// the pending bitmap to track.
type ExceptionKind int

const (
	ExReset ExceptionKind = iota
	ExUndefined
	ExSWI
	ExPrefetchAbort
	ExDataAbort
	ExFIQ
	ExIRQ
)

// Pending-exception bit assignments. Any bit layout works as long as
// each kind gets a distinct bit and the field is wide enough (spec §3);
// these are not architecturally meaningful values.
const (
	exBitReset ExceptionKind = 1 << iota
	exBitUndefined
	exBitSWI
	exBitPrefetchAbort
	exBitDataAbort
	exBitFIQ
	exBitIRQ
)

func exceptionBit(k ExceptionKind) uint32 {
	switch k {
	case ExReset:
		return uint32(exBitReset)
	case ExUndefined:
		return uint32(exBitUndefined)
	case ExSWI:
		return uint32(exBitSWI)
	case ExPrefetchAbort:
		return uint32(exBitPrefetchAbort)
	case ExDataAbort:
		return uint32(exBitDataAbort)
	case ExFIQ:
		return uint32(exBitFIQ)
	case ExIRQ:
		return uint32(exBitIRQ)
	default:
		return 0
	}
}

// PendingExceptions is the atomically-settable bitmap of §3/§5. Raisers
// (any thread) release; the poller (execution thread only) acquires —
// sync/atomic's CAS loop gives both without a mutex.
type PendingExceptions struct {
	bits atomic.Uint32
}

// setBits ORs mask into the bitmap, retrying on contention. This is the
// "release" side of the raiser/poller contract.
func (p *PendingExceptions) setBits(mask uint32) {
	for {
		old := p.bits.Load()
		if p.bits.CompareAndSwap(old, old|mask) {
			return
		}
	}
}

// clearBits ANDs ^mask into the bitmap.
func (p *PendingExceptions) clearBits(mask uint32) {
	for {
		old := p.bits.Load()
		if p.bits.CompareAndSwap(old, old&^mask) {
			return
		}
	}
}

// snapshot is the poller's single atomic read per process_pending_exceptions
// call (spec §3: "the poll on the execution thread performs a single
// atomic snapshot per check").
func (p *PendingExceptions) snapshot() uint32 {
	return p.bits.Load()
}

// exceptionRow is one line of the priority-ordered entry table (spec §4.3,
// §9's "express the entry table as data" redesign note). Everything
// about delivering a non-reset exception is captured here so the driver
// below needs no per-kind branches.
type exceptionRow struct {
	kind    ExceptionKind
	bit     uint32
	mode    Mode
	vector  uint32
	lrDelta func(thumb bool) uint32
	setF    bool
	gated   bool   // true for IRQ/FIQ: masked by the corresponding CPSR bit
	maskBit uint32 // which CPSR bit gates this row, when gated
}

// exceptionTable is walked in priority order: RESET is handled outside
// this table (it has no bank save step); the remaining six rows are in
// the exact priority spec §4.3 specifies: UNDEFINED -> SWI ->
// PREFETCH_ABT -> DATA_ABT -> FIQ -> IRQ.
var exceptionTable = []exceptionRow{
	{
		kind: ExUndefined, bit: uint32(exBitUndefined), mode: ModeUndefined, vector: 0x04,
		lrDelta: func(thumb bool) uint32 {
			if thumb {
				return 2
			}
			return 4
		},
	},
	{
		kind: ExSWI, bit: uint32(exBitSWI), mode: ModeSVC, vector: 0x08,
		lrDelta: func(thumb bool) uint32 {
			if thumb {
				return 2
			}
			return 4
		},
	},
	{
		kind: ExPrefetchAbort, bit: uint32(exBitPrefetchAbort), mode: ModeAbort, vector: 0x0C,
		lrDelta: func(bool) uint32 { return 4 },
	},
	{
		kind: ExDataAbort, bit: uint32(exBitDataAbort), mode: ModeAbort, vector: 0x10,
		lrDelta: func(bool) uint32 { return 8 },
	},
	{
		kind: ExFIQ, bit: uint32(exBitFIQ), mode: ModeFIQ, vector: 0x1C,
		lrDelta: func(bool) uint32 { return 4 },
		setF:    true, gated: true, maskBit: PSRFIQMask,
	},
	{
		kind: ExIRQ, bit: uint32(exBitIRQ), mode: ModeIRQ, vector: 0x18,
		lrDelta: func(bool) uint32 { return 4 },
		gated:   true, maskBit: PSRIRQMask,
	},
}

// ProcessPendingExceptions selects and delivers the highest-priority
// deliverable exception, per spec §4.3. Returns true iff it delivered
// one; the caller (the external decoder) must then treat PC, flags,
// and mode as changed and refetch.
func (c *CPU) ProcessPendingExceptions() bool {
	snap := c.pending.snapshot()
	if snap == 0 {
		return false
	}

	if snap&uint32(exBitReset) != 0 {
		c.enterReset()
		return true
	}

	for i := range exceptionTable {
		row := &exceptionTable[i]
		if snap&row.bit == 0 {
			continue
		}
		if row.gated && c.regs.GetCondition(row.maskBit) {
			// Masked: leave the bit set and keep evaluating lower-priority rows.
			continue
		}
		c.enterException(row)
		return true
	}

	return false
}

// enterException runs the common entry steps of spec §4.3 for any row
// other than RESET. Switching mode first (rather than pre-writing the
// target bank) keeps this correct even when the exception's target
// mode equals the mode we were already in — SwitchMode would no-op and
// a pre-write to the bank slot would never reach the live registers.
func (c *CPU) enterException(row *exceptionRow) {
	thumb := c.regs.GetCondition(PSRThumb)
	returnAddr := c.regs.PC() + row.lrDelta(thumb)
	oldCPSR := c.regs.cpsr

	c.regs.SwitchMode(row.mode)
	c.regs.WriteSPSR(oldCPSR)
	c.regs.WriteReg(14, returnAddr)

	c.regs.SetCondition(PSRThumb, false)
	c.regs.SetCondition(PSRIRQMask, true)
	if row.setF {
		c.regs.SetCondition(PSRFIQMask, true)
	}
	if thumb {
		c.invalidateCurrCP()
	}

	c.regs.SetPC(row.vector)
	if !row.gated {
		c.pending.clearBits(row.bit)
	}

	c.perf.exceptions.Add(1)
}

// enterReset implements the RESET special case of spec §4.3/§4.4: no
// bank save (the stack may not be valid yet), force svc with both
// masks set, PC = 0, invalidate curr_cp, and suppress every other
// pending bit except IRQ/FIQ so an asserted device interrupt survives
// the reset.
func (c *CPU) enterReset() {
	c.regs.SwitchMode(ModeSVC)
	c.regs.cpsr = uint32(ModeSVC) | PSRIRQMask | PSRFIQMask
	c.regs.SetPC(0)
	c.invalidateCurrCP()

	c.pending.clearBits(^(uint32(exBitIRQ) | uint32(exBitFIQ)))

	c.perf.exceptions.Add(1)
}
