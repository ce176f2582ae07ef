// arm_registers.go - register file and banked mode switching (C2)

package main

// bankSlot indexes the six-entry banked-register array. user and sys
// share bankUser; an unknown/reserved mode maps to no slot at all.
type bankSlot int

const (
	bankUser bankSlot = iota
	bankFIQ
	bankIRQ
	bankSVC
	bankAbort
	bankUndefined
	numBanks
)

// bankFor maps a 5-bit CPSR mode field to its bank slot. The second
// return is false for an unknown/reserved mode, matching the original
// switch statement's NULL-bank default.
func bankFor(mode Mode) (bankSlot, bool) {
	switch mode {
	case ModeUser, ModeSystem:
		return bankUser, true
	case ModeFIQ:
		return bankFIQ, true
	case ModeIRQ:
		return bankIRQ, true
	case ModeSVC:
		return bankSVC, true
	case ModeAbort:
		return bankAbort, true
	case ModeUndefined:
		return bankUndefined, true
	default:
		return 0, false
	}
}

// bankedRegs is the per-mode shadow copy of r13/r14/SPSR (spec §3).
// SPSR is meaningless in bankUser and is never consulted there; reads
// of SPSR while in user/sys mode return CPSR instead (RegisterFile.ReadSPSR).
type bankedRegs struct {
	r13  uint32
	r14  uint32
	spsr uint32
}

// fiqLowRegs holds FIQ's private r8-r12, banked separately from the
// r13/r14/SPSR triple every other exception mode uses. Only populated
// when BankFIQLowRegs is set (spec §9 redesign flag: the original
// source omits this banking entirely).
type fiqLowRegs struct {
	r [5]uint32 // r8..r12
}

// RegisterFile holds the sixteen general registers, CPSR/SPSR, and the
// banked shadow copies for every processor mode. Owned exclusively by
// the execution thread (spec §5) — no synchronization here.
type RegisterFile struct {
	r    [16]uint32 // r0..r15; r15 mirrors pc for architectural fetch bookkeeping
	pc   uint32     // address of the instruction currently executing, independent of r15
	cpsr uint32
	spsr uint32 // meaningful only outside bankUser

	banks [numBanks]bankedRegs

	// BankFIQLowRegs enables FIQ-private r8-r12 banking (spec §9).
	BankFIQLowRegs bool
	fiqLow         fiqLowRegs
	userLow        fiqLowRegs // r8-r12 for every non-FIQ mode, shared like bankUser
}

// NewRegisterFile returns a register file reset to svc mode with both
// interrupt masks set and FIQ low-register banking enabled, matching
// the architectural reset state (spec §4.3 RESET semantics).
func NewRegisterFile() *RegisterFile {
	rf := &RegisterFile{BankFIQLowRegs: true}
	rf.cpsr = uint32(ModeSVC) | PSRIRQMask | PSRFIQMask
	return rf
}

// ReadReg returns general register i (0..15). Reading r15 returns the
// raw r15 slot; callers that want the architectural PC mirror use PC().
func (rf *RegisterFile) ReadReg(i int) uint32 {
	return rf.r[i&0xF]
}

// WriteReg sets general register i (0..15).
func (rf *RegisterFile) WriteReg(i int, v uint32) {
	rf.r[i&0xF] = v
}

// PC returns the independent PC mirror (spec §3).
func (rf *RegisterFile) PC() uint32 { return rf.pc }

// SetPC sets both r15 and the independent PC mirror, and also writes r15.
func (rf *RegisterFile) SetPC(v uint32) {
	rf.pc = v
	rf.r[15] = v
}

// CPSR returns the current program status register.
func (rf *RegisterFile) CPSR() uint32 { return rf.cpsr }

// WriteCPSRMasked writes only the bits set in mask, leaving the rest of
// CPSR untouched ("write-cpsr-with-mask", spec §4.2).
func (rf *RegisterFile) WriteCPSRMasked(value, mask uint32) {
	rf.cpsr = (rf.cpsr &^ mask) | (value & mask)
}

// CurrentMode returns the mode encoded in CPSR's low 5 bits.
func (rf *RegisterFile) CurrentMode() Mode {
	return Mode(rf.cpsr & PSRModeMask)
}

// ReadSPSR returns SPSR, or CPSR if the current mode has no SPSR
// (user/sys — spec §3).
func (rf *RegisterFile) ReadSPSR() uint32 {
	if rf.CurrentMode() == ModeUser || rf.CurrentMode() == ModeSystem {
		return rf.cpsr
	}
	return rf.spsr
}

// WriteSPSR sets SPSR; ignored in user/sys mode (spec §3).
func (rf *RegisterFile) WriteSPSR(v uint32) {
	if rf.CurrentMode() == ModeUser || rf.CurrentMode() == ModeSystem {
		return
	}
	rf.spsr = v
}

// GetCondition reads a single PSR bit/field, e.g. rf.GetCondition(PSRThumb).
func (rf *RegisterFile) GetCondition(bit uint32) bool {
	return rf.cpsr&bit != 0
}

// SetCondition sets or clears a single PSR bit/field.
func (rf *RegisterFile) SetCondition(bit uint32, set bool) {
	if set {
		rf.cpsr |= bit
	} else {
		rf.cpsr &^= bit
	}
}

// SwitchMode implements the banking contract of spec §4.2:
//  1. no-op if old == new
//  2. resolve outgoing/incoming banks (unknown mode -> no bank)
//  3. save r13/r14/SPSR into the outgoing bank, if any
//  4. load r13/r14/SPSR from the incoming bank, if any
//  5. update CPSR's mode bits
func (rf *RegisterFile) SwitchMode(newMode Mode) {
	oldMode := rf.CurrentMode()
	if oldMode == newMode {
		return
	}

	if from, ok := bankFor(oldMode); ok {
		rf.banks[from] = bankedRegs{r13: rf.r[13], r14: rf.r[14], spsr: rf.spsr}
		if rf.BankFIQLowRegs && from == bankFIQ {
			copy(rf.fiqLow.r[:], rf.r[8:13])
		} else if rf.BankFIQLowRegs {
			copy(rf.userLow.r[:], rf.r[8:13])
		}
	}

	if to, ok := bankFor(newMode); ok {
		b := rf.banks[to]
		rf.r[13], rf.r[14], rf.spsr = b.r13, b.r14, b.spsr
		if rf.BankFIQLowRegs {
			if to == bankFIQ {
				copy(rf.r[8:13], rf.fiqLow.r[:])
			} else {
				copy(rf.r[8:13], rf.userLow.r[:])
			}
		}
	}

	rf.cpsr = (rf.cpsr &^ PSRModeMask) | uint32(newMode)
}

// bankSnapshot exposes the raw banked copy for a mode, for tests that
// verify round-trip banking preservation without forcing a live mode
// switch (spec §8, scenario 5).
func (rf *RegisterFile) bankSnapshot(m Mode) (bankedRegs, bool) {
	slot, ok := bankFor(m)
	if !ok {
		return bankedRegs{}, false
	}
	if rf.CurrentMode() == m {
		return bankedRegs{r13: rf.r[13], r14: rf.r[14], spsr: rf.spsr}, true
	}
	return rf.banks[slot], true
}
