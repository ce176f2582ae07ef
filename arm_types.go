// arm_types.go - ARM processor modes, PSR field layout, and CPU identity table

package main

import "strings"

// Mode is the 5-bit CPSR mode field (spec §3).
type Mode uint32

const (
	ModeUser Mode = 0x10 + iota
	ModeFIQ
	ModeIRQ
	ModeSVC
	_reservedMode4
	_reservedMode5
	_reservedMode6
	ModeAbort
	_reservedMode8
	_reservedMode9
	_reservedMode10
	ModeUndefined
	_reservedMode12
	_reservedMode13
	_reservedMode14
	ModeSystem
)

// PSR field masks and shifts, laid out exactly as spec §3: N/Z/C/V in
// bits 31..28, Q in 27 (ignored pre-v5), I in 7, F in 6, T in 5, mode
// in bits 4..0.
const (
	PSRNegative  uint32 = 1 << 31
	PSRZero      uint32 = 1 << 30
	PSRCarry     uint32 = 1 << 29
	PSROverflow  uint32 = 1 << 28
	PSRSaturate  uint32 = 1 << 27
	PSRIRQMask   uint32 = 1 << 7
	PSRFIQMask   uint32 = 1 << 6
	PSRThumb     uint32 = 1 << 5
	PSRModeMask  uint32 = 0x1F
	psrNZCVShift        = 28
)

// ISA is the architecture level a CPU type implements.
type ISA int

const (
	ARMv4 ISA = iota
	ARMv5
	ARMv5e
	ARMv6
)

func (i ISA) String() string {
	switch i {
	case ARMv4:
		return "armv4"
	case ARMv5:
		return "armv5"
	case ARMv5e:
		return "armv5e"
	case ARMv6:
		return "armv6"
	default:
		return "unknown"
	}
}

// Core is the micro-architecture family a CPU type belongs to.
type Core int

const (
	CoreARM7 Core = iota
	CoreARM9
	CoreARM9e
)

// String renders a mode's canonical short name (spec Glossary).
func (m Mode) String() string {
	switch m {
	case ModeUser:
		return "usr"
	case ModeFIQ:
		return "fiq"
	case ModeIRQ:
		return "irq"
	case ModeSVC:
		return "svc"
	case ModeAbort:
		return "abt"
	case ModeUndefined:
		return "und"
	case ModeSystem:
		return "sys"
	default:
		return "unknown"
	}
}

func (c Core) String() string {
	switch c {
	case CoreARM7:
		return "ARM7"
	case CoreARM9:
		return "ARM9"
	case CoreARM9e:
		return "ARM9e"
	default:
		return "unknown"
	}
}

// CPUType describes one entry of the static name -> (ISA, core,
// capability) table (spec §3, §6). Looked up once at InitializeCPU and
// immutable thereafter.
type CPUType struct {
	Name     string
	ISA      ISA
	Core     Core
	WithCP15 bool
	WithMMU  bool
}

// CPUTypes is the recognized CPU-type name table, preserved bit-exact
// from original_source/arm/arm.c's cpu_types[] — including the armv6
// row, which the original maps to ARM9 "not correct, but no arm11
// support yet" rather than a real ARM11 entry.
var CPUTypes = []CPUType{
	{Name: "armv4", ISA: ARMv4, Core: CoreARM7, WithCP15: false, WithMMU: false},
	{Name: "armv5", ISA: ARMv5, Core: CoreARM9, WithCP15: true, WithMMU: true},
	{Name: "armv5e", ISA: ARMv5e, Core: CoreARM9, WithCP15: true, WithMMU: true},
	{Name: "armv6", ISA: ARMv6, Core: CoreARM9, WithCP15: true, WithMMU: true},

	{Name: "arm7tdmi", ISA: ARMv4, Core: CoreARM7, WithCP15: false, WithMMU: false},
	{Name: "arm7", ISA: ARMv4, Core: CoreARM7, WithCP15: false, WithMMU: false},
	{Name: "arm9tdmi", ISA: ARMv4, Core: CoreARM9, WithCP15: true, WithMMU: true},
	{Name: "arm9", ISA: ARMv4, Core: CoreARM9, WithCP15: true, WithMMU: true},
	{Name: "arm9e", ISA: ARMv5e, Core: CoreARM9e, WithCP15: true, WithMMU: true},
	{Name: "arm926ejs", ISA: ARMv5e, Core: CoreARM9e, WithCP15: true, WithMMU: true},
	{Name: "arm926", ISA: ARMv5e, Core: CoreARM9e, WithCP15: true, WithMMU: true},
}

// LookupCPUType finds a CPU type by case-insensitive name. The zero
// value and false are returned for an unknown or empty name; callers
// fall back to ARMv4/ARM7 defaults per spec §4.5.
func LookupCPUType(name string) (CPUType, bool) {
	if name == "" {
		return CPUType{}, false
	}
	for _, t := range CPUTypes {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return CPUType{}, false
}
