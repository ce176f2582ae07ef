// arm_cpu.go - CPU front controller (C5): init, start/stop, introspection

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// CPU is the architectural state machine of spec §2: registers, PSRs,
// banked register files, the pending-exception bitmap, and the
// coprocessor slot array, plus the thread-topology bookkeeping needed
// to actually run the execution and telemetry threads (spec §5).
//
// Re-architected as a value the host owns and threads through every
// entry point (spec §9 design note) rather than the original's
// process-wide global `struct cpu_struct cpu`.
type CPU struct {
	regs    *RegisterFile
	pending PendingExceptions
	coprocs coprocessorSlots
	currCP  Coprocessor

	Type CPUType
	mmu  MMU

	perf         PerfCounters
	otel         telemetryMeters
	telemetryOut io.Writer

	lastFaultAddr atomic.Uint32

	decoder    Decoder
	cycleLimit int

	running    atomic.Bool
	stopCh     chan struct{}
	quitHost   chan struct{} // closed to request host shutdown (panic_cpu, cycle limit reached)
	group      *errgroup.Group
	groupCtx   context.Context
	cancelTele context.CancelFunc

	exit func(code int) // os.Exit by default; swapped out in tests so PanicCPU doesn't kill the test binary
}

// InitializeCPU builds a fresh CPU named by a case-insensitive entry in
// CPUTypes (spec §4.5, §6). An empty or unrecognized name is not an
// error in the fatal sense (spec §7 class 3): the CPU still comes back
// fully usable, defaulted to ARMv4/ARM7 without CP15/MMU: the second
// return value is false only to let the caller log the fallback.
func InitializeCPU(typeName string) (*CPU, bool) {
	c := &CPU{
		regs:         NewRegisterFile(),
		mmu:          &NullMMU{},
		decoder:      NullDecoder{},
		telemetryOut: os.Stdout,
		otel:         newTelemetryMeters(),
		quitHost:     make(chan struct{}),
		exit:         os.Exit,
	}

	t, ok := LookupCPUType(typeName)
	if !ok {
		t = CPUType{Name: "armv4", ISA: ARMv4, Core: CoreARM7}
	}
	c.Type = t

	if t.WithCP15 {
		c.InstallCP15()
	}
	c.mmu.Init(t.WithMMU)
	c.decoder.Init()

	return c, ok
}

// ResetCPU schedules an asynchronous reset (spec §4.5): it only sets
// the RESET bit. The reset itself happens the next time the execution
// thread calls ProcessPendingExceptions.
func (c *CPU) ResetCPU() {
	c.SignalReset()
}

// StartCPU records the stop condition, launches the execution thread
// into the decoder's dispatch loop, and starts the 1 Hz telemetry
// thread (spec §4.5). cycleLimit <= 0 means run forever. Thread
// lifecycle is managed through an errgroup rather than bare goroutines
// (spec §9 "cross-thread mutation" note; the only thing those threads
// actually share is the pending bitmap).
func (c *CPU) StartCPU(cycleLimit int) {
	c.cycleLimit = cycleLimit
	c.stopCh = make(chan struct{})

	group, ctx := errgroup.WithContext(context.Background())
	ctx, cancel := context.WithCancel(ctx)
	c.group = group
	c.groupCtx = ctx
	c.cancelTele = cancel
	c.running.Store(true)

	group.Go(func() error {
		defer c.running.Store(false)
		defer cancel() // stop the telemetry thread as soon as execution stops, not only on Wait
		c.decoder.DispatchLoop(c, c.stopCh)
		close(c.quitHost)
		return nil
	})

	group.Go(func() error {
		return c.runTelemetry(ctx)
	})
}

// StopCPU signals the execution and telemetry threads to exit and
// waits for them. Not part of the original's API surface (it never
// joined its SDL threads) but necessary for deterministic tests.
func (c *CPU) StopCPU() error {
	if c.stopCh == nil {
		return nil
	}
	close(c.stopCh)
	if c.cancelTele != nil {
		c.cancelTele()
	}
	err := c.group.Wait()
	c.stopCh = nil
	return err
}

// QuitRequested reports whether the host event loop has been asked to
// quit (cycle limit reached, or PanicCPU), the Go analogue of pushing
// an SDL_QUIT event.
func (c *CPU) QuitRequested() <-chan struct{} {
	return c.quitHost
}

// DumpCPU produces a human-readable snapshot of every register, CPSR,
// SPSR, the condition flags, and the instruction count (spec §4.5).
// See arm_dump.go for the rendering.
func (c *CPU) DumpCPU() string {
	return c.renderDump()
}

// PanicCPU is the fatal error path for programmer errors inside the
// emulator (spec §7 class 2): dump state, request host shutdown, and
// terminate the process. Grounded on original_source/arm/arm.c's
// panic_cpu, minus the hardcoded SDL event push and sleep(10) — those
// were specific to the original's host loop, which is out of scope
// here; closing quitHost is this core's equivalent signal.
func (c *CPU) PanicCPU(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "panic: %s\n%s\n", msg, c.DumpCPU())
	c.requestHostQuit()
	c.exit(1)
}

func (c *CPU) requestHostQuit() {
	select {
	case <-c.quitHost:
	default:
		close(c.quitHost)
	}
}
