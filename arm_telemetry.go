// arm_telemetry.go - performance counters and the 1 Hz telemetry report (§6)

package main

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// OpClass indexes the coarse instruction-class counters the original
// reports under its COUNT_ARM_OPS build flag. Populated by the
// decoder (out of scope here); the core only owns the storage.
type OpClass int

const (
	OpSkippedCondition OpClass = iota
	OpNOP
	OpLoad
	OpStore
	OpDataProc
	OpMul
	OpBranch
	OpMisc
	numOpClasses
)

func (o OpClass) String() string {
	names := [...]string{"SC", "NOP", "L", "S", "DP", "MUL", "B", "MISC"}
	if int(o) < len(names) {
		return names[o]
	}
	return "?"
}

// numUopClasses bounds the illustrative per-micro-op counters kept
// under the armcore_uops build tag; the real count depends on the
// (out of scope) micro-op decoder's opcode set.
const numUopClasses = 16

// PerfCounters holds every counter the telemetry ticker and dump_cpu
// read. Written by the execution thread with relaxed ordering; read by
// other threads with torn reads tolerated for display, per spec §5.
type PerfCounters struct {
	instructions uint64Counter
	decodes      uint64Counter
	slowMMU      uint64Counter
	exceptions   uint64Counter
	cycles       uint64Counter
	opClasses    [numOpClasses]uint64Counter
	uops         [numUopClasses]uint64Counter
}

// uint64Counter is a thin alias so PerfCounters reads like the
// original's flat perf_counters array while actually being individually
// addressable atomics.
type uint64Counter = atomic.Uint64

// GetInstructionCount returns the total retired-instruction count,
// spec §4.5 dump_cpu's "instruction count" field.
func (c *CPU) GetInstructionCount() uint64 {
	return c.perf.instructions.Load()
}

// telemetryMeters wraps the OTel counters the 1 Hz ticker feeds. The
// package-default (no-op) meter provider is used unless the host wires
// a real one via otel.SetMeterProvider — recording against it is still
// a genuine exercise of the metric API, just discarded until a real
// exporter is attached.
type telemetryMeters struct {
	instructions metric.Int64Counter
	decodes      metric.Int64Counter
	slowMMU      metric.Int64Counter
}

func newTelemetryMeters() telemetryMeters {
	meter := otel.Meter("github.com/armcore/armcore")
	ins, _ := meter.Int64Counter("armcore.instructions",
		metric.WithDescription("Instructions retired by the execution thread"))
	dec, _ := meter.Int64Counter("armcore.decode_events",
		metric.WithDescription("Instruction decode events"))
	mmu, _ := meter.Int64Counter("armcore.mmu.slow_translations",
		metric.WithDescription("MMU translations that missed the fast path"))
	return telemetryMeters{instructions: ins, decodes: dec, slowMMU: mmu}
}

// runTelemetry is the Go analogue of the original's SDL_AddTimer(1000,
// &speedtimer, NULL): once a second, print instructions/sec,
// decode-events/sec, and slow-MMU-translates/sec, mirror the deltas
// into OTel counters, and (per build tag) report the extended counters
// spec §6 calls optional.
func (c *CPU) runTelemetry(ctx context.Context) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var lastIns, lastDec, lastMMU uint64

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			ins := c.perf.instructions.Load()
			dec := c.perf.decodes.Load()
			mmu := c.perf.slowMMU.Load()

			deltaIns, deltaDec, deltaMMU := ins-lastIns, dec-lastDec, mmu-lastMMU
			lastIns, lastDec, lastMMU = ins, dec, mmu

			fmt.Fprintf(c.telemetryOut, "%d ins/sec, %d ins decodes/sec, %d slow mmu translates/sec\n",
				deltaIns, deltaDec, deltaMMU)

			c.otel.instructions.Add(ctx, int64(deltaIns))
			c.otel.decodes.Add(ctx, int64(deltaDec))
			c.otel.slowMMU.Add(ctx, int64(deltaMMU))

			reportCycleCounter(c)
			reportOpClassCounters(c)
			reportUopCounters(c)
		}
	}
}
