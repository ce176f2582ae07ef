// arm_telemetry_cycles_on.go - extended cycle-count telemetry (armcore_cycles build tag)

//go:build armcore_cycles

package main

import "fmt"

func reportCycleCounter(c *CPU) {
	fmt.Fprintf(c.telemetryOut, "%d cycles/sec, ", c.perf.cycles.Load())
}
