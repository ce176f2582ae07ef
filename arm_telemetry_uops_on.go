// arm_telemetry_uops_on.go - per-micro-op telemetry (armcore_uops build tag)

//go:build armcore_uops

package main

import "fmt"

func reportUopCounters(c *CPU) {
	for i := range c.perf.uops {
		fmt.Fprintf(c.telemetryOut, "\tuop opcode %d: %d\n", i, c.perf.uops[i].Load())
	}
}
