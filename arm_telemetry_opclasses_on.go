// arm_telemetry_opclasses_on.go - per-opcode-class telemetry (armcore_opclasses build tag)

//go:build armcore_opclasses

package main

import "fmt"

func reportOpClassCounters(c *CPU) {
	fmt.Fprint(c.telemetryOut, "\tSC ")
	for i := range c.perf.opClasses {
		fmt.Fprintf(c.telemetryOut, "%s %d ", OpClass(i), c.perf.opClasses[i].Load())
	}
	fmt.Fprintf(c.telemetryOut, "exceptions %d\n", c.perf.exceptions.Load())
}
