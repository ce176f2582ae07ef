// arm_telemetry_opclasses_off.go - per-opcode-class telemetry disabled by default

//go:build !armcore_opclasses

package main

func reportOpClassCounters(*CPU) {}
