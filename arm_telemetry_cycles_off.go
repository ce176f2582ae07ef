// arm_telemetry_cycles_off.go - extended cycle-count telemetry disabled by default

//go:build !armcore_cycles

package main

func reportCycleCounter(*CPU) {}
