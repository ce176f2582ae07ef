// arm_telemetry_uops_off.go - per-micro-op telemetry disabled by default

//go:build !armcore_uops

package main

func reportUopCounters(*CPU) {}
