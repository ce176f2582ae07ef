package main

import "testing"

// BenchmarkConditionTablePasses measures the condition-evaluator hot
// path (spec §4.1, C1), expected to be called once per conditionally
// executed instruction.
// Run with: go test -bench=ConditionTablePasses -benchmem -run="^$" ./...
func BenchmarkConditionTablePasses(b *testing.B) {
	table := BuildConditionTable()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Passes(i&0xF, CondGE)
	}
}

// BenchmarkProcessPendingExceptionsEmpty measures the no-op poll cost
// the execution thread pays every loop iteration when nothing is
// pending (spec §5).
func BenchmarkProcessPendingExceptionsEmpty(b *testing.B) {
	c := newTestCPU()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.ProcessPendingExceptions()
	}
}

// BenchmarkSWIDelivery measures one full architectural exception entry.
func BenchmarkSWIDelivery(b *testing.B) {
	c := newTestCPU()
	c.regs.SetCondition(PSRIRQMask, false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.SignalSWI()
		c.ProcessPendingExceptions()
	}
}

// BenchmarkSwitchModeRoundTrip measures the banked-register save/load
// path (spec §4.2, C2).
func BenchmarkSwitchModeRoundTrip(b *testing.B) {
	rf := NewRegisterFile()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rf.SwitchMode(ModeIRQ)
		rf.SwitchMode(ModeSVC)
	}
}
