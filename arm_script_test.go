package main

import "testing"

func TestDeviceScriptRaisesIRQ(t *testing.T) {
	c := newTestCPU()
	script := NewDeviceScript(c)

	if err := script.Run(`raise_irq()`); err != nil {
		t.Fatalf("script error: %v", err)
	}

	if c.pending.snapshot()&uint32(exBitIRQ) == 0 {
		t.Fatalf("expected IRQ bit set after raise_irq()")
	}
}

func TestDeviceScriptSignalsDataAbortWithAddress(t *testing.T) {
	c := newTestCPU()
	script := NewDeviceScript(c)

	if err := script.Run(`signal_data_abort(0x1234)`); err != nil {
		t.Fatalf("script error: %v", err)
	}

	if c.lastFaultAddr.Load() != 0x1234 {
		t.Fatalf("lastFaultAddr = 0x%x, want 0x1234", c.lastFaultAddr.Load())
	}
	if c.pending.snapshot()&uint32(exBitDataAbort) == 0 {
		t.Fatalf("expected data abort bit set")
	}
}

func TestDeviceScriptRunAsync(t *testing.T) {
	c := newTestCPU()
	script := NewDeviceScript(c)

	errc := script.RunAsync(`raise_fiq()`)
	if err := <-errc; err != nil {
		t.Fatalf("async script error: %v", err)
	}

	if c.pending.snapshot()&uint32(exBitFIQ) == 0 {
		t.Fatalf("expected FIQ bit set after async raise_fiq()")
	}
}

func TestDeviceScriptSequenceEndsInDelivery(t *testing.T) {
	c := newTestCPU()
	c.regs.SetCondition(PSRIRQMask, false)
	script := NewDeviceScript(c)

	if err := script.Run(`
		raise_irq()
		sleep_ms(1)
	`); err != nil {
		t.Fatalf("script error: %v", err)
	}

	if !c.ProcessPendingExceptions() {
		t.Fatalf("expected the scripted IRQ to be deliverable")
	}
}
