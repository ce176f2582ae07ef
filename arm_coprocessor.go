// arm_coprocessor.go - coprocessor slot array (C3/C5 support)
//
// Coprocessor implementations themselves (notably CP15) are out of
// scope (spec §1); this file owns only the slot array, install path,
// and the curr_cp cache invalidation rule the exception controller
// depends on.

package main

// Coprocessor is the minimal handle the core needs from an installed
// coprocessor: enough identity to answer "who is this" for dump/debug
// output. Real coprocessor semantics (CDP/MRC/MCR/LDC/STC) belong to
// the coprocessor implementation itself, an external collaborator.
type Coprocessor interface {
	Name() string
}

// coprocessorSlots is the fixed 0..15 array of spec §3. Mutable only
// during initialization.
type coprocessorSlots struct {
	slots [16]Coprocessor
}

// Install stores handle in slot n. n must be in [0,15]; the caller
// (InstallCoprocessor) is responsible for the panic-on-bad-index
// contract of spec §4.5/§7 — this method only does the array write.
func (s *coprocessorSlots) install(n int, handle Coprocessor) {
	s.slots[n] = handle
}

// get returns the handle in slot n, or nil if absent.
func (s *coprocessorSlots) get(n int) Coprocessor {
	if n < 0 || n > 15 {
		return nil
	}
	return s.slots[n]
}

// InstallCoprocessor implements spec §4.5: fails (panics through
// PanicCPU, a programmer error per spec §7 class 2) for n outside
// [0,15]; otherwise overwrites slot n unconditionally.
func (c *CPU) InstallCoprocessor(n int, handle Coprocessor) {
	if n < 0 || n > 15 {
		c.PanicCPU("install_coprocessor: bad cp num %d", n)
		return
	}
	c.coprocs.install(n, handle)
}

// Coprocessor returns the handle installed in slot n, or nil.
func (c *CPU) Coprocessor(n int) Coprocessor {
	return c.coprocs.get(n)
}

// invalidateCurrCP clears the cached "last coprocessor accessed"
// pointer. Spec §3/§4.3 step 4: any mode-changing architectural
// transition that could alter accessibility — in practice, every
// exception entry that leaves Thumb state, plus reset — must
// invalidate this cache so the decoder re-resolves coprocessor access
// rights from scratch.
func (c *CPU) invalidateCurrCP() {
	c.currCP = nil
}

// CurrentCoprocessor returns the cached last-accessed coprocessor, or
// nil if the cache has been invalidated since the last access. Owned
// exclusively by the execution thread (spec §5) — no synchronization.
func (c *CPU) CurrentCoprocessor() Coprocessor {
	return c.currCP
}

// noteCoprocessorAccess records cp as the most recently accessed
// coprocessor, for callers (the decoder, in the real system) that want
// to skip slot re-resolution on back-to-back accesses to the same cp.
func (c *CPU) noteCoprocessorAccess(cp Coprocessor) {
	c.currCP = cp
}
