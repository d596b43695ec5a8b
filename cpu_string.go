// cpu_string.go - REP-prefixed string instructions
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

/*
cpu_string.go implements MOVS/CMPS/SCAS/LODS/STOS in byte and word
forms (opcodes A4-A7 and AA-AF), looping under a REP/REPE/REPNE
prefix: while CX != 0, decrement CX each iteration, advance
SI/DI by +-1 or +-2 per the direction flag, and for the compare/scan
family stop early on a ZF mismatch against REPE/REPNE. A segment
override (if any) applies to the source side of MOVS/LODS and to the
CMPS source; the destination side of MOVS/CMPS/SCAS/STOS always uses
ES, which is not overridable on real 8086 hardware.
*/

package main

func init() {
	// The DS-side segment override, if any, is resolved once before the
	// loop starts and held fixed across every repetition: on real 8086
	// hardware REP re-executes the same prefixed opcode without
	// re-fetching prefix bytes, so segmentFor must not be called fresh
	// (and re-consume the override) on each iteration.
	baseOps[0xA4] = func(c *CPU) { seg := c.segmentFor(segDS); c.repLoop(func() { c.movsb(seg) }) }
	baseOps[0xA5] = func(c *CPU) { seg := c.segmentFor(segDS); c.repLoop(func() { c.movsw(seg) }) }
	baseOps[0xA6] = func(c *CPU) { seg := c.segmentFor(segDS); c.repLoopCmp(func() { c.cmpsb(seg) }) }
	baseOps[0xA7] = func(c *CPU) { seg := c.segmentFor(segDS); c.repLoopCmp(func() { c.cmpsw(seg) }) }
	baseOps[0xAA] = func(c *CPU) { c.repLoop(c.stosb) }
	baseOps[0xAB] = func(c *CPU) { c.repLoop(c.stosw) }
	baseOps[0xAC] = func(c *CPU) { seg := c.segmentFor(segDS); c.repLoop(func() { c.lodsb(seg) }) }
	baseOps[0xAD] = func(c *CPU) { seg := c.segmentFor(segDS); c.repLoop(func() { c.lodsw(seg) }) }
	baseOps[0xAE] = func(c *CPU) { c.repLoopCmp(c.scasb) }
	baseOps[0xAF] = func(c *CPU) { c.repLoopCmp(c.scasw) }
}

func (c *CPU) diStep(n uint16) uint16 {
	if c.getFlag(flagDF) {
		return 0 - n
	}
	return n
}

// repLoop drives MOVS/LODS/STOS under an optional REP prefix: these
// have no ZF-comparison termination, so they simply run until CX
// exhausts (or once, with no prefix at all).
func (c *CPU) repLoop(step func()) {
	if c.repPrefix == repNone {
		step()
		return
	}
	for c.wordReg(regCX) != 0 {
		step()
		c.setWordReg(regCX, c.wordReg(regCX)-1)
	}
}

// repLoopCmp drives CMPS/SCAS: REPE continues while CX != 0 and ZF is
// set; REPNE continues while CX != 0 and ZF is clear; with no prefix
// the comparison runs exactly once.
func (c *CPU) repLoopCmp(step func()) {
	if c.repPrefix == repNone {
		step()
		return
	}
	wantZF := c.repPrefix == repRepe
	for c.wordReg(regCX) != 0 {
		step()
		c.setWordReg(regCX, c.wordReg(regCX)-1)
		if c.getFlag(flagZF) != wantZF {
			return
		}
	}
}

func (c *CPU) movsb(seg uint16) {
	v := c.mem.Read8(Linear(seg, c.si))
	c.mem.Write8(Linear(c.seg(segES), c.di), v)
	c.si += c.diStep(1)
	c.di += c.diStep(1)
}

func (c *CPU) movsw(seg uint16) {
	v := c.mem.Read16(Linear(seg, c.si))
	c.mem.Write16(Linear(c.seg(segES), c.di), v)
	c.si += c.diStep(2)
	c.di += c.diStep(2)
}

func (c *CPU) cmpsb(seg uint16) {
	a := c.mem.Read8(Linear(seg, c.si))
	b := c.mem.Read8(Linear(c.seg(segES), c.di))
	c.cmp8(a, b)
	c.si += c.diStep(1)
	c.di += c.diStep(1)
}

func (c *CPU) cmpsw(seg uint16) {
	a := c.mem.Read16(Linear(seg, c.si))
	b := c.mem.Read16(Linear(c.seg(segES), c.di))
	c.cmp16(a, b)
	c.si += c.diStep(2)
	c.di += c.diStep(2)
}

func (c *CPU) scasb() {
	b := c.mem.Read8(Linear(c.seg(segES), c.di))
	c.cmp8(c.regByte(regAL), b)
	c.di += c.diStep(1)
}

func (c *CPU) scasw() {
	w := c.mem.Read16(Linear(c.seg(segES), c.di))
	c.cmp16(c.wordReg(regAX), w)
	c.di += c.diStep(2)
}

func (c *CPU) lodsb(seg uint16) {
	c.setByte(regAL, c.mem.Read8(Linear(seg, c.si)))
	c.si += c.diStep(1)
}

func (c *CPU) lodsw(seg uint16) {
	c.setWordReg(regAX, c.mem.Read16(Linear(seg, c.si)))
	c.si += c.diStep(2)
}

func (c *CPU) stosb() {
	c.mem.Write8(Linear(c.seg(segES), c.di), c.regByte(regAL))
	c.di += c.diStep(1)
}

func (c *CPU) stosw() {
	c.mem.Write16(Linear(c.seg(segES), c.di), c.wordReg(regAX))
	c.di += c.diStep(2)
}
