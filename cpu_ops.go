// cpu_ops.go - 8086 base opcode dispatch table
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

/*
cpu_ops.go builds the 256-entry base opcode dispatch table and
implements every instruction that does not belong to one of the
reg-field sub-opcode groups (those live in cpu_group.go) or the
REP-prefixed string family (cpu_string.go). One opcode, one named
method, assigned explicitly in init(), covering the 8086's one-byte
opcode map (no 0x0F two-byte escape, no 32-bit operand forms).
*/

package main

var baseOps [256]func(*CPU)

func init() {
	alu := [8]struct {
		op8  func(*CPU, byte, byte) byte
		op16 func(*CPU, uint16, uint16) uint16
	}{
		{(*CPU).add8, (*CPU).add16},
		{(*CPU).or8, (*CPU).or16},
		{(*CPU).adc8, (*CPU).adc16},
		{(*CPU).sbb8, (*CPU).sbb16},
		{(*CPU).and8, (*CPU).and16},
		{(*CPU).sub8, (*CPU).sub16},
		{(*CPU).xor8, (*CPU).xor16},
		{nil, nil}, // CMP: handled via cmp8/cmp16, no write-back
	}

	for i := 0; i < 8; i++ {
		i := i
		base := byte(i * 8)
		isCmp := i == 7

		baseOps[base+0] = func(c *CPU) { // Eb, Gb
			m := c.fetchModRM()
			v := c.readRMByte(m)
			g := c.regByte(m.Reg)
			if isCmp {
				c.cmp8(v, g)
			} else {
				c.writeRMByte(m, alu[i].op8(c, v, g))
			}
		}
		baseOps[base+1] = func(c *CPU) { // Ev, Gv
			m := c.fetchModRM()
			v := c.readRMWord(m)
			g := c.wordReg(m.Reg)
			if isCmp {
				c.cmp16(v, g)
			} else {
				c.writeRMWord(m, alu[i].op16(c, v, g))
			}
		}
		baseOps[base+2] = func(c *CPU) { // Gb, Eb
			m := c.fetchModRM()
			v := c.readRMByte(m)
			g := c.regByte(m.Reg)
			if isCmp {
				c.cmp8(g, v)
			} else {
				c.setByte(m.Reg, alu[i].op8(c, g, v))
			}
		}
		baseOps[base+3] = func(c *CPU) { // Gv, Ev
			m := c.fetchModRM()
			v := c.readRMWord(m)
			g := c.wordReg(m.Reg)
			if isCmp {
				c.cmp16(g, v)
			} else {
				c.setWordReg(m.Reg, alu[i].op16(c, g, v))
			}
		}
		baseOps[base+4] = func(c *CPU) { // AL, Ib
			v := c.fetch8()
			al := c.regByte(regAL)
			if isCmp {
				c.cmp8(al, v)
			} else {
				c.setByte(regAL, alu[i].op8(c, al, v))
			}
		}
		baseOps[base+5] = func(c *CPU) { // AX, Iv
			v := c.fetch16()
			ax := c.wordReg(regAX)
			if isCmp {
				c.cmp16(ax, v)
			} else {
				c.setWordReg(regAX, alu[i].op16(c, ax, v))
			}
		}
	}

	// Segment register push/pop (ES/CS at 06/07, 0E; SS/DS at 16/17, 1E/1F).
	baseOps[0x06] = func(c *CPU) { c.push16(c.seg(segES)) }
	baseOps[0x07] = func(c *CPU) { c.setSeg(segES, c.pop16()) }
	baseOps[0x0E] = func(c *CPU) { c.push16(c.seg(segCS)) }
	baseOps[0x16] = func(c *CPU) { c.push16(c.seg(segSS)) }
	baseOps[0x17] = func(c *CPU) { c.setSeg(segSS, c.pop16()) }
	baseOps[0x1E] = func(c *CPU) { c.push16(c.seg(segDS)) }
	baseOps[0x1F] = func(c *CPU) { c.setSeg(segDS, c.pop16()) }

	// INC/DEC reg16 (0x40-0x4F).
	for i := byte(0); i < 8; i++ {
		i := i
		baseOps[0x40+i] = func(c *CPU) { c.setWordReg(i, c.inc16(c.wordReg(i))) }
		baseOps[0x48+i] = func(c *CPU) { c.setWordReg(i, c.dec16(c.wordReg(i))) }
	}

	// PUSH/POP reg16 (0x50-0x5F).
	for i := byte(0); i < 8; i++ {
		i := i
		baseOps[0x50+i] = func(c *CPU) { c.push16(c.wordReg(i)) }
		baseOps[0x58+i] = func(c *CPU) { c.setWordReg(i, c.pop16()) }
	}

	// Jcc short (0x70-0x7F).
	for i := byte(0); i < 16; i++ {
		i := i
		baseOps[0x70+i] = func(c *CPU) {
			rel := int8(c.fetch8())
			if c.condition(i) {
				c.IP = uint16(int32(c.IP) + int32(rel))
			}
		}
	}

	baseOps[0x84] = opTestEbGb
	baseOps[0x85] = opTestEvGv
	baseOps[0x86] = opXchgEbGb
	baseOps[0x87] = opXchgEvGv
	baseOps[0x88] = opMovEbGb
	baseOps[0x89] = opMovEvGv
	baseOps[0x8A] = opMovGbEb
	baseOps[0x8B] = opMovGvEv
	baseOps[0x8C] = opMovEvSw
	baseOps[0x8D] = opLea
	baseOps[0x8E] = opMovSwEv
	baseOps[0x8F] = opPopEv

	baseOps[0x90] = func(c *CPU) {} // XCHG AX,AX = NOP
	for i := byte(1); i < 8; i++ {
		i := i
		baseOps[0x90+i] = func(c *CPU) {
			ax := c.wordReg(regAX)
			c.setWordReg(regAX, c.wordReg(i))
			c.setWordReg(i, ax)
		}
	}

	baseOps[0x98] = func(c *CPU) { // CBW
		al := int8(c.regByte(regAL))
		c.setWordReg(regAX, uint16(int16(al)))
	}
	baseOps[0x99] = func(c *CPU) { // CWD
		ax := int16(c.wordReg(regAX))
		if ax < 0 {
			c.setWordReg(regDX, 0xFFFF)
		} else {
			c.setWordReg(regDX, 0)
		}
	}

	baseOps[0x9C] = func(c *CPU) { c.push16(c.Flags) }
	baseOps[0x9D] = func(c *CPU) { c.Flags = c.pop16() }
	baseOps[0x9E] = func(c *CPU) { // SAHF
		ah := c.regByte(regAH)
		c.Flags = c.Flags&0xFF00 | uint16(ah)
	}
	baseOps[0x9F] = func(c *CPU) { c.setByte(regAH, byte(c.Flags)) } // LAHF

	baseOps[0xA0] = func(c *CPU) { // MOV AL, moffs8
		off := c.fetch16()
		seg := c.segmentFor(segDS)
		c.setByte(regAL, c.mem.Read8(Linear(seg, off)))
	}
	baseOps[0xA1] = func(c *CPU) { // MOV AX, moffs16
		off := c.fetch16()
		seg := c.segmentFor(segDS)
		c.setWordReg(regAX, c.mem.Read16(Linear(seg, off)))
	}
	baseOps[0xA2] = func(c *CPU) { // MOV moffs8, AL
		off := c.fetch16()
		seg := c.segmentFor(segDS)
		c.mem.Write8(Linear(seg, off), c.regByte(regAL))
	}
	baseOps[0xA3] = func(c *CPU) { // MOV moffs16, AX
		off := c.fetch16()
		seg := c.segmentFor(segDS)
		c.mem.Write16(Linear(seg, off), c.wordReg(regAX))
	}

	baseOps[0xA8] = func(c *CPU) { c.and8(c.regByte(regAL), c.fetch8()) }   // TEST AL,Ib (discards result)
	baseOps[0xA9] = func(c *CPU) { c.and16(c.wordReg(regAX), c.fetch16()) } // TEST AX,Iv

	// MOV reg8, imm8 (0xB0-0xB7) / reg16, imm16 (0xB8-0xBF).
	for i := byte(0); i < 8; i++ {
		i := i
		baseOps[0xB0+i] = func(c *CPU) { c.setByte(i, c.fetch8()) }
		baseOps[0xB8+i] = func(c *CPU) { c.setWordReg(i, c.fetch16()) }
	}

	baseOps[0xC2] = func(c *CPU) { // RET imm16 (near)
		n := c.fetch16()
		c.IP = c.pop16()
		c.sp += n
	}
	baseOps[0xC3] = func(c *CPU) { c.IP = c.pop16() } // RET (near)
	baseOps[0xC6] = opMovEbIb
	baseOps[0xC7] = opMovEvIv
	baseOps[0xCA] = func(c *CPU) { // RET imm16 (far)
		n := c.fetch16()
		c.IP = c.pop16()
		c.setSeg(segCS, c.pop16())
		c.sp += n
	}
	baseOps[0xCB] = func(c *CPU) { // RET (far)
		c.IP = c.pop16()
		c.setSeg(segCS, c.pop16())
	}
	baseOps[0xCC] = func(c *CPU) { c.SoftwareInterrupt(3) }
	baseOps[0xCD] = func(c *CPU) { c.SoftwareInterrupt(c.fetch8()) }
	baseOps[0xCE] = func(c *CPU) {
		if c.getFlag(flagOF) {
			c.SoftwareInterrupt(4)
		}
	}
	baseOps[0xCF] = func(c *CPU) { // IRET
		c.IP = c.pop16()
		c.setSeg(segCS, c.pop16())
		c.Flags = c.pop16()
	}

	baseOps[0xE0] = func(c *CPU) { opLoop(c, func(zf bool) bool { return !zf }) } // LOOPNE/LOOPNZ
	baseOps[0xE1] = func(c *CPU) { opLoop(c, func(zf bool) bool { return zf }) }  // LOOPE/LOOPZ
	baseOps[0xE2] = func(c *CPU) { opLoop(c, func(bool) bool { return true }) }   // LOOP
	baseOps[0xE3] = func(c *CPU) { // JCXZ
		rel := int8(c.fetch8())
		if c.wordReg(regCX) == 0 {
			c.IP = uint16(int32(c.IP) + int32(rel))
		}
	}

	baseOps[0xE4] = func(c *CPU) { c.setByte(regAL, c.in8(uint16(c.fetch8()))) }
	baseOps[0xE5] = func(c *CPU) { c.setWordReg(regAX, c.in16(uint16(c.fetch8()))) }
	baseOps[0xE6] = func(c *CPU) { c.out8(uint16(c.fetch8()), c.regByte(regAL)) }
	baseOps[0xE7] = func(c *CPU) { c.out16(uint16(c.fetch8()), c.wordReg(regAX)) }

	baseOps[0xE8] = func(c *CPU) { // CALL near rel16
		rel := int16(c.fetch16())
		ret := c.IP
		c.IP = uint16(int32(c.IP) + int32(rel))
		c.push16(ret)
	}
	baseOps[0xE9] = func(c *CPU) { // JMP near rel16
		rel := int16(c.fetch16())
		c.IP = uint16(int32(c.IP) + int32(rel))
	}
	baseOps[0xEA] = func(c *CPU) { // JMP far ptr16:16
		off := c.fetch16()
		seg := c.fetch16()
		c.IP = off
		c.setSeg(segCS, seg)
	}
	baseOps[0xEB] = func(c *CPU) { // JMP short rel8
		rel := int8(c.fetch8())
		c.IP = uint16(int32(c.IP) + int32(rel))
	}

	baseOps[0xEC] = func(c *CPU) { c.setByte(regAL, c.in8(c.wordReg(regDX))) }
	baseOps[0xED] = func(c *CPU) { c.setWordReg(regAX, c.in16(c.wordReg(regDX))) }
	baseOps[0xEE] = func(c *CPU) { c.out8(c.wordReg(regDX), c.regByte(regAL)) }
	baseOps[0xEF] = func(c *CPU) { c.out16(c.wordReg(regDX), c.wordReg(regAX)) }

	baseOps[0xF4] = func(c *CPU) { c.Halted = true }                       // HLT
	baseOps[0xF5] = func(c *CPU) { c.setFlag(flagCF, !c.getFlag(flagCF)) } // CMC
	baseOps[0xF8] = func(c *CPU) { c.setFlag(flagCF, false) }
	baseOps[0xF9] = func(c *CPU) { c.setFlag(flagCF, true) }
	baseOps[0xFA] = func(c *CPU) { c.setFlag(flagIF, false) }
	baseOps[0xFB] = func(c *CPU) { c.setFlag(flagIF, true) }
	baseOps[0xFC] = func(c *CPU) { c.setFlag(flagDF, false) }
	baseOps[0xFD] = func(c *CPU) { c.setFlag(flagDF, true) }

	// String ops and the F6/F7/FE/FF/80-83/C0/C1/D0-D3 groups are
	// installed by cpu_string.go's init and cpu_group.go's init.
}

func (c *CPU) condition(cc byte) bool {
	switch cc {
	case 0x0: // JO
		return c.getFlag(flagOF)
	case 0x1: // JNO
		return !c.getFlag(flagOF)
	case 0x2: // JB/JC
		return c.getFlag(flagCF)
	case 0x3: // JAE/JNC
		return !c.getFlag(flagCF)
	case 0x4: // JE/JZ
		return c.getFlag(flagZF)
	case 0x5: // JNE/JNZ
		return !c.getFlag(flagZF)
	case 0x6: // JBE
		return c.getFlag(flagCF) || c.getFlag(flagZF)
	case 0x7: // JA
		return !c.getFlag(flagCF) && !c.getFlag(flagZF)
	case 0x8: // JS
		return c.getFlag(flagSF)
	case 0x9: // JNS
		return !c.getFlag(flagSF)
	case 0xA: // JP/JPE
		return c.getFlag(flagPF)
	case 0xB: // JNP/JPO
		return !c.getFlag(flagPF)
	case 0xC: // JL
		return c.getFlag(flagSF) != c.getFlag(flagOF)
	case 0xD: // JGE
		return c.getFlag(flagSF) == c.getFlag(flagOF)
	case 0xE: // JLE
		return c.getFlag(flagZF) || c.getFlag(flagSF) != c.getFlag(flagOF)
	case 0xF: // JG
		return !c.getFlag(flagZF) && c.getFlag(flagSF) == c.getFlag(flagOF)
	}
	return false
}

func opLoop(c *CPU, takeIf func(zf bool) bool) {
	rel := int8(c.fetch8())
	cx := c.dec16Raw(c.wordReg(regCX))
	c.setWordReg(regCX, cx)
	if cx != 0 && takeIf(c.getFlag(flagZF)) {
		c.IP = uint16(int32(c.IP) + int32(rel))
	}
}

// dec16Raw decrements without touching flags, since LOOP's CX
// decrement is not a flag-affecting operation.
func (c *CPU) dec16Raw(v uint16) uint16 { return v - 1 }

func opTestEbGb(c *CPU) {
	m := c.fetchModRM()
	c.and8(c.readRMByte(m), c.regByte(m.Reg))
}

func opTestEvGv(c *CPU) {
	m := c.fetchModRM()
	c.and16(c.readRMWord(m), c.wordReg(m.Reg))
}

func opXchgEbGb(c *CPU) {
	m := c.fetchModRM()
	v := c.readRMByte(m)
	g := c.regByte(m.Reg)
	c.writeRMByte(m, g)
	c.setByte(m.Reg, v)
}

func opXchgEvGv(c *CPU) {
	m := c.fetchModRM()
	v := c.readRMWord(m)
	g := c.wordReg(m.Reg)
	c.writeRMWord(m, g)
	c.setWordReg(m.Reg, v)
}

func opMovEbGb(c *CPU) {
	m := c.fetchModRM()
	c.writeRMByte(m, c.regByte(m.Reg))
}

func opMovEvGv(c *CPU) {
	m := c.fetchModRM()
	c.writeRMWord(m, c.wordReg(m.Reg))
}

func opMovGbEb(c *CPU) {
	m := c.fetchModRM()
	c.setByte(m.Reg, c.readRMByte(m))
}

func opMovGvEv(c *CPU) {
	m := c.fetchModRM()
	c.setWordReg(m.Reg, c.readRMWord(m))
}

func opMovEvSw(c *CPU) {
	m := c.fetchModRM()
	c.writeRMWord(m, c.seg(int(m.Reg&3)))
}

func opMovSwEv(c *CPU) {
	m := c.fetchModRM()
	c.setSeg(int(m.Reg&3), c.readRMWord(m))
}

func opLea(c *CPU) {
	m := c.fetchModRM()
	if m.Mod == 3 {
		return // undefined form; leave register untouched
	}
	ea := c.effectiveAddress(m)
	// effectiveAddress folds in the segment base; LEA wants the
	// offset only, so strip it back out.
	seg := c.lastSegmentUsed
	c.setWordReg(m.Reg, uint16(ea-uint32(seg)<<4))
}

func opPopEv(c *CPU) {
	m := c.fetchModRM()
	c.writeRMWord(m, c.pop16())
}

func opMovEbIb(c *CPU) {
	m := c.fetchModRM()
	c.writeRMByte(m, c.fetch8())
}

func opMovEvIv(c *CPU) {
	m := c.fetchModRM()
	c.writeRMWord(m, c.fetch16())
}

func (c *CPU) in16(port uint16) uint16 {
	lo := c.in8(port)
	hi := c.in8(port + 1)
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) out16(port uint16, v uint16) {
	c.out8(port, byte(v))
	c.out8(port+1, byte(v>>8))
}
