// cpu_group.go - 8086 reg-field sub-opcode groups
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

/*
cpu_group.go implements the opcodes whose ModR/M reg field selects a
sub-operation rather than a register operand: the 80-83 immediate-ALU
group, the C0-C1/D0-D3 shift-rotate group, the F6-F7 unary group
(TEST/NOT/NEG/MUL/IMUL/DIV/IDIV) and the FE-FF INC/DEC/CALL/JMP/PUSH
group. Each installs into baseOps from init(): one opcode byte, one
dispatcher that switches on m.Reg.
*/

package main

func init() {
	aluByReg := [8]struct {
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
		{nil, nil}, // CMP
	}

	baseOps[0x80] = func(c *CPU) { // Eb, Ib
		m := c.fetchModRM()
		v := c.readRMByte(m)
		imm := c.fetch8()
		if m.Reg == 7 {
			c.cmp8(v, imm)
			return
		}
		c.writeRMByte(m, aluByReg[m.Reg].op8(c, v, imm))
	}
	baseOps[0x81] = func(c *CPU) { // Ev, Iv
		m := c.fetchModRM()
		v := c.readRMWord(m)
		imm := c.fetch16()
		if m.Reg == 7 {
			c.cmp16(v, imm)
			return
		}
		c.writeRMWord(m, aluByReg[m.Reg].op16(c, v, imm))
	}
	baseOps[0x82] = func(c *CPU) { // Eb, Ib (sign-extended alias of 80h)
		m := c.fetchModRM()
		v := c.readRMByte(m)
		imm := c.fetch8()
		if m.Reg == 7 {
			c.cmp8(v, imm)
			return
		}
		c.writeRMByte(m, aluByReg[m.Reg].op8(c, v, imm))
	}
	baseOps[0x83] = func(c *CPU) { // Ev, Ib sign-extended to 16
		m := c.fetchModRM()
		v := c.readRMWord(m)
		imm := uint16(int16(int8(c.fetch8())))
		if m.Reg == 7 {
			c.cmp16(v, imm)
			return
		}
		c.writeRMWord(m, aluByReg[m.Reg].op16(c, v, imm))
	}

	baseOps[0xC0] = func(c *CPU) { // Eb, Ib
		m := c.fetchModRM()
		v := c.readRMByte(m)
		count := c.fetch8()
		c.writeRMByte(m, c.shiftRotate8(m.Reg, v, count))
	}
	baseOps[0xC1] = func(c *CPU) { // Ev, Ib
		m := c.fetchModRM()
		v := c.readRMWord(m)
		count := c.fetch8()
		c.writeRMWord(m, c.shiftRotate16(m.Reg, v, count))
	}
	baseOps[0xD0] = func(c *CPU) { // Eb, 1
		m := c.fetchModRM()
		v := c.readRMByte(m)
		c.writeRMByte(m, c.shiftRotate8(m.Reg, v, 1))
	}
	baseOps[0xD1] = func(c *CPU) { // Ev, 1
		m := c.fetchModRM()
		v := c.readRMWord(m)
		c.writeRMWord(m, c.shiftRotate16(m.Reg, v, 1))
	}
	baseOps[0xD2] = func(c *CPU) { // Eb, CL
		m := c.fetchModRM()
		v := c.readRMByte(m)
		c.writeRMByte(m, c.shiftRotate8(m.Reg, v, c.regByte(regCL)))
	}
	baseOps[0xD3] = func(c *CPU) { // Ev, CL
		m := c.fetchModRM()
		v := c.readRMWord(m)
		c.writeRMWord(m, c.shiftRotate16(m.Reg, v, c.regByte(regCL)))
	}

	baseOps[0xF6] = opGrp3Byte
	baseOps[0xF7] = opGrp3Word
	baseOps[0xFE] = opGrp4
	baseOps[0xFF] = opGrp5
}

// opGrp3Byte implements F6 /0-7: TEST/TEST/NOT/NEG/MUL/IMUL/DIV/IDIV
// on a byte operand.
func opGrp3Byte(c *CPU) {
	m := c.fetchModRM()
	v := c.readRMByte(m)
	switch m.Reg {
	case 0, 1: // TEST Eb, Ib
		c.and8(v, c.fetch8())
	case 2: // NOT
		c.writeRMByte(m, ^v)
	case 3: // NEG
		c.writeRMByte(m, c.sub8(0, v))
		c.setFlag(flagCF, v != 0)
	case 4: // MUL AL, Eb -> AX
		al := c.regByte(regAL)
		r := uint16(al) * uint16(v)
		c.setWordReg(regAX, r)
		overflow := r > 0xFF
		c.setFlag(flagCF, overflow)
		c.setFlag(flagOF, overflow)
	case 5: // IMUL AL, Eb -> AX
		r := int16(int8(c.regByte(regAL))) * int16(int8(v))
		c.setWordReg(regAX, uint16(r))
		overflow := r < -128 || r > 127
		c.setFlag(flagCF, overflow)
		c.setFlag(flagOF, overflow)
	case 6: // DIV AX by Eb -> AL quotient, AH remainder
		if v == 0 {
			c.SoftwareInterrupt(0)
			return
		}
		ax := c.wordReg(regAX)
		q, r := ax/uint16(v), ax%uint16(v)
		c.setByte(regAL, byte(q))
		c.setByte(regAH, byte(r))
	case 7: // IDIV AX by Eb
		if v == 0 {
			c.SoftwareInterrupt(0)
			return
		}
		ax := int16(c.wordReg(regAX))
		d := int16(int8(v))
		q, r := ax/d, ax%d
		c.setByte(regAL, byte(q))
		c.setByte(regAH, byte(r))
	}
}

// opGrp3Word is the 16-bit-operand mirror of opGrp3Byte (F7 /0-7).
func opGrp3Word(c *CPU) {
	m := c.fetchModRM()
	v := c.readRMWord(m)
	switch m.Reg {
	case 0, 1: // TEST Ev, Iv
		c.and16(v, c.fetch16())
	case 2: // NOT
		c.writeRMWord(m, ^v)
	case 3: // NEG
		c.writeRMWord(m, c.sub16(0, v))
		c.setFlag(flagCF, v != 0)
	case 4: // MUL AX, Ev -> DX:AX
		ax := c.wordReg(regAX)
		r := uint32(ax) * uint32(v)
		c.setWordReg(regAX, uint16(r))
		c.setWordReg(regDX, uint16(r>>16))
		overflow := uint16(r>>16) != 0
		c.setFlag(flagCF, overflow)
		c.setFlag(flagOF, overflow)
	case 5: // IMUL AX, Ev -> DX:AX
		r := int32(int16(c.wordReg(regAX))) * int32(int16(v))
		c.setWordReg(regAX, uint16(r))
		c.setWordReg(regDX, uint16(r>>16))
		overflow := r < -32768 || r > 32767
		c.setFlag(flagCF, overflow)
		c.setFlag(flagOF, overflow)
	case 6: // DIV DX:AX by Ev -> AX quotient, DX remainder
		if v == 0 {
			c.SoftwareInterrupt(0)
			return
		}
		dividend := uint32(c.wordReg(regDX))<<16 | uint32(c.wordReg(regAX))
		q, r := dividend/uint32(v), dividend%uint32(v)
		c.setWordReg(regAX, uint16(q))
		c.setWordReg(regDX, uint16(r))
	case 7: // IDIV DX:AX by Ev
		if v == 0 {
			c.SoftwareInterrupt(0)
			return
		}
		dividend := int32(uint32(c.wordReg(regDX))<<16 | uint32(c.wordReg(regAX)))
		d := int32(int16(v))
		q, r := dividend/d, dividend%d
		c.setWordReg(regAX, uint16(q))
		c.setWordReg(regDX, uint16(r))
	}
}

// opGrp4 implements FE /0-1: INC/DEC Eb. FE has no CALL/JMP/PUSH
// forms (those are 16-bit-operand only, group 5).
func opGrp4(c *CPU) {
	m := c.fetchModRM()
	v := c.readRMByte(m)
	switch m.Reg {
	case 0:
		c.writeRMByte(m, c.inc8(v))
	case 1:
		c.writeRMByte(m, c.dec8(v))
	}
}

// opGrp5 implements FF /0-6: INC/DEC/CALL near/CALL far/JMP near/
// JMP far/PUSH Ev.
func opGrp5(c *CPU) {
	m := c.fetchModRM()
	switch m.Reg {
	case 0:
		c.writeRMWord(m, c.inc16(c.readRMWord(m)))
	case 1:
		c.writeRMWord(m, c.dec16(c.readRMWord(m)))
	case 2: // CALL near indirect
		target := c.readRMWord(m)
		c.push16(c.IP)
		c.IP = target
	case 3: // CALL far indirect
		ea := c.effectiveAddress(m)
		off := c.mem.Read16(ea)
		seg := c.mem.Read16(ea + 2)
		c.push16(c.seg(segCS))
		c.push16(c.IP)
		c.IP = off
		c.setSeg(segCS, seg)
	case 4: // JMP near indirect
		c.IP = c.readRMWord(m)
	case 5: // JMP far indirect
		ea := c.effectiveAddress(m)
		off := c.mem.Read16(ea)
		seg := c.mem.Read16(ea + 2)
		c.IP = off
		c.setSeg(segCS, seg)
	case 6: // PUSH Ev
		c.push16(c.readRMWord(m))
	}
}
