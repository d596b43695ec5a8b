// cpu_misc.go - remaining 8086 base opcodes (BCD, far pointers, table lookup)
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

/*
cpu_misc.go fills in the base-opcode-table entries that don't belong
with the ALU/group/string families in cpu_ops.go, cpu_group.go and
cpu_string.go: the BCD adjust instructions (DAA/DAS/AAA/AAS/AAM/AAD),
far-pointer loads (LES/LDS), direct far CALL, and the XLAT table
lookup. Installed from init() into baseOps, same as every other file
in this family.
*/

package main

func init() {
	baseOps[0x27] = opDAA
	baseOps[0x2F] = opDAS
	baseOps[0x37] = opAAA
	baseOps[0x3F] = opAAS

	baseOps[0x9A] = func(c *CPU) { // CALL far ptr16:16
		off := c.fetch16()
		seg := c.fetch16()
		c.push16(c.seg(segCS))
		c.push16(c.IP)
		c.IP = off
		c.setSeg(segCS, seg)
	}

	baseOps[0xC4] = opLes
	baseOps[0xC5] = opLds

	baseOps[0x9B] = func(c *CPU) {} // WAIT: no coprocessor attached, always ready

	baseOps[0xD4] = func(c *CPU) { c.aam(c.fetch8()) } // AAM
	baseOps[0xD5] = func(c *CPU) { c.aad(c.fetch8()) } // AAD
	baseOps[0xD7] = func(c *CPU) {                     // XLAT
		seg := c.segmentFor(segDS)
		addr := Linear(seg, c.bx+uint16(c.regByte(regAL)))
		c.setByte(regAL, c.mem.Read8(addr))
	}
}

// opLes/opLds load ES:reg16 or DS:reg16 from a far-pointer memory
// operand (mod==3 is undefined on real hardware; left as a no-op here
// the same way opLea treats its own mod==3 case).
func opLes(c *CPU) {
	m := c.fetchModRM()
	if m.Mod == 3 {
		return
	}
	ea := c.effectiveAddress(m)
	c.setWordReg(m.Reg, c.mem.Read16(ea))
	c.setSeg(segES, c.mem.Read16(ea+2))
}

func opLds(c *CPU) {
	m := c.fetchModRM()
	if m.Mod == 3 {
		return
	}
	ea := c.effectiveAddress(m)
	c.setWordReg(m.Reg, c.mem.Read16(ea))
	c.setSeg(segDS, c.mem.Read16(ea+2))
}

// opDAA/opDAS/opAAA/opAAS implement the 8086 BCD-adjust instructions
// per the standard Intel adjustment rules: AF/CF from the low/high
// nibble carry tests, AL folded back into valid BCD or unpacked digit
// range.
func opDAA(c *CPU) {
	al := c.regByte(regAL)
	cf := c.getFlag(flagCF)
	af := c.getFlag(flagAF)
	old := al

	if al&0xF > 9 || af {
		al += 6
		c.setFlag(flagAF, true)
	} else {
		c.setFlag(flagAF, false)
	}
	if old > 0x99 || cf {
		al += 0x60
		c.setFlag(flagCF, true)
	} else {
		c.setFlag(flagCF, false)
	}
	c.setByte(regAL, al)
	c.setPZS8(al)
}

func opDAS(c *CPU) {
	al := c.regByte(regAL)
	cf := c.getFlag(flagCF)
	af := c.getFlag(flagAF)
	old := al

	if al&0xF > 9 || af {
		al -= 6
		c.setFlag(flagAF, true)
	} else {
		c.setFlag(flagAF, false)
	}
	if old > 0x99 || cf {
		al -= 0x60
		c.setFlag(flagCF, true)
	} else {
		c.setFlag(flagCF, false)
	}
	c.setByte(regAL, al)
	c.setPZS8(al)
}

func opAAA(c *CPU) {
	al := c.regByte(regAL)
	ah := c.regByte(regAH)
	if al&0xF > 9 || c.getFlag(flagAF) {
		al += 6
		ah++
		c.setFlag(flagAF, true)
		c.setFlag(flagCF, true)
	} else {
		c.setFlag(flagAF, false)
		c.setFlag(flagCF, false)
	}
	c.setByte(regAL, al&0xF)
	c.setByte(regAH, ah)
}

func opAAS(c *CPU) {
	al := c.regByte(regAL)
	ah := c.regByte(regAH)
	if al&0xF > 9 || c.getFlag(flagAF) {
		al -= 6
		ah--
		c.setFlag(flagAF, true)
		c.setFlag(flagCF, true)
	} else {
		c.setFlag(flagAF, false)
		c.setFlag(flagCF, false)
	}
	c.setByte(regAL, al&0xF)
	c.setByte(regAH, ah)
}

// aam/aad implement AAM/AAD's base-10 unpack/pack between AH:AL, per
// the immediate divisor form (always 10 for D4 0A / D5 0A, but the
// encoding permits any imm8). A zero divisor vectors through INT 0,
// as the hardware does for D4 00.
func (c *CPU) aam(base byte) {
	if base == 0 {
		c.SoftwareInterrupt(0)
		return
	}
	al := c.regByte(regAL)
	ah := al / base
	al = al % base
	c.setByte(regAH, ah)
	c.setByte(regAL, al)
	c.setPZS8(al)
}

func (c *CPU) aad(base byte) {
	if base == 0 {
		c.SoftwareInterrupt(0)
		return
	}
	al := c.regByte(regAL)
	ah := c.regByte(regAH)
	result := ah*base + al
	c.setByte(regAL, result)
	c.setByte(regAH, 0)
	c.setPZS8(result)
}
