// cpu_modrm.go - ModR/M decode as a pure function
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

/*
cpu_modrm.go implements ModR/M decode as a pure function over a byte
slice: DecodeModRM reads only from the bytes handed to it and returns
the decode record plus the exact post-opcode byte count, with no
dependency on register state. A second step, (*CPU).effectiveAddress,
combines the record with the live register file to produce the linear
address and default segment - kept separate so the decode step alone
can be tested against all 256 mod-reg-rm bytes.
*/

package main

// ModRM is the decoded addressing-mode byte plus any trailing
// displacement bytes.
type ModRM struct {
	Mod        byte
	Reg        byte
	Rm         byte
	Disp       int16 // sign-extended displacement; 0 when none applies
	NumBytes   int   // bytes consumed after the opcode: 1, 2 or 3
	DirectAddr bool  // mod==0, rm==6: disp16 is an absolute offset, no base register
}

// DecodeModRM decodes the ModR/M byte at b[0] and any displacement
// bytes that follow in b. The caller must ensure len(b) covers the
// worst case (3 bytes); the 8086 always has enough instruction stream
// behind a ModR/M byte for this to hold in practice.
func DecodeModRM(b []byte) ModRM {
	m := ModRM{
		Mod: b[0] >> 6,
		Reg: (b[0] >> 3) & 7,
		Rm:  b[0] & 7,
	}

	switch m.Mod {
	case 0:
		if m.Rm == 6 {
			m.Disp = int16(uint16(b[1]) | uint16(b[2])<<8)
			m.NumBytes = 3
			m.DirectAddr = true
		} else {
			m.NumBytes = 1
		}
	case 1:
		m.Disp = int16(int8(b[1]))
		m.NumBytes = 2
	case 2:
		m.Disp = int16(uint16(b[1]) | uint16(b[2])<<8)
		m.NumBytes = 3
	case 3:
		m.NumBytes = 1
	}
	return m
}

// defaultSegment returns the default segment index for a decoded
// ModR/M record: SS when rm is 2, 3, or (6 with mod != 0), since those
// forms base off BP; DS otherwise.
func (m ModRM) defaultSegment() int {
	if m.Rm == 2 || m.Rm == 3 || (m.Rm == 6 && m.Mod != 0) {
		return segSS
	}
	return segDS
}

// effectiveAddress computes the linear address for a memory-mode
// ModR/M record using the CPU's current register contents, applying
// any pending segment override (consumed by this call).
func (c *CPU) effectiveAddress(m ModRM) uint32 {
	var base uint16
	switch m.Rm {
	case 0:
		base = c.bx + c.si
	case 1:
		base = c.bx + c.di
	case 2:
		base = c.bp + c.si
	case 3:
		base = c.bp + c.di
	case 4:
		base = c.si
	case 5:
		base = c.di
	case 6:
		if m.DirectAddr {
			base = uint16(m.Disp)
		} else {
			base = c.bp
		}
	case 7:
		base = c.bx
	}
	if !m.DirectAddr {
		base += uint16(m.Disp)
	}
	seg := c.segmentFor(m.defaultSegment())
	c.lastSegmentUsed = seg
	return Linear(seg, base)
}

// fetchModRM fetches the ModR/M byte (and any displacement) from the
// instruction stream at CS:IP, advancing IP by NumBytes.
func (c *CPU) fetchModRM() ModRM {
	var raw [3]byte
	at := c.IP
	for i := 0; i < 3; i++ {
		raw[i] = c.mem.Read8(Linear(c.cs, at+uint16(i)))
	}
	m := DecodeModRM(raw[:])
	c.IP += uint16(m.NumBytes)
	return m
}

// --- operand access ----------------------------------------------------

func (c *CPU) readRMByte(m ModRM) byte {
	if m.Mod == 3 {
		return c.regByte(m.Rm)
	}
	return c.mem.Read8(c.effectiveAddress(m))
}

func (c *CPU) writeRMByte(m ModRM, v byte) {
	if m.Mod == 3 {
		c.setByte(m.Rm, v)
		return
	}
	c.mem.Write8(c.effectiveAddress(m), v)
}

func (c *CPU) readRMWord(m ModRM) uint16 {
	if m.Mod == 3 {
		return c.wordReg(m.Rm)
	}
	return c.mem.Read16(c.effectiveAddress(m))
}

func (c *CPU) writeRMWord(m ModRM, v uint16) {
	if m.Mod == 3 {
		c.setWordReg(m.Rm, v)
		return
	}
	c.mem.Write16(c.effectiveAddress(m), v)
}
