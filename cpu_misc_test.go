// cpu_misc_test.go - tests for BCD adjust, far pointer and XLAT opcodes
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import "testing"

func TestCPU_AAM_UnpacksDecimalDigits(t *testing.T) {
	c, mem := newTestCPU()
	c.setByte(regAL, 0x32) // 50 decimal
	loadCode(c, mem, []byte{0xD4, 0x0A})
	c.Step()
	if c.regByte(regAH) != 5 || c.regByte(regAL) != 0 {
		t.Errorf("AAM: got AH=%d AL=%d, want AH=5 AL=0", c.regByte(regAH), c.regByte(regAL))
	}
}

func TestCPU_AAM_ZeroDivisorVectorsThroughInt0(t *testing.T) {
	c, mem := newTestCPU()
	c.ss = 0x0000
	c.sp = 0x0100
	mem.Write16(0, 0x1111) // vector 0 IP
	mem.Write16(2, 0x2222) // vector 0 CS
	loadCode(c, mem, []byte{0xD4, 0x00})
	c.Step()
	if c.IP != 0x1111 || c.cs != 0x2222 {
		t.Errorf("AAM 0 did not vector through INT 0: CS:IP = %04X:%04X", c.cs, c.IP)
	}
}

func TestCPU_AAD_PacksDecimalDigits(t *testing.T) {
	c, mem := newTestCPU()
	c.setByte(regAH, 5)
	c.setByte(regAL, 0)
	loadCode(c, mem, []byte{0xD5, 0x0A})
	c.Step()
	if c.regByte(regAL) != 50 || c.regByte(regAH) != 0 {
		t.Errorf("AAD: got AL=%d AH=%d, want AL=50 AH=0", c.regByte(regAL), c.regByte(regAH))
	}
}

func TestCPU_DAA_AdjustsAfterBCDAdd(t *testing.T) {
	c, mem := newTestCPU()
	c.setByte(regAL, 0x0F) // invalid low nibble, forces +6
	loadCode(c, mem, []byte{0x27})
	c.Step()
	if c.regByte(regAL) != 0x15 || !c.getFlag(flagAF) {
		t.Errorf("DAA: got AL=0x%02X AF=%v, want AL=0x15 AF=true", c.regByte(regAL), c.getFlag(flagAF))
	}
}

func TestCPU_XLAT_IndexesTableWithAL(t *testing.T) {
	c, mem := newTestCPU()
	c.ds = 0x1000
	c.bx = 0x0010
	mem.Write8(Linear(0x1000, 0x0013), 0x99)
	c.setByte(regAL, 3)
	loadCode(c, mem, []byte{0xD7})
	c.Step()
	if c.regByte(regAL) != 0x99 {
		t.Errorf("XLAT: got AL=0x%02X, want 0x99", c.regByte(regAL))
	}
}

func TestCPU_LES_LoadsRegisterAndSegment(t *testing.T) {
	c, mem := newTestCPU()
	c.ds = 0x2000
	c.bx = 0x0000
	mem.Write16(Linear(0x2000, 0x0000), 0x1234) // offset
	mem.Write16(Linear(0x2000, 0x0002), 0x4000) // segment
	// LES AX, [BX]: C4 /0 mod=00 rm=111 -> C4 07
	loadCode(c, mem, []byte{0xC4, 0x07})
	c.Step()
	if c.wordReg(regAX) != 0x1234 || c.es != 0x4000 {
		t.Errorf("LES: got AX=0x%04X ES=0x%04X, want AX=0x1234 ES=0x4000", c.wordReg(regAX), c.es)
	}
}

func TestCPU_CallFarPushesReturnFrame(t *testing.T) {
	c, mem := newTestCPU()
	c.ss = 0x0000
	c.sp = 0x0100
	c.cs = 0x1000
	c.IP = 0
	// CALL far 0x2000:0x0050
	loadCode(c, mem, []byte{0x9A, 0x50, 0x00, 0x00, 0x20})
	c.Step()
	if c.IP != 0x0050 || c.cs != 0x2000 {
		t.Errorf("CALL far: got CS:IP=%04X:%04X, want 2000:0050", c.cs, c.IP)
	}
	retIP := c.pop16()
	retCS := c.pop16()
	if retIP != 5 || retCS != 0x1000 {
		t.Errorf("CALL far: return frame got CS:IP=%04X:%04X, want 1000:0005", retCS, retIP)
	}
}
