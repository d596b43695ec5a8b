// cpu_modrm_test.go - ModR/M decode unit tests
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import "testing"

// TestDecodeModRM_NumBytesExhaustive checks the post-opcode byte count
// for every possible mod-reg-rm byte: 1 for register and plain
// register-indirect forms, 2 with an 8-bit displacement, 3 with a
// 16-bit displacement or the mod=0/rm=6 direct-address form.
func TestDecodeModRM_NumBytesExhaustive(t *testing.T) {
	for b := 0; b < 256; b++ {
		raw := []byte{byte(b), 0x34, 0x12}
		m := DecodeModRM(raw)

		mod := byte(b) >> 6
		rm := byte(b) & 7
		want := 0
		switch {
		case mod == 0 && rm == 6:
			want = 3
		case mod == 0, mod == 3:
			want = 1
		case mod == 1:
			want = 2
		case mod == 2:
			want = 3
		}
		if m.NumBytes != want {
			t.Errorf("modrm 0x%02X: NumBytes got %d, want %d", b, m.NumBytes, want)
		}
		if m.Mod != mod || m.Rm != rm || m.Reg != (byte(b)>>3)&7 {
			t.Errorf("modrm 0x%02X: field split got mod=%d reg=%d rm=%d", b, m.Mod, m.Reg, m.Rm)
		}
	}
}

func TestDecodeModRM_Displacements(t *testing.T) {
	// mod=1: sign-extended 8-bit displacement.
	m := DecodeModRM([]byte{0x47, 0xFE, 0x00}) // mod=01 reg=000 rm=111, disp8 -2
	if m.Disp != -2 {
		t.Errorf("disp8: got %d, want -2", m.Disp)
	}

	// mod=2: full 16-bit displacement.
	m = DecodeModRM([]byte{0x87, 0x34, 0x12}) // mod=10, disp16 0x1234
	if m.Disp != 0x1234 {
		t.Errorf("disp16: got 0x%04X, want 0x1234", m.Disp)
	}

	// mod=0 rm=6: direct 16-bit address, no base register.
	m = DecodeModRM([]byte{0x06, 0x00, 0x80})
	if !m.DirectAddr || uint16(m.Disp) != 0x8000 {
		t.Errorf("direct: got DirectAddr=%v disp=0x%04X, want true/0x8000", m.DirectAddr, uint16(m.Disp))
	}
}

// TestEffectiveAddress_BPFormsDefaultToSS checks the default-segment
// rule: rm 2, 3, and 6-with-displacement base off BP and use SS; every
// other form uses DS.
func TestEffectiveAddress_BPFormsDefaultToSS(t *testing.T) {
	c, _ := newTestCPU()
	c.ss = 0x3000
	c.ds = 0x1000
	c.bp = 0x0040
	c.si = 0x0002

	m := DecodeModRM([]byte{0x02, 0, 0}) // mod=00 rm=010: [BP+SI]
	if got := c.effectiveAddress(m); got != Linear(0x3000, 0x0042) {
		t.Errorf("[BP+SI] EA: got 0x%X, want SS-based 0x%X", got, Linear(0x3000, 0x0042))
	}

	m = DecodeModRM([]byte{0x04, 0, 0}) // mod=00 rm=100: [SI]
	if got := c.effectiveAddress(m); got != Linear(0x1000, 0x0002) {
		t.Errorf("[SI] EA: got 0x%X, want DS-based 0x%X", got, Linear(0x1000, 0x0002))
	}
}

func TestEffectiveAddress_OverrideReplacesDefault(t *testing.T) {
	c, _ := newTestCPU()
	c.ss = 0x3000
	c.es = 0x5000
	c.bp = 0x0010
	c.segOverride = segES

	m := DecodeModRM([]byte{0x46, 0x04, 0}) // mod=01 rm=110: [BP+4]
	if got := c.effectiveAddress(m); got != Linear(0x5000, 0x0014) {
		t.Errorf("ES:[BP+4] EA: got 0x%X, want 0x%X", got, Linear(0x5000, 0x0014))
	}
	if c.segOverride != -1 {
		t.Error("effectiveAddress must consume the pending override")
	}
}
