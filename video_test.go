// video_test.go - Video adapter unit tests
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import "testing"

func TestVideoAdapter_ModeSetUpdatesGeometry(t *testing.T) {
	v := NewVideoAdapter()
	v.setMode(0x13, false)
	if v.Mode() != 0x13 || v.Width() != 320 || v.Height() != 200 {
		t.Errorf("mode 13h geometry: got mode=0x%02X w=%d h=%d", v.Mode(), v.Width(), v.Height())
	}
	if v.TextMode() {
		t.Error("mode 13h should not be a text mode")
	}
	if v.Base() != 0xA0000 {
		t.Errorf("base: got 0x%X, want 0xA0000", v.Base())
	}
}

func TestVideoAdapter_CursorPositionRoundTrips(t *testing.T) {
	v := NewVideoAdapter()
	v.SetCursorPosition(10, 20)
	row, col := v.CursorPosition()
	if row != 10 || col != 20 {
		t.Errorf("CursorPosition: got (%d,%d), want (10,20)", row, col)
	}
}

func TestVideoAdapter_DACChannelCycleWraps(t *testing.T) {
	v := NewVideoAdapter()
	v.writeDACWriteIndex(0x3C8, 0x05)
	v.writeDACData(0x3C9, 0x3F) // R
	v.writeDACData(0x3C9, 0x20) // G
	v.writeDACData(0x3C9, 0x10) // B
	r, g, b := v.DACEntry(0x05)
	if r != 0x3F || g != 0x20 || b != 0x10 {
		t.Errorf("DACEntry(5): got (%d,%d,%d), want (63,32,16)", r, g, b)
	}
	// The next write should have auto-incremented to index 6.
	v.writeDACData(0x3C9, 0x01)
	v.writeDACData(0x3C9, 0x01)
	v.writeDACData(0x3C9, 0x01)
	r6, _, _ := v.DACEntry(0x06)
	if r6 != 0x01 {
		t.Errorf("DAC auto-increment: entry 6 R got %d, want 1", r6)
	}
}

// TestVideoAdapter_AttributeRGBIntensityLookup drives the full port
// path (flip-flop address write, then colour write) and checks the
// 6-bit ..rgbRGB value expands through the {0x00,0xAA,0x55,0xFF}
// intensity table: secondary bit alone gives 0xAA, primary alone
// 0x55, both 0xFF.
func TestVideoAdapter_AttributeRGBIntensityLookup(t *testing.T) {
	cases := []struct {
		val     byte
		r, g, b byte
	}{
		{0x00, 0x00, 0x00, 0x00},
		{0x3F, 0xFF, 0xFF, 0xFF},
		{0x04, 0xAA, 0x00, 0x00}, // secondary R only
		{0x20, 0x55, 0x00, 0x00}, // primary r only
		{0x24, 0xFF, 0x00, 0x00}, // both R bits
		{0x03, 0x00, 0xAA, 0xAA}, // secondary G and B
	}
	for _, tc := range cases {
		v := NewVideoAdapter()
		v.writeAttr(0x3C0, 0x01)   // address phase: palette index 1
		v.writeAttr(0x3C0, tc.val) // data phase
		r, g, b := v.AttributeRGB(1)
		if r != tc.r || g != tc.g || b != tc.b {
			t.Errorf("AttributeRGB(0x%02X): got (0x%02X,0x%02X,0x%02X), want (0x%02X,0x%02X,0x%02X)",
				tc.val, r, g, b, tc.r, tc.g, tc.b)
		}
	}
}

func TestVideoAdapter_AttributeFlipFlopResetsOnStatusRead(t *testing.T) {
	v := NewVideoAdapter()
	v.writeAttr(0x3C0, 0x01) // address phase: latch index 1
	v.readStatus(0x3DA)      // resets flip-flop to address phase
	v.writeAttr(0x3C0, 0x05) // should be interpreted as an address write again
	if v.attrIndex != 0x05 {
		t.Errorf("attrIndex after status reset: got 0x%02X, want 0x05", v.attrIndex)
	}
}

func TestVideoAdapter_CRTCIndexDataRoundTrip(t *testing.T) {
	v := NewVideoAdapter()
	bus := NewPortBus()
	v.Attach(bus)

	bus.Out(0x3D4, 0x0C) // start-address high
	bus.Out(0x3D5, 0x42)
	if got := v.crtcRegs[0x0C]; got != 0x42 {
		t.Errorf("crtcRegs[0x0C]: got 0x%02X, want 0x42", got)
	}
	if got := bus.In(0x3D5); got != 0x42 {
		t.Errorf("CRTC data readback: got 0x%02X, want 0x42", got)
	}

	// The MDA range shares the same address latch and register file.
	bus.Out(0x3B4, 0x0C)
	if got := bus.In(0x3B5); got != 0x42 {
		t.Errorf("CRTC readback via MDA range: got 0x%02X, want 0x42", got)
	}
}

func TestVideoAdapter_StatusReadReturnsTimingBits(t *testing.T) {
	v := NewVideoAdapter()
	v.AttachTiming(fixedTiming(0x09))
	if got := v.readStatus(0x3DA); got != 0xF9 {
		t.Errorf("status: got 0x%02X, want 0xF9", got)
	}
}

type fixedTiming byte

func (f fixedTiming) TimingStatus() byte { return byte(f) }

func TestVideoBIOS_SetAndQueryMode(t *testing.T) {
	c, _ := newTestCPU()
	v := NewVideoAdapter()
	c.AttachVideo(v)

	c.setByte(regAH, 0x00)
	c.setByte(regAL, 0x13)
	v.HandleInt10(c)
	if v.Mode() != 0x13 {
		t.Fatalf("mode after AH=00h: got 0x%02X, want 0x13", v.Mode())
	}

	c.setByte(regAH, 0x0F)
	v.HandleInt10(c)
	if c.regByte(regAL) != 0x13 {
		t.Errorf("AH=0Fh AL: got 0x%02X, want 0x13", c.regByte(regAL))
	}
}
