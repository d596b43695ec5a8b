// video_bios.go - INT 10h (video BIOS services) dispatch
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

/*
video_bios.go implements the INT 10h sub-functions the core models:
AH=00h (set video mode), AH=02h/03h (set/get cursor position) and
AH=0Fh (get current mode). Every other AH value returns without side
effects.
*/

package main

type modeGeometry struct {
	cols, rows    int
	width, height int
	base          uint32
}

// modeTable maps a BIOS mode number (AL) to its geometry.
var modeTable = map[byte]modeGeometry{
	0x00: {40, 25, 0, 0, 0xB8000},
	0x01: {40, 25, 0, 0, 0xB8000},
	0x02: {80, 25, 0, 0, 0xB8000},
	0x03: {80, 25, 0, 0, 0xB8000},
	0x04: {40, 25, 320, 200, 0xB8000},
	0x05: {40, 25, 320, 200, 0xB8000},
	0x06: {80, 25, 640, 200, 0xB8000},
	0x07: {80, 25, 0, 0, 0xB8000},
	0x0D: {40, 25, 320, 200, 0xA0000},
	0x0E: {80, 25, 640, 200, 0xA0000},
	0x0F: {80, 25, 640, 350, 0xA0000},
	0x10: {80, 25, 640, 350, 0xA0000},
	0x11: {80, 30, 640, 480, 0xA0000},
	0x12: {80, 30, 640, 480, 0xA0000},
	0x13: {40, 25, 320, 200, 0xA0000},
}

// graphicsModes is the set of AL values that put the adapter into a
// graphics (non-text) mode.
var graphicsModes = map[byte]bool{
	0x04: true, 0x05: true, 0x06: true,
	0x0D: true, 0x0E: true, 0x0F: true, 0x10: true,
	0x11: true, 0x12: true, 0x13: true,
}

// HandleInt10 dispatches one INT 10h call by AH; unimplemented AH
// values are no-ops.
func (v *VideoAdapter) HandleInt10(c *CPU) {
	switch c.regByte(regAH) {
	case 0x00:
		al := c.regByte(regAL)
		v.setMode(al&0x7F, al&0x80 != 0)
	case 0x02:
		row := int(c.regByte(regDH))
		col := int(c.regByte(regDL))
		v.SetCursorPosition(row, col)
	case 0x03:
		row, col := v.CursorPosition()
		c.setByte(regDH, byte(row))
		c.setByte(regDL, byte(col))
		c.setWordReg(regCX, uint16(v.crtcRegs[0x0A])<<8|uint16(v.crtcRegs[0x0B]))
	case 0x0F:
		al := v.mode
		if v.noBlanking {
			al |= 0x80
		}
		c.setByte(regAL, al)
		c.setByte(regAH, byte(v.cols))
		c.setByte(regBH, byte(v.activePage))
	}
}

// setMode installs geometry for AL from modeTable and records the
// family implied by the mode number for callers that need it.
func (v *VideoAdapter) setMode(al byte, noBlanking bool) {
	g, ok := modeTable[al]
	if !ok {
		return
	}
	v.mode = al
	v.noBlanking = noBlanking
	v.cols, v.rows = g.cols, g.rows
	v.width, v.height = g.width, g.height
	v.base = g.base
	v.textMode = !graphicsModes[al]
	v.activePage = 0
	for i := range v.cursorPos {
		v.cursorPos[i] = 0
	}

	switch {
	case al <= 0x07:
		v.family = FamilyCGA
	case al >= 0x0D && al <= 0x10:
		v.family = FamilyEGA
	default:
		v.family = FamilyVGA
	}
}

// Mode, Width, Height, Cols, Rows, Base, ActivePage expose the video
// state a presenter needs to sample the framebuffer.
func (v *VideoAdapter) Mode() byte        { return v.mode }
func (v *VideoAdapter) Width() int        { return v.width }
func (v *VideoAdapter) Height() int       { return v.height }
func (v *VideoAdapter) Cols() int         { return v.cols }
func (v *VideoAdapter) Rows() int         { return v.rows }
func (v *VideoAdapter) Base() uint32      { return v.base }
func (v *VideoAdapter) ActivePage() int   { return v.activePage }
func (v *VideoAdapter) TextMode() bool    { return v.textMode }
func (v *VideoAdapter) Family() int       { return v.family }
