// cpu_interrupt.go - software interrupt dispatch and short-circuits
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

/*
cpu_interrupt.go implements the INT n instruction's dispatch: INT 10h
and INT 13h are short-circuited directly to the video adapter and disk
service respectively rather than performing a normal vectored call,
since those are the two BIOS services this core models. Every other
interrupt number falls through to Interrupt, which performs the real
push-FLAGS/CS/IP and vector-table fetch.
*/

package main

// SoftwareInterrupt handles INT n: short-circuiting the two BIOS
// services the core implements, else performing a normal vectored
// interrupt.
func (c *CPU) SoftwareInterrupt(n byte) {
	switch {
	case n == 0x10 && c.video != nil:
		// All AH sub-functions route here; video.HandleInt10 itself
		// only acts on the sub-functions it implements and is a no-op
		// for everything else.
		c.video.HandleInt10(c)
		return
	case n == 0x13 && c.disk != nil:
		c.disk.HandleInt13(c)
		return
	}
	c.Interrupt(n)
}
