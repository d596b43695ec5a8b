// keyboard.go - minimal keyboard-controller stub (ports 0x60/0x64)
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

/*
keyboard.go wires a minimal port 0x60 (data)/0x64 (status) pair so the
PIC's IRQ1 acknowledge latch (pic.go's ackIRQ1) has a real producer
and consumer. This is not a full AT keyboard controller - no command
byte, no scan-code translation - just enough that a host input source
can deliver a keypress and a guest ISR can service it end-to-end.
*/

package main

// keyboardController holds the one pending scan code a host input
// source has queued via PushScanCode.
type keyboardController struct {
	pic      *PIC
	scanCode byte
	pending  bool
}

// attachKeyboardController registers ports 0x60/0x64 on bus, backed by
// pic's IRQ1 acknowledge latch.
func attachKeyboardController(bus *PortBus, pic *PIC) *keyboardController {
	kc := &keyboardController{pic: pic}
	bus.Register(0x60, 0x60, kc.readData, nil)
	bus.Register(0x64, 0x64, kc.readStatus, nil)
	return kc
}

// PushScanCode queues one scan code and raises IRQ1, as a real
// keyboard controller would on a keypress.
func (kc *keyboardController) PushScanCode(code byte) {
	kc.scanCode = code
	kc.pending = true
	kc.pic.Raise(1)
}

func (kc *keyboardController) readData(_ uint16) byte {
	kc.pending = false
	return kc.scanCode
}

// readStatus's bit 0 (output-buffer-full) mirrors whether a scan code
// is queued; bit 1 mirrors the PIC's IRQ1 acknowledge-pending latch so
// a guest ISR can confirm the interrupt it is servicing.
func (kc *keyboardController) readStatus(_ uint16) byte {
	var s byte
	if kc.pending {
		s |= 0x01
	}
	if kc.pic.KeyboardAckPending() {
		s |= 0x02
	}
	return s
}
