// machine.go - composition root and emulation loop
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

/*
machine.go owns the CPU, Memory, PortBus, PIC, DiskService and
VideoAdapter as a single aggregate and drives the emulation loop: each
batch of instructions executes, then the PIC is polled for a pending
unmasked IRQ and, if one exists and IF is set, an interrupt frame is
injected before the next batch.

Every device here receives an explicit handle to Memory and the
PortBus at construction rather than reaching into package globals, so
the whole machine can be stood up (and torn down) per test.
*/

package main

import (
	"sync/atomic"
	"time"
)

// picTickPeriod is one 18.2 Hz system-timer tick, the IRQ0 rate a real
// PC/XT's PIT channel 0 drives.
var picTickHz = 18.2
var picTickPeriod = time.Duration(float64(time.Second) / picTickHz)

// Machine is the composition root: CPU, Memory, PortBus, PIC, Disk and
// Video, wired together once at construction.
type Machine struct {
	Mem      *Memory
	Ports    *PortBus
	CPU      *CPU
	PIC      *PIC
	Disk     *DiskService
	Video    *VideoAdapter
	Keyboard *keyboardController

	running        atomic.Bool
	hardReset      atomic.Bool
	pendingIRQMask atomic.Uint32

	lastTick time.Time // last instant IRQ0 was raised or owed
}

// NewMachine builds a fully wired machine: Memory's aperture points at
// the video adapter's planar controller, the CPU short-circuits INT
// 10h/INT 13h to Video/Disk, and the PIC and video adapter register
// their port ranges on the shared PortBus.
func NewMachine() *Machine {
	mem := NewMemory()
	ports := NewPortBus()
	video := NewVideoAdapter()
	disk := NewDiskService(mem)
	pic := NewPIC()
	cpu := NewCPU(mem, ports)

	mem.AttachAperture(video)
	cpu.AttachVideo(video)
	cpu.AttachDisk(disk)
	pic.Attach(ports)
	video.Attach(ports)
	kc := attachKeyboardController(ports, pic)

	m := &Machine{Mem: mem, Ports: ports, CPU: cpu, PIC: pic, Disk: disk, Video: video, Keyboard: kc}
	m.running.Store(true)
	m.lastTick = time.Now()
	return m
}

// RaiseIRQ is the one permitted cross-thread mutation: a
// presenter or input thread may call this concurrently with the
// emulation loop. PIC.Raise itself is a plain OR on a uint8, which is
// not atomic in Go's memory model across goroutines without external
// synchronization, so this path funnels through a dedicated mutex-free
// atomic compare-and-swap loop on a side flag instead of touching IRR
// directly from another thread; the emulation loop drains pending
// cross-thread IRQs at each batch boundary via drainPendingIRQs.
func (m *Machine) RaiseIRQ(irq int) {
	for {
		old := m.pendingIRQMask.Load()
		updated := old | 1<<uint(irq)
		if m.pendingIRQMask.CompareAndSwap(old, updated) {
			return
		}
	}
}

// Stop requests the emulation loop exit at the next batch boundary.
func (m *Machine) Stop() { m.running.Store(false) }

// RequestHardReset requests a full CPU state reset at the next batch
// boundary.
func (m *Machine) RequestHardReset() { m.hardReset.Store(true) }

// drainPendingIRQs folds any cross-thread-submitted IRQs into the PIC's
// IRR, then clears the side mask. Called once per batch boundary.
func (m *Machine) drainPendingIRQs() {
	mask := m.pendingIRQMask.Swap(0)
	for bit := 0; bit < 8 && mask != 0; bit++ {
		if mask&(1<<uint(bit)) != 0 {
			m.PIC.Raise(bit)
		}
	}
}

// Run executes instructions in batches of batchSize until Stop is
// called, polling the PIC for a pending unmasked IRQ and delivering it
// between batches.
func (m *Machine) Run(batchSize int) {
	for m.running.Load() {
		if m.hardReset.Load() {
			m.hardReset.Store(false)
			// Replace the CPU wholesale: its regs16/segs16 pointer
			// arrays alias its own fields, so a struct copy would
			// leave them pointing at the old instance.
			cpu := NewCPU(m.Mem, m.Ports)
			cpu.AttachVideo(m.Video)
			cpu.AttachDisk(m.Disk)
			m.CPU = cpu
		}

		m.Step(batchSize)
	}
}

// tickTimer accounts system-timer time: if more than one tick period
// has elapsed since the last tick was accounted for, IRQ0 is raised
// for the first elapsed tick and every additional elapsed tick becomes
// PIC backlog, to be replayed as the PIC's EOI handler drains it
// (pic.go's makeupTicks).
func (m *Machine) tickTimer() {
	elapsed := time.Since(m.lastTick)
	if elapsed < picTickPeriod {
		return
	}
	ticks := int(elapsed / picTickPeriod)
	m.lastTick = m.lastTick.Add(time.Duration(ticks) * picTickPeriod)

	m.PIC.Raise(0)
	for i := 1; i < ticks; i++ {
		m.PIC.AddMakeupTick()
	}
}

// Step runs at most n instructions (fewer if the CPU halts and no
// interrupt is pending to wake it) and delivers one pending interrupt
// at the batch boundary, if any. Exposed separately from Run so a host
// can drive the loop one batch at a time (e.g. between video frames).
func (m *Machine) Step(n int) {
	m.drainPendingIRQs()
	m.tickTimer()

	for i := 0; i < n; i++ {
		m.CPU.Step()
	}

	if m.CPU.getFlag(flagIF) && m.PIC.Pending() {
		if vector, ok := m.PIC.NextInterrupt(); ok {
			m.CPU.Interrupt(vector)
		}
	}
}
