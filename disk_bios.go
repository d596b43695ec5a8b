// disk_bios.go - INT 13h dispatch over the disk service
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

/*
disk_bios.go translates INT 13h register conventions (AH = function,
CH/CL = cylinder/sector, DH = head, DL = drive) into DiskService calls
and back into CF/AH/AL. The CPU core short-circuits INT 13h here
instead of performing a normal vectored call, the same way it routes
INT 10h to the video adapter.
*/

package main

// HandleInt13 dispatches one INT 13h call against cpu's register file
// and d's disk table, mutating registers and FLAGS.CF exactly as a real
// BIOS disk service would.
func (d *DiskService) HandleInt13(cpu *CPU) {
	ah := cpu.regByte(regAH)
	dl := cpu.regByte(regDL)

	switch ah {
	case 0x00:
		// Reset: always succeeds.
		cpu.setByte(regAH, 0)
		cpu.setFlag(flagCF, false)

	case 0x01:
		// Last status for drive DL.
		cpu.setByte(regAH, d.lastStatus(dl))
		cpu.setFlag(flagCF, false)

	case 0x02, 0x03:
		cyl, head, sect, count := decodeCHS(cpu)
		drive := int(dl)
		var (
			transferred int
			err         error
		)
		if ah == 0x02 {
			transferred, err = d.ReadSectors(drive, cpu.ES(), cpu.wordReg(regBX), cyl, head, sect, count)
		} else {
			transferred, err = d.WriteSectors(drive, cpu.ES(), cpu.wordReg(regBX), cyl, head, sect, count)
		}
		d.reportTransfer(cpu, dl, transferred, err)

	case 0x04, 0x05:
		// Format track: stub success.
		cpu.setByte(regAH, 0)
		cpu.setFlag(flagCF, false)
		d.setStatus(dl, 0)

	case 0x08:
		d.handleDriveParameters(cpu, dl)

	default:
		cpu.setFlag(flagCF, true)
		d.setStatus(dl, 0x01)
	}

	d.mirrorStatusToBDA(cpu, dl)
}

func decodeCHS(cpu *CPU) (cyl, head, sect, count int) {
	ch := cpu.regByte(regCH)
	cl := cpu.regByte(regCL)
	dh := cpu.regByte(regDH)
	al := cpu.regByte(regAL)

	cyl = int(ch) | int(cl&0xC0)<<2
	sect = int(cl & 0x3F)
	head = int(dh)
	count = int(al)
	return
}

func (d *DiskService) reportTransfer(cpu *CPU, dl byte, transferred int, err error) {
	cpu.setByte(regAL, byte(transferred))
	if err != nil {
		cpu.setByte(regAH, 0x04) // sector-not-found class status
		cpu.setFlag(flagCF, true)
		d.setStatus(dl, 0x04)
		return
	}
	cpu.setByte(regAH, 0)
	cpu.setFlag(flagCF, false)
	d.setStatus(dl, 0)
}

func (d *DiskService) handleDriveParameters(cpu *CPU, dl byte) {
	drive := int(dl)
	dr := &d.drives[drive]
	if !dr.inserted {
		cpu.setByte(regAH, 0xAA)
		cpu.setFlag(flagCF, true)
		d.setStatus(dl, 0xAA)
		return
	}

	cpu.setByte(regCH, byte(dr.geo.Cylinders-1))
	cpu.setByte(regCL, byte(dr.geo.Sectors)|byte((dr.geo.Cylinders/256)<<6))
	cpu.setByte(regDH, byte(dr.geo.Heads-1))
	if drive >= 0x80 {
		cpu.setByte(regDL, byte(d.fixedDiskCount()))
	} else {
		cpu.setByte(regDL, 2)
		cpu.setByte(regBL, 4)
	}
	cpu.setByte(regAH, 0)
	cpu.setFlag(flagCF, false)
	d.setStatus(dl, 0)
}

func (d *DiskService) fixedDiskCount() int {
	n := 0
	for i := 0x80; i < 256; i++ {
		if d.drives[i].inserted {
			n++
		}
	}
	return n
}

func (d *DiskService) setStatus(dl byte, status byte) {
	if dl&0x80 != 0 {
		d.lastStatusFixed[dl] = status
	} else {
		d.lastStatusFloppy[dl] = status
	}
}

func (d *DiskService) lastStatus(dl byte) byte {
	if dl&0x80 != 0 {
		return d.lastStatusFixed[dl]
	}
	return d.lastStatusFloppy[dl]
}

// biosDataAreaDiskStatus is the BIOS data area address mirrored with
// the last INT 13h status whenever DL addresses a fixed disk.
const biosDataAreaDiskStatus = 0x474

func (d *DiskService) mirrorStatusToBDA(cpu *CPU, dl byte) {
	if dl&0x80 == 0 {
		return
	}
	cpu.mem.Write8(biosDataAreaDiskStatus, cpu.regByte(regAH))
}
