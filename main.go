// main.go - pcemu command-line entry point
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

/*
main.go is the pcemu CLI: a BIOS ROM path, an optional video-ROM path,
zero or more disk-image flags, and a boot-drive selector, parsed by
hand over os.Args.
*/

package main

import (
	"fmt"
	"log"
	"os"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: pcemu -bios <path> [-vbios <path>] [-iderom <path>] [-basicrom <path>] [-fd0 <path>] [-fd1 <path>] [-hd0 <path>] [-hd1 <path>] [-boot fd0|fd1|hd0|hd1]")
}

func main() {
	var biosPath, vbiosPath, ideromPath, basicromPath string
	var fd0, fd1, hd0, hd1 string
	boot := 0x00

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		next := func() string {
			i++
			if i >= len(args) {
				usage()
				os.Exit(1)
			}
			return args[i]
		}
		switch args[i] {
		case "-bios":
			biosPath = next()
		case "-vbios":
			vbiosPath = next()
		case "-iderom":
			ideromPath = next()
		case "-basicrom":
			basicromPath = next()
		case "-fd0":
			fd0 = next()
		case "-fd1":
			fd1 = next()
		case "-hd0":
			hd0 = next()
		case "-hd1":
			hd1 = next()
		case "-boot":
			switch next() {
			case "fd0":
				boot = 0x00
			case "fd1":
				boot = 0x01
			case "hd0":
				boot = 0x80
			case "hd1":
				boot = 0x81
			default:
				usage()
				os.Exit(1)
			}
		default:
			usage()
			os.Exit(1)
		}
	}

	if biosPath == "" {
		usage()
		os.Exit(1)
	}

	m := NewMachine()

	biosImage, err := os.ReadFile(biosPath)
	if err != nil {
		log.Fatalf("pcemu: reading BIOS ROM: %v", err)
	}
	m.Mem.LoadROM(biosImage, 0xF0000)

	for _, rom := range []struct {
		path string
		base uint32
		what string
	}{
		{vbiosPath, 0xC0000, "video ROM"},
		{ideromPath, 0xD0000, "IDE option ROM"},
		{basicromPath, 0xF6000, "ROM BASIC"},
	} {
		if rom.path == "" {
			continue
		}
		image, err := os.ReadFile(rom.path)
		if err != nil {
			log.Fatalf("pcemu: reading %s: %v", rom.what, err)
		}
		m.Mem.LoadROM(image, rom.base)
	}

	for drive, path := range map[int]string{0x00: fd0, 0x01: fd1, 0x80: hd0, 0x81: hd1} {
		if path == "" {
			continue
		}
		if err := m.Disk.InsertDisk(drive, path); err != nil {
			log.Fatalf("pcemu: inserting disk image %q: %v", path, err)
		}
	}

	m.CPU.setByte(regDL, byte(boot))

	const batchSize = 1024
	m.Run(batchSize)
}
