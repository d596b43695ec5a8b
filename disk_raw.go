// disk_raw.go - host raw-device backing for the disk service
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

/*
disk_raw.go is the one genuinely host-specific seam in the disk
service: sector reads and writes plus geometry discovery against a
real block device. Paths beginning with "\\" select this path instead
of the plain image-file one in InsertDisk.

On Linux, device size is discovered with the BLKGETSIZE64 ioctl via
golang.org/x/sys/unix; elsewhere raw-device mode is simply
unsupported, since everything else in the disk service works on plain
image files.
*/

package main

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sys/unix"
)

// openRawDevice opens path (with its leading "\\" selector already
// implied by the caller) for raw read/write and discovers its size.
func openRawDevice(path string) (*os.File, int64, error) {
	if runtime.GOOS != "linux" {
		return nil, 0, fmt.Errorf("disk: raw device access unsupported on %s", runtime.GOOS)
	}
	name := path
	if len(path) >= 2 && path[0] == '\\' && path[1] == '\\' {
		name = "/dev/" + path[2:]
	}
	f, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return nil, 0, err
	}
	size, err := blockDeviceSize(f)
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, size, nil
}

// blockDeviceSize queries the kernel for a block device's byte size via
// the BLKGETSIZE64 ioctl, since os.File.Stat().Size() reports zero for
// block-special files.
func blockDeviceSize(f *os.File) (int64, error) {
	size, err := unix.IoctlGetInt(int(f.Fd()), unix.BLKGETSIZE64)
	if err != nil {
		return 0, fmt.Errorf("disk: BLKGETSIZE64: %w", err)
	}
	return int64(size), nil
}
