//go:build unix

package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	// Sample windows are read at arbitrary offsets.
	_ = unix.Madvise(data, unix.MADV_RANDOM)
	return data, unix.Munmap, nil
}
