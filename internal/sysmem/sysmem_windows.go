//go:build windows

package sysmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// reservePages commits read-write pages with VirtualAlloc. Committed pages
// are zero-initialized by the system.
func reservePages(size int) ([]byte, func() error, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, nil, fmt.Errorf("sysmem: VirtualAlloc %d bytes: %w", size, err)
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	release := func() error {
		if addr == 0 {
			return nil
		}
		err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
		addr = 0
		return err
	}
	return data, release, nil
}
