//go:build !linux && !darwin && !freebsd && !windows

package sysmem

// reservePages uses the Go heap when no OS reservation primitive is available.
func reservePages(size int) ([]byte, func() error, error) {
	return Heap(size)
}
