//go:build !linux

package hiddev

import "errors"

// Open is only implemented on Linux, where the hiddev driver lives.
func Open(path string) (Conn, error) {
	return nil, errors.New("hiddev is not available on this platform")
}
