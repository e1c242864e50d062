//go:build linux

package hiddev

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

type sysConn struct {
	fd int
}

// Open opens the hiddev node at path. It satisfies Opener.
func Open(path string) (Conn, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &sysConn{fd: fd}, nil
}

func (c *sysConn) Control(req uint32, buf []byte) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(c.fd), uintptr(req), uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return errno
	}
	return nil
}

func (c *sysConn) ControlRet(req uint32, arg int) (int, error) {
	r, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(c.fd), uintptr(req), uintptr(arg))
	if errno != 0 {
		return -1, errno
	}
	return int(r), nil
}

func (c *sysConn) Close() error {
	return unix.Close(c.fd)
}
