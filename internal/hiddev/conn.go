package hiddev

// Conn is an open control channel to a hiddev node.
//
// Control issues a buffer-carrying request; the driver reads from and/or
// writes into buf in place, per the direction encoded in req. ControlRet
// issues a request whose third argument is an immediate value instead of
// a buffer and returns the driver's result word.
type Conn interface {
	Control(req uint32, buf []byte) error
	ControlRet(req uint32, arg int) (int, error)
	Close() error
}

// Opener opens a device node for read-write control access.
type Opener func(path string) (Conn, error)
