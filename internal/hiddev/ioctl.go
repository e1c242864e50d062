// Package hiddev speaks the Linux hiddev driver's control ABI: the
// request-code encoding, the fixed-layout records exchanged through it,
// and a narrow transport over the device node.
package hiddev

// Request codes pack four fields, per the asm-generic ioctl convention:
// operation number in bits 0-7, group in bits 8-15, transfer size in
// bits 16-29 and direction in bits 30-31. The driver decodes the size
// and direction out of the code to know how many bytes to copy and
// which way, so the layout has to match the kernel's bit for bit.
const (
	nrBits   = 8
	typeBits = 8
	sizeBits = 14
	dirBits  = 2

	nrShift   = 0
	typeShift = nrShift + nrBits
	sizeShift = typeShift + typeBits
	dirShift  = sizeShift + sizeBits

	dirNone  = 0
	dirWrite = 1
	dirRead  = 2
)

func ioc(dir, group, nr, size uint32) uint32 {
	return dir<<dirShift | size<<sizeShift | group<<typeShift | nr<<nrShift
}

// IO builds a request code for an operation that transfers no buffer.
func IO(group, nr uint32) uint32 { return ioc(dirNone, group, nr, 0) }

// IOR builds a request code for a driver-to-caller transfer of size bytes.
func IOR(group, nr, size uint32) uint32 { return ioc(dirRead, group, nr, size) }

// IOW builds a request code for a caller-to-driver transfer of size bytes.
func IOW(group, nr, size uint32) uint32 { return ioc(dirWrite, group, nr, size) }

// IOWR builds a request code for a bidirectional transfer of size bytes.
func IOWR(group, nr, size uint32) uint32 { return ioc(dirRead|dirWrite, group, nr, size) }

// RequestDir extracts the direction bits from a request code.
func RequestDir(req uint32) uint32 { return req >> dirShift & (1<<dirBits - 1) }

// RequestSize extracts the transfer size from a request code.
func RequestSize(req uint32) uint32 { return req >> sizeShift & (1<<sizeBits - 1) }

// RequestGroup extracts the group identifier from a request code.
func RequestGroup(req uint32) uint32 { return req >> typeShift & (1<<typeBits - 1) }

// RequestNr extracts the operation number from a request code.
func RequestNr(req uint32) uint32 { return req >> nrShift & (1<<nrBits - 1) }
