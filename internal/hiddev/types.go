package hiddev

import (
	"encoding/binary"
	"fmt"
)

// Report types from linux/hiddev.h.
const (
	ReportTypeInput   = 1
	ReportTypeOutput  = 2
	ReportTypeFeature = 3
)

// Report id sentinels from linux/hiddev.h.
const (
	ReportIDUnknown = 0xffffffff
	ReportIDFirst   = 0x00000100
	ReportIDNext    = 0x00000200
	ReportIDMask    = 0x000000ff
	ReportIDMax     = 0x000000ff
)

// Wire sizes of the records below. The driver copies exactly the byte
// count encoded in the request, so these must match the kernel structs.
const (
	VersionSize    = 4
	DevInfoSize    = 28 // 22 bytes of fields + 2 pad + num_applications
	UsageRefSize   = 24
	ReportInfoSize = 12
)

// The records live in kernel memory on the far side of the ioctl, so the
// wire format is the host's native byte order.
var native = binary.NativeEndian

// Version is the hiddev driver version (HIDIOCGVERSION).
type Version struct {
	Major uint16
	Minor uint8
	Patch uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Marshal writes the record into buf, which must be VersionSize bytes.
func (v *Version) Marshal(buf []byte) {
	buf[0] = v.Patch
	buf[1] = v.Minor
	native.PutUint16(buf[2:], v.Major)
}

// Unmarshal reads the record out of buf, which must be VersionSize bytes.
func (v *Version) Unmarshal(buf []byte) {
	v.Patch = buf[0]
	v.Minor = buf[1]
	v.Major = native.Uint16(buf[2:])
}

// DevInfo is the identity and topology of an opened device
// (HIDIOCGDEVINFO).
type DevInfo struct {
	BusType         uint32
	BusNum          uint32
	DevNum          uint32
	IfNum           uint32
	Vendor          uint16
	Product         uint16
	Version         uint16
	NumApplications uint32
}

// Marshal writes the record into buf, which must be DevInfoSize bytes.
// NumApplications sits at offset 24: the kernel struct aligns it to 4
// bytes, leaving 2 pad bytes after the uint16 run.
func (d *DevInfo) Marshal(buf []byte) {
	native.PutUint32(buf[0:], d.BusType)
	native.PutUint32(buf[4:], d.BusNum)
	native.PutUint32(buf[8:], d.DevNum)
	native.PutUint32(buf[12:], d.IfNum)
	native.PutUint16(buf[16:], d.Vendor)
	native.PutUint16(buf[18:], d.Product)
	native.PutUint16(buf[20:], d.Version)
	native.PutUint32(buf[24:], d.NumApplications)
}

// Unmarshal reads the record out of buf, which must be DevInfoSize bytes.
func (d *DevInfo) Unmarshal(buf []byte) {
	d.BusType = native.Uint32(buf[0:])
	d.BusNum = native.Uint32(buf[4:])
	d.DevNum = native.Uint32(buf[8:])
	d.IfNum = native.Uint32(buf[12:])
	d.Vendor = native.Uint16(buf[16:])
	d.Product = native.Uint16(buf[18:])
	d.Version = native.Uint16(buf[20:])
	d.NumApplications = native.Uint32(buf[24:])
}

// UsageRef addresses one usage within one field of one report
// (HIDIOCGUSAGE / HIDIOCSUSAGE). Value carries the control's payload in
// both directions.
type UsageRef struct {
	ReportType uint32
	ReportID   uint32
	FieldIndex uint32
	UsageIndex uint32
	UsageCode  uint32
	Value      int32
}

// Marshal writes the record into buf, which must be UsageRefSize bytes.
func (u *UsageRef) Marshal(buf []byte) {
	native.PutUint32(buf[0:], u.ReportType)
	native.PutUint32(buf[4:], u.ReportID)
	native.PutUint32(buf[8:], u.FieldIndex)
	native.PutUint32(buf[12:], u.UsageIndex)
	native.PutUint32(buf[16:], u.UsageCode)
	native.PutUint32(buf[20:], uint32(u.Value))
}

// Unmarshal reads the record out of buf, which must be UsageRefSize bytes.
func (u *UsageRef) Unmarshal(buf []byte) {
	u.ReportType = native.Uint32(buf[0:])
	u.ReportID = native.Uint32(buf[4:])
	u.FieldIndex = native.Uint32(buf[8:])
	u.UsageIndex = native.Uint32(buf[12:])
	u.UsageCode = native.Uint32(buf[16:])
	u.Value = int32(native.Uint32(buf[20:]))
}

// ReportInfo addresses a whole report for the fetch/commit operations
// (HIDIOCGREPORT / HIDIOCSREPORT).
type ReportInfo struct {
	ReportType uint32
	ReportID   uint32
	NumFields  uint32
}

// Marshal writes the record into buf, which must be ReportInfoSize bytes.
func (r *ReportInfo) Marshal(buf []byte) {
	native.PutUint32(buf[0:], r.ReportType)
	native.PutUint32(buf[4:], r.ReportID)
	native.PutUint32(buf[8:], r.NumFields)
}

// Unmarshal reads the record out of buf, which must be ReportInfoSize bytes.
func (r *ReportInfo) Unmarshal(buf []byte) {
	r.ReportType = native.Uint32(buf[0:])
	r.ReportID = native.Uint32(buf[4:])
	r.NumFields = native.Uint32(buf[8:])
}
