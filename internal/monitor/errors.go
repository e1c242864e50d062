package monitor

import (
	"errors"
	"fmt"
)

// Acceptance errors mean the opened device is not a monitor this tool
// drives. They are benign: callers report them and move on, as opposed
// to driver errors, which are fatal.

// UnsupportedVendorError reports a vendor id absent from the allow-list.
type UnsupportedVendorError struct {
	Vendor uint16
}

func (e *UnsupportedVendorError) Error() string {
	return fmt.Sprintf("vendor %04x is not supported", e.Vendor)
}

func (*UnsupportedVendorError) acceptance() {}

// UnsupportedProductError reports a product id absent from its vendor's
// allow-list entries.
type UnsupportedProductError struct {
	Vendor  uint16
	Product uint16
}

func (e *UnsupportedProductError) Error() string {
	return fmt.Sprintf("product %04x of vendor %04x is not supported", e.Product, e.Vendor)
}

func (*UnsupportedProductError) acceptance() {}

// NotAMonitorError means none of the device's applications sit on the
// USB monitor usage page.
type NotAMonitorError struct {
	Applications uint32
}

func (e *NotAMonitorError) Error() string {
	return fmt.Sprintf("device is not a USB monitor (%d applications scanned)", e.Applications)
}

func (*NotAMonitorError) acceptance() {}

type acceptanceError interface {
	error
	acceptance()
}

// IsAcceptance reports whether err is a benign wrong-device condition
// rather than a driver or I/O fault.
func IsAcceptance(err error) bool {
	var a acceptanceError
	return errors.As(err, &a)
}

// DriverError is a failed control call. A set that fails between its two
// driver calls can leave the device mid-update, so callers must re-query
// before trusting the brightness value again.
type DriverError struct {
	Op  string
	Err error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *DriverError) Unwrap() error { return e.Err }
