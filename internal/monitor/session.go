// Package monitor owns a session against one USB monitor's brightness
// control, from device validation through get/set of the backlight level.
package monitor

import (
	"fmt"
	"log/slog"

	"github.com/seagrayinc/acdctl/internal/hiddev"
)

// Brightness control channel of the supported monitors. The report id
// and usage code are vendor-defined and shared by every allow-listed
// model.
const (
	BrightnessReportID = 16
	BrightnessUsage    = 0x820010

	BrightnessMin = 0
	BrightnessMax = 255
)

// monitorUsagePage is the high byte of the USB monitor usage page; an
// application whose usage value carries it marks the device as a monitor.
const monitorUsagePage = 0x80

// Session drives the brightness control of one opened monitor. It is not
// safe for concurrent use; every operation issues blocking control
// requests on the underlying handle.
type Session struct {
	conn    hiddev.Conn
	version hiddev.Version
	info    hiddev.DevInfo
	vendor  *Vendor
	product *Product

	// Request templates built once at validation time and reused,
	// mutated in place, for every get/set.
	usage  hiddev.UsageRef
	report hiddev.ReportInfo
}

// Open opens the hiddev node at path and validates that it is a
// supported monitor. The handle is closed before returning on every
// failure path; wrong-device failures are distinguishable from driver
// faults via IsAcceptance.
func Open(path string, open hiddev.Opener) (*Session, error) {
	conn, err := open(path)
	if err != nil {
		return nil, err
	}

	s := &Session{conn: conn}
	if err := s.validate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) validate() error {
	buf := make([]byte, hiddev.VersionSize)
	if err := s.conn.Control(hiddev.HIDIOCGVERSION, buf); err != nil {
		return &DriverError{Op: "get driver version", Err: err}
	}
	s.version.Unmarshal(buf)

	buf = make([]byte, hiddev.DevInfoSize)
	if err := s.conn.Control(hiddev.HIDIOCGDEVINFO, buf); err != nil {
		return &DriverError{Op: "get device info", Err: err}
	}
	s.info.Unmarshal(buf)

	vendor, ok := LookupVendor(s.info.Vendor)
	if !ok {
		return &UnsupportedVendorError{Vendor: s.info.Vendor}
	}
	s.vendor = vendor

	product, ok := vendor.Lookup(s.info.Product)
	if !ok {
		return &UnsupportedProductError{Vendor: s.info.Vendor, Product: s.info.Product}
	}
	s.product = product

	if err := s.findMonitorApplication(); err != nil {
		return err
	}

	// One-time report initialization. Failing here is an I/O fault, not
	// a wrong-device condition: the report state is unusable.
	if _, err := s.conn.ControlRet(hiddev.HIDIOCINITREPORT, 0); err != nil {
		return &DriverError{Op: "initialize report structures", Err: err}
	}

	s.usage = hiddev.UsageRef{
		ReportType: hiddev.ReportTypeFeature,
		ReportID:   BrightnessReportID,
		FieldIndex: 0,
		UsageIndex: 0,
		UsageCode:  BrightnessUsage,
	}
	s.report = hiddev.ReportInfo{
		ReportType: hiddev.ReportTypeFeature,
		ReportID:   BrightnessReportID,
		NumFields:  1,
	}
	return nil
}

// findMonitorApplication scans the device's application collections,
// stopping at the first one on the monitor usage page.
func (s *Session) findMonitorApplication() error {
	for i := uint32(0); i < s.info.NumApplications; i++ {
		app, err := s.conn.ControlRet(hiddev.HIDIOCAPPLICATION, int(i))
		if err != nil {
			return &DriverError{Op: fmt.Sprintf("get application %d", i), Err: err}
		}
		if uint32(app)>>24&0xff == monitorUsagePage {
			slog.Debug("monitor application found",
				slog.Int("index", int(i)), slog.String("usage", fmt.Sprintf("%08x", uint32(app))))
			return nil
		}
	}
	return &NotAMonitorError{Applications: s.info.NumApplications}
}

// Brightness reads the current backlight level.
func (s *Session) Brightness() (int, error) {
	buf := make([]byte, hiddev.UsageRefSize)
	s.usage.Marshal(buf)
	if err := s.conn.Control(hiddev.HIDIOCGUSAGE, buf); err != nil {
		return 0, &DriverError{Op: "get usage", Err: err}
	}
	s.usage.Unmarshal(buf)

	rbuf := make([]byte, hiddev.ReportInfoSize)
	s.report.Marshal(rbuf)
	if err := s.conn.Control(hiddev.HIDIOCGREPORT, rbuf); err != nil {
		return 0, &DriverError{Op: "get report", Err: err}
	}
	return int(s.usage.Value), nil
}

// SetBrightness writes a backlight level. Values outside [0, 255] are
// clamped with a warning before any driver call is issued.
func (s *Session) SetBrightness(v int) error {
	if v < BrightnessMin || v > BrightnessMax {
		clamped := Clamp(v)
		slog.Warn("brightness out of range, clamping",
			slog.Int("requested", v), slog.Int("clamped", clamped))
		v = clamped
	}
	s.usage.Value = int32(v)

	buf := make([]byte, hiddev.UsageRefSize)
	s.usage.Marshal(buf)
	if err := s.conn.Control(hiddev.HIDIOCSUSAGE, buf); err != nil {
		return &DriverError{Op: "set usage", Err: err}
	}
	rbuf := make([]byte, hiddev.ReportInfoSize)
	s.report.Marshal(rbuf)
	if err := s.conn.Control(hiddev.HIDIOCSREPORT, rbuf); err != nil {
		return &DriverError{Op: "set report", Err: err}
	}
	return nil
}

// AdjustBrightness applies a signed delta to the current level and
// returns the level actually written. The read and the write are two
// separate driver calls: a concurrent writer can make the baseline
// stale, and the final level then reflects the delta applied to it.
func (s *Session) AdjustBrightness(delta int) (int, error) {
	cur, err := s.Brightness()
	if err != nil {
		return 0, err
	}
	if err := s.SetBrightness(cur + delta); err != nil {
		return 0, err
	}
	return int(s.usage.Value), nil
}

// Clamp bounds a brightness value to [BrightnessMin, BrightnessMax].
func Clamp(v int) int {
	if v < BrightnessMin {
		return BrightnessMin
	}
	if v > BrightnessMax {
		return BrightnessMax
	}
	return v
}

// Close releases the device handle.
func (s *Session) Close() error {
	return s.conn.Close()
}

// DriverVersion reports the hiddev driver version read at open time.
func (s *Session) DriverVersion() hiddev.Version { return s.version }

// Info reports the opened device's identity.
func (s *Session) Info() hiddev.DevInfo { return s.info }

// VendorName is the allow-list display name of the device's vendor.
func (s *Session) VendorName() string { return s.vendor.Name }

// ProductName is the allow-list display name of the device's model.
func (s *Session) ProductName() string { return s.product.Name }
