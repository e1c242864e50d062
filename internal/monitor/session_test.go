package monitor

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/seagrayinc/acdctl/internal/hiddev"
)

// fakeConn simulates the hiddev driver for one device. Writes to the
// brightness usage are echoed back by subsequent reads.
type fakeConn struct {
	info       hiddev.DevInfo
	apps       []uint32
	brightness int32

	failOn map[uint32]error // request code -> forced failure

	appCalls  int
	initCalls int
	closed    bool
}

func (f *fakeConn) Control(req uint32, buf []byte) error {
	if err := f.failOn[req]; err != nil {
		return err
	}
	switch req {
	case hiddev.HIDIOCGVERSION:
		v := hiddev.Version{Major: 1, Minor: 0, Patch: 4}
		v.Marshal(buf)
	case hiddev.HIDIOCGDEVINFO:
		f.info.Marshal(buf)
	case hiddev.HIDIOCGUSAGE:
		var u hiddev.UsageRef
		u.Unmarshal(buf)
		u.Value = f.brightness
		u.Marshal(buf)
	case hiddev.HIDIOCSUSAGE:
		var u hiddev.UsageRef
		u.Unmarshal(buf)
		f.brightness = u.Value
	case hiddev.HIDIOCGREPORT, hiddev.HIDIOCSREPORT:
		// report latch, nothing to simulate
	default:
		return errors.New("unexpected request")
	}
	return nil
}

func (f *fakeConn) ControlRet(req uint32, arg int) (int, error) {
	if err := f.failOn[req]; err != nil {
		return -1, err
	}
	switch req {
	case hiddev.HIDIOCAPPLICATION:
		f.appCalls++
		return int(f.apps[arg]), nil
	case hiddev.HIDIOCINITREPORT:
		f.initCalls++
		return 0, nil
	}
	return -1, errors.New("unexpected request")
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func openWith(f *fakeConn) hiddev.Opener {
	return func(string) (hiddev.Conn, error) { return f, nil }
}

// cinemaDisplay is an Apple Cinema Display 20" with one monitor
// application and a backlight at 128.
func cinemaDisplay() *fakeConn {
	return &fakeConn{
		info: hiddev.DevInfo{
			BusType:         3,
			Vendor:          0x05ac,
			Product:         0x9219,
			NumApplications: 1,
		},
		apps:       []uint32{0x80010000},
		brightness: 128,
	}
}

func TestOpenReady(t *testing.T) {
	f := cinemaDisplay()
	s, err := Open("/dev/usb/hiddev0", openWith(f))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if f.appCalls != 1 || f.initCalls != 1 {
		t.Fatalf("appCalls=%d initCalls=%d", f.appCalls, f.initCalls)
	}
	if s.VendorName() != "Apple" || s.ProductName() != `Apple Cinema Display 20"` {
		t.Fatalf("names: %q / %q", s.VendorName(), s.ProductName())
	}
	if v := s.DriverVersion().String(); v != "1.0.4" {
		t.Fatalf("driver version %q", v)
	}

	level, err := s.Brightness()
	if err != nil {
		t.Fatalf("brightness: %v", err)
	}
	if level != 128 {
		t.Fatalf("level = %d, want 128", level)
	}
}

func TestUnsupportedVendor(t *testing.T) {
	f := cinemaDisplay()
	f.info.Vendor = 0x1234

	_, err := Open("/dev/usb/hiddev0", openWith(f))
	var ve *UnsupportedVendorError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want UnsupportedVendorError", err)
	}
	if ve.Vendor != 0x1234 {
		t.Fatalf("vendor = %04x", ve.Vendor)
	}
	if !IsAcceptance(err) {
		t.Fatal("expected acceptance error")
	}
	// Rejected before any application scan or report initialization.
	if f.appCalls != 0 || f.initCalls != 0 {
		t.Fatalf("appCalls=%d initCalls=%d", f.appCalls, f.initCalls)
	}
	if !f.closed {
		t.Fatal("handle leaked")
	}
}

func TestUnsupportedProduct(t *testing.T) {
	f := cinemaDisplay()
	f.info.Product = 0xffff

	_, err := Open("/dev/usb/hiddev0", openWith(f))
	var pe *UnsupportedProductError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want UnsupportedProductError", err)
	}
	if !IsAcceptance(err) {
		t.Fatal("expected acceptance error")
	}
	if f.appCalls != 0 || f.initCalls != 0 {
		t.Fatalf("appCalls=%d initCalls=%d", f.appCalls, f.initCalls)
	}
	if !f.closed {
		t.Fatal("handle leaked")
	}
}

func TestNotAMonitor(t *testing.T) {
	f := cinemaDisplay()
	f.info.NumApplications = 3
	f.apps = []uint32{0x00010000, 0x00040000, 0x00070000}

	_, err := Open("/dev/usb/hiddev0", openWith(f))
	var me *NotAMonitorError
	if !errors.As(err, &me) {
		t.Fatalf("err = %v, want NotAMonitorError", err)
	}
	if !IsAcceptance(err) {
		t.Fatal("expected acceptance error")
	}
	if f.appCalls != 3 {
		t.Fatalf("appCalls = %d, want full scan", f.appCalls)
	}
	if f.initCalls != 0 {
		t.Fatal("report initialized on a rejected device")
	}
	if !f.closed {
		t.Fatal("handle leaked")
	}
}

func TestMonitorApplicationFoundLast(t *testing.T) {
	f := cinemaDisplay()
	f.info.NumApplications = 3
	f.apps = []uint32{0x00010000, 0x00040000, 0x80000000}

	s, err := Open("/dev/usb/hiddev0", openWith(f))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if f.appCalls != 3 {
		t.Fatalf("appCalls = %d, want 3", f.appCalls)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	f := cinemaDisplay()
	s, err := Open("/dev/usb/hiddev0", openWith(f))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	for _, v := range []int{0, 1, 127, 128, 254, 255} {
		if err := s.SetBrightness(v); err != nil {
			t.Fatalf("set %d: %v", v, err)
		}
		got, err := s.Brightness()
		if err != nil {
			t.Fatalf("get after set %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %d: got %d", v, got)
		}
	}
}

func TestSetBrightnessClamps(t *testing.T) {
	cases := []struct {
		in   int
		want int32
	}{
		{300, 255},
		{256, 255},
		{-1, 0},
		{-300, 0},
	}
	for _, c := range cases {
		f := cinemaDisplay()
		s, err := Open("/dev/usb/hiddev0", openWith(f))
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		if err := s.SetBrightness(c.in); err != nil {
			t.Fatalf("set %d: %v", c.in, err)
		}
		if f.brightness != c.want {
			t.Errorf("set %d: driver saw %d, want %d", c.in, f.brightness, c.want)
		}
		s.Close()
	}
}

func TestSetBrightnessClampWarns(t *testing.T) {
	var logBuf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logBuf, nil)))
	defer slog.SetDefault(prev)

	f := cinemaDisplay()
	s, err := Open("/dev/usb/hiddev0", openWith(f))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.SetBrightness(300); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !strings.Contains(logBuf.String(), "clamping") {
		t.Fatalf("no clamp warning logged: %q", logBuf.String())
	}

	logBuf.Reset()
	if err := s.SetBrightness(200); err != nil {
		t.Fatalf("set: %v", err)
	}
	if strings.Contains(logBuf.String(), "clamping") {
		t.Fatal("in-range set warned")
	}
}

func TestAdjustBrightness(t *testing.T) {
	cases := []struct {
		start int32
		delta int
		want  int
	}{
		{128, 100, 228},
		{200, 100, 255},
		{128, -300, 0},
		{0, -1, 0},
		{255, 1, 255},
		{50, 0, 50},
	}
	for _, c := range cases {
		f := cinemaDisplay()
		f.brightness = c.start
		s, err := Open("/dev/usb/hiddev0", openWith(f))
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		got, err := s.AdjustBrightness(c.delta)
		if err != nil {
			t.Fatalf("adjust %d: %v", c.delta, err)
		}
		if got != c.want {
			t.Errorf("adjust %d from %d: got %d, want %d", c.delta, c.start, got, c.want)
		}
		if f.brightness != int32(c.want) {
			t.Errorf("adjust %d from %d: driver saw %d", c.delta, c.start, f.brightness)
		}
		s.Close()
	}
}

func TestInitReportFailureIsFatal(t *testing.T) {
	f := cinemaDisplay()
	f.failOn = map[uint32]error{hiddev.HIDIOCINITREPORT: errors.New("io error")}

	_, err := Open("/dev/usb/hiddev0", openWith(f))
	var de *DriverError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want DriverError", err)
	}
	if IsAcceptance(err) {
		t.Fatal("driver fault classified as acceptance")
	}
	if !f.closed {
		t.Fatal("handle leaked")
	}
}

func TestSetReportFailure(t *testing.T) {
	f := cinemaDisplay()
	s, err := Open("/dev/usb/hiddev0", openWith(f))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	f.failOn = map[uint32]error{hiddev.HIDIOCSREPORT: errors.New("io error")}
	err = s.SetBrightness(10)
	var de *DriverError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want DriverError", err)
	}
	if de.Op != "set report" {
		t.Fatalf("op = %q", de.Op)
	}
	if IsAcceptance(err) {
		t.Fatal("driver fault classified as acceptance")
	}
}

func TestGetUsageFailure(t *testing.T) {
	f := cinemaDisplay()
	s, err := Open("/dev/usb/hiddev0", openWith(f))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	f.failOn = map[uint32]error{hiddev.HIDIOCGUSAGE: errors.New("io error")}
	_, err = s.Brightness()
	var de *DriverError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want DriverError", err)
	}
	if de.Op != "get usage" {
		t.Fatalf("op = %q", de.Op)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ in, want int }{
		{-1, 0}, {0, 0}, {42, 42}, {255, 255}, {256, 255},
	}
	for _, c := range cases {
		if got := Clamp(c.in); got != c.want {
			t.Errorf("Clamp(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
