// Command acdctl reads and sets the backlight level of Apple and some
// Samsung USB monitors through the Linux hiddev interface.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	usbhid "rafaelmartins.com/p/usbhid"

	"github.com/seagrayinc/acdctl/internal/hiddev"
	"github.com/seagrayinc/acdctl/internal/monitor"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 1 && (args[0] == "-l" || args[0] == "--list") {
		return listDevices()
	}
	if len(args) == 0 || len(args) > 2 {
		usage()
		return 1
	}

	// Parse the brightness directive before touching the device.
	var arg string
	if len(args) == 2 {
		arg = args[1]
	}
	dir, err := parseDirective(arg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	sess, err := monitor.Open(args[0], hiddev.Open)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if monitor.IsAcceptance(err) {
			// Wrong device, not a failure.
			return 0
		}
		return 1
	}
	defer sess.Close()

	fmt.Printf("hiddev driver version is %s\n", sess.DriverVersion())
	fmt.Printf("Found supported product %04x (%s) of vendor %04x (%s)\n",
		sess.Info().Product, sess.ProductName(), sess.Info().Vendor, sess.VendorName())

	switch {
	case dir.query:
		level, err := sess.Brightness()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("Current brightness is %d (%s)\n", level, percent(level))

	case dir.delta:
		level, err := sess.AdjustBrightness(dir.value)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("Brightness set to %d (%s)\n", level, percent(level))

	default:
		if err := sess.SetBrightness(dir.value); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		level := monitor.Clamp(dir.value)
		fmt.Printf("Brightness set to %d (%s)\n", level, percent(level))
	}
	return 0
}

// directive is the parsed brightness argument: query the current level,
// set an absolute one, or apply a signed delta.
type directive struct {
	query bool
	delta bool
	value int
}

func parseDirective(arg string) (directive, error) {
	if arg == "" {
		return directive{query: true}, nil
	}
	v, err := strconv.Atoi(arg)
	if err != nil {
		return directive{}, fmt.Errorf("invalid brightness %q: expected an integer, optionally signed", arg)
	}
	return directive{
		delta: strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-"),
		value: v,
	}, nil
}

// percent renders a brightness level as a share of the 256-step range.
func percent(level int) string {
	return fmt.Sprintf("%d%%", level*100/256)
}

func listDevices() int {
	devices, err := usbhid.Enumerate(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "enumerate HID devices: %v\n", err)
		return 1
	}
	for _, d := range devices {
		mark := " "
		if v, ok := monitor.LookupVendor(d.VendorId()); ok {
			if _, ok := v.Lookup(d.ProductId()); ok {
				mark = "*"
			}
		}
		fmt.Printf("%s %s  %04x:%04x  %s %s\n",
			mark, d.Path(), d.VendorId(), d.ProductId(), d.Manufacturer(), d.Product())
	}
	return 0
}

func usage() {
	fmt.Fprint(os.Stderr, `Set brightness on Apple and some other USB monitors.

Usage:
  acdctl <device-path> [brightness]
  acdctl --list

Arguments:
  device-path  hiddev node of the monitor, e.g. /dev/usb/hiddev0
  brightness   new level in 0-255; with a leading + or - the current
               level is adjusted by that amount instead

Flags:
  -l, --list   list attached HID devices, marking supported monitors
`)
}
