package hiddev

// The hiddev driver claims ioctl group 'H'.
const hiddevGroup = 'H'

// Request codes from linux/hiddev.h (operations 0x00 - 0x7f).
var (
	HIDIOCGVERSION         = IOR(hiddevGroup, 0x01, VersionSize)
	HIDIOCAPPLICATION      = IO(hiddevGroup, 0x02)
	HIDIOCGDEVINFO         = IOR(hiddevGroup, 0x03, DevInfoSize)
	HIDIOCINITREPORT       = IO(hiddevGroup, 0x05)
	HIDIOCGREPORT          = IOW(hiddevGroup, 0x07, ReportInfoSize)
	HIDIOCSREPORT          = IOW(hiddevGroup, 0x08, ReportInfoSize)
	HIDIOCGREPORTINFO      = IOWR(hiddevGroup, 0x09, ReportInfoSize)
	HIDIOCGUSAGE           = IOWR(hiddevGroup, 0x0b, UsageRefSize)
	HIDIOCSUSAGE           = IOW(hiddevGroup, 0x0c, UsageRefSize)
	HIDIOCGUCODE           = IOWR(hiddevGroup, 0x0d, UsageRefSize)
	HIDIOCGFLAG            = IOR(hiddevGroup, 0x0e, 2)
	HIDIOCGCOLLECTIONINDEX = IOW(hiddevGroup, 0x10, UsageRefSize)
)
