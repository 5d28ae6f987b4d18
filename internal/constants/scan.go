package constants

import "time"

const (
	// UnknownDeviceName is displayed for devices that do not advertise a name.
	UnknownDeviceName = "Unknown"

	// DefaultInterScanDelay separates the two passes of a correlated scan.
	DefaultInterScanDelay = 5 * time.Second

	// DefaultScanDuration is how long a single pass listens for advertisements.
	DefaultScanDuration = 5 * time.Second

	// DefaultFixTimeout bounds how long a report waits for a GPS fix.
	DefaultFixTimeout = 10 * time.Second
)

// Scan pass numbers
const (
	FirstPass  = 1
	SecondPass = 2
)
